package pipeline

import (
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestProduceEmitsInOrderAndStopsAtEOF(t *testing.T) {
	names := []string{"a", "b", "c"}
	i := 0
	next := func() (string, []byte, error) {
		if i >= len(names) {
			return "", nil, io.EOF
		}
		name := names[i]
		i++
		return name, []byte(name), nil
	}

	out, errc := Produce(next)

	var got []Record
	for rec := range out {
		got = append(got, rec)
	}
	require.Len(t, got, 3)
	for idx, rec := range got {
		assert.Equal(t, idx, rec.Index)
		assert.Equal(t, names[idx], rec.Name)
	}
	select {
	case err := <-errc:
		t.Fatalf("unexpected error: %v", err)
	default:
	}
}

func TestProduceStopsOnReadError(t *testing.T) {
	readErr := errors.New("boom")
	next := func() (string, []byte, error) { return "", nil, readErr }

	out, errc := Produce(next)

	for range out {
		t.Fatal("expected no records")
	}
	assert.Same(t, readErr, <-errc)
}

func TestRunInOrderPreservesInputOrder(t *testing.T) {
	in := make(chan Record, 10)
	for i := 0; i < 10; i++ {
		in <- Record{Index: i, Name: "seq"}
	}
	close(in)

	cfg := Config{Jobs: 4, InOrder: true}
	analyze := func(rec Record) (int, error) { return rec.Index * 2, nil }

	out := Run(cfg, in, func() AnalyzeFunc[int] { return analyze })

	next := 0
	for r := range out {
		assert.Equal(t, next, r.Index)
		assert.Equal(t, next*2, r.Value)
		next++
	}
	assert.Equal(t, 10, next)
}

func TestRunOutOfOrderYieldsEveryResult(t *testing.T) {
	in := make(chan Record, 10)
	for i := 0; i < 10; i++ {
		in <- Record{Index: i}
	}
	close(in)

	cfg := Config{Jobs: 3, InOrder: false}
	out := Run(cfg, in, func() AnalyzeFunc[int] {
		return func(rec Record) (int, error) { return rec.Index, nil }
	})

	var seen []int
	for r := range out {
		seen = append(seen, r.Value)
	}
	sort.Ints(seen)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, seen)
}

func TestRunConvertsAnalyzeErrorWithoutCrashing(t *testing.T) {
	in := make(chan Record, 2)
	in <- Record{Index: 0, Name: "bad"}
	in <- Record{Index: 1, Name: "good"}
	close(in)

	sentinel := errors.New("bad sequence")
	analyze := func(rec Record) (int, error) {
		if rec.Name == "bad" {
			return 0, sentinel
		}
		return 1, nil
	}

	out := Run(Config{Jobs: 1, InOrder: true}, in, func() AnalyzeFunc[int] { return analyze })

	first := <-out
	assert.Same(t, sentinel, first.Err)
	second := <-out
	assert.NoError(t, second.Err)
}

func TestRunRecoversPanicIntoError(t *testing.T) {
	in := make(chan Record, 1)
	in <- Record{Index: 0, Name: "boom"}
	close(in)

	analyze := func(rec Record) (int, error) { panic("kaboom") }

	out := Run(Config{Jobs: 1, InOrder: true}, in, func() AnalyzeFunc[int] { return analyze })

	r := <-out
	require.Error(t, r.Err)
	var panicErr *PanicError
	require.ErrorAs(t, r.Err, &panicErr)
	assert.Equal(t, "boom", panicErr.Name)
}

func TestRunLogsPanicAndFailureWhenLoggerConfigured(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core).Sugar()

	in := make(chan Record, 2)
	in <- Record{Index: 0, Name: "boom"}
	in <- Record{Index: 1, Name: "bad"}
	close(in)

	analyze := func(rec Record) (int, error) {
		if rec.Name == "boom" {
			panic("kaboom")
		}
		return 0, errors.New("rejected")
	}

	out := Run(Config{Jobs: 1, InOrder: true, Logger: logger}, in, func() AnalyzeFunc[int] { return analyze })
	for range out {
	}

	require.Equal(t, 2, logs.Len())
	messages := make([]string, 0, 2)
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "analysis panicked")
	assert.Contains(t, messages, "analysis failed")
}

func TestRunBuildsScratchOncePerWorker(t *testing.T) {
	in := make(chan Record, 5)
	for i := 0; i < 5; i++ {
		in <- Record{Index: i}
	}
	close(in)

	var scratchBuilds int
	newAnalyze := func() AnalyzeFunc[int] {
		scratchBuilds++
		return func(rec Record) (int, error) { return rec.Index, nil }
	}

	out := Run(Config{Jobs: 1, InOrder: true}, in, newAnalyze)
	for range out {
	}

	assert.Equal(t, 1, scratchBuilds)
}
