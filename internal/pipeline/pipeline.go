// Package pipeline runs per-sequence analysis concurrently over a stream of
// FASTA records: an input producer, a fixed pool of workers each owning its
// own scratch state, and an output side that either preserves input order
// or accepts results as they complete.
package pipeline

import (
	"io"
	"sync"

	"go.uber.org/zap"
)

// Record is one parsed input sequence awaiting analysis.
type Record struct {
	Index int
	Name  string
	Seq   []byte
}

// Result is one worker's outcome for a Record. Err is non-nil when analyze
// failed or panicked for that sequence; the pipeline never stops because of
// it.
type Result[R any] struct {
	Index int
	Name  string
	Value R
	Err   error
}

// Config controls worker count and output ordering. Logger is optional; when
// set, every worker logs each record whose analysis panicked or returned an
// error, tagged with the worker's own sequence number; records that succeed
// are not logged.
type Config struct {
	Jobs             int
	InOrder          bool
	IncludeReference bool
	Logger           *zap.SugaredLogger
}

// NextFunc pulls the next FASTA record from a stream, returning io.EOF once
// exhausted. IncludeReference does not affect Produce; callers that want the
// reference sequence analyzed alongside queries arrange for it to appear in
// the stream NextFunc reads from.
type NextFunc func() (name string, seq []byte, err error)

// Produce drives NextFunc on its own goroutine, emitting Records in reading
// order. On an error other than io.EOF, the error is sent to errc and the
// record channel is closed immediately: workers drain whatever records they
// already received and exit when the channel runs dry, but no further
// records are produced.
func Produce(next NextFunc) (<-chan Record, <-chan error) {
	out := make(chan Record, 64)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		for index := 0; ; index++ {
			name, seq, err := next()
			if err == io.EOF {
				return
			}
			if err != nil {
				errc <- err
				return
			}
			out <- Record{Index: index, Name: name, Seq: seq}
		}
	}()
	return out, errc
}

// AnalyzeFunc analyzes a single record, using whatever scratch state its
// closure captured.
type AnalyzeFunc[R any] func(rec Record) (R, error)

// Run starts cfg.Jobs workers (at least one), each built by calling
// newAnalyze exactly once so it can allocate its own scratch buffers the way
// the rest of the pipeline does per worker goroutine, then reused across
// every record that worker handles. A worker panicking on one record is
// recovered into an Err result rather than taking down the pipeline.
//
// When cfg.InOrder is true the returned channel yields results in the same
// order Records arrived on in; otherwise results are yielded as soon as a
// worker finishes them.
func Run[R any](cfg Config, in <-chan Record, newAnalyze func() AnalyzeFunc[R]) <-chan Result[R] {
	workers := cfg.Jobs
	if workers < 1 {
		workers = 1
	}

	results := make(chan Result[R], workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		worker := i
		go func() {
			defer wg.Done()
			analyze := newAnalyze()
			for rec := range in {
				result := runOne(rec, analyze, cfg.Logger, worker)
				results <- result
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	if !cfg.InOrder {
		return results
	}
	return reorder(results)
}

func runOne[R any](rec Record, analyze AnalyzeFunc[R], logger *zap.SugaredLogger, worker int) (result Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			result = Result[R]{Index: rec.Index, Name: rec.Name, Err: &PanicError{Name: rec.Name, Recovered: r}}
			if logger != nil {
				logger.Errorw("analysis panicked", "worker", worker, "seqName", rec.Name, "recovered", r)
			}
		}
	}()
	value, err := analyze(rec)
	if err != nil && logger != nil {
		logger.Warnw("analysis failed", "worker", worker, "seqName", rec.Name, "error", err)
	}
	return Result[R]{Index: rec.Index, Name: rec.Name, Value: value, Err: err}
}

// reorder buffers out-of-order results and releases them in ascending Index
// order.
func reorder[R any](in <-chan Result[R]) <-chan Result[R] {
	out := make(chan Result[R], cap(in))
	go func() {
		defer close(out)
		pending := make(map[int]Result[R])
		next := 0
		for r := range in {
			pending[r.Index] = r
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				out <- ready
				delete(pending, next)
				next++
			}
		}
	}()
	return out
}
