// Package fastaio reads and writes the FASTA sequence files that feed and
// record an analysis run. Reading streams one record at a time so a
// multi-gigabyte input never has to sit fully in memory; a malformed record
// fails only that record, not the rest of the file.
package fastaio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TuftsBCB/io/fasta"
	"github.com/TuftsBCB/seq"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
)

// Record is one sequence read from a FASTA file: its header name and its
// residues after character filtering.
type Record struct {
	Name string
	Seq  []byte
}

// openCompressed wraps f according to fileName's compression suffix. A
// ".gz" file is decompressed with pgzip (parallel, drop-in for the stdlib
// gzip.Reader); a ".xz" file with the pure-Go xz reader. Anything else is
// read as plain text.
func openCompressed(fileName string, f io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(fileName, ".gz"):
		return pgzip.NewReader(f)
	case strings.HasSuffix(fileName, ".xz"):
		return xz.NewReader(f)
	default:
		return f, nil
	}
}

// filterResidues keeps only alphabetic characters and '.', '?', '*',
// case-folding letters to uppercase; every other byte is silently dropped.
func filterResidues(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for _, c := range raw {
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-('a'-'A'))
		case c >= 'A' && c <= 'Z':
			out = append(out, c)
		case c == '.' || c == '?' || c == '*':
			out = append(out, c)
		}
	}
	return out
}

// ParseError reports that one record in a FASTA stream failed to parse.
// The stream recovers: Reader skips the record and continues from the next
// one.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fastaio: record %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reader streams Records out of a FASTA file, decompressing transparently
// and filtering residues as it goes.
type Reader struct {
	inner *fasta.Reader
	index int
}

// Open opens fileName, wraps it with the appropriate decompressor and
// returns a Reader positioned at the first record.
func Open(fileName string) (*Reader, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	r, err := openCompressed(fileName, bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Reader{inner: fasta.NewReader(r)}, nil
}

// NewReader wraps an already-opened, already-decompressed stream. Use this
// when the caller owns the file handle and its compression.
func NewReader(r io.Reader) *Reader {
	return &Reader{inner: fasta.NewReader(r)}
}

// Next returns the next record, io.EOF once the stream is exhausted, or a
// *ParseError for a single malformed record (the next call to Next resumes
// after it).
func (r *Reader) Next() (Record, error) {
	sequence, err := r.inner.Read()
	if err == io.EOF {
		return Record{}, io.EOF
	}
	idx := r.index
	r.index++
	if err != nil {
		return Record{}, &ParseError{Index: idx, Err: err}
	}
	return Record{Name: sequence.Name, Seq: filterResidues(sequence.Bytes())}, nil
}

// NextFunc adapts r into the signature pipeline.Produce expects, so a
// FASTA file can be fed straight into the analysis worker pool. A
// malformed record is reported to onParseError (if non-nil) and skipped;
// the stream only stops on a genuine read error or end of file.
func (r *Reader) NextFunc(onParseError func(*ParseError)) func() (string, []byte, error) {
	return func() (string, []byte, error) {
		for {
			rec, err := r.Next()
			if err == io.EOF {
				return "", nil, io.EOF
			}
			if perr, ok := err.(*ParseError); ok {
				if onParseError != nil {
					onParseError(perr)
				}
				continue
			}
			if err != nil {
				return "", nil, err
			}
			return rec.Name, rec.Seq, nil
		}
	}
}

// Writer writes Records back out in FASTA format, wrapping lines the same
// way the upstream library does.
type Writer struct {
	inner *fasta.Writer
}

// NewWriter wraps w for FASTA output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{inner: fasta.NewWriter(w)}
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	return w.inner.Write(seq.NewSequenceString(rec.Name, string(rec.Seq)))
}
