// Package gffio parses the GFF3 gene-map files that tell the analyzer which
// reading frames to translate and check for frame shifts and stop codons.
package gffio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nextstrain/nextclade-sub000/internal/gene"
)

const geneNameAttribute = "gene_name"

// ParseError reports a row-level problem in a GFF file: a column that
// didn't parse as an integer, a malformed attribute list, or a gene that
// fails gene.Gene's invariants.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gffio: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DuplicateGeneNameError reports that gene_name repeats across rows; it
// must be unique across the map.
type DuplicateGeneNameError struct {
	GeneName string
}

func (e *DuplicateGeneNameError) Error() string {
	return fmt.Sprintf("gffio: gene_name %q is not unique", e.GeneName)
}

// Parse reads a tab-separated GFF stream and returns the gene map it
// describes. Rows whose feature column is not "gene" are ignored. start,
// end and frame are 1-based in the file and converted to the zero-based,
// half-open convention gene.Gene uses everywhere downstream.
func Parse(r io.Reader, refLength int) (gene.Map, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	genes := gene.Map{}
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if len(row) < 9 {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected 9 columns, got %d", len(row))}
		}

		feature := row[2]
		if feature != "gene" {
			continue
		}

		g, err := parseGeneRow(row, refLength)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if _, exists := genes[g.Name]; exists {
			return nil, &DuplicateGeneNameError{GeneName: g.Name}
		}
		genes[g.Name] = g
	}
	return genes, nil
}

func parseGeneRow(row []string, refLength int) (gene.Gene, error) {
	start1, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return gene.Gene{}, fmt.Errorf("start column: %w", err)
	}
	end1, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		return gene.Gene{}, fmt.Errorf("end column: %w", err)
	}
	strand := strings.TrimSpace(row[6])
	frame1, err := strconv.Atoi(strings.TrimSpace(row[7]))
	if err != nil {
		return gene.Gene{}, fmt.Errorf("frame column: %w", err)
	}

	attrs, err := parseAttributes(row[8])
	if err != nil {
		return gene.Gene{}, err
	}
	name, ok := attrs[geneNameAttribute]
	if !ok || name == "" {
		return gene.Gene{}, fmt.Errorf("attribute %q is missing or empty", geneNameAttribute)
	}

	start := start1 - 1
	end := end1 // already exclusive after the -1/+1 cancel
	frame := frame1 - 1

	g := gene.Gene{
		Name:   name,
		Start:  start,
		End:    end,
		Strand: strand,
		Frame:  frame,
		Length: end - start,
	}
	if err := g.Validate(refLength); err != nil {
		return gene.Gene{}, err
	}
	return g, nil
}

// parseAttributes splits the ";"-separated attribute column into a
// key/value map. Each piece is a `key "value"` pair (quotes optional); a
// value of "." means empty, matching GFF convention.
func parseAttributes(attribute string) (map[string]string, error) {
	attrs := make(map[string]string)
	for _, piece := range strings.Split(attribute, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		fields := strings.Fields(piece)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed attribute %q: expected `key \"value\"`", piece)
		}
		key := fields[0]
		val := strings.Trim(fields[1], `"' `)
		if key == "" || val == "" {
			return nil, fmt.Errorf("malformed attribute %q: expected `key \"value\"`", piece)
		}
		if val == "." {
			val = ""
		}
		attrs[key] = val
	}
	return attrs, nil
}
