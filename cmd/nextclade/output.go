package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/analyze"
	"github.com/nextstrain/nextclade-sub000/internal/fastaio"
	"github.com/nextstrain/nextclade-sub000/internal/tree"
	"github.com/nextstrain/nextclade-sub000/internal/treeio"
)

// errorCollector accumulates the (seqName, error) pairs errors.csv reports:
// records fastaio.Reader itself could not parse, plus records that failed
// analysis.
type errorCollector struct {
	entries []errorEntry
}

type errorEntry struct {
	seqName string
	err     error
}

func newErrorCollector() *errorCollector {
	return &errorCollector{}
}

func (c *errorCollector) add(seqName string, err error) {
	c.entries = append(c.entries, errorEntry{seqName: seqName, err: err})
}

// summary is the flattened, JSON/CSV-friendly projection of analyze.Result:
// every alphabet-typed value is rendered as the compact mutation notation
// (e.g. "C3037T", "del27632-27634") nextclade's own tables use, since the
// underlying enums don't carry their own JSON encoding.
type summary struct {
	SeqName              string   `json:"seqName" csv:"seqName"`
	Clade                string   `json:"clade" csv:"clade"`
	QcOverallStatus      string   `json:"qc.overallStatus" csv:"qc.overallStatus"`
	QcOverallScore       float64  `json:"qc.overallScore" csv:"qc.overallScore"`
	AlignmentScore       int      `json:"alignmentScore" csv:"alignmentScore"`
	NearestNodeID        int      `json:"nearestNodeId" csv:"nearestNodeId"`
	TotalSubstitutions   int      `json:"totalSubstitutions" csv:"totalSubstitutions"`
	TotalDeletions       int      `json:"totalDeletions" csv:"totalDeletions"`
	TotalInsertions      int      `json:"totalInsertions" csv:"totalInsertions"`
	TotalFrameShifts     int      `json:"totalFrameShifts" csv:"totalFrameShifts"`
	TotalMissing         int      `json:"totalMissing" csv:"totalMissing"`
	TotalAminoacidSubs   int      `json:"totalAminoacidSubstitutions" csv:"totalAminoacidSubstitutions"`
	TotalAminoacidDels   int      `json:"totalAminoacidDeletions" csv:"totalAminoacidDeletions"`
	TotalPrivateMuts     int      `json:"totalPrivateMutations" csv:"totalPrivateMutations"`
	Substitutions        []string `json:"substitutions" csv:"-"`
	Deletions            []string `json:"deletions" csv:"-"`
	AminoacidSubstitutions []string `json:"aaSubstitutions" csv:"-"`
	AminoacidDeletions    []string `json:"aaDeletions" csv:"-"`
	Warnings             []string `json:"warnings" csv:"-"`
}

func nucMutationLabel(refNuc alphabet.Nucleotide, pos int, queryNuc alphabet.Nucleotide) string {
	return fmt.Sprintf("%c%d%c", alphabet.CharFromNucleotide(refNuc), pos+1, alphabet.CharFromNucleotide(queryNuc))
}

func nucDeletionLabel(start, length int) string {
	if length == 1 {
		return fmt.Sprintf("del%d", start+1)
	}
	return fmt.Sprintf("del%d-%d", start+1, start+length)
}

func aaSubstitutionLabel(gene string, refAA alphabet.Aminoacid, codon int, queryAA alphabet.Aminoacid) string {
	return fmt.Sprintf("%s:%c%d%c", gene, alphabet.CharFromAminoacid(refAA), codon+1, alphabet.CharFromAminoacid(queryAA))
}

func aaDeletionLabel(gene string, refAA alphabet.Aminoacid, codon int) string {
	return fmt.Sprintf("%s:%c%d-", gene, alphabet.CharFromAminoacid(refAA), codon+1)
}

func summarize(r analyze.Result) summary {
	s := summary{
		SeqName:            r.SeqName,
		Clade:               r.Clade,
		QcOverallStatus:     r.Qc.OverallStatus,
		QcOverallScore:      r.Qc.OverallScore,
		AlignmentScore:      r.AlignmentScore,
		NearestNodeID:      r.NearestNodeID,
		TotalSubstitutions:  len(r.NucChanges.Substitutions),
		TotalDeletions:      len(r.NucChanges.Deletions),
		TotalInsertions:     len(r.Insertions),
		TotalFrameShifts:    len(r.FrameShifts),
		TotalMissing:        len(r.Missing),
		TotalAminoacidSubs:  len(r.AminoacidChanges.Substitutions),
		TotalAminoacidDels:  len(r.AminoacidChanges.Deletions),
		TotalPrivateMuts:    len(r.PrivateMutations.Substitutions) + len(r.PrivateMutations.Deletions),
	}
	for _, sub := range r.NucChanges.Substitutions {
		s.Substitutions = append(s.Substitutions, nucMutationLabel(sub.RefNuc, sub.Pos, sub.QueryNuc))
	}
	for _, del := range r.NucChanges.Deletions {
		s.Deletions = append(s.Deletions, nucDeletionLabel(del.Start, del.Length))
	}
	for _, aaSub := range r.AminoacidChanges.Substitutions {
		s.AminoacidSubstitutions = append(s.AminoacidSubstitutions, aaSubstitutionLabel(aaSub.Gene, aaSub.RefAA, aaSub.Codon, aaSub.QueryAA))
	}
	for _, aaDel := range r.AminoacidChanges.Deletions {
		s.AminoacidDeletions = append(s.AminoacidDeletions, aaDeletionLabel(aaDel.Gene, aaDel.RefAA, aaDel.Codon))
	}
	for _, w := range r.Warnings {
		s.Warnings = append(s.Warnings, fmt.Sprintf("%s: %s", w.GeneName, w.Message))
	}
	return s
}

// outputs owns every writer a run produces: the aligned nucleotide and
// per-gene peptide FASTAs (streamed record by record), the insertions CSV,
// and the buffered JSON/CSV/TSV tables and Auspice tree written once at the
// end, after every worker has finished.
type outputs struct {
	dir, base string
	count     int

	alignedFile   *os.File
	alignedWriter *fastaio.Writer

	geneFiles   map[string]*os.File
	geneWriters map[string]*fastaio.Writer

	insertionsFile   *os.File
	insertionsWriter *csv.Writer

	summaries []summary
}

func newOutputs(dir, base string) (*outputs, error) {
	alignedFile, err := os.Create(filepath.Join(dir, "aligned.fasta"))
	if err != nil {
		return nil, err
	}
	insertionsFile, err := os.Create(filepath.Join(dir, "insertions.csv"))
	if err != nil {
		alignedFile.Close()
		return nil, err
	}
	insertionsWriter := csv.NewWriter(insertionsFile)
	if err := insertionsWriter.Write([]string{"seqName", "position", "insertedSeq"}); err != nil {
		return nil, err
	}

	return &outputs{
		dir:              dir,
		base:             base,
		alignedFile:      alignedFile,
		alignedWriter:    fastaio.NewWriter(alignedFile),
		geneFiles:        map[string]*os.File{},
		geneWriters:      map[string]*fastaio.Writer{},
		insertionsFile:   insertionsFile,
		insertionsWriter: insertionsWriter,
	}, nil
}

func (o *outputs) geneWriter(geneName string) (*fastaio.Writer, error) {
	if w, ok := o.geneWriters[geneName]; ok {
		return w, nil
	}
	f, err := os.Create(filepath.Join(o.dir, fmt.Sprintf("gene.%s.fasta", geneName)))
	if err != nil {
		return nil, err
	}
	w := fastaio.NewWriter(f)
	o.geneFiles[geneName] = f
	o.geneWriters[geneName] = w
	return w, nil
}

// writeResult streams one analyzed record's aligned nucleotide sequence,
// per-gene peptides and insertions out, and buffers its summary for the
// final JSON/CSV tables.
func (o *outputs) writeResult(r analyze.Result) error {
	o.count++

	nucStr := make([]byte, len(r.AlignedQuery))
	for i, n := range r.AlignedQuery {
		nucStr[i] = alphabet.CharFromNucleotide(n)
	}
	if err := o.alignedWriter.Write(fastaio.Record{Name: r.SeqName, Seq: nucStr}); err != nil {
		return err
	}

	for _, pep := range r.QueryPeptides {
		w, err := o.geneWriter(pep.GeneName)
		if err != nil {
			return err
		}
		aaStr := make([]byte, len(pep.Seq))
		for i, a := range pep.Seq {
			aaStr[i] = alphabet.CharFromAminoacid(a)
		}
		if err := w.Write(fastaio.Record{Name: r.SeqName, Seq: aaStr}); err != nil {
			return err
		}
	}

	for _, ins := range r.Insertions {
		insStr := make([]byte, len(ins.Seq))
		for i, n := range ins.Seq {
			insStr[i] = alphabet.CharFromNucleotide(n)
		}
		if err := o.insertionsWriter.Write([]string{r.SeqName, strconv.Itoa(ins.Pos + 1), string(insStr)}); err != nil {
			return err
		}
	}

	o.summaries = append(o.summaries, summarize(r))
	return nil
}

func (o *outputs) writeErrors(entries []errorEntry) error {
	f, err := os.Create(filepath.Join(o.dir, "errors.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"seqName", "error"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.seqName, e.err.Error()}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (o *outputs) writeAuspice(doc *treeio.Document, t *tree.Tree, refSeq []alphabet.Nucleotide) error {
	out := treeio.FromTree(t, refSeq, doc.Meta, doc.Version)
	f, err := os.Create(filepath.Join(o.dir, o.base+".auspice.json"))
	if err != nil {
		return err
	}
	defer f.Close()
	return treeio.Write(f, out)
}

func (o *outputs) writeJSON() error {
	f, err := os.Create(filepath.Join(o.dir, o.base+".json"))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Results []summary `json:"results"`
	}{Results: o.summaries})
}

var tableHeader = []string{
	"seqName", "clade", "qc.overallStatus", "qc.overallScore", "alignmentScore",
	"totalSubstitutions", "totalDeletions", "totalInsertions", "totalFrameShifts",
	"totalMissing", "totalAminoacidSubstitutions", "totalAminoacidDeletions", "totalPrivateMutations",
}

func tableRow(s summary) []string {
	return []string{
		s.SeqName, s.Clade, s.QcOverallStatus, strconv.FormatFloat(s.QcOverallScore, 'f', -1, 64),
		strconv.Itoa(s.AlignmentScore), strconv.Itoa(s.TotalSubstitutions), strconv.Itoa(s.TotalDeletions),
		strconv.Itoa(s.TotalInsertions), strconv.Itoa(s.TotalFrameShifts), strconv.Itoa(s.TotalMissing),
		strconv.Itoa(s.TotalAminoacidSubs), strconv.Itoa(s.TotalAminoacidDels), strconv.Itoa(s.TotalPrivateMuts),
	}
}

// writeTable writes the summary table to name using the given field
// separator: ';' for the semicolon-delimited .csv nextclade ships, '\t' for
// the plain .tsv alternative.
func (o *outputs) writeTable(name string, comma rune) error {
	f, err := os.Create(filepath.Join(o.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.Write(tableHeader); err != nil {
		return err
	}
	for _, s := range o.summaries {
		if err := w.Write(tableRow(s)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// finalize sorts the buffered summaries by sequence name for determinism,
// writes the JSON and CSV tables, and flushes the streaming writers.
func (o *outputs) finalize() error {
	sort.Slice(o.summaries, func(i, j int) bool { return o.summaries[i].SeqName < o.summaries[j].SeqName })
	if err := o.writeJSON(); err != nil {
		return err
	}
	if err := o.writeTable(o.base+".csv", ';'); err != nil {
		return err
	}
	if err := o.writeTable(o.base+".tsv", '\t'); err != nil {
		return err
	}
	o.insertionsWriter.Flush()
	return o.insertionsWriter.Error()
}

func (o *outputs) Close() {
	o.alignedFile.Close()
	o.insertionsFile.Close()
	for _, f := range o.geneFiles {
		f.Close()
	}
}
