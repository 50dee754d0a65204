package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nextstrain/nextclade-sub000/internal/align"
	"github.com/nextstrain/nextclade-sub000/internal/alphabet"
	"github.com/nextstrain/nextclade-sub000/internal/analyze"
	"github.com/nextstrain/nextclade-sub000/internal/fastaio"
	"github.com/nextstrain/nextclade-sub000/internal/gene"
	"github.com/nextstrain/nextclade-sub000/internal/gffio"
	"github.com/nextstrain/nextclade-sub000/internal/pipeline"
	"github.com/nextstrain/nextclade-sub000/internal/primers"
	"github.com/nextstrain/nextclade-sub000/internal/qc"
	"github.com/nextstrain/nextclade-sub000/internal/tree"
	"github.com/nextstrain/nextclade-sub000/internal/treeio"
)

func newRunCmd() *cobra.Command {
	var (
		inputFasta    string
		inputRefFasta string
		inputGeneMap  string
		inputTree     string
		inputPrimers  string
		genesFlag     string
		outputDir     string
		outputBase    string
		jobs          int
		inOrder       bool
		pastStop      bool

		qcMissingThreshold    float64
		qcMixedThreshold      float64
		qcPrivateTypical      float64
		qcPrivateCutoff       float64
		qcClusterWindow       int
		qcClusterCutoff       int
		qcClusterWeight       float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze a FASTA file of query sequences against a reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadViper(cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logger := newLogger()
			defer logger.Sync() //nolint:errcheck

			cfg := runConfig{
				inputFasta:    v.GetString("input-fasta"),
				inputRefFasta: v.GetString("input-ref"),
				inputGeneMap:  v.GetString("input-gene-map"),
				inputTree:     v.GetString("input-tree"),
				inputPrimers:  v.GetString("input-pcr-primers"),
				genes:         v.GetString("genes"),
				outputDir:     v.GetString("output-dir"),
				outputBase:    v.GetString("output-basename"),
				jobs:          v.GetInt("jobs"),
				inOrder:       v.GetBool("in-order"),
				pastStop:      v.GetBool("translate-past-stop"),
				qc: qc.Config{
					MissingData:      &qc.MissingDataConfig{Enabled: true, MissingDataThreshold: v.GetFloat64("qc-missing-threshold")},
					MixedSites:       &qc.MixedSitesConfig{Enabled: true, MixedSitesThreshold: v.GetFloat64("qc-mixed-threshold")},
					PrivateMutations: &qc.PrivateMutationsConfig{Enabled: true, Typical: v.GetFloat64("qc-private-typical"), Cutoff: v.GetFloat64("qc-private-cutoff")},
					SnpClusters: &qc.SnpClustersConfig{
						Enabled:       true,
						WindowSize:    v.GetInt("qc-cluster-window"),
						ClusterCutOff: v.GetInt("qc-cluster-cutoff"),
						ScoreWeight:   v.GetFloat64("qc-cluster-weight"),
					},
					FrameShifts: &qc.FrameShiftsConfig{Enabled: true},
					StopCodons:  &qc.StopCodonsConfig{Enabled: true},
				},
			}

			return runAnalysis(cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&inputFasta, "input-fasta", "", "query sequences to analyze (required)")
	flags.StringVar(&inputRefFasta, "input-ref", "", "single-record FASTA carrying the reference genome (required)")
	flags.StringVar(&inputGeneMap, "input-gene-map", "", "GFF3 file naming the reference's coding regions")
	flags.StringVar(&inputTree, "input-tree", "", "Auspice v2 reference tree JSON (required)")
	flags.StringVar(&inputPrimers, "input-pcr-primers", "", "PCR primer CSV")
	flags.StringVar(&genesFlag, "genes", "", "comma-separated gene names to analyze (default: every gene in --input-gene-map)")
	flags.StringVar(&outputDir, "output-dir", ".", "directory results are written into")
	flags.StringVar(&outputBase, "output-basename", "nextclade", "filename prefix for the result tables and tree")
	flags.IntVar(&jobs, "jobs", runtime.NumCPU(), "number of concurrent analysis workers")
	flags.BoolVar(&inOrder, "in-order", true, "emit results in input order rather than completion order")
	flags.BoolVar(&pastStop, "translate-past-stop", false, "keep translating a gene past its first stop codon")
	flags.Float64Var(&qcMissingThreshold, "qc-missing-threshold", 300, "N count above which the missing-data rule scores 100")
	flags.Float64Var(&qcMixedThreshold, "qc-mixed-threshold", 10, "ambiguous-site count above which the mixed-sites rule scores 100")
	flags.Float64Var(&qcPrivateTypical, "qc-private-typical", 5, "private mutation count considered typical")
	flags.Float64Var(&qcPrivateCutoff, "qc-private-cutoff", 30, "private mutations beyond --qc-private-typical at which the rule scores 100")
	flags.IntVar(&qcClusterWindow, "qc-cluster-window", 100, "window size, in nucleotides, the SNP-cluster rule slides over private mutations")
	flags.IntVar(&qcClusterCutoff, "qc-cluster-cutoff", 6, "private mutations within one window above which a cluster is flagged")
	flags.Float64Var(&qcClusterWeight, "qc-cluster-weight", 10, "score contributed per flagged cluster")
	_ = cmd.MarkFlagRequired("input-fasta")
	_ = cmd.MarkFlagRequired("input-ref")
	_ = cmd.MarkFlagRequired("input-tree")

	return cmd
}

type runConfig struct {
	inputFasta, inputRefFasta, inputGeneMap, inputTree, inputPrimers string
	genes                                                            string
	outputDir, outputBase                                            string
	jobs                                                              int
	inOrder, pastStop                                                 bool
	qc                                                                qc.Config
}

func defaultAlignParams() align.Parameters {
	return align.Parameters{
		ScoreMatch:               3,
		PenaltyMismatch:          -1,
		PenaltyGapOpen:           -6,
		PenaltyGapOpenInFrame:    -7,
		PenaltyGapOpenOutOfFrame: -8,
		PenaltyGapExtend:         0,
		MaxIndel:                 400,
		MinimalLength:            100,
	}
}

func defaultSeedParams() align.SeedParameters {
	return align.SeedParameters{SeedLength: 21, MinSeeds: 10, SeedSpacing: 100, MismatchesAllowed: 3}
}

func defaultAaAlignParams() align.Parameters {
	return align.Parameters{
		ScoreMatch:       3,
		PenaltyMismatch:  -1,
		PenaltyGapOpen:   -6,
		PenaltyGapExtend: 0,
		MaxIndel:         400,
		MinimalLength:    1,
	}
}

func defaultAaSeedParams() align.SeedParameters {
	return align.SeedParameters{SeedLength: 9, MinSeeds: 3, SeedSpacing: 50, MismatchesAllowed: 2}
}

func runAnalysis(cfg runConfig, logger *zap.SugaredLogger) error {
	refRecord, err := readSingleFasta(cfg.inputRefFasta)
	if err != nil {
		return fmt.Errorf("reading reference: %w", err)
	}
	refSeq, err := decodeNucleotides(refRecord.Seq)
	if err != nil {
		return fmt.Errorf("decoding reference: %w", err)
	}

	geneMap := gene.Map{}
	if cfg.inputGeneMap != "" {
		f, err := os.Open(cfg.inputGeneMap)
		if err != nil {
			return fmt.Errorf("opening gene map: %w", err)
		}
		defer f.Close()
		geneMap, err = gffio.Parse(f, len(refSeq))
		if err != nil {
			return fmt.Errorf("parsing gene map: %w", err)
		}
	}

	selectedGenes := selectGenes(geneMap, cfg.genes)

	doc, refTree, err := loadTree(cfg.inputTree, refSeq)
	if err != nil {
		return fmt.Errorf("loading tree: %w", err)
	}

	var pcrPrimers []primers.PcrPrimer
	if cfg.inputPrimers != "" {
		f, err := os.Open(cfg.inputPrimers)
		if err != nil {
			return fmt.Errorf("opening primers: %w", err)
		}
		defer f.Close()
		pcrPrimers, _, err = primers.Parse(f, refSeq)
		if err != nil {
			return fmt.Errorf("parsing primers: %w", err)
		}
	}

	ctx, err := analyze.NewContext(
		refSeq, geneMap, selectedGenes,
		defaultAlignParams(), defaultSeedParams(),
		defaultAaAlignParams(), defaultAaSeedParams(),
		refTree, cfg.qc, pcrPrimers, cfg.pastStop,
	)
	if err != nil {
		return fmt.Errorf("building analysis context: %w", err)
	}

	if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	reader, err := fastaio.Open(cfg.inputFasta)
	if err != nil {
		return fmt.Errorf("opening query fasta: %w", err)
	}

	parseErrs := newErrorCollector()
	next := reader.NextFunc(func(perr *fastaio.ParseError) {
		parseErrs.add(fmt.Sprintf("record %d", perr.Index), perr)
		logger.Warnw("skipping malformed record", "index", perr.Index, "error", perr)
	})

	records, produceErrc := pipeline.Produce(next)
	results := pipeline.Run(pipeline.Config{Jobs: cfg.jobs, InOrder: cfg.inOrder, Logger: logger}, records, ctx.NewAnalyzeFunc)

	out, err := newOutputs(cfg.outputDir, cfg.outputBase)
	if err != nil {
		return fmt.Errorf("opening outputs: %w", err)
	}
	defer out.Close()

	bar := pb.StartNew(0)
	defer bar.Finish()

	var attachments []tree.AttachResult
	for r := range results {
		bar.Increment()
		if r.Err != nil {
			parseErrs.add(r.Name, r.Err)
			logger.Warnw("analysis failed", "seqName", r.Name, "error", r.Err)
			continue
		}
		if err := out.writeResult(r.Value); err != nil {
			return fmt.Errorf("writing result %q: %w", r.Name, err)
		}
		attachments = append(attachments, tree.AttachResult{
			SeqName:              r.Value.SeqName,
			Clade:                r.Value.Clade,
			NearestNodeID:        r.Value.NearestNodeID,
			PrivateMutationCount: len(r.Value.PrivateMutations.Substitutions) + len(r.Value.PrivateMutations.Deletions),
		})
	}

	if err := <-produceErrc; err != nil {
		return fmt.Errorf("reading query fasta: %w", err)
	}

	if err := tree.AttachAll(refTree, attachments); err != nil {
		return fmt.Errorf("attaching results to tree: %w", err)
	}
	tree.Postprocess(refTree)

	if err := out.writeErrors(parseErrs.entries); err != nil {
		return fmt.Errorf("writing errors.csv: %w", err)
	}
	if err := out.writeAuspice(doc, refTree, refSeq); err != nil {
		return fmt.Errorf("writing auspice tree: %w", err)
	}
	if err := out.finalize(); err != nil {
		return fmt.Errorf("finalizing outputs: %w", err)
	}

	logger.Infow("analysis complete", "sequences", out.count, "errors", len(parseErrs.entries))
	return nil
}

// decodeNucleotides decodes a raw FASTA byte sequence into the reference
// alphabet, failing on the first letter no IUPAC code covers.
func decodeNucleotides(raw []byte) ([]alphabet.Nucleotide, error) {
	out := make([]alphabet.Nucleotide, len(raw))
	for i, c := range raw {
		n, err := alphabet.NucleotideFromChar(c)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func readSingleFasta(path string) (fastaio.Record, error) {
	reader, err := fastaio.Open(path)
	if err != nil {
		return fastaio.Record{}, err
	}
	return reader.Next()
}

func loadTree(path string, refSeq []alphabet.Nucleotide) (*treeio.Document, *tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	doc, err := treeio.Read(f)
	if err != nil {
		return nil, nil, err
	}
	t, err := treeio.ToTree(doc, refSeq)
	if err != nil {
		return nil, nil, err
	}
	tree.Preprocess(t.Root, refSeq)
	return doc, t, nil
}

// selectGenes returns every gene to analyze, honoring an explicit
// comma-separated --genes list or, absent one, every gene the map carries
// in a stable, deterministic order.
func selectGenes(geneMap gene.Map, genesFlag string) []string {
	if genesFlag != "" {
		var out []string
		for _, name := range strings.Split(genesFlag, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				out = append(out, name)
			}
		}
		return out
	}
	names := make([]string, 0, len(geneMap))
	for name := range geneMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

