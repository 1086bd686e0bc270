// Command rlz factorizes a collection of similar text sequences against a
// shared reference string and reports the resulting compression ratio.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flier/rlz/internal/ingest"
	"github.com/flier/rlz/internal/normalize"
	"github.com/flier/rlz/internal/xflag"
	"github.com/flier/rlz/pkg/reference"
	"github.com/flier/rlz/pkg/rlz"
	"github.com/flier/rlz/pkg/rlzerr"
	"github.com/flier/rlz/pkg/xerrors"
)

type indexList []int

func (l *indexList) String() string {
	if l == nil {
		return ""
	}

	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}

func (l *indexList) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid -index value %q: %w", s, err)
	}

	*l = append(*l, v)

	return nil
}

func parseStrategy(s string) (reference.Strategy, error) {
	switch s {
	case "", "1":
		return reference.FixedIndices, nil
	case "2":
		return reference.ReferenceMerge, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want 1 or 2)", s)
	}
}

var (
	strategyFlag = xflag.Func("strategy", "reference strategy: 1=fixed-indices, 2=reference-merge", parseStrategy)
	dirFlag      = flag.Bool("dir", false, "treat path as a directory of per-assembly files")
	alphabetFlag = flag.String("alphabet", "", "extra alphabet bytes to seed the reference with")
	configFlag   = flag.String("config", "", "YAML file of default flag values")
	minLenFlag   = flag.Int("min-length", 0, "discard input sequences shorter than this many bytes")
	patternFlag  = flag.String("pattern", "", "in -dir mode, drop lines starting with this prefix before joining a file into a sequence (e.g. \">\" for FASTA headers)")

	indices indexList
)

func init() {
	flag.Var(&indices, "index", "fixed reference index (repeatable)")
}

// fileConfig mirrors the subset of flags a -config YAML file can default,
// so batch runs over many corpora don't need to repeat them on every
// invocation.
type fileConfig struct {
	Strategy int    `yaml:"strategy"`
	Index    []int  `yaml:"index"`
	Alphabet string `yaml:"alphabet"`
	Dir      bool   `yaml:"dir"`
	Pattern  string `yaml:"pattern"`
}

func loadConfig(path string) (*fileConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: rlz [flags] <path>")

		return 2
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rlz: reading -config: %v\n", err)

		return 1
	}

	strategy := *strategyFlag
	idx := []int(indices)
	alphabet := *alphabetFlag
	dir := *dirFlag
	pattern := *patternFlag

	if cfg != nil {
		if !xflag.Parsed("strategy") {
			if s, err := parseStrategy(strconv.Itoa(cfg.Strategy)); err == nil && cfg.Strategy != 0 {
				strategy = s
			}
		}

		if !xflag.Parsed("index") && len(cfg.Index) > 0 {
			idx = cfg.Index
		}

		if !xflag.Parsed("alphabet") && cfg.Alphabet != "" {
			alphabet = cfg.Alphabet
		}

		if !xflag.Parsed("dir") && cfg.Dir {
			dir = cfg.Dir
		}

		if !xflag.Parsed("pattern") && cfg.Pattern != "" {
			pattern = cfg.Pattern
		}
	}

	var (
		inputs []reference.Named
		ierr   error
	)

	if dir {
		inputs, ierr = ingest.Dir(path, pattern)
	} else {
		inputs, ierr = ingest.File(path)
	}

	if ierr != nil {
		fmt.Fprintf(os.Stderr, "rlz: reading %s: %v\n", path, ierr)

		return 1
	}

	inputs = normalize.Filter(inputs, normalize.Config{MinLength: *minLenFlag})

	refResult := reference.Build(inputs, reference.Config{
		Strategy:      strategy,
		Indices:       idx,
		ExtraAlphabet: []byte(alphabet),
	})
	if refResult.IsErr() {
		return reportError(refResult.Err)
	}

	archive, err := rlz.NewArchive[uint32](refResult.Unwrap(), inputs)
	if err != nil {
		return reportError(err)
	}

	usage := archive.Memory()
	raw := archive.RawSize()

	fmt.Printf("reference: %d bytes\n", usage.ReferenceSize)
	fmt.Printf("factor table: %d bytes\n", usage.FactorTableSize)
	fmt.Printf("compression rate: %.4f (without random access: %.4f)\n",
		usage.CompressionRate(raw), usage.CompressionRateWithoutIndex(raw))

	return 0
}

// reportError prints err and chooses an exit code: 2 when xerrors.AsA finds
// an *rlzerr.Error of kind EmptyInput or InvalidStrategy in the chain, 1
// otherwise.
func reportError(err error) int {
	kindErr, ok := xerrors.AsA[*rlzerr.Error](err)
	if !ok {
		fmt.Fprintf(os.Stderr, "rlz: %v\n", err)

		return 1
	}

	fmt.Fprintf(os.Stderr, "rlz: %v\n", kindErr)

	switch kindErr.Kind {
	case rlzerr.EmptyInput, rlzerr.InvalidStrategy:
		return 2
	default:
		return 1
	}
}
