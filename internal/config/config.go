// Package config holds everything a run needs: the pairs to convert and the
// converter options. Values come from flags, XLS2CSV_* environment
// variables and an optional plain-text config file, in that order of
// precedence.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/nutriplate/xls2csv/internal/converter"
	"github.com/nutriplate/xls2csv/internal/types"

	"github.com/peterbourgon/ff/v3"
)

const EnvVarPrefix = "XLS2CSV"

type Config struct {
	Pairs   PairList
	Options converter.Options
	TUI     bool
	Verbose bool
	Version bool
	File    string
}

// DefaultPairs are the nutrition data sheets converted when no -pair is given.
func DefaultPairs() []types.Pair {
	return []types.Pair{
		{Input: "src/data/전국통합식품영양성분정보표준데이터-20250908.xls", Output: "public/nutrition-data-1.csv"},
		{Input: "src/data/전국통합식품영양성분정보_가공식품_표준데이터-20250908.xls", Output: "public/nutrition-data-2.csv"},
		{Input: "src/data/전국통합식품영양성분정보_음식_표준데이터-20250908.xls", Output: "public/nutrition-data-3.csv"},
	}
}

func New() *Config {
	return &Config{
		Pairs:   PairList{pairs: DefaultPairs()},
		Options: converter.DefaultOptions(),
	}
}

// NewFlagSet binds the flags of cfg.
func NewFlagSet(name string, cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Var(&cfg.Pairs, "pair", "input=output pair to convert (repeatable, replaces the defaults)")
	fs.StringVar(&cfg.Options.Charset, "charset", cfg.Options.Charset, "charset of legacy workbook strings and CSV input")
	fs.StringVar(&cfg.Options.OutputCharset, "output-charset", cfg.Options.OutputCharset, "output charset (utf-8 output gets a byte-order mark)")
	fs.IntVar(&cfg.Options.HeaderRow, "header-row", cfg.Options.HeaderRow, "0-based row holding the column names, -1 to detect")
	fs.IntVar(&cfg.Options.Sheet, "sheet", cfg.Options.Sheet, "0-based sheet index")
	fs.BoolVar(&cfg.TUI, "tui", false, "show an interactive progress view")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging")
	fs.BoolVar(&cfg.Version, "version", false, "print version and exit")
	fs.StringVar(&cfg.File, "config", "", "config file (one \"flag value\" per line)")
	return fs
}

// FFOptions are the ff options shared by Parse and the command line.
func FFOptions() []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(EnvVarPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	}
}

func Parse(args []string) (*Config, error) {
	cfg := New()
	fs := NewFlagSet("xls2csv", cfg)
	if err := ff.Parse(fs, args, FFOptions()...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects option values the converter has no meaning for.
func (c *Config) Validate() error {
	if c.Options.HeaderRow < converter.AutoHeaderRow {
		return fmt.Errorf("header-row %d: want a row index or %d to detect", c.Options.HeaderRow, converter.AutoHeaderRow)
	}
	if c.Options.Sheet < 0 {
		return fmt.Errorf("sheet %d: want a 0-based index", c.Options.Sheet)
	}
	return nil
}

// PairList is a flag.Value of input=output pairs. The first Set drops the
// defaults.
type PairList struct {
	pairs []types.Pair
	set   bool
}

func (l *PairList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(l.pairs))
	for i, p := range l.pairs {
		parts[i] = p.Input + "=" + p.Output
	}
	return strings.Join(parts, ",")
}

func (l *PairList) Set(value string) error {
	in, out, ok := strings.Cut(value, "=")
	in, out = strings.TrimSpace(in), strings.TrimSpace(out)
	if !ok || in == "" || out == "" {
		return fmt.Errorf("%q: want input=output", value)
	}
	if !l.set {
		l.pairs, l.set = nil, true
	}
	l.pairs = append(l.pairs, types.Pair{Input: in, Output: out})
	return nil
}

func (l *PairList) Pairs() []types.Pair { return l.pairs }
