// Package batch converts a list of spreadsheet/CSV pairs one after another.
package batch

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/nutriplate/xls2csv/internal/converter"
	"github.com/nutriplate/xls2csv/internal/types"
)

// Reporter receives the progress of a run. Calls arrive in pair order.
type Reporter interface {
	Begin(total int)
	Start(p types.Pair)
	Missing(p types.Pair)
	Done(res *types.ConversionResult)
	Failed(p types.Pair, err error)
	Finish(s Summary)
}

// Outcome is what happened to one pair.
type Outcome struct {
	Pair    types.Pair
	Result  *types.ConversionResult
	Err     error
	Missing bool
}

func (o Outcome) OK() bool { return o.Result != nil }

type Summary struct {
	Converted int
	Total     int
	Outcomes  []Outcome
}

// Failed reports whether any pair was missing or failed to convert.
func (s Summary) Failed() bool { return s.Converted < s.Total }

// ConvertPair converts one pair. A missing input is reported as such and
// Convert is not called for it.
func ConvertPair(p types.Pair, opts converter.Options, progressChan chan<- float64) Outcome {
	if o, ok := checkInput(p); !ok {
		return o
	}
	return convert(p, opts, progressChan)
}

func checkInput(p types.Pair) (Outcome, bool) {
	if _, err := os.Stat(p.Input); errors.Is(err, fs.ErrNotExist) {
		return Outcome{Pair: p, Missing: true,
			Err: &converter.ConversionError{Kind: converter.KindMissingInput, Path: p.Input, Err: err}}, false
	}
	return Outcome{Pair: p}, true
}

func convert(p types.Pair, opts converter.Options, progressChan chan<- float64) Outcome {
	res, err := converter.Convert(p.Input, p.Output, opts, progressChan)
	if err != nil {
		return Outcome{Pair: p, Err: err, Missing: converter.KindOf(err) == converter.KindMissingInput}
	}
	return Outcome{Pair: p, Result: res}
}

// Run converts every pair in order and returns how many succeeded.
// No error stops the run.
func Run(pairs []types.Pair, opts converter.Options, r Reporter) Summary {
	s := Summary{Total: len(pairs), Outcomes: make([]Outcome, 0, len(pairs))}
	r.Begin(len(pairs))
	for _, p := range pairs {
		o := Step(p, opts, r)
		if o.OK() {
			s.Converted++
		}
		s.Outcomes = append(s.Outcomes, o)
	}
	r.Finish(s)
	return s
}

// Step converts one pair and reports it.
func Step(p types.Pair, opts converter.Options, r Reporter) Outcome {
	o, ok := checkInput(p)
	if !ok {
		r.Missing(p)
		return o
	}
	r.Start(p)
	o = convert(p, opts, nil)
	switch {
	case o.OK():
		r.Done(o.Result)
	case o.Missing:
		r.Missing(p)
	default:
		slog.Debug("conversion failed", "input", p.Input, "kind", converter.KindOf(o.Err), "error", o.Err)
		r.Failed(p, o.Err)
	}
	return o
}
