package ui

import (
	"fmt"
	"strings"

	"github.com/nutriplate/xls2csv/internal/batch"
	"github.com/nutriplate/xls2csv/internal/converter"
	"github.com/nutriplate/xls2csv/internal/types"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the interactive view of a batch run. Pairs are converted one at
// a time: the next conversion starts only after the previous result arrives.
type Model struct {
	pairs    []types.Pair
	opts     converter.Options
	current  int
	lines    []string
	summary  batch.Summary
	progress progress.Model
	quitting bool
}

type pairDoneMsg batch.Outcome

// progressMsg is the written fraction of the pair being converted. It
// carries the channels of that conversion so the next read can be queued.
type progressMsg struct {
	fraction     float64
	progressChan <-chan float64
	resultChan   <-chan batch.Outcome
}

func NewModel(pairs []types.Pair, opts converter.Options) Model {
	return Model{
		pairs:    pairs,
		opts:     opts,
		summary:  batch.Summary{Total: len(pairs)},
		progress: progress.New(progress.WithGradient("#FF8C42", "#FF9F5A")),
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.pairs) == 0 {
		return tea.Quit
	}
	return tea.Batch(m.progress.Init(), m.convertNext())
}

// convertNext starts the current pair in its own goroutine and relays its
// progress until the outcome arrives.
func (m Model) convertNext() tea.Cmd {
	p, opts := m.pairs[m.current], m.opts
	return func() tea.Msg {
		progressChan := make(chan float64, 100)
		resultChan := make(chan batch.Outcome, 1)

		go func() {
			resultChan <- batch.ConvertPair(p, opts, progressChan)
			close(progressChan)
			close(resultChan)
		}()

		return waitForProgress(progressChan, resultChan)()
	}
}

func waitForProgress(progressChan <-chan float64, resultChan <-chan batch.Outcome) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		f, ok := <-progressChan
		if !ok {
			// Progress channel closed, the outcome is ready
			o, ok := <-resultChan
			if ok {
				return pairDoneMsg(o)
			}
			return nil
		}

		return progressMsg{fraction: f, progressChan: progressChan, resultChan: resultChan}
	}
}

// Summary is valid once the program has returned.
func (m Model) Summary() batch.Summary { return m.summary }

// Done reports whether every pair has been handled.
func (m Model) Done() bool { return m.current >= len(m.pairs) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = max(10, min(msg.Width-10, 60))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case pairDoneMsg:
		o := batch.Outcome(msg)
		m.summary.Outcomes = append(m.summary.Outcomes, o)
		switch {
		case o.OK():
			m.summary.Converted++
			m.lines = append(m.lines, defaultStyles.Success.Render(DoneLine(o.Result)))
		case o.Missing:
			m.lines = append(m.lines, defaultStyles.Error.Render(MissingLine(o.Pair)))
		default:
			m.lines = append(m.lines, defaultStyles.Error.Render(FailedLine(o.Pair, o.Err)))
		}
		m.current++
		if m.Done() {
			return m, tea.Quit
		}
		cmd := m.progress.SetPercent(m.percent(0))
		return m, tea.Batch(cmd, m.convertNext())

	case progressMsg:
		cmd := m.progress.SetPercent(m.percent(msg.fraction))
		return m, tea.Batch(cmd, waitForProgress(msg.progressChan, msg.resultChan))

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// percent is the share of the batch done when the current pair has
// written fraction of its rows.
func (m Model) percent(fraction float64) float64 {
	if len(m.pairs) == 0 {
		return 1
	}
	return min(1, (float64(m.current)+fraction)/float64(len(m.pairs)))
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(defaultStyles.Title.Render(Title))
	s.WriteString("\n")
	s.WriteString(defaultStyles.Subtitle.Render(CountLine(len(m.pairs))))
	s.WriteString("\n\n")
	for _, line := range m.lines {
		s.WriteString(line)
		s.WriteString("\n")
	}
	if !m.Done() {
		p := m.pairs[m.current]
		s.WriteString(fmt.Sprintf("Converting: %s -> %s\n", p.Input, defaultStyles.Path.Render(p.Output)))
	}
	s.WriteString("\n")
	if m.Done() {
		s.WriteString(m.progress.ViewAs(1))
	} else {
		s.WriteString(m.progress.View())
	}
	s.WriteString("\n")

	if m.Done() {
		s.WriteString("\n")
		s.WriteString(SummaryLine(m.summary))
	} else if !m.quitting {
		s.WriteString(defaultStyles.Help.Render("Press q to quit"))
	}

	return defaultStyles.Box.Render(s.String()) + "\n"
}
