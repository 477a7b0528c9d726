package monitor

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"graphlod/internal/lod"
	"graphlod/internal/perf"
	"graphlod/internal/report"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// sampleMsg carries one render sample.
type sampleMsg struct{ perf.SampleRow }

// warningMsg carries a warning log line.
type warningMsg struct{ perf.WarningRow }

// reportMsg carries the latest report.
type reportMsg struct{ report.Report }

// TUIWriter renders governor output using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(sessionID string) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(sessionID), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteSample implements SampleWriter.
func (w *TUIWriter) WriteSample(row perf.SampleRow) error {
	w.program.Send(sampleMsg{row})
	return nil
}

// WriteWarning implements WarningWriter.
func (w *TUIWriter) WriteWarning(row perf.WarningRow) error {
	w.program.Send(warningMsg{row})
	return nil
}

// WriteReport implements ReportWriter.
func (w *TUIWriter) WriteReport(rep report.Report) error {
	w.program.Send(reportMsg{rep})
	return nil
}

// Close stops the program without signalling the process.
func (w *TUIWriter) Close() {
	w.sendSignal.Store(false)
	if p, ok := w.program.(*tea.Program); ok {
		p.Quit()
		<-w.done
	}
}

const maxLogLines = 200

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type tuiModel struct {
	sessionID string
	width     int
	height    int

	latest perf.SampleRow
	rep    *report.Report
	tiers  table.Model
	logs   viewport.Model
	lines  []string
	ready  bool
}

func newTUIModel(sessionID string) tuiModel {
	cols := []table.Column{
		{Title: "Tier", Width: 10},
		{Title: "Nodes", Width: 7},
		{Title: "Edges", Width: 7},
		{Title: "Cluster", Width: 8},
	}
	var rows []table.Row
	for t := lod.TierFull; t <= lod.MaxTier; t++ {
		cfg := lod.Config(t)
		rows = append(rows, table.Row{
			t.String(),
			fmt.Sprintf("%.0f%%", cfg.NodeSamplingRatio*100),
			fmt.Sprintf("%.0f%%", cfg.EdgeSamplingRatio*100),
			fmt.Sprintf("%t", cfg.ClusteringEnabled),
		})
	}
	tbl := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return tuiModel{sessionID: sessionID, tiers: tbl}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logHeight := m.height - 14
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.logs = viewport.New(m.width-4, logHeight)
			m.ready = true
		} else {
			m.logs.Width = m.width - 4
			m.logs.Height = logHeight
		}
		m.refreshLogs()
	case sampleMsg:
		m.latest = msg.SampleRow
		m.appendLine(fmt.Sprintf("[%s] render=%.2fms fps=%.1f nodes=%d edges=%d lod=%d",
			msg.Timestamp.Format(time.TimeOnly), msg.RenderTimeMs, msg.FPS,
			msg.NodeCount, msg.EdgeCount, msg.LODLevel))
		m.tiers.SetCursor(msg.LODLevel)
	case warningMsg:
		m.appendLine(warnStyle.Render(fmt.Sprintf("[%s] WARNING %s: %s",
			msg.Timestamp.Format(time.TimeOnly), msg.Severity, msg.Message)))
	case reportMsg:
		rep := msg.Report
		m.rep = &rep
	}
	var cmd tea.Cmd
	m.logs, cmd = m.logs.Update(msg)
	return m, cmd
}

func (m *tuiModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.refreshLogs()
}

func (m *tuiModel) refreshLogs() {
	if !m.ready {
		return
	}
	width := m.logs.Width
	if width <= 0 {
		width = 80
	}
	m.logs.SetContent(wordwrap.String(strings.Join(m.lines, "\n"), width))
	m.logs.GotoBottom()
}

func statusStyle(s report.Status) lipgloss.Style {
	switch s {
	case report.StatusExcellent, report.StatusGood:
		return okStyle
	case report.StatusFair:
		return warnStyle
	default:
		return badStyle
	}
}

func (m tuiModel) View() string {
	if !m.ready {
		return "starting..."
	}

	header := titleStyle.Render("graphlod governor") +
		labelStyle.Render("  session="+m.sessionID)

	stats := fmt.Sprintf("%s %.1f  %s %.2fms  %s %s  %s %d/%d",
		labelStyle.Render("fps"), m.latest.FPS,
		labelStyle.Render("render"), m.latest.RenderTimeMs,
		labelStyle.Render("tier"), lod.Tier(m.latest.LODLevel).String(),
		labelStyle.Render("visible"), m.latest.NodeCount, m.latest.EdgeCount)

	var repView string
	if m.rep != nil {
		st := statusStyle(m.rep.Status)
		var b strings.Builder
		b.WriteString(labelStyle.Render("status ") + st.Render(string(m.rep.Status)))
		for _, rec := range m.rep.Recommendations {
			b.WriteString("\n  - " + rec)
		}
		repView = wordwrap.String(b.String(), m.width-6)
	}

	sections := []string{
		header,
		stats,
		m.tiers.View(),
	}
	if repView != "" {
		sections = append(sections, repView)
	}
	sections = append(sections, borderStyle.Render(m.logs.View()),
		labelStyle.Render("q: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
