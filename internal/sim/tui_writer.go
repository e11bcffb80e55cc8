package sim

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

	"vitalsim/internal/config"
	"vitalsim/internal/vitals"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// rowMsg carries a vitals row for the patient board and log.
type rowMsg struct{ vitals.Row }

const tuiMaxLogLines = 1000

// TUIWriter renders live vitals using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.MonitorConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cfg), tea.WithAltScreen())
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

// Write implements VitalWriter.
func (w *TUIWriter) Write(row vitals.Row) error {
	w.program.Send(rowMsg{row})
	return nil
}

// WriteBatch outputs multiple vitals rows.
func (w *TUIWriter) WriteBatch(rows []vitals.Row) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

var severityStyles = map[string]lipgloss.Style{
	vitals.SeverityStable.String():   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	vitals.SeverityWarning.String():  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	vitals.SeverityCritical.String(): lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

type tuiModel struct {
	cfg        *config.MonitorConfig
	board      table.Model
	vp         viewport.Model
	logs       []string
	latest     map[string]vitals.Row
	order      []string
	names      map[string]string
	wrap       bool
	autoscroll bool
	height     int
}

func newTUIModel(cfg *config.MonitorConfig) tuiModel {
	cols := []table.Column{
		{Title: "Patient", Width: 16},
		{Title: "HR", Width: 5},
		{Title: "Sys", Width: 5},
		{Title: "Dia", Width: 5},
		{Title: "SpO2", Width: 6},
		{Title: "Temp", Width: 6},
		{Title: "Severity", Width: 10},
	}
	names := make(map[string]string)
	for _, p := range cfg.Patients {
		names[p.ID] = p.Name
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(len(cfg.Patients)+1))
	return tuiModel{
		cfg:        cfg,
		board:      t,
		vp:         viewport.New(0, 0),
		latest:     make(map[string]vitals.Row),
		names:      names,
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.board.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown":
				m.vp.LineDown(10)
			case "pgup":
				m.vp.LineUp(10)
			}
		}
		return m, nil
	case rowMsg:
		if _, ok := m.latest[msg.PatientID]; !ok {
			m.order = append(m.order, msg.PatientID)
		}
		m.latest[msg.PatientID] = msg.Row
		m.refreshBoard()
		m.logs = append(m.logs, m.formatLog(msg.Row))
		if len(m.logs) > tuiMaxLogLines {
			m.logs = m.logs[len(m.logs)-tuiMaxLogLines:]
		}
		m.refreshViewport()
	}
	return m, nil
}

func (m *tuiModel) refreshBoard() {
	rows := make([]table.Row, 0, len(m.order))
	for _, id := range m.order {
		r := m.latest[id]
		label := id
		if name := m.names[id]; name != "" {
			label = fmt.Sprintf("%s (%s)", id, name)
		}
		sev := severityStyles[r.Severity].Render(r.Severity)
		rows = append(rows, table.Row{
			label,
			fmt.Sprintf("%.0f", r.HeartRate),
			fmt.Sprintf("%.0f", r.Systolic),
			fmt.Sprintf("%.0f", r.Diastolic),
			fmt.Sprintf("%.1f", r.SpO2),
			fmt.Sprintf("%.1f", r.Temperature),
			sev,
		})
	}
	m.board.SetRows(rows)
}

func (m tuiModel) formatLog(r vitals.Row) string {
	sev := severityStyles[r.Severity].Render(r.Severity)
	return fmt.Sprintf("[%s] patient=%s hr=%.0f sys=%.0f dia=%.0f spo2=%.1f temp=%.1f severity=%s",
		r.Timestamp.Format(time.RFC3339), r.PatientID,
		r.HeartRate, r.Systolic, r.Diastolic, r.SpO2, r.Temperature, sev)
}

func (m *tuiModel) updateViewportHeight() {
	h := m.height - m.board.Height() - 4
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		fmt.Sprintf("Ward %s", m.cfg.WardID),
		m.board.View(),
		divider,
		m.vp.View(),
		divider,
		"q quit | s toggle auto-scroll | w toggle wrap",
	}
	return strings.Join(sections, "\n")
}
