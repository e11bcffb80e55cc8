// ColorStdoutWriter prints human-friendly, colorized vitals to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"vitalsim/internal/config"
	"vitalsim/internal/vitals"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

func colorWhite() string { return "\x1b[37m" }

// severityColor maps a severity label to its ANSI color.
func severityColor(severity string) string {
	switch severity {
	case vitals.SeverityCritical.String():
		return colorRed
	case vitals.SeverityWarning.String():
		return colorYellow
	default:
		return colorGreen
	}
}

// ColorStdoutWriter prints vitals rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.MonitorConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.MonitorConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Ward Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Ward:\t%s\n", w.cfg.WardID)
	fmt.Fprintf(tw, "Tick Interval:\t%s\n", w.cfg.TickInterval())
	fmt.Fprintf(tw, "History Samples:\t%d\n", w.cfg.HistoryCount())
	tw.Flush()

	fmt.Fprintln(w.out, "\nPatients:")
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tName\tRegime\n")
	for _, p := range w.cfg.Patients {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, p.Regime)
	}
	tw.Flush()
	fmt.Fprintln(w.out)
}

// Write outputs a single vitals row in colorized format.
func (w *ColorStdoutWriter) Write(row vitals.Row) error {
	w.once.Do(w.printOverview)

	sevColor := severityColor(row.Severity)
	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%sward=%s%s ", colorBlue, row.WardID, colorReset)
	fmt.Fprintf(w.out, "%spatient=%s%s ", colorWhite(), row.PatientID, colorReset)
	fmt.Fprintf(w.out, "%shr=%.0f%s ", colorGreen, row.HeartRate, colorReset)
	fmt.Fprintf(w.out, "%ssys=%.0f%s ", colorYellow, row.Systolic, colorReset)
	fmt.Fprintf(w.out, "%sdia=%.0f%s ", colorYellow, row.Diastolic, colorReset)
	fmt.Fprintf(w.out, "%sspo2=%.1f%s ", colorCyan, row.SpO2, colorReset)
	fmt.Fprintf(w.out, "%stemp=%.1f%s ", colorMagenta, row.Temperature, colorReset)
	fmt.Fprintf(w.out, "%sseverity=%s%s", sevColor, row.Severity, colorReset)
	fmt.Fprintln(w.out)
	return nil
}

// WriteBatch outputs multiple vitals rows.
func (w *ColorStdoutWriter) WriteBatch(rows []vitals.Row) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}
