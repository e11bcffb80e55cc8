package main

import (
	"os"

	"golang.org/x/term"

	"vitalsim/internal/config"
	"vitalsim/internal/sim"
)

// newWriters sets up the vitals writer stack based on flags and env
// vars. It returns the writer and a cleanup function to close any
// resources.
func newWriters(cfg *config.MonitorConfig) (sim.VitalWriter, func(), error) {
	writer, closer, err := primaryWriter(cfg)
	if err != nil {
		return nil, nil, err
	}
	if monLogFile == "" {
		return writer, closer, nil
	}

	fw, err := sim.NewFileWriter(monLogFile)
	if err != nil {
		closer()
		return nil, nil, err
	}
	mw := sim.NewMultiWriter(writer, fw)
	cleanup := func() {
		fw.Close()
		closer()
	}
	return mw, cleanup, nil
}

// primaryWriter chooses between TUI, colorized, and plain/DB output.
func primaryWriter(cfg *config.MonitorConfig) (sim.VitalWriter, func(), error) {
	if monTUI && term.IsTerminal(int(os.Stdout.Fd())) {
		tw := sim.NewTUIWriter(cfg)
		return tw, func() { tw.Close() }, nil
	}
	if monColor {
		return sim.NewColorStdoutWriter(cfg), func() {}, nil
	}
	w, err := baseWriter(monPrintOnly)
	if err != nil {
		return nil, nil, err
	}
	return w, func() {}, nil
}

// baseWriter picks the underlying writer: GreptimeDB when an endpoint
// is configured, STDOUT JSON otherwise.
func baseWriter(printOnly bool) (sim.VitalWriter, error) {
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if printOnly || endpoint == "" {
		return &sim.StdoutWriter{}, nil
	}
	database := os.Getenv("GREPTIMEDB_DATABASE")
	if database == "" {
		database = "public"
	}
	return sim.NewGreptimeDBWriter(endpoint, database, "")
}
