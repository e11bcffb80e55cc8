package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vitalsim/internal/admin"
	"vitalsim/internal/config"
	"vitalsim/internal/logging"
	"vitalsim/internal/sim"
)

var (
	monConfigPath string
	monSchemaPath string
	monTick       time.Duration
	monPrintOnly  bool
	monColor      bool
	monTUI        bool
	monLogFile    string
	monAdminAddr  string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the real-time ward vitals simulator",
	Long:  "monitor starts the vitals simulation for the configured patient roster and serves the dashboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(monConfigPath, monSchemaPath)
		if err != nil {
			return err
		}

		log := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		writer, cleanup, err := newWriters(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		wardID := os.Getenv("WARD_ID")
		if wardID == "" {
			wardID = cfg.WardID
		}
		if wardID == "" {
			wardID = "ward-01"
		}

		tickInterval := monTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		monitor := sim.NewMonitor(wardID, cfg, writer, tickInterval)

		srv := admin.NewServer(monitor)
		go func() {
			log.Info("dashboard listening", "addr", monAdminAddr)
			if err := srv.Start(ctx, monAdminAddr); err != nil && err != http.ErrServerClosed {
				log.Error("dashboard server failed", "err", err)
				cancel()
			}
		}()

		monitor.Start(ctx, cfg.PatientIDs())

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigs:
		case <-ctx.Done():
		}

		monitor.Stop()
		cancel()
		log.Info("ward simulation stopped")
		return nil
	},
}

func init() {
	monitorCmd.Flags().StringVar(&monConfigPath, "config", "config/monitor.yaml", "Path to ward configuration YAML")
	monitorCmd.Flags().StringVar(&monSchemaPath, "schema", "schemas/monitor.cue", "Path to CUE schema file")
	monitorCmd.Flags().DurationVar(&monTick, "tick", 0, "Vitals tick interval (e.g. 500ms, 2.5s); 0 uses the config value")
	monitorCmd.Flags().BoolVar(&monPrintOnly, "print-only", false, "Print vitals to STDOUT instead of writing to DB")
	monitorCmd.Flags().BoolVar(&monColor, "color", false, "Colorized human-readable STDOUT output")
	monitorCmd.Flags().BoolVar(&monTUI, "tui", false, "Render a live terminal dashboard")
	monitorCmd.Flags().StringVar(&monLogFile, "log-file", "", "Path to export vitals rows (JSONL)")
	monitorCmd.Flags().StringVar(&monAdminAddr, "admin-addr", ":8080", "Dashboard listen address")
}
