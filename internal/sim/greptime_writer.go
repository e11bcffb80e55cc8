package sim

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"vitalsim/internal/vitals"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes vitals rows to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
}

// NewGreptimeDBWriter connects to a GreptimeDB endpoint ("host" or
// "host:port") and returns a writer targeting the vitals table.
func NewGreptimeDBWriter(endpoint, database, tableName string) (*GreptimeDBWriter, error) {
	host := endpoint
	port := 4001
	if h, p, ok := strings.Cut(endpoint, ":"); ok {
		host = h
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid greptime endpoint %q: %w", endpoint, err)
		}
		port = parsed
	}

	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if tableName == "" {
		tableName = vitals.VitalsTableName
	}
	return &GreptimeDBWriter{client: client, table: tableName}, nil
}

// Write inserts a single vitals row.
func (w *GreptimeDBWriter) Write(row vitals.Row) error {
	return w.WriteBatch([]vitals.Row{row})
}

// WriteBatch inserts multiple vitals rows.
func (w *GreptimeDBWriter) WriteBatch(rows []vitals.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("ward_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("patient_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("session_id", types.STRING); err != nil {
		return err
	}
	for _, col := range []string{"heart_rate", "systolic", "diastolic", "spo2", "temperature"} {
		if err := tbl.AddFieldColumn(col, types.FLOAT64); err != nil {
			return err
		}
	}
	if err := tbl.AddFieldColumn("severity", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.WardID, r.PatientID, r.SessionID,
			r.HeartRate, r.Systolic, r.Diastolic, r.SpO2, r.Temperature,
			r.Severity, r.Timestamp,
		); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		return fmt.Errorf("greptime write failed: %w", err)
	}
	return nil
}
