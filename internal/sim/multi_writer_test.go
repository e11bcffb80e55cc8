package sim

import (
	"testing"
	"time"

	"vitalsim/internal/vitals"
)

func TestMultiWriterFanOut(t *testing.T) {
	a := &MockWriter{}
	b := &MockWriter{}
	mw := NewMultiWriter(a, b)

	row := vitals.Row{WardID: "ward-a", PatientID: "patient-001", Timestamp: time.Unix(0, 0).UTC()}
	if err := mw.Write(row); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(a.Rows) != 1 || len(b.Rows) != 1 {
		t.Fatalf("expected row in both writers, got %d and %d", len(a.Rows), len(b.Rows))
	}
}

func TestMultiWriterBatchUpgrade(t *testing.T) {
	plain := &MockWriter{}
	batch := &MockBatchWriter{}
	mw := NewMultiWriter(plain, batch)

	rows := []vitals.Row{
		{PatientID: "patient-001"},
		{PatientID: "patient-002"},
	}
	if err := mw.WriteBatch(rows); err != nil {
		t.Fatalf("write batch: %v", err)
	}
	if len(plain.Rows) != 2 {
		t.Fatalf("plain writer: expected 2 rows, got %d", len(plain.Rows))
	}
	if batch.Batches != 1 {
		t.Fatalf("batch writer: expected 1 batch call, got %d", batch.Batches)
	}
	if len(batch.Rows) != 2 {
		t.Fatalf("batch writer: expected 2 rows, got %d", len(batch.Rows))
	}
}
