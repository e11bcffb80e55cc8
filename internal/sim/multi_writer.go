package sim

import "vitalsim/internal/vitals"

// MultiWriter fans out vitals rows to multiple writers.
type MultiWriter struct {
	writers []VitalWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...VitalWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends a vitals row to all writers.
func (mw *MultiWriter) Write(row vitals.Row) error {
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(rows []vitals.Row) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}
