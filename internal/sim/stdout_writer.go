// Writer implementation printing vitals rows to STDOUT
package sim

import (
	"encoding/json"
	"fmt"

	"vitalsim/internal/vitals"
)

// StdoutWriter prints vitals rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single vitals row.
func (w *StdoutWriter) Write(row vitals.Row) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple vitals rows.
func (w *StdoutWriter) WriteBatch(rows []vitals.Row) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}
