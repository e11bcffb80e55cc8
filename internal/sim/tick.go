package sim

import (
	"context"
	"time"

	"vitalsim/internal/logging"
	"vitalsim/internal/vitals"
)

// run drives ticks until the context is done.
func (m *Monitor) run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting ward monitor", "ward_id", m.wardID, "tick_interval", m.tickInterval)
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.tick(ctx)
		case <-ctx.Done():
			log.Info("stopping ward monitor", "ward_id", m.wardID)
			return
		}
	}
}

// tick advances every tracked patient one step and writes the results.
// Each patient's five-vital update is published as one new bundle, so
// readers never observe a half-updated patient.
func (m *Monitor) tick(ctx context.Context) {
	log := logging.FromContext(ctx)
	var batch []vitals.Row

	m.mu.Lock()
	m.ticks++
	now := m.now().UTC()
	for _, id := range m.roster {
		bundle, ok := m.bundles[id]
		if !ok {
			// Roster and vitals map can briefly disagree (reset while
			// running); skip and keep the loop alive.
			log.Warn("no vitals bundle for patient, skipping", "patient_id", id)
			continue
		}
		regime := vitals.Aggregate(bundle).Regime()
		next := vitals.NewBundle()
		for _, vt := range vitals.Types {
			series := bundle[vt]
			var value float64
			if last, has := vitals.Latest(series); has {
				value = m.gen.Advance(last, vt, regime)
			} else {
				value = m.gen.Baseline(vt, regime)
			}
			next[vt] = vitals.Append(series, vitals.Sample{Timestamp: now, Value: value})
		}
		m.bundles[id] = next
		batch = append(batch, m.rowLocked(id, next, vitals.Aggregate(next), now))
	}
	m.mu.Unlock()

	if m.writer == nil || len(batch) == 0 {
		return
	}
	// Batch support if writer implements WriteBatch
	if bw, ok := m.writer.(batchWriter); ok {
		if err := bw.WriteBatch(batch); err != nil {
			log.Error("batch write failed", "err", err)
		}
		return
	}
	for _, row := range batch {
		if err := m.writer.Write(row); err != nil {
			log.Error("write failed", "patient_id", row.PatientID, "err", err)
		}
	}
}
