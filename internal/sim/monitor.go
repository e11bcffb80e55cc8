// Monitor orchestrating patient vitals simulation and tick scheduling
package sim

import (
	"context"
	"sync"
	"time"

	"vitalsim/internal/config"
	"vitalsim/internal/vitals"

	"github.com/google/uuid"
)

// VitalWriter is an interface to support different output writers.
type VitalWriter interface {
	Write(vitals.Row) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]vitals.Row) error
}

// DefaultTickInterval is used when neither config nor flags set one.
const DefaultTickInterval = 2500 * time.Millisecond

// Monitor owns the per-ward simulation session: the patient roster, one
// vitals bundle per patient, and the periodic driver advancing them.
// It is the single writer of session state; readers get copies.
type Monitor struct {
	wardID       string
	cfg          *config.MonitorConfig
	writer       VitalWriter
	tickInterval time.Duration

	// serializes Start calls; two racing Starts must not each spawn a
	// driver with the second orphaning the first
	startMu sync.Mutex

	mu        sync.Mutex
	gen       *vitals.Generator
	now       func() time.Time
	roster    []string
	bundles   map[string]vitals.Bundle
	sessionID string
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	ticks     int
}

// NewMonitor initializes patient bundles from the roster config.
func NewMonitor(wardID string, cfg *config.MonitorConfig, writer VitalWriter, tickInterval time.Duration) *Monitor {
	if tickInterval <= 0 {
		tickInterval = cfg.TickInterval()
	}
	m := &Monitor{
		wardID:       wardID,
		cfg:          cfg,
		writer:       writer,
		tickInterval: tickInterval,
		gen:          vitals.NewGenerator(),
		now:          time.Now,
		bundles:      make(map[string]vitals.Bundle),
	}
	for _, p := range cfg.Patients {
		regime, err := vitals.ParseRegime(p.Regime)
		if err != nil {
			regime = vitals.RegimeNormal
		}
		m.InitializePatient(p.ID, regime)
	}
	return m
}

// InitializePatient seeds (or re-seeds) a patient's bundle with
// generated history biased toward the given regime, and adds the id to
// the roster if new.
func (m *Monitor) InitializePatient(id string, regime vitals.Regime) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initPatientLocked(id, regime)
}

func (m *Monitor) initPatientLocked(id string, regime vitals.Regime) {
	if _, ok := m.bundles[id]; !ok {
		m.roster = append(m.roster, id)
	}
	bundle := vitals.NewBundle()
	count := m.cfg.HistoryCount()
	interval := m.cfg.HistoryInterval()
	for _, vt := range vitals.Types {
		bundle[vt] = m.gen.History(vt, count, interval, regime)
	}
	m.bundles[id] = bundle
}

// Start begins the periodic driver for the given patient ids. Unknown
// ids are initialized with the normal regime. A running session is
// stopped first, so restarting never leaves two drivers ticking.
func (m *Monitor) Start(ctx context.Context, patientIDs []string) {
	m.startMu.Lock()
	defer m.startMu.Unlock()
	m.Stop()

	m.mu.Lock()
	for _, id := range patientIDs {
		if _, ok := m.bundles[id]; !ok {
			m.initPatientLocked(id, vitals.RegimeNormal)
		}
	}
	m.sessionID = uuid.New().String()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	m.running = true
	m.mu.Unlock()

	go func() {
		defer close(done)
		m.run(runCtx)
	}()
}

// Stop cancels the periodic driver and waits for it to exit. A tick in
// progress finishes; no new tick starts. Idempotent.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel, done := m.cancel, m.done
	m.running = false
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	cancel()
	<-done
}

// Reset clears all patient bundles. The running flag is untouched: a
// still-ticking driver will skip the cleared ids, so callers should
// stop first.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bundles = make(map[string]vitals.Bundle)
}

// Running reports whether the periodic driver is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// TickCount returns how many ticks have executed in this process.
func (m *Monitor) TickCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

// SessionID returns the id assigned by the most recent Start.
func (m *Monitor) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Bundle returns a deep copy of a patient's vitals bundle. The second
// return is false for unknown patients.
func (m *Monitor) Bundle(id string) (vitals.Bundle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bundles[id]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// SeverityOf classifies a patient's current bundle. Unknown patients
// and empty bundles are stable.
func (m *Monitor) SeverityOf(id string) vitals.Severity {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bundles[id]
	if !ok {
		return vitals.SeverityStable
	}
	return vitals.Aggregate(b)
}

// Patients returns the roster ids in processing order.
func (m *Monitor) Patients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.roster))
	copy(out, m.roster)
	return out
}

// Snapshot returns the latest vitals row for every tracked patient.
func (m *Monitor) Snapshot() []vitals.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make([]vitals.Row, 0, len(m.roster))
	now := m.now().UTC()
	for _, id := range m.roster {
		b, ok := m.bundles[id]
		if !ok {
			continue
		}
		rows = append(rows, m.rowLocked(id, b, vitals.Aggregate(b), now))
	}
	return rows
}

func (m *Monitor) rowLocked(id string, b vitals.Bundle, sev vitals.Severity, ts time.Time) vitals.Row {
	latest := func(vt vitals.VitalType) float64 {
		v, _ := vitals.Latest(b[vt])
		return v
	}
	return vitals.Row{
		WardID:      m.wardID,
		PatientID:   id,
		SessionID:   m.sessionID,
		HeartRate:   latest(vitals.HeartRate),
		Systolic:    latest(vitals.Systolic),
		Diastolic:   latest(vitals.Diastolic),
		SpO2:        latest(vitals.SpO2),
		Temperature: latest(vitals.Temperature),
		Severity:    sev.String(),
		Timestamp:   ts,
	}
}
