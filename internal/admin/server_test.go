package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"vitalsim/internal/config"
	"vitalsim/internal/sim"
	"vitalsim/internal/vitals"
)

func testMonitor() *sim.Monitor {
	cfg := &config.MonitorConfig{
		WardID: "ward-test",
		Patients: []config.Patient{
			{ID: "patient-001", Name: "Ada", Regime: "normal"},
			{ID: "patient-002", Name: "Ben", Regime: "critical"},
		},
		TickIntervalMS:    100,
		HistorySamples:    3,
		HistoryIntervalMS: 1000,
	}
	return sim.NewMonitor("ward-test", cfg, nil, time.Second)
}

func TestHandleVitals(t *testing.T) {
	server := NewServer(testMonitor())

	req := httptest.NewRequest(http.MethodGet, "/vitals", nil)
	w := httptest.NewRecorder()
	server.handleVitals(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var rows []vitals.Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 vitals rows, got %d", len(rows))
	}
	if rows[0].PatientID != "patient-001" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
}

func TestHandlePatients(t *testing.T) {
	server := NewServer(testMonitor())

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	w := httptest.NewRecorder()
	server.handlePatients(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var statuses []patientStatus
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(statuses))
	}
	for _, st := range statuses {
		if st.Severity == "" {
			t.Errorf("patient %s has empty severity", st.ID)
		}
	}
}

func TestHandleBundle(t *testing.T) {
	server := NewServer(testMonitor())

	req := httptest.NewRequest(http.MethodGet, "/bundle?patient=patient-001", nil)
	w := httptest.NewRecorder()
	server.handleBundle(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var bundle map[string][]vitals.Sample
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(bundle["heart_rate"]) != 3 {
		t.Errorf("expected 3 seeded samples, got %d", len(bundle["heart_rate"]))
	}

	// Unknown patient
	w = httptest.NewRecorder()
	server.handleBundle(w, httptest.NewRequest(http.MethodGet, "/bundle?patient=nobody", nil))
	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown patient, got %v", w.Result().StatusCode)
	}
}

func TestHandleStartStop(t *testing.T) {
	monitor := testMonitor()
	server := NewServer(monitor)

	req := httptest.NewRequest(http.MethodPost, "/start", nil)
	w := httptest.NewRecorder()
	server.handleStart(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("expected NoContent, got %v", w.Result().StatusCode)
	}
	if !monitor.Running() {
		t.Error("expected monitor running after /start")
	}
	session := monitor.SessionID()
	if session == "" {
		t.Error("expected session id after /start")
	}

	w = httptest.NewRecorder()
	server.handleStop(w, httptest.NewRequest(http.MethodPost, "/stop", nil))
	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("expected NoContent, got %v", w.Result().StatusCode)
	}
	if monitor.Running() {
		t.Error("expected monitor stopped after /stop")
	}
}

func TestHandleStartWithRoster(t *testing.T) {
	monitor := testMonitor()
	server := NewServer(monitor)

	req := httptest.NewRequest(http.MethodPost, "/start?patients=patient-001,patient-extra", nil)
	w := httptest.NewRecorder()
	server.handleStart(w, req)
	defer monitor.Stop()

	if _, ok := monitor.Bundle("patient-extra"); !ok {
		t.Error("expected /start to admit listed unknown patient")
	}
}

func TestHandleReset(t *testing.T) {
	monitor := testMonitor()
	server := NewServer(monitor)

	w := httptest.NewRecorder()
	server.handleReset(w, httptest.NewRequest(http.MethodPost, "/reset", nil))

	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("expected NoContent, got %v", w.Result().StatusCode)
	}
	if monitor.Running() {
		t.Error("expected monitor stopped after /reset")
	}
	if _, ok := monitor.Bundle("patient-001"); ok {
		t.Error("expected bundles cleared after /reset")
	}
	if len(monitor.Patients()) != 2 {
		t.Error("expected roster to survive /reset")
	}
}

func TestHandleAdmit(t *testing.T) {
	monitor := testMonitor()
	server := NewServer(monitor)

	req := httptest.NewRequest(http.MethodPost, "/admit?patient=patient-new&regime=warning", nil)
	w := httptest.NewRecorder()
	server.handleAdmit(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["patient"] != "patient-new" {
		t.Errorf("unexpected admit response: %v", body)
	}
	if _, ok := monitor.Bundle("patient-new"); !ok {
		t.Error("expected bundle for admitted patient")
	}

	// Generated id when none given
	w = httptest.NewRecorder()
	server.handleAdmit(w, httptest.NewRequest(http.MethodPost, "/admit", nil))
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !strings.HasPrefix(body["patient"], "patient-") {
		t.Errorf("expected generated patient id, got %q", body["patient"])
	}

	// Bad regime
	w = httptest.NewRecorder()
	server.handleAdmit(w, httptest.NewRequest(http.MethodPost, "/admit?regime=bogus", nil))
	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad regime, got %v", w.Result().StatusCode)
	}
}

func TestHandleIndex(t *testing.T) {
	server := NewServer(testMonitor())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.handleIndex(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", w.Result().StatusCode)
	}
	if !strings.Contains(w.Body.String(), "patient-001") {
		t.Error("expected patient list in dashboard page")
	}
}

func TestWebsocketStream(t *testing.T) {
	server := NewServer(testMonitor())
	ts := httptest.NewServer(http.HandlerFunc(server.handleWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var rows []vitals.Row
	if err := conn.ReadJSON(&rows); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows in snapshot, got %d", len(rows))
	}
}
