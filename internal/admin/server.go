package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"vitalsim/internal/logging"
	"vitalsim/internal/sim"
	"vitalsim/internal/vitals"

	"github.com/google/uuid"
)

// Server exposes the ward monitor over HTTP: a small dashboard page,
// JSON queries, session lifecycle controls, and a websocket stream.
type Server struct {
	Monitor *sim.Monitor
	tpl     *template.Template
	mux     *http.ServeMux
	httpSrv *http.Server
	// interval between websocket snapshot pushes
	streamInterval time.Duration
}

//go:embed templates/index.html
var content embed.FS

// NewServer creates a dashboard server around a monitor.
func NewServer(monitor *sim.Monitor) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	s := &Server{
		Monitor:        monitor,
		tpl:            tpl,
		mux:            http.NewServeMux(),
		streamInterval: time.Second,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/vitals", s.handleVitals)
	s.mux.HandleFunc("/patients", s.handlePatients)
	s.mux.HandleFunc("/bundle", s.handleBundle)
	s.mux.HandleFunc("/start", s.handleStart)
	s.mux.HandleFunc("/stop", s.handleStop)
	s.mux.HandleFunc("/reset", s.handleReset)
	s.mux.HandleFunc("/admit", s.handleAdmit)
	s.mux.HandleFunc("/ws", s.handleWS)
}

// Start runs the HTTP server until ctx is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.httpSrv = &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
	}()
	return s.httpSrv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Running  bool
		Patients []patientStatus
	}{
		Running:  s.Monitor.Running(),
		Patients: s.patientStatuses(),
	}
	s.tpl.Execute(w, data)
}

// patientStatus summarizes one patient for list endpoints and the page.
type patientStatus struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
}

func (s *Server) patientStatuses() []patientStatus {
	ids := s.Monitor.Patients()
	out := make([]patientStatus, 0, len(ids))
	for _, id := range ids {
		out = append(out, patientStatus{ID: id, Severity: s.Monitor.SeverityOf(id).String()})
	}
	return out
}

func (s *Server) handleVitals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Monitor.Snapshot())
}

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.patientStatuses())
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("patient")
	bundle, ok := s.Monitor.Bundle(id)
	if !ok {
		http.Error(w, "unknown patient", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bundle)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	ids := s.Monitor.Patients()
	if q := r.URL.Query().Get("patients"); q != "" {
		ids = strings.Split(q, ",")
	}
	ctx := logging.NewContext(context.Background(), logging.FromContext(r.Context()))
	s.Monitor.Start(ctx, ids)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.Monitor.Stop()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.Monitor.Stop()
	s.Monitor.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// handleAdmit initializes a patient with an optional regime hint. When
// no id is given one is generated.
func (s *Server) handleAdmit(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("patient")
	if id == "" {
		id = "patient-" + uuid.New().String()
	}
	regime, err := vitals.ParseRegime(r.URL.Query().Get("regime"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Monitor.InitializePatient(id, regime)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"patient": id})
}
