package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"graphlod/internal/lod"
	"graphlod/internal/monitor"
	"graphlod/internal/report"
)

// Server exposes governor state and controls over HTTP.
type Server struct {
	Gov *monitor.Governor
	tpl *template.Template
	mux *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

// NewServer creates an admin server for the given governor.
func NewServer(gov *monitor.Governor) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	s := &Server{Gov: gov, tpl: tpl, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/report", s.handleReport)
	s.mux.HandleFunc("/reduce", s.handleReduce)
	s.mux.HandleFunc("/optimize", s.handleOptimize)
	s.mux.HandleFunc("/aggressive", s.handleAggressive)
	s.mux.HandleFunc("/reset", s.handleReset)
	s.mux.Handle("/metrics", promhttp.HandlerFor(s.Gov.Collectors().Registry(), promhttp.HandlerOpts{}))
}

// Start serves until the context is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	rep := s.Gov.Report()
	data := struct {
		SessionID string
		Report    report.Report
		Heartbeat bool
	}{
		SessionID: s.Gov.SessionID(),
		Report:    rep,
		Heartbeat: s.Gov.HeartbeatActive(),
	}
	_ = s.tpl.Execute(w, data)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Gov.Report())
}

// handleReduce materializes the render set for ?tier=<name>, defaulting to
// the tier currently applied.
func (s *Server) handleReduce(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("tier")
	tier := s.Gov.Controller().Current()
	if name != "" {
		t, ok := lod.ParseTier(name)
		if !ok {
			http.Error(w, "unknown tier: "+name, http.StatusBadRequest)
			return
		}
		tier = t
	}
	red := s.Gov.Reduce(tier)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(red)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	stepped := s.Gov.Optimize()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stepped":   stepped,
		"lod_level": s.Gov.Monitor().LODLevel(),
	})
}

func (s *Server) handleAggressive(w http.ResponseWriter, r *http.Request) {
	ok := s.Gov.ApplyAggressive()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"applied":   ok,
		"lod_level": s.Gov.Monitor().LODLevel(),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	ok := s.Gov.Reset()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"reset":     ok,
		"lod_level": s.Gov.Monitor().LODLevel(),
	})
}
