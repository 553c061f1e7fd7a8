// Package web serves the practice graph engine over HTTP for the UI layer.
// All state is swapped atomically on catalog reload; handlers only read.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/ritzau/practice-graph/pkg/adoption"
	"github.com/ritzau/practice-graph/pkg/graph"
	"github.com/ritzau/practice-graph/pkg/logging"
	"github.com/ritzau/practice-graph/pkg/model"
	"github.com/ritzau/practice-graph/pkg/pubsub"
	"github.com/ritzau/practice-graph/pkg/query"
)

// GraphNode is a vertex payload for the graph endpoint.
type GraphNode struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// GraphEdge is a directed edge payload for the graph endpoint.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphData is the wire shape of the dependency graph.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// PracticeDetail is the per-practice query result.
type PracticeDetail struct {
	Practice     model.Practice `json:"practice"`
	DirectCount  int            `json:"directCount"`
	TotalCount   int            `json:"totalCount"`
	Dependencies []string       `json:"dependencies"`
	Transitive   []string       `json:"transitive"`
}

// Server exposes the engine over HTTP.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher

	mu      sync.RWMutex
	report  *model.ValidationReport
	catalog *model.Catalog
	graph   *graph.PracticeGraph
}

// NewServer creates a server with no catalog loaded yet.
func NewServer() *Server {
	ssePublisher := pubsub.NewSSEPublisher()
	// Late subscribers only need the current catalog state, not history.
	ssePublisher.ConfigureTopic("catalog_status", pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
	}
	s.setupRoutes()
	return s
}

// SetReport installs a fresh validation report, rebuilding the graph when
// the catalog is valid, and notifies subscribers.
func (s *Server) SetReport(report *model.ValidationReport) {
	s.mu.Lock()
	s.report = report
	if report.IsValid {
		s.catalog = report.Catalog
		s.graph = graph.Build(report.Catalog.Dependencies)
	} else {
		s.catalog = nil
		s.graph = nil
	}
	s.mu.Unlock()

	status := pubsub.CatalogStatus{State: "invalid", Message: "catalog failed validation"}
	if report.Summary != nil {
		status.Practices = report.Summary.TotalPractices
		status.Dependencies = report.Summary.TotalDependencies
	}
	if report.IsValid {
		status.State = "valid"
		status.Message = "catalog loaded"
	}
	if err := s.publisher.Publish("catalog_status", status.State, status); err != nil {
		logging.Warn("failed to publish catalog status", "error", err)
	}
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	s.router.HandleFunc("/api/subscribe/catalog_status", s.handleSubscribeCatalogStatus).Methods("GET")
	s.router.HandleFunc("/api/validation", s.handleValidation).Methods("GET")
	s.router.HandleFunc("/api/catalog", s.handleCatalog).Methods("GET")
	s.router.HandleFunc("/api/graph", s.handleGraph).Methods("GET")
	s.router.HandleFunc("/api/tree", s.handleTree).Methods("GET")
	s.router.HandleFunc("/api/levels", s.handleLevels).Methods("GET")
	s.router.HandleFunc("/api/adoption", s.handleCatalogAdoption).Methods("GET")
	s.router.HandleFunc("/api/practices/{id}", s.handlePractice).Methods("GET")
	s.router.HandleFunc("/api/practices/{id}/adoption", s.handlePracticeAdoption).Methods("GET")
	s.router.HandleFunc("/api/chain", s.handleChain).Methods("POST")
}

func (s *Server) handleSubscribeCatalogStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Initial comment establishes the stream (Safari compatibility).
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context(), "catalog_status")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			logging.ErrorContext(r.Context(), "error writing SSE event", "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		http.Error(w, "no catalog loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, _, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, catalog)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	catalog, pg, ok := s.snapshot(w)
	if !ok {
		return
	}

	data := GraphData{Nodes: []GraphNode{}, Edges: []GraphEdge{}}
	for _, p := range catalog.Practices {
		data.Nodes = append(data.Nodes, GraphNode{
			ID:       p.ID,
			Label:    p.Name,
			Type:     string(p.Type),
			Category: string(p.Category),
		})
	}
	for _, edge := range pg.Edges() {
		data.Edges = append(data.Edges, GraphEdge{Source: edge[0], Target: edge[1]})
	}
	writeJSON(w, data)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	catalog, pg, ok := s.snapshot(w)
	if !ok {
		return
	}
	root, ok := s.rootParam(w, r, catalog)
	if !ok {
		return
	}

	levels, err := query.FullTree(pg, root)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, levels)
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	catalog, pg, ok := s.snapshot(w)
	if !ok {
		return
	}
	root, ok := s.rootParam(w, r, catalog)
	if !ok {
		return
	}
	writeJSON(w, query.DepthLevels(pg, root))
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	catalog, pg, ok := s.snapshot(w)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	practice, found := catalog.Practice(id)
	if !found {
		http.Error(w, fmt.Sprintf("unknown practice %q", id), http.StatusNotFound)
		return
	}

	writeJSON(w, PracticeDetail{
		Practice:     practice,
		DirectCount:  query.DirectCount(pg, id),
		TotalCount:   query.TransitiveCount(pg, id),
		Dependencies: append([]string{}, pg.Dependencies(id)...),
		Transitive:   query.Reachable(pg, id),
	})
}

func (s *Server) handlePracticeAdoption(w http.ResponseWriter, r *http.Request) {
	catalog, pg, ok := s.snapshot(w)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if _, found := catalog.Practice(id); !found {
		http.Error(w, fmt.Sprintf("unknown practice %q", id), http.StatusNotFound)
		return
	}

	adopted := adoptedParam(r, catalog)
	includeSelf := r.URL.Query().Get("includeSelf") == "true"

	writeJSON(w, map[string]int{
		"percent":     adoption.DependencyPercent(pg, id, adopted, includeSelf),
		"directCount": query.DirectCount(pg, id),
	})
}

func (s *Server) handleCatalogAdoption(w http.ResponseWriter, r *http.Request) {
	catalog, _, ok := s.snapshot(w)
	if !ok {
		return
	}

	adopted := adoptedParam(r, catalog)
	writeJSON(w, map[string]int{
		"percent": adoption.CatalogPercent(adopted, len(catalog.Practices)),
		"adopted": len(adopted),
		"total":   len(catalog.Practices),
	})
}

// handleChain computes the next ancestor chain for a drill-down step. The
// chain is UI navigation state; the server just applies the transition.
func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Chain   []string `json:"chain"`
		Current string   `json:"current"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Current == "" {
		http.Error(w, "current is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string][]string{"chain": query.Descend(req.Chain, req.Current)})
}

// snapshot returns the current valid catalog and graph, or writes an error
// response and returns ok=false.
func (s *Server) snapshot(w http.ResponseWriter) (*model.Catalog, *graph.PracticeGraph, bool) {
	s.mu.RLock()
	catalog, pg, report := s.catalog, s.graph, s.report
	s.mu.RUnlock()

	if report == nil {
		http.Error(w, "no catalog loaded", http.StatusServiceUnavailable)
		return nil, nil, false
	}
	if catalog == nil {
		http.Error(w, "catalog failed validation; see /api/validation", http.StatusConflict)
		return nil, nil, false
	}
	return catalog, pg, true
}

// rootParam resolves the optional ?root= query parameter, defaulting to the
// catalog's first root practice.
func (s *Server) rootParam(w http.ResponseWriter, r *http.Request, catalog *model.Catalog) (string, bool) {
	root := r.URL.Query().Get("root")
	if root == "" {
		roots := catalog.Roots()
		if len(roots) == 0 {
			http.Error(w, "catalog has no root practice; pass ?root=", http.StatusBadRequest)
			return "", false
		}
		return roots[0], true
	}
	if _, found := catalog.Practice(root); !found {
		http.Error(w, fmt.Sprintf("unknown practice %q", root), http.StatusNotFound)
		return "", false
	}
	return root, true
}

// adoptedParam parses ?adopted=a,b,c and drops IDs foreign to the catalog.
func adoptedParam(r *http.Request, catalog *model.Catalog) adoption.Set {
	raw := r.URL.Query().Get("adopted")
	if raw == "" {
		return adoption.Set{}
	}

	known := make(adoption.Set, len(catalog.Practices))
	for _, p := range catalog.Practices {
		known[p.ID] = true
	}
	return adoption.Filter(adoption.NewSet(strings.Split(raw, ",")...), known)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("error encoding response", "error", err)
	}
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves the API on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("starting web server", "addr", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, s.router)
}
