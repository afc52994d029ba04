// Package web provides a local read-only API over a built paper corpus.
package web

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/open-pages/openpages/internal/corpus"
)

// Serve starts the web server on the given address. The manager's current
// corpus is consulted on every request, so a rebuild (from the watcher or a
// manual reindex) is visible without restarting the server.
func Serve(addr string, mgr *corpus.Manager, version string) error {
	s := &server{mgr: mgr, version: version}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	fmt.Fprintf(os.Stderr, "openpages server: http://%s\n", listener.Addr())
	return http.Serve(listener, s.Handler())
}

// Handler returns the full routed handler with middleware applied.
func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/papers/", s.handlePaperBySlug) // /api/papers/{slug}
	mux.HandleFunc("/api/papers", s.handlePapers)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/errors", s.handleErrors)
	return localhostOnly(securityHeaders(mux))
}

type server struct {
	mgr     *corpus.Manager
	version string
}

// --- Middleware ---

func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if idx := strings.LastIndex(host, ":"); idx >= 0 {
			host = host[:idx]
		}
		host = strings.Trim(host, "[]") // strip IPv6 brackets

		if host == "localhost" {
			next.ServeHTTP(w, r)
			return
		}
		if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Forbidden", http.StatusForbidden)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'unsafe-inline'; style-src 'unsafe-inline'; img-src 'self' data:")
		next.ServeHTTP(w, r)
	})
}

// --- Handlers ---

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	res := s.mgr.Current()
	writeJSON(w, map[string]any{
		"paper_count":    res.Corpus.Len(),
		"category_count": len(res.Corpus.Categories()),
		"error_count":    len(res.Errors),
		"built_at":       res.Stats.Timestamp,
		"version":        s.version,
	})
}

func (s *server) handlePapers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := corpus.FilterSpec{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Status:   strings.ToLower(q.Get("status")),
		Sort:     corpus.ParseSortKey(q.Get("sort")),
	}
	docs := s.mgr.Corpus().Query(spec)
	writeJSON(w, map[string]any{
		"papers": docs,
		"count":  len(docs),
	})
}

func (s *server) handlePaperBySlug(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/papers/")
	if raw == "" {
		s.handlePapers(w, r)
		return
	}

	slug, err := url.PathUnescape(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slug encoding")
		return
	}
	if strings.Contains(slug, "/") {
		writeError(w, http.StatusBadRequest, "invalid slug")
		return
	}

	doc, ok := s.mgr.Corpus().BySlug(slug)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, doc)
}

func (s *server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.mgr.Corpus().Categories())
}

func (s *server) handleErrors(w http.ResponseWriter, r *http.Request) {
	res := s.mgr.Current()
	out := make([]map[string]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		out = append(out, map[string]string{
			"filename": e.Filename,
			"message":  e.Err.Error(),
		})
	}
	writeJSON(w, out)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
