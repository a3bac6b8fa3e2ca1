package server

import (
	"bytes"
	"net/http"
	"time"

	"k8s.io/klog/v2"
)

const timestampFormat = "2006-01-02 15:04:05"

// handler answers GET requests to any path with the rendered page.
// Every other method gets the fixed 405 fallback.
type handler struct {
	now   func() time.Time
	stats *Stats
}

func newHandler(stats *Stats) *handler {
	return &handler{now: time.Now, stats: stats}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.servePage(w, r)
	default:
		h.serveMethodNotAllowed(w, r)
	}
}

func (h *handler) servePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Path: requestPath(r),
		Time: h.now().Format(timestampFormat),
	}

	// Render into a buffer first so a template failure can't truncate
	// a response that already committed a 200.
	buf := bytes.Buffer{}
	err := pageTemplate.Execute(&buf, data)
	if err != nil {
		klog.Errorf("rendering page for %s: %v", data.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write(buf.Bytes())
	h.stats.Served.Add(1)
}

func (h *handler) serveMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	h.stats.Rejected.Add(1)
}

// requestPath returns the verbatim request-target from the request
// line, query string included.
func requestPath(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}
