package server

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// accessLog wraps a handler and writes one line per request to out:
//
//	[2024-03-14 15:09:26] 127.0.0.1 "GET /foo HTTP/1.1" 200 1234
type accessLog struct {
	out     io.Writer
	now     func() time.Time
	handler http.Handler
}

func newAccessLog(out io.Writer, handler http.Handler) *accessLog {
	return &accessLog{out: out, now: time.Now, handler: handler}
}

func (l *accessLog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
	l.handler.ServeHTTP(rec, r)

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	_, _ = fmt.Fprintf(l.out, "[%s] %s \"%s %s %s\" %d %d\n",
		l.now().Format(timestampFormat), host,
		r.Method, requestPath(r), r.Proto, rec.status, rec.bytes)
}

// responseRecorder captures the status and body size of a response so
// the access line can report them after the inner handler runs.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}
