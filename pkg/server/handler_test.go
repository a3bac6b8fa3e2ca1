package server

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageAnswersAnyPath(t *testing.T) {
	h := newHandler(newStats())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Simple HTTP Server</title>")
	assert.Contains(t, body, "<h1>Hello from Simple HTTP Server!</h1>")
	assert.Contains(t, body, "<p><strong>Path:</strong> /</p>")
}

func TestPagePathWithQueryVerbatim(t *testing.T) {
	h := newHandler(newStats())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/foo/bar?x=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p><strong>Path:</strong> /foo/bar?x=1</p>")
}

func TestPageEscapesPath(t *testing.T) {
	h := newHandler(newStats())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/<script>alert(1)</script>", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestPageTimestampFixedClock(t *testing.T) {
	h := newHandler(newStats())
	h.now = func() time.Time {
		return time.Date(2024, 3, 14, 15, 9, 26, 0, time.Local)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Contains(t, rec.Body.String(), "<p><strong>Time:</strong> 2024-03-14 15:09:26</p>")
}

var timeLine = regexp.MustCompile(`<p><strong>Time:</strong> (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})</p>`)

func TestPageTimestampIsCurrent(t *testing.T) {
	h := newHandler(newStats())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	m := timeLine.FindStringSubmatch(rec.Body.String())
	require.NotNil(t, m, "body has no timestamp line: %s", rec.Body.String())
	rendered, err := time.ParseInLocation(timestampFormat, m[1], time.Local)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), rendered, 5*time.Second)
}

func TestPageTimestampRecomputed(t *testing.T) {
	clock := []time.Time{
		time.Date(2024, 3, 14, 15, 9, 26, 0, time.Local),
		time.Date(2024, 3, 14, 15, 9, 27, 0, time.Local),
	}
	h := newHandler(newStats())
	h.now = func() time.Time {
		next := clock[0]
		clock = clock[1:]
		return next
	}

	rec1 := httptest.NewRecorder()
	h.ServeHTTP(rec1, httptest.NewRequest("GET", "/", nil))
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, httptest.NewRequest("GET", "/", nil))

	assert.Contains(t, rec1.Body.String(), "<p><strong>Time:</strong> 2024-03-14 15:09:26</p>")
	assert.Contains(t, rec2.Body.String(), "<p><strong>Time:</strong> 2024-03-14 15:09:27</p>")
}

func TestMethodNotAllowed(t *testing.T) {
	stats := newStats()
	h := newHandler(stats)

	methods := []string{"POST", "PUT", "DELETE", "PATCH", "HEAD"}
	for _, method := range methods {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/anything", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.Equal(t, "GET", rec.Header().Get("Allow"), method)
	}

	// Rejected methods don't disturb later GETs.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/anything", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(len(methods)), stats.Rejected.Value())
	assert.Equal(t, int64(1), stats.Served.Value())
}
