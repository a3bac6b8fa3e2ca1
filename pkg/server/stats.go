package server

import (
	"expvar"
	"fmt"
)

// Stats counts requests over the server's lifetime.
type Stats struct {
	// Served counts GET requests answered with the page.
	Served *expvar.Int

	// Rejected counts requests turned away with 405.
	Rejected *expvar.Int

	// Limited counts requests turned away with 429.
	Limited *expvar.Int
}

func newStats() *Stats {
	return &Stats{
		Served:   &expvar.Int{},
		Rejected: &expvar.Int{},
		Limited:  &expvar.Int{},
	}
}

// Publish registers the counters with expvar. Publishing a name twice
// panics, so names that are already taken are left alone.
func (s *Stats) Publish() {
	publish("requestsServed", s.Served)
	publish("requestsRejected", s.Rejected)
	publish("requestsLimited", s.Limited)
}

func publish(name string, v expvar.Var) {
	if expvar.Get(name) == nil {
		expvar.Publish(name, v)
	}
}

// Summary reports the counters in one line, for the shutdown log.
func (s *Stats) Summary() string {
	return fmt.Sprintf("served %d, rejected %d, rate limited %d",
		s.Served.Value(), s.Rejected.Value(), s.Limited.Value())
}
