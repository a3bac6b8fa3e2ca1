package api

// TypeMeta describes the type of an individual object in a config file.
// The fields match the Kubernetes convention so config files read the same
// way, without depending on apimachinery for two stable fields.
type TypeMeta struct {
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
}

// DefaultPort is the port the server listens on when none is configured.
const DefaultPort = 8080

// Server contains the serving configuration.
type Server struct {
	TypeMeta `yaml:",inline"`

	// The interface to bind. Empty means all interfaces.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// The TCP port to listen on. Defaults to 8080.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Rate limiting applied across all inbound requests.
	//
	// Omitted, or present with requestsPerSecond 0, means requests are
	// never limited.
	RateLimit *RateLimit `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`
}

// RateLimit configures the token bucket that guards the responder.
type RateLimit struct {
	// Sustained requests per second allowed across all clients.
	RequestsPerSecond float64 `json:"requestsPerSecond,omitempty" yaml:"requestsPerSecond,omitempty"`

	// Maximum burst above the sustained rate. Defaults to twice
	// RequestsPerSecond.
	Burst int `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// SetDefaults fills in the zero values left by config files and flags.
func (s *Server) SetDefaults() {
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.RateLimit != nil && s.RateLimit.RequestsPerSecond > 0 && s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = defaultBurst(s.RateLimit.RequestsPerSecond)
	}
}

func defaultBurst(requestsPerSecond float64) int {
	burst := int(2 * requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return burst
}
