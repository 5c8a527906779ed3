package server

import "fmt"

// Config holds server configuration.
type Config struct {
	// Host to bind to (default: 127.0.0.1)
	Host string

	// Port to listen on (default: 8765)
	Port int

	// EnableCORS enables CORS headers for browser clients
	EnableCORS bool

	// CORSOrigins is the list of allowed origins when CORS is enabled
	CORSOrigins []string
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:        "127.0.0.1",
		Port:        8765,
		EnableCORS:  true,
		CORSOrigins: []string{"*"},
	}
}

// Address returns the host:port address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
