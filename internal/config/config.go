package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/cocosip/go-huffman-codec/codec/packed"
	"github.com/cocosip/go-huffman-codec/codec/text"
)

const (
	DefaultPort       = "8080"
	DefaultFormat     = packed.Name
	DefaultDBMaxConns = "5"
)

// Config holds the settings shared by the huffman binaries
type Config struct {
	// Port the HTTP server listens on
	Port string

	// DatabaseURL is a PostgreSQL DSN; empty selects the in-memory repository
	DatabaseURL string

	// Format names the codec used for files and stored tables
	Format string

	// DBMaxConns caps the PostgreSQL connection pool
	DBMaxConns string
}

// Load reads the configuration from the environment, falling back to defaults
func Load() Config {
	return Config{
		Port:        getenv("HUFFMAN_PORT", DefaultPort),
		DatabaseURL: os.Getenv("HUFFMAN_DATABASE_URL"),
		Format:      getenv("HUFFMAN_FORMAT", DefaultFormat),
		DBMaxConns:  getenv("HUFFMAN_DB_MAX_CONNS", DefaultDBMaxConns),
	}
}

// MaxConns parses DBMaxConns, which must be at least 1
func (c Config) MaxConns() (int32, error) {
	n, err := strconv.ParseInt(c.DBMaxConns, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid db max conns %q: %w", c.DBMaxConns, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("db max conns %d must be at least 1", n)
	}
	return int32(n), nil
}

// Validate checks the port range, the format name and the pool size
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d out of range [1, 65535]", port)
	}
	switch c.Format {
	case packed.Name, text.Name:
	case "":
		return errors.New("format must not be empty")
	default:
		return fmt.Errorf("unknown format %q, want %q or %q", c.Format, packed.Name, text.Name)
	}
	if _, err := c.MaxConns(); err != nil {
		return err
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
