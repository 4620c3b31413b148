package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadBackend.
const (
	EnvAPIURL  = "GOLDENDUCK_API_URL"
	EnvToken   = "GOLDENDUCK_TOKEN"
	EnvTimeout = "GOLDENDUCK_TIMEOUT"
)

// DefaultAPIURL points at a local mock-api instance.
const DefaultAPIURL = "http://127.0.0.1:8787"

// Backend holds connection settings for the game session API.
type Backend struct {
	APIURL  string
	Token   string
	Timeout time.Duration
}

// LoadBackend resolves backend settings.
// Precedence: overrides (CLI flags) -> process environment -> envFile -> defaults.
// A missing envFile is not an error.
func LoadBackend(envFile string, overrides Backend) (Backend, error) {
	b := Backend{
		APIURL:  DefaultAPIURL,
		Timeout: 10 * time.Second,
	}

	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			b.apply(vars)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return b, fmt.Errorf("config: read %s: %w", envFile, err)
		}
	}

	b.apply(map[string]string{
		EnvAPIURL:  os.Getenv(EnvAPIURL),
		EnvToken:   os.Getenv(EnvToken),
		EnvTimeout: os.Getenv(EnvTimeout),
	})

	if overrides.APIURL != "" {
		b.APIURL = overrides.APIURL
	}
	if overrides.Token != "" {
		b.Token = overrides.Token
	}
	if overrides.Timeout > 0 {
		b.Timeout = overrides.Timeout
	}

	if b.Timeout <= 0 {
		return b, fmt.Errorf("config: timeout must be positive, got %s", b.Timeout)
	}
	b.APIURL = strings.TrimRight(b.APIURL, "/")
	return b, nil
}

func (b *Backend) apply(vars map[string]string) {
	if v := vars[EnvAPIURL]; v != "" {
		b.APIURL = v
	}
	if v := vars[EnvToken]; v != "" {
		b.Token = v
	}
	if v := vars[EnvTimeout]; v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			b.Timeout = d
		}
	}
}
