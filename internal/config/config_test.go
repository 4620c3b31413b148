package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := parseDuck(defaultDuckYAML)
	if err != nil {
		t.Fatalf("embedded duck.yaml should parse: %v", err)
	}
	def := DefaultDuckConfig()

	if cfg.Physics != def.Physics {
		t.Errorf("physics: embedded %+v, hardcoded %+v", cfg.Physics, def.Physics)
	}
	if cfg.Player != def.Player {
		t.Errorf("player: embedded %+v, hardcoded %+v", cfg.Player, def.Player)
	}
	if cfg.Items != def.Items {
		t.Errorf("items: embedded %+v, hardcoded %+v", cfg.Items, def.Items)
	}
	if cfg.Guard != def.Guard {
		t.Errorf("guard: embedded %+v, hardcoded %+v", cfg.Guard, def.Guard)
	}
	if len(cfg.Obstacles.Gap.Order) != len(def.Obstacles.Gap.Order) {
		t.Errorf("order steps: embedded %d, hardcoded %d", len(cfg.Obstacles.Gap.Order), len(def.Obstacles.Gap.Order))
	}
	if cfg.Obstacles.Gap.Initial != 450 || cfg.Obstacles.Gap.Min != 200 {
		t.Errorf("gap bounds = [%g, %g], want [200, 450]", cfg.Obstacles.Gap.Min, cfg.Obstacles.Gap.Initial)
	}
}

func TestLoadDuckCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duck.yaml")
	data := []byte("physics:\n  gravity: 1500\nitems:\n  cap: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDuck(path)
	if err != nil {
		t.Fatalf("LoadDuck failed: %v", err)
	}
	if cfg.Physics.Gravity != 1500 {
		t.Errorf("gravity = %g, want 1500", cfg.Physics.Gravity)
	}
	if cfg.Items.Cap != 10 {
		t.Errorf("cap = %d, want 10", cfg.Items.Cap)
	}
	// Unspecified fields keep their defaults
	if cfg.Physics.FlapVelocity != -900 {
		t.Errorf("flap velocity = %g, want default -900", cfg.Physics.FlapVelocity)
	}
	if len(cfg.Obstacles.Gap.TierSteps) != 2 {
		t.Errorf("tier steps should fall back to defaults, got %v", cfg.Obstacles.Gap.TierSteps)
	}
}

func TestLoadDuckErrors(t *testing.T) {
	if _, err := LoadDuck(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  gap:\n    min: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDuck(path); err == nil {
		t.Error("gap min above initial should fail validation")
	}
}

func TestLoadBackendPrecedence(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "GOLDENDUCK_API_URL=http://file.example/\nGOLDENDUCK_TOKEN=file-token\nGOLDENDUCK_TIMEOUT=3s\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvTimeout, "")

	b, err := LoadBackend(envFile, Backend{})
	if err != nil {
		t.Fatalf("LoadBackend failed: %v", err)
	}
	if b.APIURL != "http://file.example" {
		t.Errorf("APIURL = %q, want file value without trailing slash", b.APIURL)
	}
	if b.Token != "env-token" {
		t.Errorf("Token = %q, env should beat .env file", b.Token)
	}
	if b.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s, want 3s", b.Timeout)
	}

	b, err = LoadBackend(envFile, Backend{Token: "flag-token"})
	if err != nil {
		t.Fatal(err)
	}
	if b.Token != "flag-token" {
		t.Errorf("Token = %q, flag should beat env", b.Token)
	}
}

func TestLoadBackendMissingFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvToken, "")
	t.Setenv(EnvTimeout, "")

	b, err := LoadBackend(filepath.Join(t.TempDir(), "nope.env"), Backend{})
	if err != nil {
		t.Fatalf("missing .env should not fail: %v", err)
	}
	if b.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want default", b.APIURL)
	}
}
