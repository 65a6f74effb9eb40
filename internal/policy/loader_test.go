package policy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPolicy_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentinel.yaml")

	content := `
version: 1
phases:
  firewall:
    enabled: false
rules:
  OPEN_SSH_PORT:
    enabled: false
enforcement:
  fail_on_severity: HIGH
`

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Version != 1 {
		t.Fatalf("expected version 1")
	}

	if cfg.Phases["firewall"].Enabled {
		t.Fatalf("expected firewall phase disabled")
	}

	rc := cfg.Rules["OPEN_SSH_PORT"]

	if rc.Enabled == nil || *rc.Enabled != false {
		t.Fatalf("expected OPEN_SSH_PORT enabled=false")
	}

	if cfg.Enforcement.FailOnSeverity != "HIGH" {
		t.Fatalf("expected fail_on_severity HIGH")
	}
}

func TestLoadPolicy_InvalidVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentinel.yaml")

	content := `
version: 2
`

	os.WriteFile(path, []byte(content), 0o644)

	_, err := LoadPolicy(path)
	if err == nil {
		t.Fatalf("expected error for invalid version")
	}
}

func TestLoadPolicy_FileNotFound(t *testing.T) {
	_, err := LoadPolicy("nonexistent.yaml")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadPolicy_EmptyMapsInitialized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentinel.yaml")

	os.WriteFile(path, []byte("version: 1\n"), 0o644)

	cfg, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Phases == nil || cfg.Rules == nil {
		t.Fatalf("expected phase and rule maps to be initialized")
	}
}
