package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"example.com/cmosdrv/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmosctl.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
device: /dev/port
century:
  register: 0x32
spins: 5000
retries: 4
keep_nmi: true
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Device != "/dev/port" || cfg.Spins != 5000 || cfg.Retries != 4 || !cfg.KeepNMI {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Century.Register == nil || *cfg.Century.Register != 0x32 {
		t.Errorf("century register not parsed: %+v", cfg.Century)
	}
	if cfg.Century.Assume != nil {
		t.Errorf("century assume should be unset: %+v", cfg.Century)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateRejects(t *testing.T) {
	for _, tt := range []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			"both century strategies",
			"century:\n  register: 0x32\n  assume: 2024\n",
			"mutually exclusive",
		},
		{
			"century register out of range",
			"century:\n  register: 0x90\n",
			"outside the CMOS address space",
		},
		{
			"implausible assume year",
			"century:\n  assume: 99\n",
			"implausible",
		},
		{
			"negative retries",
			"retries: -1\n",
			"must not be negative",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(writeConfig(t, tt.body))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			err = config.Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
