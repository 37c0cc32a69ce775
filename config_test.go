package regcluster

import (
	"errors"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Layout != LayoutDataOriented {
		t.Errorf("Layout = %q, want %q", cfg.Layout, LayoutDataOriented)
	}
	if cfg.Index != IndexLinear {
		t.Errorf("Index = %q, want %q", cfg.Index, IndexLinear)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
	if cfg.LeafSize != 8 {
		t.Errorf("LeafSize = %d, want 8", cfg.LeafSize)
	}
	if err := prepareConfig(&cfg); err != nil {
		t.Errorf("DefaultConfig does not validate: %v", err)
	}
}

func TestPrepareConfig_FillsZeroValues(t *testing.T) {
	var cfg Config
	if err := prepareConfig(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want NumCPU %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.Layout != LayoutDataOriented || cfg.Index != IndexLinear || cfg.LeafSize != 8 {
		t.Errorf("zero Config not defaulted: %+v", cfg)
	}
	if cfg.Logger == nil || cfg.Metrics == nil {
		t.Error("Logger and Metrics must be non-nil after defaults")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown layout", func(c *Config) { c.Layout = "array_of_structs" }},
		{"unknown index", func(c *Config) { c.Index = "quadtree" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative leaf size", func(c *Config) { c.LeafSize = -4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := prepareConfig(&cfg)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}
