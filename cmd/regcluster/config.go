package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TrevorS/regcluster"
)

// runConfig is the YAML shape of a run.
type runConfig struct {
	DEF         string   `yaml:"def"`
	K           int      `yaml:"k"`
	Iterations  int      `yaml:"iterations"`
	Layout      string   `yaml:"layout"`  // "object_oriented", "data_oriented", "hybrid"
	Index       string   `yaml:"index"`   // "linear", "rtree", "kdtree", "balltree"
	Workers     int      `yaml:"workers"` // 0 = one per CPU
	LeafSize    int      `yaml:"leaf_size"`
	Seed        int64    `yaml:"seed"`
	Macros      []string `yaml:"macros"` // e.g. ["DFF", "SDFF"]
	MetricsAddr string   `yaml:"metrics_addr"`
}

func defaultRunConfig() runConfig {
	d := regcluster.DefaultConfig()
	return runConfig{
		Iterations: 10,
		Layout:     string(d.Layout),
		Index:      string(d.Index),
		Workers:    d.Workers,
		LeafSize:   d.LeafSize,
	}
}

// loadRunConfig reads a YAML file on top of the defaults.
func loadRunConfig(path string) (runConfig, error) {
	rc := defaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return rc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return rc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return rc, nil
}

func (rc runConfig) validate() error {
	var errs []error
	if rc.DEF == "" {
		errs = append(errs, errors.New("def file is required"))
	}
	if rc.K <= 0 {
		errs = append(errs, fmt.Errorf("k must be > 0, got %d", rc.K))
	}
	if rc.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must be >= 0, got %d", rc.Iterations))
	}
	return errors.Join(errs...)
}

func (rc runConfig) clusterConfig() regcluster.Config {
	return regcluster.Config{
		Layout:   regcluster.Layout(rc.Layout),
		Index:    regcluster.IndexKind(rc.Index),
		Workers:  rc.Workers,
		LeafSize: rc.LeafSize,
		Seed:     rc.Seed,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
