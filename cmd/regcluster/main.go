// Command regcluster clusters the register positions of a DEF placement
// into k groups and prints the resulting centers.
//
// Usage:
//
//	regcluster -def design.def -k 16 -iterations 20 -layout hybrid -index rtree -workers 8
//	regcluster -config run.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TrevorS/regcluster"
	"github.com/TrevorS/regcluster/layout"
	"github.com/TrevorS/regcluster/metrics"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "regcluster:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("regcluster", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML run configuration; flags override its values")
	defPath := fs.String("def", "", "DEF file with the placement")
	k := fs.Int("k", 0, "number of clusters")
	iterations := fs.Int("iterations", -1, "number of iterations")
	layoutName := fs.String("layout", "", "storage layout: object_oriented, data_oriented, hybrid")
	index := fs.String("index", "", "nearest-center lookup: linear, rtree, kdtree, balltree")
	workers := fs.Int("workers", -1, "worker goroutines (0 = one per CPU)")
	seed := fs.Int64("seed", 0, "seed for random initial centers")
	macros := fs.String("macros", "", "comma-separated macro prefixes selecting registers")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address after the run")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rc := defaultRunConfig()
	if *configPath != "" {
		loaded, err := loadRunConfig(*configPath)
		if err != nil {
			return err
		}
		rc = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "def":
			rc.DEF = *defPath
		case "k":
			rc.K = *k
		case "iterations":
			rc.Iterations = *iterations
		case "layout":
			rc.Layout = *layoutName
		case "index":
			rc.Index = *index
		case "workers":
			rc.Workers = *workers
		case "seed":
			rc.Seed = *seed
		case "macros":
			rc.Macros = splitList(*macros)
		case "metrics-addr":
			rc.MetricsAddr = *metricsAddr
		}
	})
	if err := rc.validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	design, err := layout.ReadFile(rc.DEF)
	if err != nil {
		return err
	}
	var filter layout.Filter
	if len(rc.Macros) > 0 {
		filter = layout.MacroPrefix(rc.Macros...)
	}
	positions := design.Positions(filter)
	logger.Info("design loaded", "design", design.Name, "components", len(design.Components), "positions", len(positions))

	reg := prometheus.NewRegistry()
	cfg := rc.clusterConfig()
	cfg.Logger = regcluster.NewSlogLogger(logger)
	cfg.Metrics = metrics.NewPrometheus(reg, "")

	c, err := regcluster.NewRandom(design.Bounds(), rc.K, cfg)
	if err != nil {
		return err
	}
	if err := c.Run(positions, rc.Iterations); err != nil {
		return err
	}

	centers, members := c.Centers(), c.Membership()
	for id, center := range centers {
		fmt.Fprintf(stdout, "%d\t%.3f\t%.3f\t%d\n", id, center.X, center.Y, len(members[id]))
	}

	if rc.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		logger.Info("serving metrics", "addr", rc.MetricsAddr)
		return http.ListenAndServe(rc.MetricsAddr, mux)
	}
	return nil
}
