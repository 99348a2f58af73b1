// Command summarize runs the knowledge-graph summarization pipeline: it
// loads the graph export named by the INI config, generates descriptions
// for every method, class, and package bottom-up, and writes the annotated
// graph (and optionally an XLSX report) back out.
//
// Usage:
//
//	go run ./cmd/summarize -config project.ini
//	go run ./cmd/summarize -config project.ini -report report.xlsx -verbose
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	ska "github.com/roastland/HnV-software-knowledge-analysis"
)

func main() {
	configPath := flag.String("config", "project.ini", "Path to the INI configuration file")
	outputPath := flag.String("output", "", "Override the annotated graph output path")
	reportPath := flag.String("report", "", "Write an XLSX hierarchy/ontology report to this path")
	similar := flag.String("similar", "", "After the run, list cached components similar to this query")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg, err := ska.LoadConfig(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *outputPath != "" {
		cfg.Project.OutputFile = *outputPath
	}
	if *reportPath != "" {
		cfg.ReportFile = *reportPath
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	pipeline, err := ska.New(cfg)
	if err != nil {
		slog.Error("building pipeline", "error", err)
		os.Exit(1)
	}
	defer pipeline.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx)
	if err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	slog.Info("summarization complete",
		"packages", res.Packages, "classes", res.Classes, "methods", res.Methods,
		"generated", res.Generated, "cache_hits", res.CacheHits,
		"output", cfg.Project.OutputFile)

	if *similar != "" {
		hits, err := pipeline.SimilarComponents(ctx, *similar, 5)
		if err != nil {
			slog.Error("similar-component lookup failed", "error", err)
			os.Exit(1)
		}
		for _, h := range hits {
			slog.Info("similar component",
				"node", h.NodeID, "kind", h.Kind, "distance", h.Distance,
				"description", h.Description)
		}
	}
}
