// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd009-technology-stack R4.3-R4.9.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petar-djukic/go-index/internal/gitutil"
	"github.com/petar-djukic/go-index/internal/pipeline"
)

// newIndexCmd creates the "index" command.
func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index [fact-file ...]",
		Short: "Aggregate fact files and export the graph",
		Long:  "Index reads one fact file per analysis unit, merges them concurrently into a deduplicated index, and writes the graph to the output sink.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runIndex,
	}
}

// runIndex executes the aggregation and export.
func runIndex(cmd *cobra.Command, args []string) error {
	log, err := buildLogger(viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	root, err := resolveProjectRoot(viper.GetString("project-root"))
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(viper.GetString("output"))
	if err != nil {
		return err
	}
	defer closeOut()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	runner := pipeline.NewRunner(pipeline.Deps{
		ProjectRoot: root,
		Jobs:        viper.GetInt("jobs"),
		ToolVersion: version,
		Logger:      log,
	})

	result, err := runner.Run(ctx, args, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	printSummary(result)
	return nil
}

// printSummary outputs the run summary as JSON to stderr, keeping
// stdout clean for the graph stream.
func printSummary(result *pipeline.RunResult) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling summary: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, string(out))
}

// resolveProjectRoot returns the configured root, or the enclosing git
// worktree root, or the working directory.
func resolveProjectRoot(configured string) (string, error) {
	if configured != "" {
		abs, err := filepath.Abs(configured)
		if err != nil {
			return "", fmt.Errorf("resolving project root: %w", err)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	if root, err := gitutil.Root(wd); err == nil {
		return root, nil
	}
	return wd, nil
}

// openOutput opens the output sink; "-" means stdout.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// buildLogger creates the CLI diagnostic logger on stderr.
func buildLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}
