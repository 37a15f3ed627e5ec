// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-index aggregates per-translation-unit fact files into a
// deduplicated code index and exports it as an LSIF-flavored graph.
// Implements: prd009-technology-stack R4.1-R4.12;
//
//	docs/ARCHITECTURE § Project Structure.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "go-index",
		Short: "Code index aggregator and graph exporter",
		Long:  "go-index merges symbol, reference, and relation facts from per-unit analysis output into one deduplicated index and writes it as a graph of vertices and edges.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("project-root", "", "Absolute path to the project root (default: enclosing git worktree, else cwd)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringP("output", "o", "-", "Output file for the graph ('-' for stdout)")
	rootCmd.PersistentFlags().Int("jobs", runtime.NumCPU(), "Concurrent ingestion jobs")

	// Bind flags to viper.
	viper.BindPFlag("project-root", rootCmd.PersistentFlags().Lookup("project-root"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("jobs", rootCmd.PersistentFlags().Lookup("jobs"))

	// Env vars: GO_INDEX_PROJECT_ROOT, GO_INDEX_DEBUG, etc.
	viper.SetEnvPrefix("GO_INDEX")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".go-index")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-index version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("go-index %s\n", version)
		},
	}
}
