// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command hdcbench runs the inference pipelines over a synthetic workload
// and reports per-strategy latency and prediction mismatches.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-logr/stdr"
	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/infer"
	"github.com/ajroetker/go-hdc/internal/bench"
	"github.com/ajroetker/go-hdc/internal/config"
	"github.com/ajroetker/go-hdc/internal/metrics"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hdcbench",
		Short: "Benchmark hyperdimensional classifier inference",
		Long: `hdcbench generates a random basis, random class prototypes and random
input sequences, then classifies every input with each selected pipeline
(sequential, parallel, fused). It reports average latency per pipeline and
every prediction that differs from the sequential pipeline.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hdcbench v%s (%s) %s\n", version, commit, runtime.Version())
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Print CPU and dispatch information",
		Run:   runInfo,
	})

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark",
		RunE:  runBench,
	}
	defaults := config.LoadDefaults()
	runCmd.Flags().String("config", "", "YAML config file (HDC_* variables and flags override it)")
	runCmd.Flags().Int("dims", defaults.Model.Dims, "Hypervector dimensionality D")
	runCmd.Flags().Int("alphabet", defaults.Model.Alphabet, "Alphabet size A")
	runCmd.Flags().Int("classes", defaults.Model.Classes, "Number of classes C")
	runCmd.Flags().Uint64("seed", defaults.Model.Seed, "Seed for the synthetic model and inputs")
	runCmd.Flags().Int("inputs", defaults.Workload.Inputs, "Number of input sequences")
	runCmd.Flags().Int("length", defaults.Workload.InputLength, "Symbols per input sequence")
	runCmd.Flags().Int("workers", defaults.Runtime.Workers, "Worker goroutines (0 = GOMAXPROCS)")
	runCmd.Flags().Int("max-classes", defaults.Runtime.MaxClasses, "Class bound of the fused pipeline")
	runCmd.Flags().StringSlice("strategies", defaults.Runtime.Strategies, "Pipelines to run: sequential, parallel, fused")
	runCmd.Flags().String("metrics-file", "", "Write prometheus metrics to this file after the run")
	runCmd.Flags().IntP("verbosity", "v", 0, "Log verbosity (1 = per input, 2 = per class score)")
	rootCmd.AddCommand(runCmd)

	return rootCmd
}

func runInfo(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "CPU:        %s\n", cpuid.CPU.BrandName)
	fmt.Fprintf(out, "Vendor:     %s\n", cpuid.CPU.VendorString)
	fmt.Fprintf(out, "Cores:      %d physical, %d logical\n", cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	fmt.Fprintf(out, "Cache line: %d bytes\n", cpuid.CPU.CacheLine)
	fmt.Fprintf(out, "Dispatch:   %s (%d-byte blocks)\n", hdc.CurrentName(), hdc.CurrentWidth())
	fmt.Fprintf(out, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintf(out, "Fused bound: %d classes\n", infer.DefaultMaxClasses)
}

func runBench(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	verbosity, _ := cmd.Flags().GetInt("verbosity")
	stdr.SetVerbosity(verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("hdcbench")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.NewRecorder()
	report, err := bench.Run(ctx, cfg, logger, rec)
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout()); err != nil {
		return err
	}

	if cfg.Metrics.File != "" {
		if err := rec.WriteToTextfile(cfg.Metrics.File); err != nil {
			return err
		}
		logger.Info("metrics written", "path", cfg.Metrics.File)
	}
	return nil
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}

	set("dims", func() (e error) { cfg.Model.Dims, e = flags.GetInt("dims"); return })
	set("alphabet", func() (e error) { cfg.Model.Alphabet, e = flags.GetInt("alphabet"); return })
	set("classes", func() (e error) { cfg.Model.Classes, e = flags.GetInt("classes"); return })
	set("seed", func() (e error) { cfg.Model.Seed, e = flags.GetUint64("seed"); return })
	set("inputs", func() (e error) { cfg.Workload.Inputs, e = flags.GetInt("inputs"); return })
	set("length", func() (e error) { cfg.Workload.InputLength, e = flags.GetInt("length"); return })
	set("workers", func() (e error) { cfg.Runtime.Workers, e = flags.GetInt("workers"); return })
	set("max-classes", func() (e error) { cfg.Runtime.MaxClasses, e = flags.GetInt("max-classes"); return })
	set("strategies", func() (e error) { cfg.Runtime.Strategies, e = flags.GetStringSlice("strategies"); return })
	set("metrics-file", func() (e error) { cfg.Metrics.File, e = flags.GetString("metrics-file"); return })
	return err
}
