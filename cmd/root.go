// Copyright © 2017 Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wastore/dirsync/common"
	"github.com/wastore/dirsync/internal/config"
	"github.com/wastore/dirsync/internal/metricsserver"
	"github.com/wastore/dirsync/internal/printer"
	"github.com/wastore/dirsync/internal/syncrun"
)

var (
	threads     int
	printStats  bool
	metricsPort int
)

// glcm is the single choke point for process exit, mirroring the teacher's
// glcm (common.GetLifecycleMgr()) but scoped to this tool's three exit codes.
var glcm = common.NewLifecycle(common.NewLogger(common.LogInfo, os.Stderr))

var rootCmd = &cobra.Command{
	Use:   "dirsync SOURCE DESTINATION",
	Short: "One-way, parallel, local directory-tree synchronization",
	Long: "dirsync replicates SOURCE onto DESTINATION: files and symlinks are copied or replaced whenever " +
		"their metadata differs, directories are created as needed, and anything present only in DESTINATION is removed.",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Run{
			SourceRoot: args[0],
			TargetRoot: args[1],
			Threads:    threads,
			PrintStats: printStats,
		}
		if metricsPort != 0 {
			cfg.MetricsAddr = fmt.Sprintf(":%d", metricsPort)
		}
		if err := cfg.Validate(); err != nil {
			glcm.Exit(err.Error(), common.EExitCode_UsageError)
			return nil
		}
		runSync(cfg)
		return nil
	},
}

// runSync performs the run described in spec section 4.5, wiring the
// optional printer and metrics endpoint described in section 6 around it.
func runSync(cfg config.Run) {
	logger := common.NewLogger(common.LogInfo, os.Stderr)

	opts := syncrun.Options{
		SourceRoot: cfg.SourceRoot,
		TargetRoot: cfg.TargetRoot,
		Threads:    cfg.Threads,
	}

	reg := syncrun.NewRunRegistry()

	var mserver *metricsserver.Server
	if cfg.MetricsAddr != "" {
		var err error
		mserver, err = metricsserver.Start(cfg.MetricsAddr, reg)
		if err != nil {
			glcm.Exit(err.Error(), common.EExitCode_UsageError)
			return
		}
	}

	var p *printer.Printer
	if cfg.PrintStats {
		p = printer.Start(reg, os.Stdout)
	}

	stopCollaborators := func() {
		if p != nil {
			p.Stop()
		}
		if mserver != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mserver.Shutdown(ctx)
		}
	}

	if err := syncrun.RunWithRegistry(opts, logger, reg); err != nil {
		stopCollaborators()
		glcm.Exit(err.Error(), common.EExitCode_DestinationRoot)
		return
	}
	stopCollaborators()

	snap := reg.Snapshot()
	fmt.Fprintf(os.Stdout, "scanned=%d skipped=%d copied=%d removed=%d errors=%d\n",
		snap.ScannedEntries, snap.SkippedEntries, snap.CopiedEntries, snap.RemovedEntries, snap.Errors)
	glcm.Exit("", common.EExitCode_Success)
}

// Execute runs the root command. Called by main.main(); the single entry
// point into the cmd package, mirroring the teacher's cmd.Execute.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		glcm.Exit(err.Error(), common.EExitCode_UsageError)
	}
}

func init() {
	rootCmd.Flags().IntVar(&threads, "threads", common.DefaultThreadsPerPool, "worker count per pool (scan pool and file copy pool)")
	rootCmd.Flags().BoolVar(&printStats, "print-stats", false, "print a counter snapshot every 10 seconds")
	rootCmd.Flags().IntVar(&metricsPort, "metrics", 0, "serve Prometheus-format counters at /metrics on this port (0 disables)")
}
