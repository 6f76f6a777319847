package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Govind-619/storefront/logstats"
	"github.com/spf13/cobra"
)

var logStatsDate string

var logStatsCmd = &cobra.Command{
	Use:   "logstats [file...]",
	Short: "Summarize checkout and error activity from the JSON logs",
	Long: `logstats reads the given log files, or today's file under LOG_DIR
when none are given, and prints checkout, coupon and error counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files := args
		if len(files) == 0 {
			date := logStatsDate
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			files = []string{filepath.Join(cfg.LogDir, fmt.Sprintf("storefront-%s.log", date))}
		}

		stats := logstats.New()
		for _, name := range files {
			f, err := os.Open(name)
			if err != nil {
				return fmt.Errorf("error opening log file %s: %w", name, err)
			}
			err = stats.Analyze(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("error reading %s: %w", name, err)
			}
		}
		stats.Report(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	logStatsCmd.Flags().StringVar(&logStatsDate, "date", "", "log date, YYYY-MM-DD (default today)")
}
