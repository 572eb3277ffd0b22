package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"presence-analyzer/adapters/excel"
	"presence-analyzer/adapters/remote"
	"presence-analyzer/domain/core"
	"presence-analyzer/domain/presence"
	"presence-analyzer/internal"
	"presence-analyzer/internal/analysis/weekday"
	"presence-analyzer/internal/config"
	apperrors "presence-analyzer/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "presence-cli",
		Short:         "Maintenance commands for the presence analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level: ERROR|WARN|INFO|DEBUG")

	newLogger := func() (*internal.Logger, error) {
		return internal.NewLogger(internal.ParseLogLevel(logLevel))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()
		return loadDotEnv(logger)
	}

	rootCmd.AddCommand(
		newSyncUsersCmd(newLogger),
		newCheckCmd(newLogger),
		newReportCmd(newLogger),
	)
	return rootCmd
}

// loadDotEnv reads .env from the working directory. A missing file is not an
// error; one that exists but does not parse is.
func loadDotEnv(logger *internal.Logger) error {
	err := godotenv.Load()
	if err == nil {
		logger.Debug("[CLI] loaded .env")
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("[CLI] no .env file found, using system environment variables")
		return nil
	}
	return apperrors.ConfigInvalid(fmt.Sprintf(".env: %v", err))
}

func newSyncUsersCmd(newLogger func() (*internal.Logger, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-users",
		Short: "Download the users XML file from the intranet",
		Long: `Download USERS_XML_URL and atomically replace USERS_XML_FILE.

The existing file is kept when the download fails. Meant to run from cron:
  */30 * * * * presence-cli sync-users`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSync()
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Sync.Timeout)
			defer cancel()

			fetcher := remote.NewUsersFetcher(cfg.Sync.UsersXMLURL, cfg.Data.UsersXMLFile, cfg.Sync.Timeout, logger)
			if err := fetcher.Sync(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", cfg.Data.UsersXMLFile)
			return nil
		},
	}
}

func newCheckCmd(newLogger func() (*internal.Logger, error)) *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "check [presence-file]",
		Short: "Parse a presence file and report skipped and malformed rows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := openReader(args, sheet, newLogger)
			if err != nil {
				return err
			}
			start := time.Now()
			table, stats, err := reader.ReadWithStats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rows:      %d\n", stats.Rows)
			fmt.Fprintf(out, "Loaded:    %d\n", stats.Loaded)
			fmt.Fprintf(out, "Skipped:   %d\n", stats.Skipped)
			fmt.Fprintf(out, "Malformed: %d\n", stats.Malformed)
			fmt.Fprintf(out, "Users:     %d\n", len(table))
			fmt.Fprintf(out, "Parsed in  %s\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read from an .xlsx file (default: first sheet)")
	return cmd
}

// reportRow is one weekday of the report command's JSON output
type reportRow struct {
	Weekday  string                 `json:"weekday"`
	Samples  int                    `json:"samples"`
	Total    int                    `json:"total"`
	Mean     float64                `json:"mean"`
	StartEnd presence.StartEnd      `json:"start_end"`
	Band     presence.DeviationBand `json:"band"`
}

func newReportCmd(newLogger func() (*internal.Logger, error)) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report <user-id> [presence-file]",
		Short: "Print the weekday statistics of one user",
		Example: `  presence-cli report 10
  presence-cli report 10 runtime/data/sample_data.csv --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := core.ParseUserID(args[0])
			if err != nil {
				return apperrors.InvalidInput(err.Error())
			}
			reader, err := openReader(args[1:], "", newLogger)
			if err != nil {
				return err
			}
			table, err := reader.ReadPresence(cmd.Context())
			if err != nil {
				return err
			}
			records, ok := table.Lookup(userID)
			if !ok {
				return core.NewUserNotFoundError(userID)
			}
			report, err := weekday.Analyze(records)
			if err != nil {
				return err
			}

			rows := make([]reportRow, presence.DaysInWeek)
			for i := range rows {
				rows[i] = reportRow{
					Weekday:  presence.WeekdayAbbrev(i),
					Samples:  report.Stats[i].Samples,
					Total:    report.Totals[i],
					Mean:     report.Means[i],
					StartEnd: report.StartEnd[i],
					Band:     report.Bands[i],
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tDAYS\tTOTAL(s)\tMEAN(s)\tSTART\tEND\tSTART BAND\tEND BAND")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\t%d\t%.0f\t%s\t%s\t%s-%s\t%s-%s\n",
					r.Weekday, r.Samples, r.Total, r.Mean,
					r.StartEnd.Start, r.StartEnd.End,
					r.Band.Start[0], r.Band.Start[1], r.Band.End[0], r.Band.End[1])
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

// openReader uses the file given on the command line, falling back to DATA_CSV
func openReader(args []string, sheet string, newLogger func() (*internal.Logger, error)) (*excel.DataReader, error) {
	path := os.Getenv("DATA_CSV")
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("no presence file given and DATA_CSV is not set")
	}
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	readerConfig := excel.DefaultReaderConfig()
	readerConfig.Sheet = sheet
	return excel.NewDataReader(path, readerConfig, logger), nil
}
