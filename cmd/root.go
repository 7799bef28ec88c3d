package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagConfig      string
	flagURL         string
	flagAnonKey     string
	flagKey         string
	flagEmail       string
	flagPassword    string
	flagOutput      string
	flagFormat      string
	flagTables      []string
	flagPageSize    int
	flagRPS         float64
	flagTimeout     time.Duration
	flagSummary     string
	flagMetricsFile string
	flagStrict      bool
	flagLogLevel    string
	flagLogFormat   string
)

// exitFunc is replaced in tests.
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "getsupabase",
	Short: "Export Supabase tables to local files",
	Long: `A CLI tool to export the tables of a Supabase project to CSV, TSV, JSON,
SQLite, DuckDB, Parquet or XLSX files.

Without a subcommand every configured table is exported. Credentials select
how rows are read: --key uses a service key and bypasses row-level security,
--email with --password signs in as an admin user, and with neither the
public anon key is used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExport,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file")
	pf.StringVar(&flagURL, "url", "", "project URL (env: SUPABASE_URL)")
	pf.StringVar(&flagAnonKey, "anon-key", "", "public anon key (env: SUPABASE_ANON_KEY)")
	pf.StringVar(&flagKey, "key", "", "service role key, bypasses row-level security (env: SUPABASE_SERVICE_KEY)")
	pf.StringVar(&flagEmail, "email", "", "admin email for password login (env: SUPABASE_EMAIL)")
	pf.StringVar(&flagPassword, "password", "", "admin password for password login (env: SUPABASE_PASSWORD)")
	pf.StringVarP(&flagOutput, "output", "o", "exports", "output directory (env: EXPORT_OUTPUT_DIR)")
	pf.StringVarP(&flagFormat, "format", "f", "csv", "export format: csv, tsv, json, sqlite3, duckdb, parquet, xlsx")
	pf.StringSliceVar(&flagTables, "tables", nil, "comma-separated tables to export instead of the built-in list")
	pf.IntVar(&flagPageSize, "page-size", 1000, "rows requested per page")
	pf.Float64Var(&flagRPS, "rps", 0, "maximum requests per second, 0 for unlimited")
	pf.DurationVar(&flagTimeout, "timeout", 60*time.Second, "HTTP request timeout")
	pf.StringVar(&flagSummary, "summary", "", "write the run summary as JSON to this file")
	pf.StringVar(&flagMetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this file")
	pf.BoolVar(&flagStrict, "strict", false, "exit with an error when any table fails")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "text", "log format: text or json")
}
