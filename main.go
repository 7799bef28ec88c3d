// getsupabase is a CLI tool for exporting the tables of a Supabase project.
//
// Usage:
//
//	go run main.go [flags]
//	  Export every configured table (same as "export")
//	go run main.go tables [--count]
//	  List the tables to export, optionally with their row counts
//	go run main.go fields <table_name>
//	  List the columns of a table from its first row
//	go run main.go download <table_name>
//	  Export a single table
//
// Credentials: --key <service key>, or --email and --password for an admin
// user. Without either the public anon key is used. Format can be: csv, tsv,
// json, sqlite3, duckdb, parquet, xlsx (default: csv).
package main

import "getsupabase/cmd"

func main() {
	cmd.Execute()
}
