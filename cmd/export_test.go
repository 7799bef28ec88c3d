package cmd

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExport_SuppliersCSV(t *testing.T) {
	clearEnv(t)
	p := newFakeProject(t)
	p.tables["suppliers"] = `[{"id":1,"name":"A"},{"id":2,"name":"B"},{"id":3,"name":"C"}]`
	dir := t.TempDir()

	out, _, err := executeCommand(t, "--url", p.server.URL, "--output", dir, "--tables", "suppliers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "suppliers.csv"))
	if err != nil {
		t.Fatalf("expected suppliers.csv: %v", err)
	}
	if string(data) != "id,name\n1,A\n2,B\n3,C\n" {
		t.Errorf("unexpected csv: %q", data)
	}
	if !containsAll(out, []string{"Exporting table 'suppliers'... ", "3 rows written", "exported=1, empty=0, failed=0, rows=3"}) {
		t.Errorf("unexpected output: %s", out)
	}
	if n := len(p.requestsTo("/rest/v1/suppliers")); n != 1 {
		t.Errorf("expected one page request, got %d", n)
	}
}

func TestExport_SubcommandFailedTableKeepsExitZero(t *testing.T) {
	clearEnv(t)
	p := newFakeProject(t)
	p.tables["suppliers"] = `[{"id":1}]`
	p.status["activity_logs"] = http.StatusForbidden
	p.errors["activity_logs"] = `{"code":"42501","message":"permission denied for table activity_logs"}`
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summary.json")
	metricsPath := filepath.Join(dir, "export.prom")

	out, _, err := executeCommand(t, "export", "--url", p.server.URL, "--output", dir,
		"--tables", "activity_logs,suppliers", "--summary", summaryPath, "--metrics-file", metricsPath)
	if err != nil {
		t.Fatalf("a failed table should not fail the run without --strict: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "activity_logs.csv")); !os.IsNotExist(err) {
		t.Error("activity_logs.csv should not exist")
	}
	if !containsAll(out, []string{"SKIP (", "activity_logs:", permissionHint}) {
		t.Errorf("expected skip line and hint, got: %s", out)
	}

	var summary struct {
		Results []struct {
			Table  string `json:"table"`
			Status string `json:"status"`
		} `json:"results"`
	}
	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("invalid summary: %v", err)
	}
	if len(summary.Results) != 2 || summary.Results[0].Status != "failed" || summary.Results[1].Status != "ok" {
		t.Errorf("unexpected summary: %+v", summary)
	}

	metrics, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics not written: %v", err)
	}
	if !containsAll(string(metrics), []string{`getsupabase_export_tables_total{status="failed"} 1`, `getsupabase_export_rows_total{table="suppliers"} 1`}) {
		t.Errorf("unexpected metrics: %s", metrics)
	}
}

func TestExport_Strict(t *testing.T) {
	clearEnv(t)
	p := newFakeProject(t)
	p.status["a"] = http.StatusForbidden
	p.status["b"] = http.StatusNotFound
	_, _, err := executeCommand(t, "--url", p.server.URL, "--output", t.TempDir(), "--tables", "a,b", "--strict")
	if err == nil || !strings.Contains(err.Error(), "2 of 2 tables failed") {
		t.Errorf("expected strict failure, got %v", err)
	}
}

func TestExport_JSONFormat(t *testing.T) {
	clearEnv(t)
	p := newFakeProject(t)
	p.tables["branches"] = `[{"z":1,"a":{"nested":[1,2]}}]`
	dir := t.TempDir()
	if _, _, err := executeCommand(t, "--url", p.server.URL, "--output", dir, "--tables", "branches", "--format", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "branches.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[\n{\"z\":1,\"a\":{\"nested\":[1,2]}}\n]\n" {
		t.Errorf("unexpected json: %q", data)
	}
}

func TestExport_OutputDirIsAFile(t *testing.T) {
	clearEnv(t)
	p := newFakeProject(t)
	file := filepath.Join(t.TempDir(), "taken")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := executeCommand(t, "--url", p.server.URL, "--output", file, "--tables", "a")
	if err == nil || !strings.Contains(err.Error(), "output directory") {
		t.Errorf("expected output directory error, got %v", err)
	}
}
