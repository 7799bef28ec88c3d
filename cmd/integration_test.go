//go:build integration
// +build integration

package cmd

import (
	"context"
	"os"
	"testing"

	"getsupabase/restclient"
)

// Integration test: requires a reachable project and SUPABASE_TEST_URL and
// SUPABASE_TEST_KEY set.
func TestIntegration_Count(t *testing.T) {
	url := os.Getenv("SUPABASE_TEST_URL")
	key := os.Getenv("SUPABASE_TEST_KEY")
	if url == "" || key == "" {
		t.Skip("SUPABASE_TEST_URL or SUPABASE_TEST_KEY not set; skipping integration test")
	}
	table := os.Getenv("SUPABASE_TEST_TABLE")
	if table == "" {
		table = "suppliers"
	}
	client, err := restclient.New(url, key, restclient.Options{})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := client.Count(context.Background(), table); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
}
