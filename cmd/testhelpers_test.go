package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// containsAll returns true if all substrings in subs are present in s.
func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// resetFlags restores every flag to its default so tests do not leak state
// through the package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args and returns stdout and
// stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	return out.String(), errOut.String(), err
}

// clearEnv unsets the variables config.Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "SUPABASE_") || strings.HasPrefix(name, "EXPORT_") || strings.HasPrefix(name, "LOG_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	APIKey string
	Auth   string
	Body   string
}

// fakeProject serves the REST and auth endpoints of a project from fixed
// JSON bodies and records every request.
type fakeProject struct {
	server *httptest.Server
	mu     sync.Mutex
	reqs   []recordedRequest
	// tables maps a table to the JSON body of its first page; later pages are empty.
	tables map[string]string
	// status maps a table to an error status and body.
	status map[string]int
	errors map[string]string
	counts map[string]string
	login  func(w http.ResponseWriter, r *http.Request)
}

func newFakeProject(t *testing.T) *fakeProject {
	t.Helper()
	p := &fakeProject{
		tables: map[string]string{},
		status: map[string]int{},
		errors: map[string]string{},
		counts: map[string]string{},
	}
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakeProject) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	p.mu.Lock()
	p.reqs = append(p.reqs, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		APIKey: r.Header.Get("apikey"),
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	p.mu.Unlock()

	switch {
	case r.URL.Path == "/auth/v1/token":
		if p.login != nil {
			p.login(w, r)
			return
		}
		io.WriteString(w, `{"access_token":"user-jwt","token_type":"bearer","expires_in":3600,"user":{"id":"u1","email":"admin@example.com"}}`)
	case r.URL.Path == "/auth/v1/logout":
		w.WriteHeader(http.StatusNoContent)
	case strings.HasPrefix(r.URL.Path, "/rest/v1/"):
		table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
		if code, ok := p.status[table]; ok {
			w.WriteHeader(code)
			io.WriteString(w, p.errors[table])
			return
		}
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Range", p.counts[table])
			return
		}
		if r.URL.Query().Get("offset") != "0" {
			io.WriteString(w, "[]")
			return
		}
		b, ok := p.tables[table]
		if !ok {
			b = "[]"
		}
		io.WriteString(w, b)
	default:
		http.NotFound(w, r)
	}
}

func (p *fakeProject) requests() []recordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedRequest(nil), p.reqs...)
}

func (p *fakeProject) requestsTo(path string) []recordedRequest {
	var out []recordedRequest
	for _, r := range p.requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}
