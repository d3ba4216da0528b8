// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-papers/internal/logging"
	"github.com/pdiddy/pubmed-papers/internal/secrets"
)

const testAbstract = "Covid Vaccine Study\nSome body text...Author information:\nDr. Smith\n...2023 Jan 5; ...doi: 10.1/xyz PMID: %s Electronic address: a@b.com"

// eutilsServer is a fake E-utilities endpoint that records the api_key
// parameter of every request.
type eutilsServer struct {
	*httptest.Server

	mu      sync.Mutex
	apiKeys []string
}

func (s *eutilsServer) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.apiKeys...)
}

func newEutilsServer(t *testing.T, ids string) *eutilsServer {
	t.Helper()
	s := &eutilsServer{}
	record := func(r *http.Request) {
		s.mu.Lock()
		s.apiKeys = append(s.apiKeys, r.URL.Query().Get("api_key"))
		s.mu.Unlock()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Write([]byte(`{"esearchresult": {"idlist": [` + ids + `]}}`))
	})
	mux.HandleFunc("/efetch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Write([]byte(strings.Replace(testAbstract, "%s", r.URL.Query().Get("id"), 1)))
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// resetFlags restores every root flag to its default so state from one
// test does not leak into the next.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--secrets-dir", t.TempDir()}, args...))
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootWritesFile(t *testing.T) {
	ts := newEutilsServer(t, `"111", "222"`)
	path := filepath.Join(t.TempDir(), "papers.csv")

	_, _, err := execute(t, "covid vaccine", "--base-url", ts.URL, "--api-key", "flag-key", "-f", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Title,Non-academic Author(s),Publication Date,DOI,PubmedID,Corresponding Author Email", lines[0])
	assert.Contains(t, lines[1], ",111,")
	assert.Contains(t, lines[2], ",222,")

	keys := ts.keys()
	require.Len(t, keys, 3)
	for _, k := range keys {
		assert.Equal(t, "flag-key", k)
	}
}

func TestRootPrintsToConsole(t *testing.T) {
	ts := newEutilsServer(t, `"123456"`)

	stdout, _, err := execute(t, "covid vaccine", "--base-url", ts.URL)
	require.NoError(t, err)
	assert.Equal(t,
		`{Title: "Covid Vaccine Study", Non-academic Author(s): "Covid Vaccine Study Some body text...", Publication Date: "2023 Jan 5", DOI: "10.1/xyz", PubmedID: "123456", Corresponding Author Email: "a@b.com"}`+"\n",
		stdout)
}

func TestRootDebugLogsToStderr(t *testing.T) {
	ts := newEutilsServer(t, `"1"`)

	_, stderr, err := execute(t, "covid", "--base-url", ts.URL, "-d", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "debug logging is enabled")
	assert.Contains(t, stderr, "ESearch response")
}

func TestRootNoResults(t *testing.T) {
	ts := newEutilsServer(t, ``)
	path := filepath.Join(t.TempDir(), "papers.csv")

	_, _, err := execute(t, "nothing matches", "--base-url", ts.URL, "-f", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestRootSearchFailureIsNotFatal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	stdout, stderr, err := execute(t, "covid", "--base-url", ts.URL)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "search failed")
}

func TestRootRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no query", nil},
		{"two queries", []string{"a", "b"}},
		{"blank query", []string{"   "}},
		{"bad format", []string{"covid", "--format", "xml"}},
		{"bad delimiter", []string{"covid", "--delimiter", "ab"}},
		{"debug and quiet", []string{"covid", "-d", "-q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestEutilsConfigCredentialPrecedence(t *testing.T) {
	resetFlags()
	t.Setenv("NCBI_API_KEY", "")
	t.Setenv("PUBMED_PAPERS_NCBI_API_KEY", "")
	t.Setenv("NCBI_EMAIL", "")
	t.Setenv("PUBMED_PAPERS_NCBI_EMAIL", "")
	s := secrets.Secrets{secrets.NCBIAPIKey: "file-key", secrets.NCBIEmail: "file@example.com"}

	cfg := eutilsConfig(s)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "file@example.com", cfg.Email)

	t.Setenv("NCBI_API_KEY", "env-key")
	assert.Equal(t, "env-key", eutilsConfig(s).APIKey)
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", 0, false},
		{",", ',', false},
		{";", ';', false},
		{"tab", '\t', false},
		{`\t`, '\t', false},
		{"|", '|', false},
		{"ab", 0, true},
		{`"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDelimiter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerbosityFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		quiet   bool
		want    logging.Verbosity
		wantErr bool
	}{
		{"default", false, false, logging.Normal, false},
		{"debug", true, false, logging.Debug, false},
		{"quiet", false, true, logging.Quiet, false},
		{"both", true, true, logging.Normal, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.Flags().Bool("debug", tt.debug, "")
			cmd.Flags().Bool("quiet", tt.quiet, "")

			got, err := verbosityFromFlags(cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
