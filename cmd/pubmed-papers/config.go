// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-papers/internal/logging"
	"github.com/pdiddy/pubmed-papers/internal/output"
	"github.com/pdiddy/pubmed-papers/internal/secrets"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxResults = 20
	defaultUserAgent  = "pubmed-papers/0.1"
	defaultTool       = "pubmed-papers"
)

// Viper keys. Nested keys map to PUBMED_PAPERS_NCBI_API_KEY and so on.
const (
	keyBaseURL    = "ncbi.base_url"
	keyDatabase   = "ncbi.database"
	keyAPIKey     = "ncbi.api_key"
	keyEmail      = "ncbi.email"
	keyTool       = "ncbi.tool"
	keyMaxResults = "ncbi.max_results"
	keyTimeout    = "http.timeout"
	keyUserAgent  = "http.user_agent"
	keySecretsDir = "secrets_dir"
)

// bindFlags connects flags to viper keys so a flag overrides the
// environment, which overrides the config file.
func bindFlags(cmd *cobra.Command) {
	flagKeys := map[string]string{
		"base-url":    keyBaseURL,
		"api-key":     keyAPIKey,
		"email":       keyEmail,
		"max-results": keyMaxResults,
		"timeout":     keyTimeout,
	}
	for name, key := range flagKeys {
		viper.BindPFlag(key, cmd.Flags().Lookup(name))
	}
	viper.BindPFlag(keySecretsDir, cmd.PersistentFlags().Lookup("secrets-dir"))

	viper.BindEnv(keyAPIKey, "PUBMED_PAPERS_NCBI_API_KEY", "NCBI_API_KEY")
	viper.BindEnv(keyEmail, "PUBMED_PAPERS_NCBI_EMAIL", "NCBI_EMAIL")

	viper.SetDefault(keyBaseURL, types.DefaultEutilsBase)
	viper.SetDefault(keyDatabase, "pubmed")
	viper.SetDefault(keyTool, defaultTool)
	viper.SetDefault(keyUserAgent, defaultUserAgent)
}

// eutilsConfig resolves the E-utilities settings. Credentials missing from
// flags, environment, and config file fall back to the secrets directory.
func eutilsConfig(s secrets.Secrets) types.EutilsConfig {
	timeout := viper.GetDuration(keyTimeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxResults := viper.GetInt(keyMaxResults)
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	baseURL := viper.GetString(keyBaseURL)
	if baseURL == "" {
		baseURL = types.DefaultEutilsBase
	}

	return types.EutilsConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString(keyUserAgent),
		},
		BaseURL:    baseURL,
		Database:   viper.GetString(keyDatabase),
		APIKey:     s.Get(secrets.NCBIAPIKey, viper.GetString(keyAPIKey)),
		Email:      s.Get(secrets.NCBIEmail, viper.GetString(keyEmail)),
		Tool:       viper.GetString(keyTool),
		MaxResults: maxResults,
	}
}

// outputConfig reads the output flags.
func outputConfig(cmd *cobra.Command) (types.OutputConfig, error) {
	file, _ := cmd.Flags().GetString("file")
	formatName, _ := cmd.Flags().GetString("format")
	delimName, _ := cmd.Flags().GetString("delimiter")

	format, err := output.ParseFormat(formatName)
	if err != nil {
		return types.OutputConfig{}, err
	}
	delim, err := parseDelimiter(delimName)
	if err != nil {
		return types.OutputConfig{}, err
	}
	return types.OutputConfig{File: file, Delimiter: delim, Format: format}, nil
}

// parseDelimiter accepts a single character, "tab", or a literal "\t".
// Empty means the delimiter is picked from the file extension.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q: use a single character or \"tab\"", s)
	}
	return r, nil
}

// verbosityFromFlags maps --debug and --quiet to a verbosity level.
func verbosityFromFlags(cmd *cobra.Command) (logging.Verbosity, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")
	switch {
	case debug && quiet:
		return logging.Normal, fmt.Errorf("--debug and --quiet are mutually exclusive")
	case debug:
		return logging.Debug, nil
	case quiet:
		return logging.Quiet, nil
	}
	return logging.Normal, nil
}
