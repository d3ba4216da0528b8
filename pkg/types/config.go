// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"net/url"
	"time"
)

// DefaultEutilsBase is the NCBI E-utilities base URL. Endpoint names
// (esearch.fcgi, efetch.fcgi) are appended to it.
const DefaultEutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EutilsConfig holds settings for the search and fetch stages.
type EutilsConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities base URL, ending in a slash.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Database is the Entrez database to query (default "pubmed").
	Database string `json:"database" yaml:"database"`

	// APIKey raises the NCBI rate limit. Never hardcoded: supplied through
	// flags, environment, config file, or .secrets/.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email identifies the caller to NCBI.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool names the calling application to NCBI.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// MaxResults caps the identifiers returned by the single search call (retmax).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Endpoint joins the base URL and an endpoint name such as "esearch.fcgi".
func (c EutilsConfig) Endpoint(name string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultEutilsBase
	}
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return base + name
}

// Params returns the query parameters shared by every E-utilities call:
// the database and whichever credentials are configured.
func (c EutilsConfig) Params() url.Values {
	db := c.Database
	if db == "" {
		db = "pubmed"
	}
	params := url.Values{"db": {db}}
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	if c.Email != "" {
		params.Set("email", c.Email)
	}
	if c.Tool != "" {
		params.Set("tool", c.Tool)
	}
	return params
}

// OutputFormat selects how records are written to the console.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// OutputConfig holds settings for the output stage.
type OutputConfig struct {
	// File is the delimited output path. Empty means print to the console.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Delimiter separates fields in File. Zero picks one from the extension.
	Delimiter rune `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`

	// Format selects the console rendering when File is empty.
	Format OutputFormat `json:"format" yaml:"format"`
}
