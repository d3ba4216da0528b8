// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves the plain-text abstract of a single PubMed record.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pubmed-papers/internal/httputil"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

const efetchEndpoint = "efetch.fcgi"

// ErrEmptyRecord is returned when EFetch answers 200 with a blank body.
var ErrEmptyRecord = errors.New("empty response")

// Fetcher returns the raw text for one record identifier.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (string, error)
}

// PubMed fetches records from the NCBI EFetch endpoint.
type PubMed struct {
	Client *http.Client
	Config types.EutilsConfig
	Log    logrus.FieldLogger
}

// Fetch issues one EFetch call for id with retmode=text, rettype=abstract.
func (p *PubMed) Fetch(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("empty PubMed ID")
	}

	params := p.Config.Params()
	params.Set("id", id)
	params.Set("retmode", "text")
	params.Set("rettype", "abstract")
	reqURL := p.Config.Endpoint(efetchEndpoint) + "?" + params.Encode()

	log := p.Log.WithField("pmid", id)
	log.WithField("url", httputil.Redact(reqURL)).Debug("fetching record")

	body, err := httputil.Get(ctx, p.Client, reqURL, p.Config.UserAgent)
	if err != nil {
		return "", fmt.Errorf("EFetch request for %s: %w", id, err)
	}
	log.Debugf("EFetch response: %s", body)

	text := string(body)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("PubMed ID %s: %w", id, ErrEmptyRecord)
	}
	return text, nil
}
