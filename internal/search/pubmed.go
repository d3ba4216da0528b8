// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pubmed-papers/internal/httputil"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

const esearchEndpoint = "esearch.fcgi"

// defaultMaxResults matches the ESearch default retmax.
const defaultMaxResults = 20

// PubMed queries the NCBI ESearch endpoint.
type PubMed struct {
	Client *http.Client
	Config types.EutilsConfig
	Log    logrus.FieldLogger
}

// Search issues one ESearch call for query and returns the PubMed IDs in
// the order NCBI ranked them. An empty list with a nil error means the
// query matched nothing.
func (p *PubMed) Search(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	maxResults := p.Config.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	params := p.Config.Params()
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", strconv.Itoa(maxResults))
	reqURL := p.Config.Endpoint(esearchEndpoint) + "?" + params.Encode()

	log := p.Log.WithField("query", query)
	log.WithField("url", httputil.Redact(reqURL)).Debug("searching PubMed")

	body, err := httputil.Get(ctx, p.Client, reqURL, p.Config.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("ESearch request: %w", err)
	}
	log.Debugf("ESearch response: %s", body)

	ids, err := ParseIDList(body)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		log.Info("no results found for the query")
	}
	return ids, nil
}
