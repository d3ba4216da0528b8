// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search turns a free-text query into an ordered list of PubMed IDs.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned for a blank query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrMalformedResponse is returned when the ESearch payload lacks the
	// esearchresult.idlist path or cannot be decoded.
	ErrMalformedResponse = errors.New("malformed ESearch response")
)

// Searcher returns record identifiers for a query. PubMed is the production
// implementation; tests supply fakes.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// esearchResponse mirrors the part of the ESearch JSON payload we read.
// Pointers distinguish an absent path from an empty list.
type esearchResponse struct {
	Result *struct {
		Count  string    `json:"count"`
		IDList *[]string `json:"idlist"`
		Error  string    `json:"ERROR"`
	} `json:"esearchresult"`
}

// ParseIDList extracts esearchresult.idlist from an ESearch JSON body.
func ParseIDList(data []byte) ([]string, error) {
	var resp esearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: missing esearchresult", ErrMalformedResponse)
	}
	if resp.Result.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, resp.Result.Error)
	}
	if resp.Result.IDList == nil {
		return nil, fmt.Errorf("%w: missing esearchresult.idlist", ErrMalformedResponse)
	}

	ids := make([]string, 0, len(*resp.Result.IDList))
	for _, id := range *resp.Result.IDList {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
