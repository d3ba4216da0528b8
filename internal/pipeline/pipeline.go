// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a query run: search, then fetch and extract each
// identifier in order, then write the result set.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pubmed-papers/internal/extract"
	"github.com/pdiddy/pubmed-papers/internal/fetch"
	"github.com/pdiddy/pubmed-papers/internal/output"
	"github.com/pdiddy/pubmed-papers/internal/search"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Pipeline wires the stages together. It holds no per-run state.
type Pipeline struct {
	Searcher search.Searcher
	Fetcher  fetch.Fetcher
	Log      logrus.FieldLogger
}

// Collect runs search, then fetch and extract for every identifier, one at
// a time and in search order. Search and fetch failures are logged and
// degrade to an empty result set or a failed result; only context
// cancellation is returned as an error.
func (p *Pipeline) Collect(ctx context.Context, query string) (types.ResultSet, error) {
	log := p.Log.WithField("query", query)
	log.Debug("searching for papers")

	ids, err := p.Searcher.Search(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.WithError(err).Error("search failed")
		ids = nil
	}
	log.Infof("found %d record(s)", len(ids))

	rs := make(types.ResultSet, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rs = append(rs, p.collectOne(ctx, id))
	}

	if failed := rs.Failed(); failed > 0 {
		log.Warnf("%d of %d record(s) could not be fetched", failed, len(rs))
	}
	return rs, nil
}

func (p *Pipeline) collectOne(ctx context.Context, id string) types.Result {
	log := p.Log.WithField("pmid", id)
	log.Debug("fetching details")

	text, err := p.Fetcher.Fetch(ctx, id)
	if err != nil {
		log.WithError(err).Error("fetch failed")
		return types.Result{Identifier: id, Err: err}
	}

	rec, err := extract.Fields(text)
	if err != nil {
		log.WithError(err).Warn("some fields could not be extracted")
	}
	return types.Result{Identifier: id, Record: rec}
}

// Run collects the results for query and writes them: to cfg.File as
// delimited text when set, otherwise to w in cfg.Format.
func (p *Pipeline) Run(ctx context.Context, query string, cfg types.OutputConfig, w io.Writer) (types.ResultSet, error) {
	rs, err := p.Collect(ctx, query)
	if err != nil {
		return nil, err
	}

	if cfg.File != "" {
		if err := output.WriteCSVFile(cfg.File, rs, cfg.Delimiter); err != nil {
			return rs, fmt.Errorf("writing %s: %w", cfg.File, err)
		}
		p.Log.WithField("file", cfg.File).Infof("wrote %d record(s)", len(rs))
		return rs, nil
	}

	if err := output.Print(w, rs, cfg.Format); err != nil {
		return rs, fmt.Errorf("printing results: %w", err)
	}
	return rs, nil
}
