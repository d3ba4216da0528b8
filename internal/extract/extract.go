// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls structured fields out of a PubMed plain-text abstract.
//
// Each field is found by an independent pattern search over the full text.
// A field that cannot be found gets its placeholder; a field whose
// extractor fails gets its placeholder too, and the failure is reported
// without discarding the other fields.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// authorMarker introduces the affiliation block that follows the author list.
const authorMarker = "Author information:"

var (
	// dateRe matches citation dates like "2023 Jan 5;".
	dateRe = regexp.MustCompile(`(\d{4} \w+ \d{1,2});`)

	doiRe   = regexp.MustCompile(`doi:\s*(\S+)`)
	pmidRe  = regexp.MustCompile(`PMID:\s*(\d+)`)
	emailRe = regexp.MustCompile(`Electronic address:\s*(\S+)`)

	// paragraphRe splits text on blank lines.
	paragraphRe = regexp.MustCompile(`\n[ \t\r]*\n`)
)

// rule extracts one field. find returns "" when the field is absent.
type rule struct {
	field string
	find  func(text string) string
}

// rules lists the field extractors in declared field order.
var rules = []rule{
	{types.FieldTitle, findTitle},
	{types.FieldAuthors, findAuthors},
	{types.FieldDate, submatch(dateRe)},
	{types.FieldDOI, token(submatch(doiRe))},
	{types.FieldPubmedID, submatch(pmidRe)},
	{types.FieldEmail, token(submatch(emailRe))},
}

// FieldError reports a field extractor that failed outright, as opposed to
// a field that was simply absent.
type FieldError struct {
	Field string
	Cause error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Field, e.Cause)
}

func (e *FieldError) Unwrap() error { return e.Cause }

// Extract returns the record for text. Every field holds a value or its
// placeholder; an empty text yields all placeholders.
func Extract(text string) types.Record {
	rec, _ := Fields(text)
	return rec
}

// Fields is Extract that also reports failed field extractors. The record
// is always complete: failed fields carry their placeholders. The error,
// when non-nil, joins one *FieldError per failed field.
func Fields(text string) (types.Record, error) {
	rec := types.PlaceholderRecord()
	var errs []error
	for _, r := range rules {
		value, err := apply(r, text)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if value != "" {
			rec.Set(r.field, value)
		}
	}
	return rec, errors.Join(errs...)
}

func apply(r rule, text string) (value string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &FieldError{Field: r.field, Cause: fmt.Errorf("%v", p)}
		}
	}()
	return strings.TrimSpace(r.find(text)), nil
}

// findTitle returns the first non-blank line, provided a line break follows it.
func findTitle(text string) string {
	text = strings.TrimLeft(text, " \t\r\n")
	idx := strings.IndexByte(text, '\n')
	if idx < 0 {
		return ""
	}
	return text[:idx]
}

// findAuthors returns the paragraph immediately preceding the author
// information marker, with its line breaks collapsed.
func findAuthors(text string) string {
	idx := strings.Index(text, authorMarker)
	if idx < 0 {
		return ""
	}
	paragraphs := paragraphRe.Split(text[:idx], -1)
	for i := len(paragraphs) - 1; i >= 0; i-- {
		if p := strings.Join(strings.Fields(paragraphs[i]), " "); p != "" {
			return p
		}
	}
	return ""
}

// submatch returns a finder yielding the first capture group of re.
func submatch(re *regexp.Regexp) func(string) string {
	return func(text string) string {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return ""
		}
		return m[1]
	}
}

// token strips sentence punctuation that PubMed appends after DOIs and
// addresses ("doi: 10.1/xyz." or "a@b.com.").
func token(find func(string) string) func(string) string {
	return func(text string) string {
		return strings.TrimRight(find(text), ".,;")
	}
}
