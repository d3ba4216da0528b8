// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-papers pipeline:
// extracted records, per-identifier results, and stage configuration.
package types

// Field names, used as column headers and mapping keys.
const (
	FieldTitle    = "Title"
	FieldAuthors  = "Non-academic Author(s)"
	FieldDate     = "Publication Date"
	FieldDOI      = "DOI"
	FieldPubmedID = "PubmedID"
	FieldEmail    = "Corresponding Author Email"
)

// FieldNames lists every record field in declared column order.
var FieldNames = []string{
	FieldTitle,
	FieldAuthors,
	FieldDate,
	FieldDOI,
	FieldPubmedID,
	FieldEmail,
}

// Placeholders maps each field to the literal substituted when it cannot
// be extracted.
var Placeholders = map[string]string{
	FieldTitle:    "No title available",
	FieldAuthors:  "No authors available",
	FieldDate:     "No date available",
	FieldDOI:      "No DOI available",
	FieldPubmedID: "No PMID available",
	FieldEmail:    "No email available",
}

// Record holds the fields extracted from one PubMed abstract. Every field
// carries either an extracted value or its placeholder.
type Record struct {
	Title           string `json:"Title" yaml:"Title"`
	Authors         string `json:"Non-academic Author(s)" yaml:"Non-academic Author(s)"`
	PublicationDate string `json:"Publication Date" yaml:"Publication Date"`
	DOI             string `json:"DOI" yaml:"DOI"`
	PubmedID        string `json:"PubmedID" yaml:"PubmedID"`
	Email           string `json:"Corresponding Author Email" yaml:"Corresponding Author Email"`
}

// PlaceholderRecord returns a Record with every field set to its placeholder.
func PlaceholderRecord() Record {
	var r Record
	for _, name := range FieldNames {
		r.Set(name, Placeholders[name])
	}
	return r
}

// Get returns the value of the named field, or "" for an unknown name.
func (r Record) Get(name string) string {
	switch name {
	case FieldTitle:
		return r.Title
	case FieldAuthors:
		return r.Authors
	case FieldDate:
		return r.PublicationDate
	case FieldDOI:
		return r.DOI
	case FieldPubmedID:
		return r.PubmedID
	case FieldEmail:
		return r.Email
	}
	return ""
}

// Set assigns the named field. Unknown names are ignored.
func (r *Record) Set(name, value string) {
	switch name {
	case FieldTitle:
		r.Title = value
	case FieldAuthors:
		r.Authors = value
	case FieldDate:
		r.PublicationDate = value
	case FieldDOI:
		r.DOI = value
	case FieldPubmedID:
		r.PubmedID = value
	case FieldEmail:
		r.Email = value
	}
}

// Values returns the field values in FieldNames order.
func (r Record) Values() []string {
	values := make([]string, len(FieldNames))
	for i, name := range FieldNames {
		values[i] = r.Get(name)
	}
	return values
}

// Result is the outcome of fetching and extracting one identifier: either
// a Record or the error that prevented it.
type Result struct {
	// Identifier is the PubMed ID returned by the search stage.
	Identifier string

	// Record is valid only when Err is nil.
	Record Record

	// Err records why the identifier could not be fetched.
	Err error
}

// OK reports whether the result carries a Record.
func (r Result) OK() bool {
	return r.Err == nil
}

// ResultSet is the ordered collection of results for one query run. The
// nth element corresponds to the nth identifier returned by search.
type ResultSet []Result

// Records returns the records of successful results, in order.
func (rs ResultSet) Records() []Record {
	var records []Record
	for _, r := range rs {
		if r.OK() {
			records = append(records, r.Record)
		}
	}
	return records
}

// Failed returns the number of results that carry an error.
func (rs ResultSet) Failed() int {
	n := 0
	for _, r := range rs {
		if !r.OK() {
			n++
		}
	}
	return n
}
