// Package query compiles document queries and runs them over in-memory
// documents.
//
// A query is written either as a string:
//
//	title: "Hello%" AND (year: >= "2020" OR NOT draft: "true")
//
// or as its JSON form:
//
//	{"type": "complex", "operator": "AND", "query_list": [
//	    {"type": "simple", "key": "title", "value": "Hello%"}
//	]}
//
// Create turns either form into a tree of *Simple and *Complex nodes. Match
// evaluates a tree against one document and Exec runs the whole result
// pipeline (filter, sort, limit, select) over a slice of documents.
//
// # Documents
//
// A Document is a decoded JSON object. A field may hold a scalar, an array
// (multi-valued: equality holds if any element matches) or a rich value of the
// form {"content": x, ...}, which is compared as x.
//
// # Key schemas
//
// A KeySchema maps logical keys to the field they read from, an optional cast
// applied to both sides of a comparison, and an optional replacement for
// equality. See KeySchema for details.
//
// # Errors
//
// Configuration problems wrap ErrConfig, malformed strings wrap ErrParse and
// failures inside cast or match functions wrap ErrMatch:
//
//	q, err := query.Create(`title: "a`, nil)
//	if errors.Is(err, query.ErrParse) {
//	    // report the offset from the *ParseError
//	}
package query
