/*
Package server implements msgpack IPC between a symbol provider and a host
editor process.

The server reads msgpack values from stdin and writes one msgpack response per
request to stdout. Logs go to stderr. Every request carries an ID that is
echoed back, and an action:

	{"id": "1", "action": "groups"}
	{"id": "2", "action": "symbols", "g": "Arrows", "l": 10}
	{"id": "3", "action": "filter", "g": "All", "f": "heart"}
	{"id": "4", "action": "keywords", "p": "hea", "l": 5}
	{"id": "5", "action": "insert", "sym": {"name": "RIGHTWARDS ARROW", "value": "\u2192"}, "text": "a  b", "sel": {"a": 2, "h": 2}}

Symbol lists come back in display order with a 1-based rank:

	{"id": "3", "s": [{"n": "HEAVY BLACK HEART", "v": "\u2764", "cp": 10084, "r": 1}], "c": 1, "t": 41}

The insert action takes either plain document text or pandoc text tokens and
returns the document after insertion in the same shape, with the steps of the
transaction so the host can replay them on its own state.

Failures are sent as ErrorResponse and never stop the loop. Codes follow HTTP:
400 for a malformed or invalid request, 404 for an unknown action, 500 for
internal failures.
*/
package server

import (
	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/document"
	"github.com/bastiangx/symserve/pkg/provider"
)

// Request actions.
const (
	ActionHealth   = "health"
	ActionInfo     = "info"
	ActionGroups   = "groups"
	ActionSymbols  = "symbols"
	ActionFilter   = "filter"
	ActionKeywords = "keywords"
	ActionInsert   = "insert"
	ActionConfig   = "config"
)

// Request is the single request shape; fields unused by an action are ignored.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Group  string `msgpack:"g,omitempty"`
	Filter string `msgpack:"f,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`

	// insert
	Symbol     *catalog.Symbol    `msgpack:"sym,omitempty"`
	SearchTerm string             `msgpack:"term,omitempty"`
	Text       string             `msgpack:"text,omitempty"`
	Tokens     []document.Token   `msgpack:"tokens,omitempty"`
	Selection  document.Selection `msgpack:"sel"`
	RawTeX     bool               `msgpack:"raw_tex,omitempty"`

	// config
	MaxResults   *int `msgpack:"max_results,omitempty"`
	MaxFilterLen *int `msgpack:"max_filter_len,omitempty"`
}

// StatusResponse answers health and config requests.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// InfoResponse describes the active provider.
type InfoResponse struct {
	ID           string                `msgpack:"id"`
	Version      string                `msgpack:"version"`
	Provider     string                `msgpack:"provider"`
	Hint         string                `msgpack:"hint"`
	Style        provider.PreviewStyle `msgpack:"style"`
	GroupCount   int                   `msgpack:"groups"`
	SymbolCount  int                   `msgpack:"symbols"`
	MaxResults   int                   `msgpack:"max_results"`
	MaxFilterLen int                   `msgpack:"max_filter_len"`
}

// GroupsResponse lists selectable groups, "All" first.
type GroupsResponse struct {
	ID     string   `msgpack:"id"`
	Groups []string `msgpack:"g"`
}

// RankedSymbol is a symbol with its 1-based position in the result.
type RankedSymbol struct {
	Name      string `msgpack:"n"`
	Value     string `msgpack:"v"`
	Codepoint *rune  `msgpack:"cp,omitempty"`
	Rank      uint16 `msgpack:"r"`
}

// SymbolsResponse answers symbols and filter requests. TimeTaken is in
// microseconds.
type SymbolsResponse struct {
	ID        string         `msgpack:"id"`
	Symbols   []RankedSymbol `msgpack:"s"`
	Count     int            `msgpack:"c"`
	Truncated bool           `msgpack:"more,omitempty"`
	TimeTaken int64          `msgpack:"t"`
}

// KeywordsResponse holds completions for search-box input.
type KeywordsResponse struct {
	ID       string   `msgpack:"id"`
	Keywords []string `msgpack:"k"`
	Count    int      `msgpack:"c"`
}

// InsertResponse is the document after insertion. Tokens is set instead of
// Text when the request carried tokens.
type InsertResponse struct {
	ID        string             `msgpack:"id"`
	Text      string             `msgpack:"text,omitempty"`
	Tokens    []document.Token   `msgpack:"tokens,omitempty"`
	Selection document.Selection `msgpack:"sel"`
	Steps     []document.Step    `msgpack:"steps"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
