// Provide handler types for the host embedding a terminal.
//
// A host rarely cares about every event the grid produces, so each
// callback lives in its own single-method interface. The host passes one
// value as terminal.Options.Host and the terminal detects which handlers
// it implements with a type assertion.
//
// E.g:
//
// - handler.BellHandler with Bell method
//
// - handler.TitleHandler with SetTitle method
package handler
