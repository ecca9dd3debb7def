// Package web holds the static assets served under /web/.
//
// The compiled app.wasm is not embedded: it is built into this directory and served
// from disk.
package web

import "embed"

// Styles are the stylesheets under css/.
//
//go:embed css
var Styles embed.FS
