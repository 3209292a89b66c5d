// Package web embeds the browser UI.
package web

import _ "embed"

// Index is the single-page form that calls POST /generate_message.
//
//go:embed index.html
var Index []byte
