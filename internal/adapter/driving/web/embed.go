package web

import "embed"

// StaticFS holds the embedded static assets (stylesheet and browser scripts).
//
//go:embed static
var StaticFS embed.FS
