// Package web embeds the invoice layout assets shipped with the binary.
package web

import "embed"

// Templates holds the HTML invoice layouts, one file per layout key.
//
//go:embed templates
var Templates embed.FS
