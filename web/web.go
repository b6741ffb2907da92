package web

import "embed"

//go:embed templates static pages
var Files embed.FS
