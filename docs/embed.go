// Copyright © 2026 The rexpr authors

// Package docs embeds the rexpr language reference for use by the CLI.
package docs

import _ "embed"

//go:embed lang.md
var LangGuide string
