// Package gamedata provides the embedded palette and default map, and utilities for loading them.
package gamedata

import "embed"

// dataFS embeds the palette and map files from this directory at build time.
//
//go:embed *.json *.map
var dataFS embed.FS
