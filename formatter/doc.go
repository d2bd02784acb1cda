// Package formatter renders board rows for the terminal.
//
// This package is organized into:
// - wrapper.go: BoardResponse wrapping (station, query and generation time)
// - json.go: JSON serialization
// - table.go: column-aligned table output via rodaine/table
package formatter
