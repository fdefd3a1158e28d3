// Package cli parses command-line arguments into an app.Config. It owns the
// usage text and the precedence rule that explicit flags override config
// file and environment values.
package cli
