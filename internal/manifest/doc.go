// Package manifest provides the registry of pinned external source
// dependencies required to build the full robot software stack.
//
// A manifest is one immutable, ordered mapping of dependency name to
// {source type, url, revision}, loaded from a YAML file. Several manifest
// variants coexist side by side (e.g. a standard and a differential-drive
// build), each authored as a complete standalone snapshot — variants are
// never diffed, merged, or overlaid.
//
// Construction is all-or-nothing: a file with a duplicated dependency name
// or an entry missing a required field fails to load wholly, and none of its
// entries become retrievable.
package manifest
