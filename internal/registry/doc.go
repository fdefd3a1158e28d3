// Package registry provides the fragment library: the central store of
// hardware-interface fragment definitions that robot descriptions may
// reference.
//
// The Registry is populated once at startup from a directory of .hcl library
// files and is read-only afterward. Loading is all-or-nothing: a library with
// a duplicate role, an unknown role tag, or a definition missing its source
// or driver fails to load wholly, preventing a class of half-configured
// composition errors at the point of use.
package registry
