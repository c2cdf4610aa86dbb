// Package registry maps opaque numeric handles to parser instances.
//
// Host boundaries that cannot hold Go pointers (RPC surfaces, embedded
// scripting, foreign function interfaces) create a parser through the
// registry and refer to it by handle afterwards. All access goes through
// the registry's methods, which serialize operations on each lookup; the
// parsers themselves remain single-owner.
package registry
