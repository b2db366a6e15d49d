// Package refs canonicalizes user supplied paths and references into the
// namespace layout the Bilrost backend expects.
//
// Asset references live under /assets/ and resource references under
// /resources/. Every function here is a pure string transform: nothing
// touches the filesystem or the network, and repeated application is
// idempotent.
package refs
