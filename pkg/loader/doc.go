// Package loader reads framework content from a directory tree laid out as
//
//	frameworks/<framework>/manifests/<manifest>.yml
//	frameworks/<framework>/questions/<question set>/<question>.yml
//	frameworks/<framework>/messages/<block>.yml
//	frameworks/<framework>/metadata/<block>.yml
//
// Manifests list section records whose questions are given as question ids.
// Each id names a fragment in the question set, which may itself list nested
// question ids. The loader splices fragments in, compiles the result and
// caches it per framework. Watcher clears a framework's cache when its files
// change on disk.
package loader
