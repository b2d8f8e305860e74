// Package document defines the typed node model for multi-slide documents.
//
// A Document owns an ordered list of Cards. Each Card holds an ordered
// sequence of Layouts and Blocks; Layouts nest, Blocks are leaves. Block
// payloads are a closed content union discriminated by a "type" tag, with
// an opaque fallback so unknown tags survive a round trip untouched.
//
// The package is a pure data contract: no I/O, no mutation helpers beyond
// deep cloning. Tree traversal and editing live in internal/engine/tree.
package document
