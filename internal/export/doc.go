// Package export transforms a finalized document into the versioned
// interchange schema consumed by the external viewer, writes interchange
// files under the slugified filename convention, and validates interchange
// bytes produced elsewhere.
//
// The transformer is total: every content variant, including tags this
// build has never seen, passes through as an opaque record rather than
// failing the export.
package export
