// Package script runs Lua build scripts against a document store.
//
// Scripts see a single "deck" table with granular mutation functions
// (add_card, add_layout, add_block, drop_material, ...) so documents can
// be assembled or templated in batch. Each run gets a fresh, sandboxed
// interpreter state: only the base, table, string, and math libraries are
// opened, and a script cannot reach the filesystem or network.
//
// Positions crossing the boundary are 1-based on the Lua side, matching
// Lua table convention, and converted at the bridge.
package script
