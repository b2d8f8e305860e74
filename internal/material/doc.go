// Package material manages the catalog of drop templates.
//
// A Library holds Material entries keyed by id; Instantiate stamps a
// fresh Block from an entry's default content and styles, optionally
// merging per-drop overrides into the content payload by JSON path. A
// DirLibrary additionally loads its catalog from *.json files in a
// directory and hot-reloads when those files change.
package material
