// Package main is the entry point for the deckforge CLI.
//
// It loads a document (or starts a fresh one), optionally runs a Lua
// build script against it, and writes the interchange file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dshills/deckforge/internal/config"
	"github.com/dshills/deckforge/internal/document"
	"github.com/dshills/deckforge/internal/engine"
	"github.com/dshills/deckforge/internal/export"
	"github.com/dshills/deckforge/internal/material"
	"github.com/dshills/deckforge/internal/script"
	"github.com/dshills/deckforge/internal/store"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		scriptPath  string
		outDir      string
		title       string
		logLevel    string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&scriptPath, "script", "", "Lua build script to run against the document")
	flag.StringVar(&outDir, "out", "", "Export directory (overrides config)")
	flag.StringVar(&title, "title", "", "Title for a fresh document")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Deckforge - slide document builder\n\n")
		fmt.Fprintf(os.Stderr, "Usage: deckforge [options] [document.json]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  deckforge doc.json                 Export an existing document\n")
		fmt.Fprintf(os.Stderr, "  deckforge -script build.lua        Build a document from a script\n")
		fmt.Fprintf(os.Stderr, "  deckforge -title Demo -out ./dist  Export a fresh document\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("Deckforge %s\nCommit: %s\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if outDir != "" {
		cfg.Export.Dir = outDir
	}

	log := newLogger(cfg.Log.Level)

	lib, closeLib, err := openMaterials(cfg.Materials.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open material catalog: %v\n", err)
		return 1
	}
	defer closeLib()

	eng := engine.New(
		engine.WithTitle(orDefault(title, engine.DefaultTitle)),
		engine.WithMaxUndoEntries(cfg.History.MaxEntries),
	)
	st := store.New(
		store.WithEngine(eng),
		store.WithMaterials(lib),
		store.WithLogger(log),
	)

	if input := flag.Arg(0); input != "" {
		doc, err := readDocument(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := st.Load(doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if scriptPath != "" {
		if err := script.NewRunner(st).RunFile(scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	var opts []export.Option
	if cfg.Export.Version != "" {
		opts = append(opts, export.WithVersion(cfg.Export.Version))
	}
	path, err := export.Write(cfg.Export.Dir, st.Document(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(path)
	return 0
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

func openMaterials(dir string) (*material.Library, func(), error) {
	if dir == "" {
		return material.NewLibrary(), func() {}, nil
	}
	lib, err := material.OpenDir(dir)
	if err != nil {
		return nil, nil, err
	}
	return lib.Library, func() { lib.Close() }, nil
}

func readDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	doc := &document.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return doc, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
