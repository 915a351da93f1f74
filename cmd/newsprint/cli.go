package main

import (
	"context"
	"io"

	"github.com/pkarbownik/newsprint"
	"github.com/pkarbownik/newsprint/pipeline"
	"github.com/pkarbownik/newsprint/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Articles  newsprint.ArticleService
	Fetcher   newsprint.Fetcher
	Extractor newsprint.Extractor
	Pipeline  *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Fetch   FetchCmd   `cmd:"" help:"Fetch, extract, and store articles"`
	Extract ExtractCmd `cmd:"" help:"Extract a single page and print the result without storing"`
	List    ListCmd    `cmd:"" help:"List stored articles"`
	Show    ShowCmd    `cmd:"" help:"Show a stored article"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored article"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string `arg:"" help:"Article URLs, or a feed URL with --feed"`
	Feed        bool     `short:"F" help:"Treat URLs as RSS/Atom feeds and process their entries"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1.0" help:"Max requests per second per domain"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source string `arg:"" help:"Page URL or local HTML file to extract"`
	Base   string `help:"Base URL for resolving relative links when reading a file"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	URL    string `help:"Filter by exact article URL"`
	Limit  int    `default:"0" help:"Maximum number of articles to show"`
	Offset int    `default:"0" help:"Number of articles to skip"`
	ByURL  bool   `help:"Sort by URL instead of fetch time"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Article ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}
