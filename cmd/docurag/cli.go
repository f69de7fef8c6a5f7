package main

import (
	"context"
	"io"

	"github.com/mr-aymann/docuRAG"
	"github.com/mr-aymann/docuRAG/broadcast"
	"github.com/mr-aymann/docuRAG/crawl"
	"github.com/mr-aymann/docuRAG/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Sites     docurag.SiteService
	Statuses  docurag.CrawlStatusService
	Ingestor  *crawl.Ingestor
	Assistant docurag.Assistant

	// Events carries crawl events to the terminal progress display.
	Events *broadcast.Hub
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Add    AddCmd    `cmd:"" help:"Add and ingest a documentation site"`
	List   ListCmd   `cmd:"" help:"List all registered sites"`
	Status StatusCmd `cmd:"" help:"Show crawl status for a site"`
	Delete DeleteCmd `cmd:"" help:"Delete a site and its chunks"`
	Clear  ClearCmd  `cmd:"" help:"Delete every site and all stored chunks"`
	Chat   ChatCmd   `cmd:"" help:"Ask a question over the ingested documentation"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name        string `arg:"" help:"Site name"`
	URL         string `arg:"" help:"Documentation site URL"`
	MaxPages    int    `short:"m" default:"100" help:"Maximum pages to ingest"`
	Concurrency int    `short:"c" default:"5" help:"Concurrent fetch limit"`
	Extractor   string `default:"css" enum:"css,article" help:"Content extraction strategy: css selectors or article-mode boilerplate removal"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	SiteID string `arg:"" help:"Site ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	SiteID string `arg:"" help:"Site ID"`
	Force  bool   `help:"Confirm deletion"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm clearing everything"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
	NoStream bool   `help:"Print the full answer instead of streaming tokens"`
}
