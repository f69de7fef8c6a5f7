package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mr-aymann/docuRAG"
	"github.com/mr-aymann/docuRAG/broadcast"
	"github.com/mr-aymann/docuRAG/crawl"
	"github.com/mr-aymann/docuRAG/elasticsearch"
	"github.com/mr-aymann/docuRAG/gemini"
	"github.com/mr-aymann/docuRAG/goquery"
	"github.com/mr-aymann/docuRAG/htmltomarkdown"
	dochttp "github.com/mr-aymann/docuRAG/http"
	docslog "github.com/mr-aymann/docuRAG/slog"
	"github.com/mr-aymann/docuRAG/sqlite"
	"github.com/mr-aymann/docuRAG/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// A missing .env is fine; the environment may be set another way.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Elasticsearch configuration.
	ESAddr    string
	IndexName string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults from the environment.
func NewMain() *Main {
	return &Main{
		DBPath:    defaultDBPath(),
		ESAddr:    envOr("DOCURAG_ES_ADDR", "http://localhost:9200"),
		IndexName: envOr("DOCURAG_INDEX", elasticsearch.DefaultIndexName),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docurag"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docurag --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCURAG_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel()}))

	deps.DB = m.DB
	deps.Sites = sqlite.NewSiteService(m.DB)
	deps.Statuses = sqlite.NewCrawlStatusService(m.DB)

	index, err := elasticsearch.NewIndex(elasticsearch.Config{
		Addresses: []string{m.ESAddr},
		Index:     m.IndexName,
	})
	if err != nil {
		return err
	}
	vectorIndex := docslog.NewLoggingIndex(index, logger)

	// Commands touching Gemini need an API key.
	var genaiClient *genai.Client
	if cmd == "add" || cmd == "chat" {
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GOOGLE_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GOOGLE_API_KEY not set")
		}

		genaiClient, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GOOGLE_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
	}

	if cmd == "add" {
		if err := index.EnsureIndex(ctx); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCURAG_ES_ADDR if Elasticsearch is not at %s\n", m.ESAddr)
			return err
		}

		deps.Events = broadcast.NewHub()

		fetcher := dochttp.NewFetcher()
		defer fetcher.Close()
		limiter := crawl.NewDomainLimiter(2.0)

		discoverer := &crawl.Discoverer{
			Sitemaps: dochttp.NewSitemapService(nil),
			Fetcher:  fetcher,
			Links:    goquery.NewLinkExtractor(),
			Limiter:  limiter,
		}

		var extractor docurag.Extractor = goquery.NewExtractor()
		if cli.Add.Extractor == "article" {
			extractor = trafilatura.NewExtractor()
		}

		deps.Ingestor = &crawl.Ingestor{
			Sites:      deps.Sites,
			Statuses:   deps.Statuses,
			Discoverer: docslog.NewLoggingDiscoverer(discoverer, logger),
			Pages: crawl.NewPool(fetcher,
				crawl.WithConcurrency(cli.Add.Concurrency),
				crawl.WithLimiter(limiter),
			),
			Extractor: extractor,
			Converter: htmltomarkdown.NewConverter(),
			Chunker:   &docurag.Chunker{},
			Embedder:  gemini.NewEmbedder(genaiClient),
			Index:     vectorIndex,
			Notifier:  docurag.MultiNotifier{docslog.NewNotifier(logger), deps.Events},
			MaxPages:  cli.Add.MaxPages,
		}
	}

	if cmd == "delete" || cmd == "clear" {
		deps.Ingestor = &crawl.Ingestor{
			Sites:    deps.Sites,
			Statuses: deps.Statuses,
			Index:    vectorIndex,
			Notifier: docslog.NewNotifier(logger),
		}
	}

	if cmd == "chat" {
		retriever := docurag.NewHybridRetriever(vectorIndex, gemini.NewEmbedder(genaiClient))
		deps.Assistant = gemini.NewAssistant(genaiClient, retriever)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("DOCURAG_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docurag.db"
	}
	dir := filepath.Join(home, ".docurag")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docurag.db")
}

func logLevel() slog.Level {
	if strings.EqualFold(os.Getenv("DOCURAG_LOG"), "debug") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
