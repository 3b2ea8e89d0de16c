// Command lingo translates text, JSON values and HTML documents through a
// cached translation service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nivalis-labs/lingo"
	"github.com/nivalis-labs/lingo/processor"
	"github.com/nivalis-labs/lingo/provider"
	"github.com/nivalis-labs/lingo/store"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lingo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	targetLang := fs.String("lang", "", "Target language code (e.g., hi, es, ja)")
	sourceLang := fs.String("source", "en", "Source language code")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	providerName := fs.String("provider", "google", "Translation provider: google or openai")
	apiKey := fs.String("api-key", "", "Provider API key (default: GOOGLE_TRANSLATE_API_KEY or OPENAI_API_KEY env)")
	model := fs.String("model", "gpt-4o-mini", "Model to use (openai provider)")
	storeName := fs.String("store", "file", "Cache store: memory, file or redis")
	storePath := fs.String("store-path", "lingo-cache.json", "Cache file path (file store)")
	redisURL := fs.String("redis-url", "", "Redis connection URL (default: REDIS_URL env)")
	timeout := fs.Duration("timeout", 15*time.Second, "Per-request provider timeout")
	asJSON := fs.Bool("json", false, "Treat input as a JSON value and translate its string leaves")
	asHTML := fs.Bool("html", false, "Treat input as an HTML document")
	asLines := fs.Bool("lines", false, "Translate input line by line in one batch")
	clearCache := fs.Bool("clear-cache", false, "Delete every cached translation and exit")
	cacheSize := fs.Bool("cache-size", false, "Print the number of cached translations and exit")
	exportPath := fs.String("export", "", "Export cached translations to FILE and exit")
	importPath := fs.String("import", "", "Import cached translations from FILE and exit")
	showVersion := fs.Bool("version", false, "Show version")
	quiet := fs.Bool("quiet", false, "Suppress progress output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lingo.Name, lingo.FullVersion())
		if lingo.BuildDate != "unknown" && lingo.BuildDate != "" {
			fmt.Fprintf(stdout, "  built: %s\n", lingo.BuildDate)
		}
		return nil
	}

	// .env is optional; real environments provide variables directly.
	_ = godotenv.Load()

	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	ctx := context.Background()

	st, err := buildStore(*storeName, *storePath, *redisURL)
	if err != nil {
		return err
	}

	// Maintenance verbs need no provider.
	switch {
	case *clearCache:
		svc := lingo.NewService(st, nil)
		if err := svc.ClearCache(ctx); err != nil {
			return err
		}
		if !*quiet {
			fmt.Fprintln(stderr, "cache cleared")
		}
		return nil

	case *cacheSize:
		svc := lingo.NewService(st, nil)
		if err := svc.WaitReady(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, svc.CacheSize())
		return nil

	case *exportPath != "":
		if err := store.NewExporter(st).ExportToFile(ctx, *exportPath, lingo.Namespace, nil); err != nil {
			return err
		}
		if !*quiet {
			fmt.Fprintf(stderr, "exported to %s\n", *exportPath)
		}
		return nil

	case *importPath != "":
		result, err := store.NewImporter(st).ImportFromFile(ctx, *importPath)
		if err != nil {
			return err
		}
		if !*quiet {
			fmt.Fprintf(stderr, "imported %d entries (%d failed)\n", result.Imported, result.Failed)
		}
		return nil
	}

	if *targetLang == "" {
		fs.Usage()
		return fmt.Errorf("--lang is required")
	}

	p, err := buildProvider(*providerName, *apiKey, *model)
	if err != nil {
		return err
	}
	retryable := lingo.NewRetryableProvider(p, lingo.DefaultRetryConfig())

	opts := []lingo.Option{
		lingo.WithBaseLang(*sourceLang),
		lingo.WithRequestTimeout(*timeout),
		lingo.WithProcessor(processor.NewHTML()),
	}
	if !*quiet {
		opts = append(opts, lingo.WithLogger(slog.New(slog.NewTextHandler(stderr, nil))))
	}
	svc := lingo.NewService(st, retryable, opts...)

	input, err := readInput(fs.Args())
	if err != nil {
		return err
	}

	var result string
	switch {
	case *asJSON:
		var value any
		if err := json.Unmarshal([]byte(input), &value); err != nil {
			return fmt.Errorf("parsing JSON input: %w", err)
		}
		translated := svc.TranslateValue(ctx, value, *targetLang)
		data, err := json.MarshalIndent(translated, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}
		result = string(data) + "\n"

	case *asHTML:
		doc, err := svc.TranslateDocument(ctx, input, "html", *targetLang)
		if err != nil {
			return err
		}
		if !*quiet {
			fmt.Fprintf(stderr, "nodes: %d, hits: %d, fetched: %d, fallbacks: %d\n",
				doc.TotalNodes, doc.Stats.Hits, doc.Stats.Fetched, doc.Stats.Fallbacks)
		}
		result = doc.Content

	case *asLines:
		lines := strings.Split(strings.TrimRight(input, "\n"), "\n")
		batch := svc.TranslateBatch(ctx, lines, *targetLang)
		if !*quiet && !batch.Complete() {
			fmt.Fprintf(stderr, "%d lines fell back to source text\n", batch.Stats().Fallbacks)
		}
		result = strings.Join(batch.Texts(), "\n") + "\n"

	default:
		result = svc.Translate(ctx, strings.TrimRight(input, "\n"), *targetLang) + "\n"
	}

	return writeOutput(*output, result, stdout)
}

// buildStore constructs the cache backend named by the -store flag.
func buildStore(name, path, redisURL string) (store.Store, error) {
	switch name {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.NewFile(path)
	case "redis":
		url := redisURL
		if url == "" {
			url = os.Getenv("REDIS_URL")
		}
		if url == "" {
			return nil, fmt.Errorf("redis store requires --redis-url or REDIS_URL env")
		}
		return store.NewRedis(url)
	default:
		return nil, fmt.Errorf("unknown store %q (want memory, file or redis)", name)
	}
}

// buildProvider constructs the translation backend named by the -provider
// flag, resolving the API key from flags or the environment.
func buildProvider(name, apiKey, model string) (provider.Provider, error) {
	switch name {
	case "google":
		key := apiKey
		if key == "" {
			key = os.Getenv("GOOGLE_TRANSLATE_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("google provider requires --api-key or GOOGLE_TRANSLATE_API_KEY env")
		}
		return provider.NewGoogle(provider.GoogleConfig{APIKey: key}), nil
	case "openai":
		key := apiKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("openai provider requires --api-key or OPENAI_API_KEY env")
		}
		return provider.NewOpenAI(provider.OpenAIConfig{APIKey: key, Model: model}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want google or openai)", name)
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), nil
}

func writeOutput(path, content string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 - translated output is not sensitive
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
