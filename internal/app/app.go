// Package app wires the table sources, parser, cart builder, and output
// sinks into the end-to-end shopping-cart run.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"ingredient-finder/internal/cart"
	"ingredient-finder/internal/recipe"
)

// TableSource supplies the raw ingredient rows, from the spreadsheet or
// anywhere else.
type TableSource interface {
	LoadTable(ctx context.Context) ([][]string, error)
}

// Cache persists the raw rows locally and serves them back when the remote
// source is unavailable.
type Cache interface {
	Load() ([][]string, error)
	Save(rows [][]string) error
}

// Clipboard is the subset of the system clipboard the app needs.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// App holds the application's dependencies.
type App struct {
	remote TableSource
	cache  Cache
	clip   Clipboard
	out    io.Writer
}

// NewApp creates and initializes a new App instance.
func NewApp(remote TableSource, cache Cache, clip Clipboard, out io.Writer) *App {
	return &App{
		remote: remote,
		cache:  cache,
		clip:   clip,
		out:    out,
	}
}

// BuildCart fetches the ingredient table (falling back to the cache on
// remote failure, writing through to it on success), parses it, and merges
// the queried recipes. It returns the rendered cart text and any non-fatal
// merge warnings.
func (a *App) BuildCart(ctx context.Context, query []string) (string, []string, error) {
	rows, err := a.remote.LoadTable(ctx)
	if err != nil {
		log.Printf("Failed to load spreadsheet, falling back to local cache: %v", err)
		rows, err = a.cache.Load()
		if err != nil {
			return "", nil, fmt.Errorf("failed to load ingredient table: %w", err)
		}
	} else if err := a.cache.Save(rows); err != nil {
		return "", nil, fmt.Errorf("failed to update local cache: %w", err)
	}

	table, err := recipe.ParseTable(rows)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse ingredient table: %w", err)
	}

	built, err := cart.Build(query, table)
	if err != nil {
		return "", nil, err
	}
	return Render(built.Rows), built.Warnings, nil
}

// Run builds the shopping cart for the queried recipes, copies the rendered
// table to the clipboard, and echoes it to the output writer.
func (a *App) Run(ctx context.Context, query []string) error {
	fmt.Fprintf(a.out, "Using query: %v\n", query)

	text, warnings, err := a.BuildCart(ctx, query)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		log.Printf("Warning: %s", warning)
	}

	if err := a.clip.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy cart to clipboard: %w", err)
	}
	fmt.Fprint(a.out, text)
	fmt.Fprintln(a.out, "Copied to clipboard")
	return nil
}

// QueryFromClipboard reads the fallback query, one recipe name per line.
func (a *App) QueryFromClipboard() ([]string, error) {
	text, err := a.clip.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read query from clipboard: %w", err)
	}
	return splitLines(text), nil
}

// Render joins cart rows into the tab-separated, newline-terminated text
// that goes to the clipboard and stdout.
func Render(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseQuery merges CLI tokens into one comma-separated list and splits it
// into trimmed, non-empty recipe names.
func ParseQuery(args []string) []string {
	merged := strings.Join(args, " ")
	var query []string
	for _, part := range strings.Split(merged, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			query = append(query, trimmed)
		}
	}
	return query
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
