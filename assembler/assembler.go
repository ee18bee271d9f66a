// Package assembler turns a free-text query into a bounded, ranked,
// page-deduplicated context string grounded in the document store.
package assembler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vamm-energy/policyagent/docstore"
	"github.com/vamm-energy/policyagent/embedder"
)

const (
	// NoContentSentinel is the fixed "no data" output. Downstream prompt
	// assembly and tests depend on the literal.
	NoContentSentinel = "No relevant content found."

	blockSeparator = "\n\n---\n\n"
)

// PageNotFoundSentinel is the fixed output for a page with no chunks.
func PageNotFoundSentinel(pageNumber int) string {
	return fmt.Sprintf("No content found for page: %d", pageNumber)
}

type Assembler struct {
	options  Options
	embedder embedder.Embedder
	store    docstore.Store
}

// Assemble embeds the query, ranks the top-K chunks for the source, and
// renders them in rank order. An embedding failure degrades to the sentinel;
// a store failure is surfaced so the caller can decide.
func (a *Assembler) Assemble(ctx context.Context, query string, sourceId string) (string, error) {
	vec, err := a.embedder.Embed(ctx, query)
	if err != nil {
		slog.WarnContext(ctx, "query embedding failed", "error", err)
		return NoContentSentinel, nil
	}

	results, err := a.store.Search(
		ctx,
		vec,
		docstore.WithSourceId(sourceId),
		docstore.WithSearchLimit(a.options.TopK),
		docstore.WithMinScore(a.options.MinScore),
	)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return NoContentSentinel, nil
	}

	seenPages := map[int]struct{}{}
	var blocks []string

	for _, result := range results {
		if a.options.DedupePages {
			if _, seen := seenPages[result.Chunk.PageNumber]; seen {
				continue
			}
			seenPages[result.Chunk.PageNumber] = struct{}{}
		}
		blocks = append(blocks, renderBlock(result.Chunk))
	}

	return strings.Join(blocks, blockSeparator), nil
}

// PageContent fetches every chunk of a page and joins them in chunk-index
// order: the page title once, then chunk bodies separated by blank lines.
func (a *Assembler) PageContent(ctx context.Context, sourceId string, pageNumber int) (string, error) {
	chunks, err := a.store.PageChunks(ctx, sourceId, pageNumber)
	if err != nil {
		return "", err
	}

	if len(chunks) == 0 {
		return PageNotFoundSentinel(pageNumber), nil
	}

	parts := make([]string, 0, len(chunks)+1)
	parts = append(parts, fmt.Sprintf("# %s", chunks[0].Title))

	for _, chunk := range chunks {
		parts = append(parts, chunk.Content)
	}

	return strings.Join(parts, "\n\n"), nil
}

// ListPages exposes the store's page listing unchanged, so the capability is
// callable without going through retrieval.
func (a *Assembler) ListPages(ctx context.Context, sourceId string) ([]int, error) {
	return a.store.ListPages(ctx, sourceId)
}

func renderBlock(chunk docstore.Chunk) string {
	return fmt.Sprintf("# %s\n\n%s\n\nPage: %d", chunk.Title, chunk.Content, chunk.PageNumber)
}

func New(emb embedder.Embedder, store docstore.Store, opts ...Option) *Assembler {
	options := NewOptions(opts...)

	if emb == nil {
		panic("embedder is required")
	}

	if store == nil {
		panic("document store is required")
	}

	return &Assembler{
		options:  options,
		embedder: emb,
		store:    store,
	}
}
