package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
)

// indexDocuments runs the shared tail of every ingestion pipeline:
// chunk the documents, embed the batch with the document task role and
// upsert it into the vector store.
func indexDocuments(
	ctx context.Context,
	chunker ports.Chunker,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	docs []domain.Document,
) (int, error) {
	var chunks []domain.Chunk
	for _, doc := range docs {
		for position, piece := range chunker.Split(doc.Content) {
			chunks = append(chunks, domain.Chunk{
				Content:  piece,
				Meta:     doc.Meta,
				Position: position,
			})
		}
	}
	if len(chunks) == 0 {
		return 0, domain.WrapError(domain.ErrEmptySource, "chunk documents", errors.New("chunking produced zero chunks"))
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, domain.WrapError(domain.ErrProvider, "embed chunks", err)
	}
	if len(vectors) != len(chunks) {
		return 0, domain.WrapError(
			domain.ErrProvider,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}

	if err := vectorDB.UpsertChunks(ctx, chunks, vectors); err != nil {
		return 0, domain.WrapError(domain.ErrProvider, "index chunks", err)
	}
	return len(chunks), nil
}
