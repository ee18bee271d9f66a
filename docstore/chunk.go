package docstore

// Chunk is one indexed slice of a source document. Chunks are written by the
// ingestion pipeline and read-only from this package's perspective.
type Chunk struct {
	Id         string    `json:"id"`
	SourceId   string    `json:"source_id"`
	PageNumber int       `json:"page_number"`
	ChunkIndex int       `json:"chunk_index"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding,omitempty"`
}

// Result is a ranked match of a chunk against a query vector.
type Result struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
