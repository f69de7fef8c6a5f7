package docurag

import (
	"context"
	"iter"
)

// Source describes a chunk used to ground an answer.
type Source struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	ChunkIndex int    `json:"chunk_index"`
	Preview    string `json:"preview"`
}

// Answer is a complete response to a chat query.
type Answer struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// ChatStream is an in-progress streamed answer. Sources are known before
// generation starts; Tokens yields text fragments until the sequence is
// exhausted. The sequence is finite and not restartable.
type ChatStream struct {
	Sources []Source
	Tokens  iter.Seq2[string, error]
}

// Assistant answers natural-language questions over the ingested corpus.
// A query against an empty or uninitialized corpus yields a graceful
// "no relevant information" answer rather than an error.
type Assistant interface {
	// Chat retrieves relevant chunks and returns a complete answer.
	Chat(ctx context.Context, query string) (*Answer, error)

	// ChatStream retrieves relevant chunks and streams the answer tokens.
	ChatStream(ctx context.Context, query string) (*ChatStream, error)
}
