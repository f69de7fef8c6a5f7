package gemini

import (
	"context"
	"fmt"
	"iter"

	"github.com/mr-aymann/docuRAG"
	"google.golang.org/genai"
)

const chatModel = "gemini-2.5-flash"

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// emptyCorpusAnswer is returned when retrieval yields nothing, so a question
// against an empty corpus reads as a graceful answer rather than an error.
const emptyCorpusAnswer = "I couldn't find any relevant information in the ingested documentation. Try adding a documentation site first."

// Ensure Assistant implements docurag.Assistant at compile time.
var _ docurag.Assistant = (*Assistant)(nil)

// Assistant answers questions over the ingested corpus using Gemini, with
// retrieved chunks as grounding context.
type Assistant struct {
	client    *genai.Client
	retriever docurag.Retriever
	topK      int
}

// NewAssistant creates a new Assistant retrieving DefaultTopK chunks per
// question.
func NewAssistant(client *genai.Client, retriever docurag.Retriever) *Assistant {
	return &Assistant{client: client, retriever: retriever, topK: DefaultTopK}
}

// WithTopK sets the number of chunks retrieved per question.
func (a *Assistant) WithTopK(k int) *Assistant {
	a.topK = k
	return a
}

// Chat retrieves relevant chunks and returns a complete grounded answer.
func (a *Assistant) Chat(ctx context.Context, query string) (*docurag.Answer, error) {
	chunks, err := a.retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return &docurag.Answer{Text: emptyCorpusAnswer}, nil
	}

	result, err := a.client.Models.GenerateContent(ctx, chatModel,
		buildContents(chunks, query), buildConfig())
	if err != nil {
		return nil, docurag.Errorf(docurag.EUNAVAILABLE, "generation failed: %v", err)
	}
	if result == nil {
		return nil, docurag.Errorf(docurag.EINTERNAL, "gemini returned nil result")
	}

	return &docurag.Answer{
		Text:    result.Text(),
		Sources: docurag.ChunkSources(chunks),
	}, nil
}

// ChatStream retrieves relevant chunks and streams the answer tokens.
// Sources are available on the returned stream before generation starts.
func (a *Assistant) ChatStream(ctx context.Context, query string) (*docurag.ChatStream, error) {
	chunks, err := a.retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return &docurag.ChatStream{
			Tokens: func(yield func(string, error) bool) {
				yield(emptyCorpusAnswer, nil)
			},
		}, nil
	}

	stream := a.client.Models.GenerateContentStream(ctx, chatModel,
		buildContents(chunks, query), buildConfig())

	tokens := func(yield func(string, error) bool) {
		for resp, err := range stream {
			if err != nil {
				yield("", docurag.Errorf(docurag.EUNAVAILABLE, "generation failed: %v", err))
				return
			}
			if text := resp.Text(); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}

	return &docurag.ChatStream{
		Sources: docurag.ChunkSources(chunks),
		Tokens:  iter.Seq2[string, error](tokens),
	}, nil
}

func (a *Assistant) retrieve(ctx context.Context, query string) ([]*docurag.Chunk, error) {
	if query == "" {
		return nil, docurag.Errorf(docurag.EINVALID, "query required")
	}
	k := a.topK
	if k <= 0 {
		k = DefaultTopK
	}
	return a.retriever.Search(ctx, query, k)
}

// buildConfig returns the GenerateContentConfig for grounded answers.
func buildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about software documentation. Answer based only on the provided sources. If the answer is not in the sources, say so. Cite the source URL when it helps.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user prompt containing retrieved context and the
// question.
func BuildPrompt(chunks []*docurag.Chunk, query string) string {
	return fmt.Sprintf("%s\n\nQuestion: %s", docurag.FormatChunks(chunks), query)
}

// buildContents wraps the prompt as a single user turn.
func buildContents(chunks []*docurag.Chunk, query string) []*genai.Content {
	return []*genai.Content{{
		Parts: []*genai.Part{{Text: BuildPrompt(chunks, query)}},
	}}
}
