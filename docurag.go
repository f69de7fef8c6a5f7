// Package docurag implements a retrieval-augmented generation system over
// documentation websites. It discovers a site's pages via sitemaps or
// link-following, fetches them concurrently, extracts the main content as
// markdown, splits it into header-annotated chunks, and stores the chunks
// with embeddings in a vector index for hybrid (lexical + vector) retrieval.
//
// This package contains domain types, interfaces and pure pipeline logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., elasticsearch/,
// gemini/, sqlite/, goquery/).
package docurag
