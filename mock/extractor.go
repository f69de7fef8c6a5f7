package mock

import "github.com/mr-aymann/docuRAG"

var _ docurag.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docurag.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docurag.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docurag.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docurag.Converter = (*Converter)(nil)

// Converter is a mock implementation of docurag.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
