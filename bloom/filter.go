// Package bloom provides probabilistic URL deduplication for crawl
// frontiers, where tracking every visited URL exactly would grow without
// bound on large sites.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by URL.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL may have been seen. False positives are
// possible (a never-seen URL may be skipped); false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs seen.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
