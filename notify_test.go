package docurag_test

import (
	"testing"

	"github.com/mr-aymann/docuRAG"
	"github.com/mr-aymann/docuRAG/mock"
	"github.com/stretchr/testify/assert"
)

func TestMultiNotifier_Publish(t *testing.T) {
	t.Parallel()

	first := &mock.Notifier{}
	second := &mock.Notifier{}
	multi := docurag.MultiNotifier{first, second, docurag.NopNotifier{}}

	multi.Publish(docurag.Event{Type: docurag.EventSiteAdded, SiteID: "s1"})
	multi.Publish(docurag.Event{Type: docurag.EventCrawlCompleted, SiteID: "s1"})

	for _, n := range []*mock.Notifier{first, second} {
		events := n.Events()
		assert.Len(t, events, 2)
		assert.Equal(t, docurag.EventSiteAdded, events[0].Type)
		assert.Equal(t, docurag.EventCrawlCompleted, events[1].Type)
	}
}
