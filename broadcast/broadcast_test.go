package broadcast_test

import (
	"testing"

	"github.com/mr-aymann/docuRAG"
	"github.com/mr-aymann/docuRAG/broadcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToSubscribers(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()

	hub.Publish(docurag.Event{Type: docurag.EventSiteAdded, SiteID: "site-1"})

	for _, ch := range []<-chan docurag.Event{a, b} {
		select {
		case e := <-ch:
			assert.Equal(t, docurag.EventSiteAdded, e.Type)
			assert.Equal(t, "site-1", e.SiteID)
		default:
			t.Fatal("expected event on subscriber channel")
		}
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub()
	ch := hub.Subscribe()
	require.Equal(t, 1, hub.SubscriberCount())

	hub.Unsubscribe(ch)

	assert.Equal(t, 0, hub.SubscriberCount())
	_, open := <-ch
	assert.False(t, open)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub()
	_ = hub.Subscribe() // never drained

	// Publish far more events than the subscriber buffer holds; the test
	// hangs if Publish blocks.
	for i := 0; i < 1000; i++ {
		hub.Publish(docurag.Event{Type: docurag.EventCrawlProgress})
	}
}

func TestHub_PublishWithNoSubscribers(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub()
	hub.Publish(docurag.Event{Type: docurag.EventDatabaseCleared})
}
