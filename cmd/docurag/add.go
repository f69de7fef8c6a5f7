package main

import (
	"fmt"

	"github.com/mr-aymann/docuRAG"
)

// Run executes the add command: register the site and run the full ingestion
// pipeline to completion, printing progress as the crawl advances.
func (c *AddCmd) Run(deps *Dependencies) error {
	site, err := deps.Ingestor.AddSite(deps.Ctx, c.URL, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docurag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added site %q (%s)\n", site.Name, site.ID)
	fmt.Fprintf(deps.Stdout, "Crawling %s ...\n", site.URL)

	var done chan struct{}
	var events <-chan docurag.Event
	if deps.Events != nil {
		events = deps.Events.Subscribe()
		done = make(chan struct{})
		go func() {
			defer close(done)
			for ev := range events {
				if ev.Type != docurag.EventCrawlProgress || ev.Status == nil {
					continue
				}
				fmt.Fprintf(deps.Stdout, "  %3.0f%% (%d/%d) %s\n",
					ev.Progress, ev.Status.ProcessedURLs, ev.Status.TotalURLs, ev.Status.CurrentURL)
			}
		}()
	}

	ingestErr := deps.Ingestor.Ingest(deps.Ctx, site)

	if events != nil {
		deps.Events.Unsubscribe(events)
		<-done
	}

	if ingestErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docurag.ErrorMessage(ingestErr))
		return ingestErr
	}

	status, err := deps.Statuses.FindCrawlStatus(deps.Ctx, site.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d pages processed, %d chunks stored\n",
		status.ProcessedURLs, status.ChunksAdded)
	return nil
}
