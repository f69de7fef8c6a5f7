package main

import (
	"fmt"

	"github.com/mr-aymann/docuRAG"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	status, err := deps.Statuses.FindCrawlStatus(deps.Ctx, c.SiteID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docurag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "status:    %s\n", status.Status)
	fmt.Fprintf(deps.Stdout, "progress:  %.0f%% (%d/%d pages)\n",
		status.Progress(), status.ProcessedURLs, status.TotalURLs)
	fmt.Fprintf(deps.Stdout, "chunks:    %d\n", status.ChunksAdded)
	if status.CurrentURL != "" {
		fmt.Fprintf(deps.Stdout, "current:   %s\n", status.CurrentURL)
	}
	if status.Error != "" {
		fmt.Fprintf(deps.Stdout, "error:     %s\n", status.Error)
	}

	return nil
}
