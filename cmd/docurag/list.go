package main

import (
	"fmt"

	"github.com/mr-aymann/docuRAG"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docurag.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites found. Use 'docurag add' to ingest one.")
		return nil
	}

	for _, s := range sites {
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %5d chunks  %s  %s\n",
			s.ID, s.Status, s.TotalChunks, s.Name, s.URL)
	}

	return nil
}
