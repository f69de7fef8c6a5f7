package main

import (
	"fmt"

	"github.com/mr-aymann/docuRAG"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docurag.Errorf(docurag.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Ingestor.DeleteSite(deps.Ctx, c.SiteID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docurag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted site %s\n", c.SiteID)
	return nil
}
