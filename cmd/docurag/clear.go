package main

import (
	"fmt"

	"github.com/mr-aymann/docuRAG"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm clearing everything\n")
		return docurag.Errorf(docurag.EINVALID, "use --force to confirm clearing everything")
	}

	if err := deps.Ingestor.ClearAll(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docurag.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cleared all sites and stored chunks")
	return nil
}
