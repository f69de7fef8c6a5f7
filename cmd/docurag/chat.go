package main

import (
	"fmt"

	"github.com/mr-aymann/docuRAG"
)

// Run executes the chat command. Answers stream token by token unless
// --no-stream is set.
func (c *ChatCmd) Run(deps *Dependencies) error {
	if c.NoStream {
		answer, err := deps.Assistant.Chat(deps.Ctx, c.Question)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docurag.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, answer.Text)
		printSources(deps, answer.Sources)
		return nil
	}

	stream, err := deps.Assistant.ChatStream(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docurag.ErrorMessage(err))
		return err
	}

	for token, err := range stream.Tokens {
		if err != nil {
			fmt.Fprintf(deps.Stderr, "\nerror: %s\n", docurag.ErrorMessage(err))
			return err
		}
		fmt.Fprint(deps.Stdout, token)
	}
	fmt.Fprintln(deps.Stdout)

	printSources(deps, stream.Sources)
	return nil
}

func printSources(deps *Dependencies, sources []docurag.Source) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout, "\nSources:")
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = docurag.UntitledChunk
		}
		fmt.Fprintf(deps.Stdout, "  - %s (%s)\n", title, s.URL)
	}
}
