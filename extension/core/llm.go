// llm.go implements the "llmfs llm" command, a quick start for an LLM
// discovering the tool. Content lives in guide/llm.md.

package core

import (
	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/guide"
	"github.com/spf13/cobra"
)

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for LLMs",
		Long:  `Quick reference for LLMs to discover available commands and usage patterns.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := guide.Get("llm")
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			render(content)
			return nil
		},
	}
}
