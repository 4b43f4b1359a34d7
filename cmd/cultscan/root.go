package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cultscan",
		Short: "Diagnose the team behind a crypto protocol",
		Long: `cultscan asks a generative AI model, grounded on web search, to investigate
the people behind a crypto protocol and rates each of them with a cult score
from 0 to 10 and a verdict (SAFE, CAUTION, DANGER, CULT_LEADER).

The provider is configured through the environment (.env is loaded when present):
  LLM_PROVIDER      gemini (default) or bedrock
  GEMINI_API_KEY    API key for Gemini (API_KEY is accepted as a fallback)`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
