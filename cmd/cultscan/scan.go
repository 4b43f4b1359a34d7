package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/0xilhan/Cult-scaner-v1/internal/report"
	"github.com/0xilhan/Cult-scaner-v1/internal/session"
	"github.com/0xilhan/Cult-scaner-v1/internal/setup"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <protocol>",
		Short: "Investigate the team behind a protocol",
		Long: `Scan researches the founders and public faces of a crypto protocol and prints a dossier.

Profiles without a usable photo get a generated portrait unless --no-avatars is set.

Examples:
  # Markdown dossier on stdout
  cultscan scan Uniswap

  # JSON written to a file
  cultscan scan "Shiba Inu" --format json --output shib.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScanCmd,
	}

	cmd.Flags().StringP("format", "f", string(report.FormatMarkdown), "Output format: markdown or json")
	cmd.Flags().StringP("output", "o", "", "Write the dossier to this file instead of stdout")
	cmd.Flags().String("provider", "", "Override LLM_PROVIDER (gemini or bedrock)")
	cmd.Flags().Bool("no-avatars", false, "Do not generate portraits for profiles without a photo")
	cmd.Flags().Duration("timeout", 3*time.Minute, "Give up on the scan after this long")

	return cmd
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	provider, _ := cmd.Flags().GetString("provider")
	noAvatars, _ := cmd.Flags().GetBool("no-avatars")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	logger := newConsoleLogger(cmd.ErrOrStderr(), verbose)

	_ = godotenv.Load()

	cfg := setup.LoadConfig()
	if provider != "" {
		cfg.Provider = strings.ToLower(provider)
	}
	if noAvatars {
		cfg.DisableAvatars = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		return err
	}

	var rendered bytes.Buffer
	if err := scanAndWrite(ctx, deps.Tracker, strings.Join(args, " "), report.Format(format), &rendered); err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), output, rendered.Bytes())
}

// scanAndWrite runs one scan and renders it. Nothing is written when the scan fails.
func scanAndWrite(ctx context.Context, scanner session.Scanner, protocol string, format report.Format, out io.Writer) error {
	writer, err := report.NewWriter(format, out)
	if err != nil {
		return err
	}

	result, err := scanner.Scan(ctx, protocol)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	_, err = writer.Write(result)
	return err
}

// writeOutput sends the rendered dossier to stdout, or to path when one is given.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func newConsoleLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
