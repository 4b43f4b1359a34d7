package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/0xilhan/Cult-scaner-v1/internal/report"
)

type fakeScanner struct {
	err error
}

func (f *fakeScanner) Scan(ctx context.Context, protocol string) (*models.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Result{
		Protocol: protocol,
		Summary:  "ok",
		Profiles: []models.Profile{{Name: "A", Role: "Founder", CultScore: 9, Verdict: models.VerdictCultLeader}},
		Sources:  []models.Source{},
	}, nil
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "cultscan" {
		t.Errorf("expected use 'cultscan', got %q", cmd.Use)
	}
	if cmd.Version == "" {
		t.Error("expected non-empty version")
	}
	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("expected verbose flag")
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"scan", "version"} {
		if !names[want] {
			t.Errorf("expected subcommand %q", want)
		}
	}
}

func TestScanCmd_Flags(t *testing.T) {
	cmd := NewScanCmd()

	format := cmd.Flags().Lookup("format")
	if format == nil {
		t.Fatal("expected format flag")
	}
	if format.DefValue != "markdown" {
		t.Errorf("expected default 'markdown', got %q", format.DefValue)
	}
	for _, name := range []string{"output", "provider", "no-avatars", "timeout"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

func TestScanCmd_RequiresProtocol(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"scan"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error without a protocol argument")
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "cultscan version ") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestScanAndWrite(t *testing.T) {
	tests := []struct {
		name      string
		format    report.Format
		scanErr   error
		expectErr error
		contains  string
	}{
		{name: "markdown", format: report.FormatMarkdown, contains: "# Cult Scan: ExampleCoin"},
		{name: "json", format: report.FormatJSON, contains: `"protocol": "ExampleCoin"`},
		{name: "scan failure", format: report.FormatMarkdown, scanErr: llm.ErrMissingCredential, expectErr: llm.ErrMissingCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			err := scanAndWrite(context.Background(), &fakeScanner{err: tt.scanErr}, "ExampleCoin", tt.format, &out)
			if !errors.Is(err, tt.expectErr) {
				t.Fatalf("expected error %v, got %v", tt.expectErr, err)
			}

			if tt.expectErr != nil {
				if out.Len() != 0 {
					t.Errorf("expected no output on failure, got %q", out.String())
				}
				return
			}
			if !strings.Contains(out.String(), tt.contains) {
				t.Errorf("expected %q in output, got %q", tt.contains, out.String())
			}
		})
	}
}

func TestScanAndWrite_UnknownFormat(t *testing.T) {
	err := scanAndWrite(context.Background(), &fakeScanner{}, "ExampleCoin", "xml", &bytes.Buffer{})
	if err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestScanCmd_FailedScanKeepsOutputFile(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	path := filepath.Join(t.TempDir(), "dossier.md")
	if err := os.WriteFile(path, []byte("previous dossier"), 0o644); err != nil {
		t.Fatalf("failed to seed output file: %v", err)
	}

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"scan", "ExampleCoin", "--no-avatars", "-o", path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if !errors.Is(err, llm.ErrMissingCredential) {
		t.Fatalf("expected missing credential error, got %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if string(content) != "previous dossier" {
		t.Errorf("expected output file to be untouched, got %q", string(content))
	}
}

func TestWriteOutput(t *testing.T) {
	var stdout bytes.Buffer
	if err := writeOutput(&stdout, "", []byte("dossier")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "dossier" {
		t.Errorf("expected stdout 'dossier', got %q", stdout.String())
	}

	path := filepath.Join(t.TempDir(), "nested", "out.json")
	stdout.Reset()
	if err := writeOutput(&stdout, path, []byte("{}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if string(content) != "{}" {
		t.Errorf("expected '{}' in file, got %q", string(content))
	}
}
