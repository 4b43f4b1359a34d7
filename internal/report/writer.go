// Package report renders scan results for people (Markdown) and tools (JSON).
package report

import (
	"fmt"
	"io"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Writer writes one dossier to its destination.
// Returns the number of bytes written and any error encountered.
type Writer interface {
	Write(result *models.Result) (int, error)
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// NewWriter returns the writer for format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatMarkdown, "md", "":
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
