package report

import (
	"encoding/json"
	"io"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
)

type JSONWriter struct {
	baseWriter
	indent string
}

type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint indents nested values by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = "  "
	}
}

func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *JSONWriter) Write(result *models.Result) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent != "" {
		data, err = json.MarshalIndent(result, "", w.indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return 0, err
	}

	return w.output.Write(append(data, '\n'))
}
