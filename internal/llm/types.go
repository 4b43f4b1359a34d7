package llm

import (
	"encoding/base64"
	"fmt"
)

type ResearchRequest struct {
	SystemPrompt string
	Prompt       string
	WebSearch    bool
	JSONOutput   bool
	MaxTokens    int
	Temperature  *float64
}

type Citation struct {
	URI   string
	Title string
}

type ResearchResponse struct {
	Content    string
	Citations  []Citation
	StopReason string
}

type Image struct {
	MIMEType string
	Data     []byte
}

// DataURI renders the image as an inline data: URI.
func (i *Image) DataURI() string {
	mimeType := i.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(i.Data))
}
