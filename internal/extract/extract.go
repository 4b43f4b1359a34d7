// Package extract salvages a JSON document from free-form model output.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonFence    = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")
	genericFence = regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*\\s*(.*?)\\s*```")
)

// Extract returns the JSON document carried by text. It tries, in order: the whole text,
// the first ```json fenced block, the first fenced block of any kind.
// Only a JSON object counts as a document; the boolean is false when none of them parse.
func Extract(text string) (json.RawMessage, bool) {
	if doc, ok := parse(text); ok {
		return doc, true
	}

	if m := jsonFence.FindStringSubmatch(text); m != nil {
		if doc, ok := parse(m[1]); ok {
			return doc, true
		}
	}

	if m := genericFence.FindStringSubmatch(text); m != nil {
		if doc, ok := parse(m[1]); ok {
			return doc, true
		}
	}

	return nil, false
}

// Decode extracts the JSON document from text and unmarshals it into v.
func Decode(text string, v any) bool {
	doc, ok := Extract(text)
	if !ok {
		return false
	}
	return json.Unmarshal(doc, v) == nil
}

func parse(candidate string) (json.RawMessage, bool) {
	if !strings.HasPrefix(strings.TrimSpace(candidate), "{") {
		return nil, false
	}
	if !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}
