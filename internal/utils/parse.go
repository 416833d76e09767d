package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSONAs unmarshals content into T. When the content is not valid JSON it
// is passed through jsonrepair (unquoted keys, single quotes, trailing commas,
// truncated objects, code fences) and unmarshaled again.
//
// Example usage:
//
//	type call struct {
//	    Name string `json:"name"`
//	}
//	parsed, err := ParseJSONAs[call](`{name: 'lookup'`)
func ParseJSONAs[T any](content string) (T, error) {
	var result T

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repairedJSON, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	if err = json.Unmarshal([]byte(repairedJSON), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original content: %s, repaired: %s)", result, err, TruncateStringDefault(content), TruncateStringDefault(repairedJSON))
	}
	return result, nil
}

// RepairJSON returns content unchanged when it is valid JSON, otherwise the
// jsonrepair rendition of it.
func RepairJSON(content string) (string, error) {
	if json.Valid([]byte(content)) {
		return content, nil
	}
	return jsonrepair.JSONRepair(content)
}

// ExtractJSONObject returns the outermost {...} span of text, ignoring any
// surrounding prose or markdown code fences. The boolean is false when text
// contains no opening brace.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}

	end := strings.LastIndex(text, "}")
	if end < start {
		// Unterminated object: hand back the tail and let the repair step close it
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text[start:]), "```")), true
	}
	return text[start : end+1], true
}
