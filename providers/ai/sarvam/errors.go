package sarvam

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

// toAPICallError converts an *utils.HTTPStatusError anywhere in err's chain
// into an *ai.APICallError carrying the Sarvam error message, code and request
// id. Other errors are returned unchanged.
func toAPICallError(err error) error {
	var statusErr *utils.HTTPStatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	apiErr := &ai.APICallError{
		URL:          statusErr.URL,
		StatusCode:   statusErr.StatusCode,
		ResponseBody: string(statusErr.Body),
		Headers:      statusErr.Header,
		Retryable:    ai.IsRetryableStatus(statusErr.StatusCode),
		Cause:        statusErr,
	}

	message, code, requestID := parseErrorBody(statusErr.Body)
	apiErr.Message = message
	apiErr.Code = code
	apiErr.RequestID = requestID

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusErr.StatusCode)
	}
	if apiErr.RequestID == "" && statusErr.Header != nil {
		apiErr.RequestID = statusErr.Header.Get("X-Request-Id")
	}
	return apiErr
}

// parseErrorBody extracts message, code and request id from a Sarvam error
// body. Bodies that are not JSON are used verbatim as the message.
func parseErrorBody(body []byte) (message, code, requestID string) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", "", ""
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return utils.TruncateStringDefault(trimmed), "", ""
	}

	if envelope.Error != nil {
		return envelope.Error.Message, codeString(envelope.Error.Code), envelope.Error.RequestID
	}
	if envelope.Message != "" {
		return envelope.Message, "", ""
	}
	if detail := detailMessage(envelope.Detail); detail != "" {
		return detail, "", ""
	}
	return utils.TruncateStringDefault(trimmed), "", ""
}

func codeString(code any) string {
	switch value := code.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return fmt.Sprintf("%g", value)
	default:
		return fmt.Sprint(value)
	}
}

// detailMessage flattens FastAPI validation details: a string, or a list of
// objects with "msg" and "loc".
func detailMessage(detail any) string {
	switch value := detail.(type) {
	case string:
		return value
	case []any:
		var parts []string
		for _, item := range value {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			msg, _ := entry["msg"].(string)
			if location, ok := entry["loc"].([]any); ok && len(location) > 0 {
				msg = fmt.Sprintf("%v: %s", location[len(location)-1], msg)
			}
			if msg != "" {
				parts = append(parts, msg)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
