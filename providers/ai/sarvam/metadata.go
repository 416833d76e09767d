package sarvam

import (
	"net/http"
	"time"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

// responseMetadata builds the metadata attached to every result. created is
// unix seconds; zero falls back to now. requestID falls back to the
// X-Request-Id response header.
func (p *SarvamProvider) responseMetadata(id, model string, created int64, requestID string, response *http.Response) ai.ResponseMetadata {
	metadata := ai.ResponseMetadata{
		ID:        id,
		ModelID:   model,
		RequestID: requestID,
	}

	if created > 0 {
		metadata.Timestamp = time.Unix(created, 0).UTC()
	} else {
		metadata.Timestamp = p.now().UTC()
	}

	if response != nil {
		metadata.Headers = response.Header.Clone()
		if metadata.RequestID == "" {
			metadata.RequestID = response.Header.Get("X-Request-Id")
		}
	}
	if metadata.ID == "" {
		metadata.ID = metadata.RequestID
	}
	return metadata
}
