package sarvam

import (
	"net/http"

	"github.com/clearlysid/sarvam-ai-sdk-provider/internal/utils"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

type postResult[T any] struct {
	response *http.Response
	body     *T
}

// postJSON sends body to endpoint under the retry policy and decodes T.
// Status errors come back as *ai.APICallError.
func postJSON[T any](p *SarvamProvider, scope *callScope, endpoint string, body any, requestHeaders map[string]string) (*http.Response, *T, error) {
	url := p.baseURL + endpoint
	headers := p.headerOptions(requestHeaders)
	scope.trace("Sarvam request body", observability.String("body", utils.TruncateStringDefault(utils.JSONToString(body))))

	result, err := withRetry(scope.ctx, p.retry, scope, func() (postResult[T], error) {
		response, decoded, err := utils.DoPostSync[T](scope.ctx, p.client, url, "", body, headers...)
		return postResult[T]{response: response, body: decoded}, toAPICallError(err)
	})
	return result.response, result.body, err
}

// postMultipart uploads form to endpoint under the retry policy and decodes T.
func postMultipart[T any](p *SarvamProvider, scope *callScope, endpoint string, form utils.MultipartForm, requestHeaders map[string]string) (*http.Response, *T, error) {
	url := p.baseURL + endpoint
	headers := p.headerOptions(requestHeaders)

	result, err := withRetry(scope.ctx, p.retry, scope, func() (postResult[T], error) {
		response, decoded, err := utils.DoPostMultipart[T](scope.ctx, p.client, url, "", form, headers...)
		return postResult[T]{response: response, body: decoded}, toAPICallError(err)
	})
	return result.response, result.body, err
}
