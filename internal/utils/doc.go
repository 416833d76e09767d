// Package utils provides shared low-level helpers used by the provider
// packages. It covers HTTP helpers for synchronous JSON, multipart upload and
// streaming (SSE) calls, JSON repair for model-produced JSON, and small string
// and pointer utilities.
//
// Key entry points: [DoPostSync] and [DoPostMultipart] for request/response
// round-trips, [DoPostStream] together with [SSEScanner] for Server-Sent
// Events, [HTTPStatusError] for non-2xx answers, and [ParseJSONAs] /
// [RepairJSON] for tolerant JSON decoding.
package utils
