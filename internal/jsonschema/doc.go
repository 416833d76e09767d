// Package jsonschema derives JSON Schema documents from Go types. Tool
// parameter schemas are built with [GenerateJSONSchema] and sent to the chat
// API as-is, or rendered into the system prompt when tool calling is
// simulated.
package jsonschema
