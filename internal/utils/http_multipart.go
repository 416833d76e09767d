package utils

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// FormFile is a file field of a multipart upload.
type FormFile struct {
	FieldName   string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartForm is the body of a multipart/form-data POST. Fields are written
// in the order given so requests are reproducible.
type MultipartForm struct {
	Files  []FormFile
	Fields []FormField
}

// FormField is a plain text field of a multipart upload.
type FormField struct {
	Name  string
	Value string
}

// AddField appends a text field; empty values are skipped.
func (form *MultipartForm) AddField(name, value string) {
	if value == "" {
		return
	}
	form.Fields = append(form.Fields, FormField{Name: name, Value: value})
}

// encode renders the form and returns the body with its content type.
func (form *MultipartForm) encode() ([]byte, string, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for _, file := range form.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("error creating form file %s: %w", file.FieldName, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("error writing form file %s: %w", file.FieldName, err)
		}
	}

	for _, field := range form.Fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("error writing form field %s: %w", field.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("error closing multipart writer: %w", err)
	}

	return buffer.Bytes(), writer.FormDataContentType(), nil
}

// DoPostMultipart uploads form as multipart/form-data and decodes the JSON
// response. Error semantics match DoPostSync.
func DoPostMultipart[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, form MultipartForm, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	payload, contentType, err := form.encode()
	if err != nil {
		return nil, nil, err
	}

	return doPost[OutputStruct](ctx, client, url, apiKey, contentType, payload, headers)
}
