package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// FormField is a plain multipart form field.
type FormField struct {
	Name  string
	Value string
}

// FileField is a file part of a multipart form.
type FileField struct {
	// FieldName is the form field name, e.g. "file".
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType defaults to application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is read to the end when the body is built.
	Reader io.Reader
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// MultipartBody encodes fields and files, in order, as a multipart/form-data
// body. The content type carries the generated boundary.
func MultipartBody(fields []FormField, files ...FileField) (*Body, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("encode multipart field %q: %w", f.Name, err)
		}
	}
	for _, f := range files {
		if err := writeFile(w, f); err != nil {
			return nil, fmt.Errorf("encode multipart file %q: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode multipart body: %w", err)
	}
	return &Body{Content: buf.Bytes(), ContentType: w.FormDataContentType()}, nil
}

func writeFile(w *multipart.Writer, f FileField) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="`+quoteEscaper.Replace(f.FieldName)+`"; filename="`+quoteEscaper.Replace(f.FileName)+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	if f.Reader != nil && f.Data == nil {
		_, err = io.Copy(part, f.Reader)
		return err
	}
	_, err = part.Write(f.Data)
	return err
}
