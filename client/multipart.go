package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type formField struct {
	key   string
	value string
}

type filePart struct {
	field string
	path  string
}

// multipartBody assembles a multipart/form-data body from local files plus
// optional string fields. Every file opened here is closed before return,
// success or not, so a failed call never leaks a descriptor. The body is
// fully buffered, which also means no handle stays open while the request
// is on the wire.
func multipartBody(files []filePart, fields []formField) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, fp := range files {
		if err := writeFilePart(w, fp.field, fp.path); err != nil {
			_ = w.Close()
			return nil, "", err
		}
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			_ = w.Close()
			return nil, "", fmt.Errorf("write field %q: %w", f.key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, field, path string) error {
	clean := filepath.Clean(path)

	f, err := os.Open(clean)
	if err != nil {
		return fmt.Errorf("open %q: %w", clean, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %q: %w", clean, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%q is a directory, need a file", clean)
	}

	part, err := w.CreateFormFile(field, filepath.Base(clean))
	if err != nil {
		return fmt.Errorf("create part %q: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %q: %w", clean, err)
	}
	return nil
}
