package client_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/fluxsave/fluxsave-go/apierr"
	"github.com/fluxsave/fluxsave-go/client"
	"github.com/jarcoal/httpmock"
)

const baseURL = "https://api.fluxsave.test"

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.NewClient(baseURL, client.WithCredentials(apiKey, apiSecret))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	httpmock.ActivateNonDefault(c.HTTPClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fp, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return fp
}

func TestUploadFile_Happy(t *testing.T) {
	c := newTestClient(t)
	fp := writeTempFile(t, "report.pdf", "pdf-bytes")

	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/v1/files/upload",
		func(req *http.Request) (*http.Response, error) {
			if got := req.Header.Get("x-api-key"); got != apiKey {
				t.Fatalf("x-api-key = %q, want %q", got, apiKey)
			}
			if err := req.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parse multipart: %v", err)
			}
			fhs := req.MultipartForm.File["file"]
			if len(fhs) != 1 {
				t.Fatalf("file parts = %d, want 1", len(fhs))
			}
			if fhs[0].Filename != "report.pdf" {
				t.Fatalf("filename = %q", fhs[0].Filename)
			}
			f, err := fhs[0].Open()
			if err != nil {
				t.Fatalf("open part: %v", err)
			}
			defer f.Close()
			content, _ := io.ReadAll(f)
			if string(content) != "pdf-bytes" {
				t.Fatalf("part content = %q", content)
			}
			if got := req.FormValue("name"); got != "Q3 report" {
				t.Fatalf("name field = %q", got)
			}
			if got := req.FormValue("compression"); got != "balanced" {
				t.Fatalf("compression field = %q", got)
			}
			if got := req.FormValue("folderId"); got != "fld_9" {
				t.Fatalf("folderId field = %q", got)
			}
			return httpmock.NewStringResponse(201, `{"id":"f_1","name":"Q3 report"}`), nil
		})

	res, err := c.UploadFile(context.Background(), fp, &client.UploadOptions{
		Name:        "Q3 report",
		Compression: "balanced",
		FolderID:    "fld_9",
	})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	obj, ok := res.(map[string]any)
	if !ok || obj["id"] != "f_1" {
		t.Fatalf("decoded body = %#v", res)
	}
}

func TestUploadFile_OmitsEmptyOptions(t *testing.T) {
	c := newTestClient(t)
	fp := writeTempFile(t, "a.txt", "aaa")

	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/v1/files/upload",
		func(req *http.Request) (*http.Response, error) {
			if err := req.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parse multipart: %v", err)
			}
			for _, key := range []string{"name", "compression", "folderId"} {
				if _, present := req.MultipartForm.Value[key]; present {
					t.Fatalf("field %q must be absent when unset", key)
				}
			}
			return httpmock.NewStringResponse(201, `{"id":"f_2"}`), nil
		})

	if _, err := c.UploadFile(context.Background(), fp, nil); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestUploadFiles_SharedFieldName(t *testing.T) {
	c := newTestClient(t)
	fp1 := writeTempFile(t, "one.txt", "one")
	fp2 := writeTempFile(t, "two.txt", "two")

	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/v1/files/upload",
		func(req *http.Request) (*http.Response, error) {
			if err := req.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parse multipart: %v", err)
			}
			fhs := req.MultipartForm.File["files"]
			if len(fhs) != 2 {
				t.Fatalf("files parts = %d, want 2", len(fhs))
			}
			if fhs[0].Filename != "one.txt" || fhs[1].Filename != "two.txt" {
				t.Fatalf("filenames = %q, %q", fhs[0].Filename, fhs[1].Filename)
			}
			return httpmock.NewStringResponse(201, `[{"id":"f_3"},{"id":"f_4"}]`), nil
		})

	res, err := c.UploadFiles(context.Background(), []string{fp1, fp2}, nil)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	arr, ok := res.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("decoded body = %#v", res)
	}
}

func TestUploadFiles_EmptyPaths(t *testing.T) {
	c := newTestClient(t)
	if _, err := c.UploadFiles(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for empty path list")
	}
	if httpmock.GetTotalCallCount() != 0 {
		t.Fatalf("no request should have been made")
	}
}

func TestUploadFile_MissingLocalFile_NoNetwork(t *testing.T) {
	c := newTestClient(t)
	_, err := c.UploadFile(context.Background(), filepath.Join(t.TempDir(), "ghost.txt"), nil)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if httpmock.GetTotalCallCount() != 0 {
		t.Fatalf("no request should have been made, got %d", httpmock.GetTotalCallCount())
	}
}

func TestUploadFile_DirectoryRejected(t *testing.T) {
	c := newTestClient(t)
	if _, err := c.UploadFile(context.Background(), t.TempDir(), nil); err == nil {
		t.Fatalf("expected error for directory path")
	}
	if httpmock.GetTotalCallCount() != 0 {
		t.Fatalf("no request should have been made")
	}
}

func TestUploadFile_ErrorClassification(t *testing.T) {
	c := newTestClient(t)
	fp := writeTempFile(t, "big.bin", "xxxxxxxx")

	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/v1/files/upload",
		httpmock.NewStringResponder(413, `{"message":"Storage limit exceeded"}`))

	_, err := c.UploadFile(context.Background(), fp, nil)
	if !apierr.IsCode(err, apierr.CodeStorageLimit) {
		t.Fatalf("err = %v, want STORAGE_LIMIT", err)
	}
	if !apierr.IsStatus(err, 413) {
		t.Fatalf("status not preserved: %v", err)
	}
}

func TestListFiles_FolderQuery(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, baseURL+"/api/v1/files",
		"folderId=fld_1",
		httpmock.NewStringResponder(200, `[{"id":"f_1"}]`))

	res, err := c.ListFiles(context.Background(), "fld_1")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	arr, ok := res.([]any)
	if !ok || len(arr) != 1 {
		t.Fatalf("decoded body = %#v", res)
	}
}

func TestListFiles_NoFolder_NoQuery(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/v1/files",
		func(req *http.Request) (*http.Response, error) {
			if req.URL.RawQuery != "" {
				t.Fatalf("unexpected query %q", req.URL.RawQuery)
			}
			return httpmock.NewStringResponse(200, `[]`), nil
		})

	if _, err := c.ListFiles(context.Background(), ""); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestGetFileMetadata(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/v1/files/metadata/f_7",
		httpmock.NewStringResponder(200, `{"id":"f_7","sizeBytes":1234}`))

	res, err := c.GetFileMetadata(context.Background(), "f_7")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	obj, ok := res.(map[string]any)
	if !ok || obj["sizeBytes"] != float64(1234) {
		t.Fatalf("decoded body = %#v", res)
	}
}

func TestUpdateFile(t *testing.T) {
	c := newTestClient(t)
	fp := writeTempFile(t, "v2.txt", "version two")

	httpmock.RegisterResponder(http.MethodPut, baseURL+"/api/v1/files/f_7",
		func(req *http.Request) (*http.Response, error) {
			if err := req.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parse multipart: %v", err)
			}
			if len(req.MultipartForm.File["file"]) != 1 {
				t.Fatalf("want one file part")
			}
			if got := req.FormValue("name"); got != "renamed" {
				t.Fatalf("name field = %q", got)
			}
			if _, present := req.MultipartForm.Value["folderId"]; present {
				t.Fatalf("update must not send folderId")
			}
			return httpmock.NewStringResponse(200, `{"id":"f_7","name":"renamed"}`), nil
		})

	res, err := c.UpdateFile(context.Background(), "f_7", fp, &client.UpdateOptions{Name: "renamed"})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if obj, ok := res.(map[string]any); !ok || obj["name"] != "renamed" {
		t.Fatalf("decoded body = %#v", res)
	}
}

func TestDeleteFile(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodDelete, baseURL+"/api/v1/files/f_7",
		httpmock.NewStringResponder(200, `{"success":true}`))

	res, err := c.DeleteFile(context.Background(), "f_7")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if obj, ok := res.(map[string]any); !ok || obj["success"] != true {
		t.Fatalf("decoded body = %#v", res)
	}
}

func TestDeleteFile_NotFound(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodDelete, baseURL+"/api/v1/files/gone",
		httpmock.NewStringResponder(404, `{"message":"File not found"}`))

	_, err := c.DeleteFile(context.Background(), "gone")
	if !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestBuildFileURL(t *testing.T) {
	c, err := client.NewClient(baseURL)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	got := c.BuildFileURL("abc",
		client.QueryParam{Key: "w", Value: 100},
		client.QueryParam{Key: "h", Value: 50},
	)
	want := baseURL + "/api/v1/files/abc?w=100&h=50"
	if got != want {
		t.Fatalf("BuildFileURL = %q, want %q", got, want)
	}

	got = c.BuildFileURL("abc")
	want = baseURL + "/api/v1/files/abc"
	if got != want {
		t.Fatalf("BuildFileURL = %q, want %q", got, want)
	}
}
