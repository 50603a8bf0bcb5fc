package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// UploadOptions carries the optional metadata accepted by the upload
// endpoints. Zero-value fields are left out of the form entirely.
type UploadOptions struct {
	Name        string
	Compression string
	FolderID    string
}

func (o *UploadOptions) formFields() []formField {
	if o == nil {
		return nil
	}
	var ff []formField
	if o.Name != "" {
		ff = append(ff, formField{"name", o.Name})
	}
	if o.Compression != "" {
		ff = append(ff, formField{"compression", o.Compression})
	}
	if o.FolderID != "" {
		ff = append(ff, formField{"folderId", o.FolderID})
	}
	return ff
}

// UpdateOptions carries the optional metadata accepted when replacing a
// file. Folder moves are not part of the update endpoint.
type UpdateOptions struct {
	Name        string
	Compression string
}

func (o *UpdateOptions) formFields() []formField {
	if o == nil {
		return nil
	}
	var ff []formField
	if o.Name != "" {
		ff = append(ff, formField{"name", o.Name})
	}
	if o.Compression != "" {
		ff = append(ff, formField{"compression", o.Compression})
	}
	return ff
}

// UploadFile uploads one local file as the "file" multipart field.
func (c *Client) UploadFile(ctx context.Context, path string, opts *UploadOptions) (any, error) {
	buf, contentType, err := multipartBody([]filePart{{field: "file", path: path}}, opts.formFields())
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	res, err := c.do(ctx, http.MethodPost, apiPrefix+"/files/upload", buf, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	return res, nil
}

// UploadFiles uploads several local files in one request, all under the
// shared "files" multipart field.
func (c *Client) UploadFiles(ctx context.Context, paths []string, opts *UploadOptions) (any, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("upload files: at least one path is required")
	}
	parts := make([]filePart, len(paths))
	for i, p := range paths {
		parts[i] = filePart{field: "files", path: p}
	}
	buf, contentType, err := multipartBody(parts, opts.formFields())
	if err != nil {
		return nil, fmt.Errorf("upload files: %w", err)
	}
	res, err := c.do(ctx, http.MethodPost, apiPrefix+"/files/upload", buf, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload files: %w", err)
	}
	return res, nil
}

// ListFiles lists files, scoped to a folder when folderID is non-empty.
func (c *Client) ListFiles(ctx context.Context, folderID string) (any, error) {
	path := apiPrefix + "/files"
	if folderID != "" {
		path += "?folderId=" + url.QueryEscape(folderID)
	}
	res, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return res, nil
}

// GetFileMetadata fetches the stored metadata for one file.
func (c *Client) GetFileMetadata(ctx context.Context, fileID string) (any, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("file metadata: file id is required")
	}
	res, err := c.do(ctx, http.MethodGet, apiPrefix+"/files/metadata/"+url.PathEscape(fileID), nil, "")
	if err != nil {
		return nil, fmt.Errorf("file metadata: %w", err)
	}
	return res, nil
}

// UpdateFile replaces a file's content (and optionally its metadata) with
// the local file at path.
func (c *Client) UpdateFile(ctx context.Context, fileID, path string, opts *UpdateOptions) (any, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("update file: file id is required")
	}
	buf, contentType, err := multipartBody([]filePart{{field: "file", path: path}}, opts.formFields())
	if err != nil {
		return nil, fmt.Errorf("update file: %w", err)
	}
	res, err := c.do(ctx, http.MethodPut, apiPrefix+"/files/"+url.PathEscape(fileID), buf, contentType)
	if err != nil {
		return nil, fmt.Errorf("update file: %w", err)
	}
	return res, nil
}

// DeleteFile removes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) (any, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("delete file: file id is required")
	}
	res, err := c.do(ctx, http.MethodDelete, apiPrefix+"/files/"+url.PathEscape(fileID), nil, "")
	if err != nil {
		return nil, fmt.Errorf("delete file: %w", err)
	}
	return res, nil
}

// QueryParam is one key/value pair appended verbatim to a built file URL.
type QueryParam struct {
	Key   string
	Value any
}

// BuildFileURL returns the direct URL for a file: base URL plus the
// file-by-id path, with params joined as-is by & in the order given and no
// trailing ? when there are none. Pure string work — no I/O, no encoding,
// never fails.
func (c *Client) BuildFileURL(fileID string, params ...QueryParam) string {
	u := c.BaseURL + apiPrefix + "/files/" + fileID
	if len(params) == 0 {
		return u
	}
	pairs := make([]string, len(params))
	for i, p := range params {
		pairs[i] = fmt.Sprintf("%s=%v", p.Key, p.Value)
	}
	return u + "?" + strings.Join(pairs, "&")
}
