package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fluxsave/fluxsave-go/utils"
)

// ListFolders lists every folder visible to the credential pair.
func (c *Client) ListFolders(ctx context.Context) (any, error) {
	res, err := c.do(ctx, http.MethodGet, apiPrefix+"/folders", nil, "")
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return res, nil
}

// CreateFolder creates a folder, nested under parentID when given.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (any, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("create folder: name is required")
	}
	body := map[string]any{"name": name}
	if parentID != "" {
		body["parentId"] = parentID
	}
	buf, err := utils.EncodeJSONBody(body)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	res, err := c.do(ctx, http.MethodPost, apiPrefix+"/folders", buf, "application/json")
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return res, nil
}

// RenameFolder changes a folder's name.
func (c *Client) RenameFolder(ctx context.Context, folderID, name string) (any, error) {
	if strings.TrimSpace(folderID) == "" {
		return nil, fmt.Errorf("rename folder: folder id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("rename folder: name is required")
	}
	buf, err := utils.EncodeJSONBody(map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("rename folder: %w", err)
	}
	res, err := c.do(ctx, http.MethodPatch, apiPrefix+"/folders/"+url.PathEscape(folderID), buf, "application/json")
	if err != nil {
		return nil, fmt.Errorf("rename folder: %w", err)
	}
	return res, nil
}

// DeleteFolder removes a folder.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) (any, error) {
	if strings.TrimSpace(folderID) == "" {
		return nil, fmt.Errorf("delete folder: folder id is required")
	}
	res, err := c.do(ctx, http.MethodDelete, apiPrefix+"/folders/"+url.PathEscape(folderID), nil, "")
	if err != nil {
		return nil, fmt.Errorf("delete folder: %w", err)
	}
	return res, nil
}
