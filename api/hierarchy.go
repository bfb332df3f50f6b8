package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// ErrEmptyDocument is returned when the host answers with an empty XML document.
var ErrEmptyDocument = errors.New("host returned an empty document")

// HierarchyOptions contains options for fetching the notebook hierarchy.
type HierarchyOptions struct {
	StartNodeID string // empty = all notebooks
	Scope       string // notebooks, sections, pages
	Schema      string // 2010, 2013
}

// GetHierarchy returns the hierarchy document as XML.
func (c *Client) GetHierarchy(ctx context.Context, opts *HierarchyOptions) (string, error) {
	params := url.Values{}
	params.Set("scope", ScopePages)
	params.Set("schema", DefaultSchema)

	if opts != nil {
		if opts.Scope != "" {
			params.Set("scope", opts.Scope)
		}
		if opts.Schema != "" {
			params.Set("schema", opts.Schema)
		}
		if opts.StartNodeID != "" {
			params.Set("start", opts.StartNodeID)
		}
	}

	body, err := c.Get(ctx, "/api/v1/hierarchy?"+params.Encode())
	if err != nil {
		return "", err
	}

	return decodeEnvelope(body, "hierarchy")
}

func decodeEnvelope(body []byte, what string) (string, error) {
	var env XMLEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("failed to parse %s response: %w", what, err)
	}
	if env.XML == "" {
		return "", fmt.Errorf("%s: %w", what, ErrEmptyDocument)
	}
	return env.XML, nil
}
