package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// PageContentOptions contains options for fetching page content.
type PageContentOptions struct {
	Info   string // basic, selection
	Schema string
}

// GetPageContent returns the content document of a page as XML.
func (c *Client) GetPageContent(ctx context.Context, pageID string, opts *PageContentOptions) (string, error) {
	if pageID == "" {
		return "", errors.New("page ID is required")
	}

	params := url.Values{}
	params.Set("info", PageInfoBasic)
	params.Set("schema", DefaultSchema)
	if opts != nil {
		if opts.Info != "" {
			params.Set("info", opts.Info)
		}
		if opts.Schema != "" {
			params.Set("schema", opts.Schema)
		}
	}

	path := fmt.Sprintf("/api/v1/pages/%s/content?%s", url.PathEscape(pageID), params.Encode())
	body, err := c.Get(ctx, path)
	if err != nil {
		return "", err
	}

	return decodeEnvelope(body, "page content")
}

// UpdatePageContent replaces page content with the given page document. The
// target page is taken from the document's root ID. A zero
// dateExpectedLastModified overwrites unconditionally.
func (c *Client) UpdatePageContent(ctx context.Context, xml string, dateExpectedLastModified Time) error {
	if xml == "" {
		return fmt.Errorf("update: %w", ErrEmptyDocument)
	}

	_, err := c.Put(ctx, "/api/v1/pages/content", &UpdatePageContentRequest{
		XML:                      xml,
		DateExpectedLastModified: dateExpectedLastModified,
	})
	return err
}
