// Package pipeline inserts highlighted HTML into the page the user is viewing.
//
// The pipeline fetches the hierarchy, finds the current page, reads the
// selection position from that page's content, builds the update document and
// sends it. Nothing is written unless every earlier step succeeded.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/open-cli-collective/notehighlight-cli/api"
	"github.com/open-cli-collective/notehighlight-cli/pkg/pagexml"
)

var (
	// ErrNoCurrentPage is returned when the hierarchy marks no page as currently viewed.
	ErrNoCurrentPage = errors.New("no page is currently being viewed")
	// ErrProviderFailure wraps failures to fetch or parse documents from the host.
	ErrProviderFailure = errors.New("page service request failed")
)

// Provider is the hierarchy and page-content service.
type Provider interface {
	GetHierarchy(ctx context.Context, opts *api.HierarchyOptions) (string, error)
	GetPageContent(ctx context.Context, pageID string, opts *api.PageContentOptions) (string, error)
	UpdatePageContent(ctx context.Context, xml string, dateExpectedLastModified api.Time) error
}

// Target is the insertion point resolved from the host.
type Target struct {
	Namespace pagexml.Namespace
	PageID    string
	Position  *pagexml.Position // nil when nothing is partially selected
}

// Result describes a prepared or completed insertion.
type Result struct {
	PageID   string            `json:"pageId"`
	Position *pagexml.Position `json:"position,omitempty"`
	Lines    int               `json:"lines"`
	XML      string            `json:"xml"`
	Updated  bool              `json:"updated"`
}

// Pipeline wires the page service to the page XML builder.
type Pipeline struct {
	Provider Provider
	Logger   logrus.FieldLogger
	Options  pagexml.BuildOptions
	// Indent is the indentation used when rendering the update document.
	// Negative writes it on one line.
	Indent int
}

// New creates a pipeline that logs through logger, or discards logs if logger is nil.
func New(provider Provider, logger logrus.FieldLogger, opts pagexml.BuildOptions) *Pipeline {
	if logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		logger = l
	}
	return &Pipeline{
		Provider: provider,
		Logger:   logger,
		Options:  opts,
		Indent:   -1,
	}
}

// CurrentPage finds the page marked as currently viewed in the hierarchy and
// the namespace the host uses for its documents.
func (p *Pipeline) CurrentPage(ctx context.Context) (pagexml.Namespace, string, error) {
	log := p.Logger.WithField("stage", "hierarchy")

	hierarchy, err := p.fetch(func() (string, error) {
		return p.Provider.GetHierarchy(ctx, &api.HierarchyOptions{Scope: api.ScopePages, Schema: api.DefaultSchema})
	})
	if err != nil {
		log.WithError(err).Error("failed to get hierarchy")
		return pagexml.Namespace{}, "", fmt.Errorf("%w: get hierarchy: %w", ErrProviderFailure, err)
	}

	ns := pagexml.NamespaceOf(hierarchy)
	pageID, ok := pagexml.CurrentPageID(hierarchy, ns)
	if !ok {
		log.Warn("no currently viewed page")
		return ns, "", ErrNoCurrentPage
	}
	log.WithFields(logrus.Fields{"page_id": pageID, "namespace": ns.URI}).Debug("found current page")

	return ns, pageID, nil
}

// Locate resolves the current page and the selection position on it.
func (p *Pipeline) Locate(ctx context.Context) (*Target, error) {
	ns, pageID, err := p.CurrentPage(ctx)
	if err != nil {
		return nil, err
	}

	log := p.Logger.WithFields(logrus.Fields{"stage": "selection", "page_id": pageID})
	content, err := p.fetch(func() (string, error) {
		return p.Provider.GetPageContent(ctx, pageID, &api.PageContentOptions{Info: api.PageInfoSelection})
	})
	if err != nil {
		log.WithError(err).Error("failed to get page content")
		return nil, fmt.Errorf("%w: get page content: %w", ErrProviderFailure, err)
	}

	pos := pagexml.SelectionPosition(content, ns)
	if pos == nil {
		log.Debug("no partial selection, inserting at the default location")
	} else {
		log.WithFields(logrus.Fields{"x": pos.X, "y": pos.Y}).Debug("found selection position")
	}

	return &Target{Namespace: ns, PageID: pageID, Position: pos}, nil
}

// Prepare builds the update document for target without contacting the host.
func (p *Pipeline) Prepare(target *Target, html string) (*Result, error) {
	doc := pagexml.Build(target.Namespace, target.PageID, html, target.Position, p.Options)

	xml, err := pagexml.Render(doc, p.Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to render page XML: %w", err)
	}

	lines := len(pagexml.SplitLines(html))
	p.Logger.WithFields(logrus.Fields{
		"stage":   "build",
		"page_id": target.PageID,
		"lines":   lines,
	}).Debug("built page update")

	return &Result{
		PageID:   target.PageID,
		Position: target.Position,
		Lines:    lines,
		XML:      xml,
	}, nil
}

// Insert locates the insertion point, builds the update and sends it.
func (p *Pipeline) Insert(ctx context.Context, html string) (*Result, error) {
	target, err := p.Locate(ctx)
	if err != nil {
		return nil, err
	}

	res, err := p.Prepare(target, html)
	if err != nil {
		return nil, err
	}

	log := p.Logger.WithFields(logrus.Fields{"stage": "update", "page_id": res.PageID})
	if err := p.Provider.UpdatePageContent(ctx, res.XML, api.Time{}); err != nil {
		log.WithError(err).Error("failed to update page content")
		return nil, fmt.Errorf("failed to update page: %w", err)
	}
	log.WithField("lines", res.Lines).Info("inserted highlighted code")

	res.Updated = true
	return res, nil
}

func (p *Pipeline) fetch(get func() (string, error)) (*etree.Document, error) {
	xml, err := get()
	if err != nil {
		return nil, err
	}
	return pagexml.ParseDocument(xml)
}
