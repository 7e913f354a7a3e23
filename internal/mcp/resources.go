// resources.go implements MCP resource handlers for document access.
//
// Resources give clients read-only access to a document by URI without a
// tool call. URIs follow the pattern docq://documents/{id}.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/docq/internal/store"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a missing document id in a resource URI.
	ErrEmptyID = errors.New("empty document id")
)

const documentPrefix = "docq://documents/"

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			documentPrefix+"{id}",
			"Document",
			mcp.WithTemplateDescription("Read a stored JSON document by id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readDocument,
	)
}

// readDocument handles docq://documents/{id} resource requests.
func (h *handlers) readDocument(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc, _ := h.current()
	if svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	id, err := parseDocumentURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	doc, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(doc.ToJSON())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseDocumentURI extracts the document id. Ids may contain slashes and
// percent-escapes.
func parseDocumentURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, documentPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, documentPrefix)
	if rest == "" {
		return "", ErrEmptyID
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	return id, nil
}
