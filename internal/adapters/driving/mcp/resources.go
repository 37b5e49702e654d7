package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Recall resources.
	uriScheme = "recall://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for the documents of one owner.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "owners/{ownerId}/documents",
		Name:        "owner-documents",
		Description: "Filenames the owner has uploaded",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for the interaction history of one owner.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "owners/{ownerId}/history",
		Name:        "owner-history",
		Description: "Past question/answer exchanges of the owner, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleDocumentsResource returns the filenames an owner has uploaded.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ownerID := extractOwnerID(req.Params.URI, "/documents")
	if ownerID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	filenames, err := s.ports.Document.ListFilenames(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	if filenames == nil {
		filenames = []string{}
	}

	data, err := json.MarshalIndent(filenames, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleHistoryResource returns an owner's interaction history.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ownerID := extractOwnerID(req.Params.URI, "/history")
	if ownerID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	interactions, err := s.ports.History.History(ctx, ownerID, 0)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	// Build simplified history entries.
	type historyInfo struct {
		Question  string   `json:"question"`
		Answer    string   `json:"answer"`
		Sources   []string `json:"sources"`
		CreatedAt string   `json:"created_at"`
	}

	infos := make([]historyInfo, len(interactions))
	for i := range interactions {
		sources := make([]string, 0, len(interactions[i].References))
		for j := range interactions[i].References {
			sources = append(sources, interactions[i].References[j].Filename)
		}
		infos[i] = historyInfo{
			Question:  interactions[i].Question,
			Answer:    interactions[i].Answer,
			Sources:   sources,
			CreatedAt: interactions[i].CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractOwnerID extracts the owner ID from a URI like
// recall://owners/{ownerId}{suffix}.
func extractOwnerID(uri, suffix string) string {
	const prefix = uriScheme + "owners/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
