package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultOwner is used when a tool call does not name an owner.
const defaultOwner = "default"

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the owner's documents"`
	Owner    string `json:"owner,omitempty" jsonschema:"owner ID scoping the question (default \"default\")"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string            `json:"answer"`
	References []ReferenceOutput `json:"references"`
	NoContext  bool              `json:"no_context"`
}

// ReferenceOutput is one cited chunk in an answer.
type ReferenceOutput struct {
	Filename string  `json:"filename"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// UploadInput is the input schema for the upload tool.
type UploadInput struct {
	Filename string `json:"filename" jsonschema:"the filename to store the document under"`
	Content  string `json:"content" jsonschema:"the document text to upload"`
	Owner    string `json:"owner,omitempty" jsonschema:"owner ID the document belongs to (default \"default\")"`
}

// UploadOutput is the output schema for the upload tool.
type UploadOutput struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Owner string `json:"owner,omitempty" jsonschema:"owner ID whose documents to list (default \"default\")"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Filenames []string `json:"filenames"`
	Count     int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using only the owner's uploaded documents",
	}, s.handleAsk)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "upload_document",
			Description: "Upload a document into the owner's corpus",
		}, s.handleUpload)
	}

	if s.ports.Document != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_documents",
			Description: "List the filenames the owner has uploaded",
		}, s.handleListDocuments)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	owner := input.Owner
	if owner == "" {
		owner = defaultOwner
	}

	answer, err := s.ports.Ask.Ask(ctx, owner, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:     answer.Text,
		References: make([]ReferenceOutput, len(answer.References)),
		NoContext:  answer.NoContext,
	}
	for i := range answer.References {
		output.References[i] = ReferenceOutput{
			Filename: answer.References[i].Filename,
			Content:  answer.References[i].Content,
			Score:    float64(answer.References[i].Score),
		}
	}

	return nil, output, nil
}

// handleUpload handles the upload_document tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	if s.ports.Ingest == nil {
		return nil, UploadOutput{}, errors.New("ingest service not configured")
	}

	owner := input.Owner
	if owner == "" {
		owner = defaultOwner
	}

	doc, err := s.ports.Ingest.Ingest(ctx, owner, input.Filename, []byte(input.Content))
	if err != nil {
		return nil, UploadOutput{}, err
	}

	return nil, UploadOutput{
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		ChunkCount: doc.ChunkCount,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Document == nil {
		return nil, ListDocumentsOutput{}, errors.New("document service not configured")
	}

	owner := input.Owner
	if owner == "" {
		owner = defaultOwner
	}

	filenames, err := s.ports.Document.ListFilenames(ctx, owner)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	return nil, ListDocumentsOutput{
		Filenames: filenames,
		Count:     len(filenames),
	}, nil
}
