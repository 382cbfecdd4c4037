// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes sigil tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/northgard/sigil/internal/assets"
	"github.com/northgard/sigil/internal/checksum"
	"github.com/northgard/sigil/internal/listing"
	"github.com/northgard/sigil/internal/models"
	"github.com/northgard/sigil/internal/screen"
	"github.com/northgard/sigil/internal/store"
)

// Server wraps the MCP server with sigil tools.
type Server struct {
	mcp    *server.MCPServer
	st     store.Store
	images *assets.FS
}

// New creates a new MCP server with all sigil tools registered.
func New(st store.Store, images *assets.FS) *Server {
	s := &Server{st: st, images: images}

	s.mcp = server.NewMCPServer(
		"Sigil",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_codes",
		mcp.WithDescription("List all managed QR codes with their titles, destinations, and scan counts."),
	), s.listCodes)

	s.mcp.AddTool(mcp.NewTool("read_code",
		mcp.WithDescription("Read the full record of one QR code, including its checksum for concurrent updates."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Code id")),
	), s.readCode)

	s.mcp.AddTool(mcp.NewTool("search_codes",
		mcp.WithDescription("Search codes by title substring, optionally narrowed to one destination category."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Case-insensitive substring of the title")),
		mcp.WithString("destination", mcp.Description("Optional destination filter: product or cart")),
	), s.searchCodes)

	s.mcp.AddTool(mcp.NewTool("create_code",
		mcp.WithDescription("Create a new QR code. The payload MUST follow the canonical code format "+
			"(title, destination, linked product, optional colors). Read the contract first via "+
			"the get_code_contract tool or the sigil://code-format resource."),
		mcp.WithString("code", mcp.Required(), mcp.Description("JSON payload following the sigil code format contract")),
	), s.createCode)

	s.mcp.AddTool(mcp.NewTool("get_code_contract",
		mcp.WithDescription("Returns the canonical sigil code format contract. "+
			"Call this before creating codes to ensure correct structure."),
	), s.getCodeContract)

	s.mcp.AddTool(mcp.NewTool("ingest_image",
		mcp.WithDescription("Ingest a rendered QR image for an existing code. Accepts an http(s) URL "+
			"or a base64 data URI; only PNG content is accepted."),
		mcp.WithString("code_id", mcp.Required(), mcp.Description("Id of the code the image was rendered for")),
		mcp.WithString("url", mcp.Required(), mcp.Description("Image source: http(s) URL or data URI")),
	), s.ingestImage)

	// Resource: code format contract.
	s.mcp.AddResource(
		mcp.NewResource("sigil://code-format", "Code Format Contract",
			mcp.WithResourceDescription("Canonical JSON payload format for creating QR codes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCodeFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// codeSummary is the compact row shape returned by list and search tools.
type codeSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`
	Handle      string `json:"handle,omitempty"`
	Scans       int64  `json:"scans"`
}

func summarize(codes []models.Code) []codeSummary {
	out := make([]codeSummary, len(codes))
	for i, c := range codes {
		out[i] = codeSummary{
			ID:          c.ID,
			Title:       c.Title,
			Destination: string(c.Destination),
			Handle:      c.Product.Handle,
			Scans:       c.Scans,
		}
	}
	return out
}

func (s *Server) listCodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	codes, err := s.st.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(summarize(codes), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.st.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(struct {
		models.Code
		Checksum string `json:"checksum"`
	}{Code: *c, Checksum: checksum.Sum(*c)}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchCodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category := models.Destination("")
	if d, dErr := req.RequireString("destination"); dErr == nil && d != "" {
		category = models.Destination(d)
		if category != models.DestinationProduct && category != models.DestinationCart {
			return mcp.NewToolResultError(fmt.Sprintf("unknown destination: %s (product or cart)", d)), nil
		}
	}

	codes, err := s.st.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	matched := listing.Project(codes, category, nil, query, listing.DefaultSort)
	out, _ := json.MarshalIndent(summarize(matched), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var c models.Code
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid JSON payload: %v", err)), nil
	}
	c.ID = ""
	if c.FgHex == "" {
		c.FgHex = "#000000"
	}
	if c.BgHex == "" {
		c.BgHex = "#ffffff"
	}
	if err := screen.ValidateCode(c); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid code: %v", err)), nil
	}

	created, err := s.st.Create(ctx, c)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", created.ID)), nil
}

func (s *Server) getCodeContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CodeFormatContract), nil
}

func (s *Server) readCodeFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "sigil://code-format",
			MIMEType: "text/markdown",
			Text:     CodeFormatContract,
		},
	}, nil
}
