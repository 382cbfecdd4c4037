package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/northgard/sigil/internal/assets"
	"github.com/northgard/sigil/internal/models"
	"github.com/northgard/sigil/internal/store"
)

func testServer(t *testing.T) (*Server, store.Store) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "sigil-mcp-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	fs, err := assets.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	srv := New(db, fs)
	return srv, db
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we test
	// through the tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_codes":
		result, err = srv.listCodes(ctx, req)
	case "read_code":
		result, err = srv.readCode(ctx, req)
	case "search_codes":
		result, err = srv.searchCodes(ctx, req)
	case "create_code":
		result, err = srv.createCode(ctx, req)
	case "get_code_contract":
		result, err = srv.getCodeContract(ctx, req)
	case "ingest_image":
		result, err = srv.ingestImage(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func samplePayload(title, destination, handle string) string {
	payload, _ := json.Marshal(models.Code{
		Title:       title,
		Destination: models.Destination(destination),
		Product: models.ProductRef{
			ID:        "prod-" + handle,
			VariantID: "var-" + handle,
			Handle:    handle,
			Title:     title,
		},
	})
	return string(payload)
}

func TestCreateAndReadCode(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_code", map[string]interface{}{
		"code": samplePayload("Window sticker", "product", "sticker"),
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: ") {
		t.Fatalf("create result = %q", text)
	}
	id := strings.TrimPrefix(text, "created: ")

	r = callTool(t, srv, "read_code", map[string]interface{}{"id": id})
	var got struct {
		models.Code
		Checksum string `json:"checksum"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Title != "Window sticker" {
		t.Errorf("title = %q", got.Title)
	}
	if got.FgHex != "#000000" || got.BgHex != "#ffffff" {
		t.Errorf("default colors = %q/%q", got.FgHex, got.BgHex)
	}
	if got.Checksum == "" {
		t.Error("checksum missing")
	}
}

func TestCreateCodeInvalid(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_code", map[string]interface{}{
		"code": `{"title":"","destination":"elsewhere"}`,
	})
	if !r.IsError {
		t.Error("expected error for invalid payload")
	}

	r = callTool(t, srv, "create_code", map[string]interface{}{"code": "not json"})
	if !r.IsError {
		t.Error("expected error for malformed JSON")
	}
}

func TestReadCodeMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_code", map[string]interface{}{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing code")
	}
}

func TestListAndSearchCodes(t *testing.T) {
	srv, _ := testServer(t)

	callTool(t, srv, "create_code", map[string]interface{}{"code": samplePayload("apple", "product", "apple")})
	callTool(t, srv, "create_code", map[string]interface{}{"code": samplePayload("Banner", "cart", "banner")})
	callTool(t, srv, "create_code", map[string]interface{}{"code": samplePayload("Card", "product", "card")})

	r := callTool(t, srv, "list_codes", map[string]interface{}{})
	var all []codeSummary
	if err := json.Unmarshal([]byte(resultText(r)), &all); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list len = %d, want 3", len(all))
	}

	r = callTool(t, srv, "search_codes", map[string]interface{}{"query": "an"})
	var hits []codeSummary
	_ = json.Unmarshal([]byte(resultText(r)), &hits)
	if len(hits) != 2 || hits[0].Title != "Banner" || hits[1].Title != "Card" {
		t.Fatalf("search hits = %v", hits)
	}

	r = callTool(t, srv, "search_codes", map[string]interface{}{"query": "an", "destination": "cart"})
	hits = nil
	_ = json.Unmarshal([]byte(resultText(r)), &hits)
	if len(hits) != 1 || hits[0].Title != "Banner" {
		t.Fatalf("narrowed hits = %v", hits)
	}

	r = callTool(t, srv, "search_codes", map[string]interface{}{"query": "x", "destination": "elsewhere"})
	if !r.IsError {
		t.Error("expected error for unknown destination")
	}
}

func TestGetCodeContract(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_code_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Code Format Contract") {
		t.Error("contract text missing")
	}
}

func TestIngestImageDataURI(t *testing.T) {
	srv, db := testServer(t)

	r := callTool(t, srv, "create_code", map[string]interface{}{
		"code": samplePayload("Poster", "product", "poster"),
	})
	id := strings.TrimPrefix(resultText(r), "created: ")

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	r = callTool(t, srv, "ingest_image", map[string]interface{}{"code_id": id, "url": uri})
	if r.IsError {
		t.Fatalf("ingest failed: %s", resultText(r))
	}
	if want := "ingested: /images/" + id + ".png"; resultText(r) != want {
		t.Errorf("ingest result = %q, want %q", resultText(r), want)
	}

	c, err := db.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if c.ImagePath == "" {
		t.Error("image path not linked")
	}
}

func TestIngestImageRejects(t *testing.T) {
	srv, db := testServer(t)

	created, err := db.Create(context.Background(), models.Code{
		Title:       "Shelf tag",
		Destination: models.DestinationProduct,
		Product:     models.ProductRef{ID: "p1", Handle: "shelf-tag"},
		FgHex:       "#000000",
		BgHex:       "#ffffff",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Unknown code.
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n"))
	r := callTool(t, srv, "ingest_image", map[string]interface{}{"code_id": "nope", "url": uri})
	if !r.IsError {
		t.Error("expected error for unknown code")
	}

	// Non-PNG content.
	jpeg := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("\xff\xd8\xff"))
	r = callTool(t, srv, "ingest_image", map[string]interface{}{"code_id": created.ID, "url": jpeg})
	if !r.IsError {
		t.Error("expected error for non-png data URI")
	}

	// PNG-labelled but not actually PNG bytes.
	fake := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("plain text"))
	r = callTool(t, srv, "ingest_image", map[string]interface{}{"code_id": created.ID, "url": fake})
	if !r.IsError {
		t.Error("expected error for mislabelled content")
	}

	// Blocked scheme.
	r = callTool(t, srv, "ingest_image", map[string]interface{}{"code_id": created.ID, "url": "ftp://example.com/x.png"})
	if !r.IsError {
		t.Error("expected error for unsupported scheme")
	}
}
