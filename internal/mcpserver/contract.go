package mcpserver

// CodeFormatContract describes the canonical code payload format that
// LLM consumers should follow when creating codes.
const CodeFormatContract = `# Sigil Code Format Contract

Every QR code created through the ` + "`" + `create_code` + "`" + ` tool MUST follow this
JSON structure.

## Structure

` + "```" + `json
{
  "title": "Spring sale banner",        // REQUIRED - shown in the listing
  "destination": "product",             // REQUIRED - "product" or "cart"
  "product": {                          // REQUIRED - the linked shop product
    "id": "prod_123",                   //   REQUIRED
    "variant_id": "var_456",            //   required for "cart" destinations
    "handle": "spring-banner",          //   URL handle of the product page
    "title": "Spring banner",
    "image_url": "https://...",         //   optional
    "image_alt": "A spring banner"      //   optional
  },
  "fg_hex": "#1a2b3c",                  // OPTIONAL - defaults to #000000
  "bg_hex": "#ffffff"                   // OPTIONAL - defaults to #ffffff
}
` + "```" + `

## Rules

1. **` + "`" + `title` + "`" + ` is required.** It is the primary display name and the
   field free-text search matches against.
2. **` + "`" + `destination` + "`" + ` is required** and must be ` + "`" + `product` + "`" + ` or ` + "`" + `cart` + "`" + `.
   A ` + "`" + `product` + "`" + ` code redirects scanners to the product page; a ` + "`" + `cart` + "`" + `
   code redirects to a cart pre-filled with one unit of the variant.
3. **A product must be linked.** ` + "`" + `product.id` + "`" + ` is required; cart
   destinations also need ` + "`" + `product.variant_id` + "`" + ` for the permalink.
4. **Colors** are 6-digit lowercase hex strings with a leading ` + "`" + `#` + "`" + `.
   Do not send alpha channels; translucency is not supported.
5. **Server-maintained fields** (` + "`" + `id` + "`" + `, ` + "`" + `scans` + "`" + `, ` + "`" + `image_path` + "`" + `,
   timestamps) must not be included; they are ignored if present.

## Rendered images

- Codes are created without an image. A renderer produces the PNG
  separately and hands it over via the ` + "`" + `ingest_image` + "`" + ` tool.
- ` + "`" + `ingest_image` + "`" + ` accepts an http(s) URL or a base64 data URI and only
  PNG content.
- Once ingested, the image is served at ` + "`" + `/images/<code id>.png` + "`" + `.
`
