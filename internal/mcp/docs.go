package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `deckgen builds an auction deck: one slide per roster record, cloned from the template slide (slide 0).

Core concepts:
- Template: slide 0. Never edited by the tools; every generated slide is a copy of it.
- Photo slot: the leftmost picture on the template. A player's photo replaces it, fitted and centred.
- Info grid: a 2x2 table (name, age / category, phone) placed near the bottom, always on top.
- Join key: the record's phone number. Photos are matched by file name (e.g. 9740834449.jpg).

Workflow:
1) inspect_deck to see what the deck holds.
2) generate_deck (reset=true to rebuild from the template only).
3) reorder_deck to sort slides by name. A .backup copy is written first.
4) list_runs / get_run to review earlier runs and per-record outcomes.

Docs:
- deckgen://docs/index
- deckgen://docs/outcomes
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "deckgen://docs/index",
		Name:        "docs_index",
		Title:       "deckgen docs index",
		Description: "What the tools do and the order to call them in.",
		Content: `# deckgen

## Tools

- ` + "`inspect_deck`" + ` lists every slide with its player name and pictures.
- ` + "`generate_deck`" + ` appends one slide per roster record with a valid join key.
- ` + "`reset_deck`" + ` drops every slide except the template.
- ` + "`reorder_deck`" + ` sorts generated slides by name, case-insensitively. Slides without a name go last.
- ` + "`list_runs`" + ` and ` + "`get_run`" + ` read the run ledger.

## Regenerating

Generated content is tagged when it is created, so regenerating never stacks a second
info grid or photo on a slide. Running ` + "`generate_deck`" + ` with ` + "`reset=true`" + ` twice
gives the same deck both times.

## Safety

` + "`reorder_deck`" + ` copies the deck to ` + "`<deck>.backup`" + ` before touching it and rebuilds
every slide from that copy. If the final save fails, the deck is restored from the backup.
`,
	},
	{
		URI:         "deckgen://docs/outcomes",
		Name:        "docs_outcomes",
		Title:       "Per-record outcomes",
		Description: "What COMMITTED, SKIPPED and FAILED mean, and the reasons a slide has no photo.",
		Content: `# Outcomes

| State | Meaning |
|---|---|
| COMMITTED | A slide was added. ` + "`image_bound`" + ` tells whether the photo was placed. |
| SKIPPED | The join key was empty or not all digits (e.g. "?"). No slide was added. |
| FAILED | The template could not be cloned. No slide was added. |

Reasons a committed slide has no photo:

- ` + "`asset not found`" + `: no photo file is named after the join key.
- ` + "`unsupported asset format`" + `: only jpg, jpeg, png, gif, bmp, tiff, tif and wmf are embedded.
- ` + "`asset unreadable`" + `: the photo file could not be read.
- ` + "`embedded image payload is empty`" + `: the photo file is empty; the slot was removed.
- ` + "`no photo slot on slide`" + `: the template has no picture to replace.

Run counts: ` + "`with_image + without_image = committed`" + `, and the deck holds ` + "`1 + committed`" + `
slides after a run with ` + "`reset=true`" + `.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
