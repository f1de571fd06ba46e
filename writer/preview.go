package writer

import (
	"encoding/json"

	"github.com/wenzhi/invoicekit/layout"
)

// previewDoc is the root of the preview tree.
type previewDoc struct {
	PageCount int            `json:"page_count"`
	Pages     []*layout.Page `json:"pages"`
}

// Preview serializes composed pages as an indented JSON tree mirroring the
// block structure the PDF path draws. The same pages always yield the same
// bytes, so previews can be diffed across runs.
func Preview(pages []*layout.Page) ([]byte, error) {
	return json.MarshalIndent(previewDoc{
		PageCount: len(pages),
		Pages:     pages,
	}, "", "  ")
}
