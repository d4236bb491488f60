package io

import (
	"fmt"

	"github.com/ether/etherpad-todolist/lib/editor"
)

// Export returns the document of ed in the requested format. HTML export is
// the data markup.
func Export(ed *editor.Editor, format Format) (string, error) {
	switch format {
	case FormatHTML:
		return ed.GetData(), nil
	case FormatMarkdown:
		return ExportMarkdown(ed.Blocks()), nil
	}
	return "", fmt.Errorf("unsupported format: %s", format)
}

// ContentType is the response media type of an export.
func ContentType(format Format) string {
	if format == FormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}
