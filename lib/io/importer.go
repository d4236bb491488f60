package io

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

var ErrImportTooLarge = errors.New("import exceeds the maximum size")

// Importer turns HTML or Markdown documents into markup the list upcast
// understands and loads it into an editor.
type Importer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	maxSize  int64
	logger   *zap.SugaredLogger
}

// NewImporter creates an importer. With sanitize set, imported HTML passes
// through an allow-list policy before it is upcast. A maxSize of zero means
// unlimited.
func NewImporter(sanitize bool, maxSize int64, logger *zap.SugaredLogger) *Importer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	i := &Importer{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		maxSize:  maxSize,
		logger:   logger,
	}
	if sanitize {
		i.policy = importPolicy()
	}
	return i
}

func importPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()

	policy.AllowElements("figure", "figcaption", "label", "input")
	policy.AllowNoAttrs().OnElements("label", "input")
	policy.AllowAttrs("type").Matching(regexp.MustCompile(`(?i)^checkbox$`)).OnElements("input")
	policy.AllowAttrs("checked", "disabled").OnElements("input")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)).OnElements("ul", "ol", "li", "span", "label", "figure", "table")

	return policy
}

// ToHTML converts content in the given format to upcast-ready HTML.
func (i *Importer) ToHTML(content string, format Format) (string, error) {
	if i.maxSize > 0 && int64(len(content)) > i.maxSize {
		return "", ErrImportTooLarge
	}

	markup := content
	if format == FormatMarkdown {
		var buf bytes.Buffer
		if err := i.markdown.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("markdown import: %w", err)
		}
		markup = buf.String()
	}

	if i.policy != nil {
		markup = i.policy.Sanitize(markup)
	}
	return markup, nil
}

// Import replaces the content of ed with the imported document.
func (i *Importer) Import(ed *editor.Editor, content string, format Format) error {
	markup, err := i.ToHTML(content, format)
	if err != nil {
		return err
	}
	i.logger.Debugw("importing document", "format", format, "size", len(content))
	return ed.SetData(markup)
}
