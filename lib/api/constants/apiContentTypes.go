package constants

const (
	ContentTypeHTML     = "text/html; charset=utf-8"
	ContentTypeJSON     = "application/json"
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
)
