package editor

import (
	"path/filepath"
	"strings"

	"github.com/fivemoreminix/qpad/pkg/buffer"
)

var extensionLanguages = map[string]string{
	".py":   "python",
	".html": "html",
	".js":   "javascript",
}

// DetectLanguage maps a file path to a language by its extension. Unknown
// and missing extensions are plain text.
func DetectLanguage(path string) string {
	return detectLanguage(path, nil)
}

// detectLanguage consults extra before the built-in table.
func detectLanguage(path string, extra map[string]string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return buffer.PlainText
	}
	if lang, ok := extra[ext]; ok {
		return lang
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return buffer.PlainText
}
