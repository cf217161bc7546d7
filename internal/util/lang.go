package util

import (
	"strings"
)

// languageAliases maps info-string language names to lexer names.
var languageAliases = map[string]string{
	"py":         "python",
	"python3":    "python",
	"js":         "javascript",
	"node":       "javascript",
	"ts":         "typescript",
	"kt":         "kotlin",
	"kts":        "kotlin",
	"c++":        "cpp",
	"cc":         "cpp",
	"h":          "c",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"console":    "bash",
	"dotenv":     "bash",
	"golang":     "go",
	"rb":         "ruby",
	"rs":         "rust",
	"pl":         "perl",
	"md":         "markdown",
	"yml":        "yaml",
	"objc":       "objective-c",
	"dockerfile": "docker",
	"ps1":        "powershell",
	"cs":         "csharp",
	"c#":         "csharp",
	"htm":        "html",
	"jsonc":      "json",
}

// plainLanguages never get highlighted.
var plainLanguages = map[string]bool{
	"":          true,
	"text":      true,
	"txt":       true,
	"plain":     true,
	"plaintext": true,
}

// NormalizeLanguage returns the lexer name for a fenced code block language,
// or "" when the block should stay unhighlighted.
func NormalizeLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if plainLanguages[lang] {
		return ""
	}
	if alias, ok := languageAliases[lang]; ok {
		return alias
	}
	return lang
}
