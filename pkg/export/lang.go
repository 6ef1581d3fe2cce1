package export

import (
	"encoding/json"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates limits the enry classifier to languages commonly
// pasted into a code block.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "SQL", "YAML", "HTML",
}

// languageAliases maps enry language names to fence info strings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var languageAliases = map[string]string{
	"Shell":      "bash",
	"JavaScript": "javascript",
	"TypeScript": "typescript",
	"C++":        "cpp",
}

// DetectLanguage guesses the fence language of a code block.
// It returns "" when no language is detected with confidence.
func DetectLanguage(code string) string {
	content := []byte(code)
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceName(lang)
	}

	switch {
	case strings.HasPrefix(trimmed, "package "):
		return "go"
	case (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && json.Valid([]byte(trimmed)):
		return "json"
	case strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html"):
		return "html"
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceName(lang)
	}

	return ""
}

func fenceName(lang string) string {
	if alias, ok := languageAliases[lang]; ok {
		return alias
	}
	return strings.ToLower(lang)
}
