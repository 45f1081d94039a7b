package output

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxSheetNameLength = 31

var sheetNameReplacer = strings.NewReplacer(
	":", " ",
	"\\", " ",
	"/", " ",
	"?", " ",
	"*", " ",
	"[", " ",
	"]", " ",
)

// SanitizeSheetName maps an entity name onto something Excel accepts:
// forbidden characters become spaces and the result is capped at the
// 31-character sheet name limit, on a rune boundary.
func SanitizeSheetName(name string) string {
	cleaned := strings.TrimSpace(sheetNameReplacer.Replace(name))
	if cleaned == "" {
		cleaned = "Sheet"
	}
	return truncateRunes(cleaned, maxSheetNameLength)
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit]))
}

// sheetNamer hands out sanitized sheet names that are unique within one
// workbook. Distinct entity names can sanitize to the same string; later
// claims get a numeric suffix within the length cap so no sheet silently
// overwrites another. Excel treats sheet names case-insensitively, so
// uniqueness is tracked on the lowercased name.
type sheetNamer struct {
	used map[string]struct{}
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]struct{})}
}

func (n *sheetNamer) claim(raw string) string {
	base := SanitizeSheetName(raw)
	name := base
	for i := 2; n.taken(name); i++ {
		suffix := " " + strconv.Itoa(i)
		name = truncateRunes(base, maxSheetNameLength-utf8.RuneCountInString(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = struct{}{}
	return name
}

func (n *sheetNamer) taken(name string) bool {
	_, exists := n.used[strings.ToLower(name)]
	return exists
}
