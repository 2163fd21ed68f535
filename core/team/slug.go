package team

import "strings"

var slugReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// Slug derives the cache/route slug of a team display name:
// lowercase with spaces replaced by underscores.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugReplacer.Replace(s)
	// ".." would escape the cache root
	return strings.ReplaceAll(s, "..", "_")
}
