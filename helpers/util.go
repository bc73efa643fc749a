package helpers

import (
	"strings"
)

// ContainsFold reports whether substr is within s, ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SquashSpace trims s and collapses inner whitespace runs to one space
func SquashSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
