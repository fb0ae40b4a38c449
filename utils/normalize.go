package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// NormalizeFoodName lowercases a food name, strips punctuation and
// collapses whitespace so it can serve as a catalog lookup key.
func NormalizeFoodName(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// QueryVariants is the external lookup ladder for a food name: the name
// itself, "raw"/"cooked" qualified forms, then a crude singular.
func QueryVariants(name string) []string {
	name = strings.TrimSpace(name)
	return []string{
		name,
		name + " raw",
		name + " cooked",
		Singularize(name),
	}
}

// Singularize strips a trailing "s" from names like "apples". Words ending
// in "ss" (grass, molasses) are left alone.
func Singularize(name string) string {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) > 3 && strings.HasSuffix(trimmed, "s") && !strings.HasSuffix(trimmed, "ss") {
		return strings.TrimSuffix(trimmed, "s")
	}
	return trimmed
}
