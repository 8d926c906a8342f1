package core

import "strings"

// Plural returns the plural form of the passed singular string.
//
// This is the algorithm used to create idiomatic REST routes.
func Plural(singular string) string {
	if strings.HasSuffix(singular, "y") {
		return strings.TrimSuffix(singular, "y") + "ies"
	}
	return singular + "s"
}

// Capitalize upper-cases the first rune of s. Component schemas are keyed
// by the capitalized resource name.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	runes := []rune(s)
	if 'a' <= runes[0] && runes[0] <= 'z' {
		runes[0] += 'A' - 'a'
	}
	return string(runes)
}
