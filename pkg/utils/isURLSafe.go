package utils

import "regexp"

var urlSafePattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// check if a string value can be safely used as a part of an URL
func IsURLSafe(value string) bool {
	return value != "" && urlSafePattern.MatchString(value)
}
