package filter

import "strings"

// Normalize converts a user-supplied exclusion pattern into the token used
// for matching. Backslashes become forward slashes, a trailing "/**" is
// dropped, and so are any trailing slashes. The result may be empty.
func Normalize(pattern string) string {
	s := strings.ReplaceAll(strings.TrimSpace(pattern), `\`, "/")
	s = strings.TrimSuffix(s, "/**")
	return strings.TrimRight(s, "/")
}

// hasMeta reports whether the token contains glob metacharacters. Such
// tokens are accepted but never expanded, so they match nothing.
func hasMeta(token string) bool {
	return strings.ContainsAny(token, "*?[")
}

// matchToken tests a literal token against a directory's bare name and its
// slash-separated root-relative path. An ancestor of relPath also matches.
func matchToken(token, name, relPath string) bool {
	if token == "" || hasMeta(token) {
		return false
	}
	return name == token ||
		relPath == token ||
		strings.HasPrefix(relPath, token+"/")
}
