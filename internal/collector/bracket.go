package collector

import "strings"

// lastGroup locates the last opening delimiter in s and the first closing
// delimiter after it. before is the text preceding the opener with trailing
// whitespace removed. This is a "last occurrence" search, not a balanced
// match: a description that itself contains brackets splits at the final one.
func lastGroup(s string, open, close byte) (before, inner string, ok bool) {
	lb := strings.LastIndexByte(s, open)
	if lb < 0 {
		return "", "", false
	}
	rb := strings.IndexByte(s[lb+1:], close)
	if rb < 0 {
		return "", "", false
	}
	return strings.TrimRight(s[:lb], " \t"), s[lb+1 : lb+1+rb], true
}

// trailingGroup is lastGroup restricted to a group that ends s exactly
func trailingGroup(s string, open, close byte) (before, inner string, ok bool) {
	lb := strings.LastIndexByte(s, open)
	if lb < 0 || s[len(s)-1] != close {
		return "", "", false
	}
	inner = s[lb+1 : len(s)-1]
	// the final closer must belong to the last opener
	if strings.IndexByte(inner, close) >= 0 {
		return "", "", false
	}
	return strings.TrimRight(s[:lb], " \t"), inner, true
}

// splitIDPair splits "8086:2922" into its vendor and device halves
func splitIDPair(s string) (vendor, device string, ok bool) {
	return strings.Cut(s, ":")
}
