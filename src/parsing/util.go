package parsing

import "regexp"

// Returns the bounds of a named group within a match from FindSubmatchIndex. ok is false if the
// group did not take part in the match.
func submatchBounds(re *regexp.Regexp, m []int, subexpName string) (start, end int, ok bool) {
	i := re.SubexpIndex(subexpName)
	if i < 0 || m[2*i] < 0 {
		return -1, -1, false
	}
	return m[2*i], m[2*i+1], true
}

func extractBySubmatchIndices(src []byte, re *regexp.Regexp, m []int, subexpName string) []byte {
	start, end, ok := submatchBounds(re, m, subexpName)
	if !ok {
		return nil
	}
	return src[start:end]
}
