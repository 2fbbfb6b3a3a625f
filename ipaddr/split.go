package ipaddr

import "strings"

// Split cuts s around every occurrence of sep and returns the fields between
// them. Empty fields are preserved, so the result always holds one more
// element than there are separators in s, and an empty s yields [""].
//
//	Split("", '.')      -> [""]
//	Split("..", '.')    -> ["" "" ""]
//	Split("11.22", '.') -> ["11" "22"]
func Split(s string, sep byte) []string {
	fields := make([]string, 0, strings.Count(s, string([]byte{sep}))+1)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			fields = append(fields, s[start:i])
			start = i + 1
		}
	}
	return append(fields, s[start:])
}
