package groundcheck

import "strings"

// NameSeparator joins technician and sign-off lists into one stored column.
const NameSeparator = ", "

// JoinNames stores an ordered name list as a single string, keeping
// submission order.
func JoinNames(names []string) string {
	return strings.Join(names, NameSeparator)
}

// SplitNames reverses JoinNames. An empty string is an empty list.
func SplitNames(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, NameSeparator)
}
