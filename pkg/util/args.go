package util

import "strings"

// SplitCommand separates the command name from the rest of the line.
func SplitCommand(input string) (name string, rest string) {
	input = strings.TrimSpace(input)
	if idx := strings.IndexAny(input, " \t\n"); idx >= 0 {
		return input[:idx], strings.TrimSpace(input[idx+1:])
	}
	return input, ""
}

// QuotedArg pops the next argument off input. A double-quoted argument may
// contain spaces; an unquoted one ends at the first whitespace. An
// unterminated quote consumes the rest of the input.
func QuotedArg(input string) (arg string, rest string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ""
	}

	if input[0] == '"' {
		if end := strings.IndexByte(input[1:], '"'); end >= 0 {
			return input[1 : end+1], strings.TrimSpace(input[end+2:])
		}
		return input[1:], ""
	}

	if idx := strings.IndexAny(input, " \t\n"); idx >= 0 {
		return input[:idx], strings.TrimSpace(input[idx+1:])
	}
	return input, ""
}
