package common

import (
	"fmt"
	"regexp"
)

// CompilePatterns compiles a list of case-insensitive regex patterns.
// Returns ErrInvalidConfig wrapping the first pattern that fails to compile.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidConfig, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// AnyMatch reports whether any of the compiled patterns matches text.
func AnyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
