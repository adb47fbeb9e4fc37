package task

// FixBraces removes brace groups that cannot expand to more than one
// alternative, such as the braces in "*.{js}". A group is left alone when it
// is escaped, preceded by "$", or contains an unescaped comma, a ".." range, or
// a nested brace. An escaped comma does not count as a separator. The second
// return value reports whether pattern changed.
//
//	*.{js}       -> *.js
//	*.{js,{ts}}  -> *.{js,ts}
//	*.{js\,ts}   -> *.js\,ts
//	*.\{js\}     unchanged
//	*.${js}      unchanged
func FixBraces(pattern string) (string, bool) {
	drop := make(map[int]bool)

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '{' || (i > 0 && (pattern[i-1] == '\\' || pattern[i-1] == '$')) {
			continue
		}
		if end, ok := singleValueGroup(pattern, i); ok {
			drop[i] = true
			drop[end] = true
			i = end
		}
	}

	if len(drop) == 0 {
		return pattern, false
	}

	out := make([]byte, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		if !drop[i] {
			out = append(out, pattern[i])
		}
	}
	return string(out), true
}

// singleValueGroup scans the group opened at start and returns the index of
// its closing brace when the group holds a single literal alternative.
func singleValueGroup(pattern string, start int) (int, bool) {
	for j := start + 1; j < len(pattern); j++ {
		switch c := pattern[j]; {
		case c == '{':
			return 0, false
		case c == '}':
			if pattern[j-1] == '\\' {
				return 0, false
			}
			return j, true
		case c == ',' && pattern[j-1] != '\\':
			return 0, false
		case c == '.' && j+1 < len(pattern) && pattern[j+1] == '.':
			return 0, false
		}
	}
	return 0, false
}
