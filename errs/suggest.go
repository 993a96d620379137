package errs

// Suggest returns the candidate in options whose last path segment is
// closest (by Levenshtein distance) to target, or "" if options is empty.
//
// Grounded on original_source's errors.py MissingSymbol, which ranks
// candidates by python-Levenshtein distance and reports the closest. No
// Levenshtein library appears anywhere in the example pack, so this is a
// small self-contained implementation rather than a hand-rolled stand-in
// for a dependency that was never available to begin with.
func Suggest(target string, options []string) string {
	best := ""
	bestDistance := -1

	for _, option := range options {
		d := levenshtein(target, lastSegment(option))
		if bestDistance == -1 || d < bestDistance {
			bestDistance = d
			best = option
		}
	}

	return best
}

func lastSegment(path string) string {
	last := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			last = path[i+1:]
			break
		}
	}
	return last
}

func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	rows, cols := len(ar)+1, len(br)+1
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}

	return prev[cols-1]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
