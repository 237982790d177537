package cfg

// Compress removes closed loops from a derivation. The depth-first search
// may pass through the same sentential form more than once before
// succeeding; whenever a string recurs, everything from its first
// occurrence up to its last collapses into the single last occurrence.
// Scanning runs from the end of the derivation toward the start. The
// result is loop free but not guaranteed minimal, and loop-free input
// comes back unchanged.
func Compress(derivation []string) []string {
	out := make([]string, len(derivation))
	copy(out, derivation)

	for i := len(derivation) - 1; i >= 0; i-- {
		s := derivation[i]
		first, last, n := -1, -1, 0
		for j, cand := range out {
			if cand == s {
				if first < 0 {
					first = j
				}
				last = j
				n++
			}
		}
		if n > 1 {
			out = append(out[:first], out[last:]...)
		}
	}
	return out
}
