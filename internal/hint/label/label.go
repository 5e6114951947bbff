package label

import "unicode"

// Fixed returns up to count distinct labels, each exactly length runes long.
//
// Labels are produced in the order of a depth-first walk over alphabet^length,
// with the first rune as the most significant digit. Generation stops as soon
// as count labels exist. If len(alphabet)^length < count the result is short.
func Fixed(alphabet []rune, count, length int) []string {
	if count <= 0 || length < 1 || len(alphabet) == 0 {
		return []string{}
	}

	out := make([]string, 0, min(count, capacity(len(alphabet), length)))
	idx := make([]int, length)
	buf := make([]rune, length)

	for len(out) < count {
		for i, j := range idx {
			buf[i] = alphabet[j]
		}
		out = append(out, string(buf))

		// Advance the odometer; the last position varies fastest.
		p := length - 1
		for ; p >= 0; p-- {
			idx[p]++
			if idx[p] < len(alphabet) {
				break
			}
			idx[p] = 0
		}
		if p < 0 {
			break
		}
	}
	return out
}

// capacity returns n^length, saturating instead of overflowing.
func capacity(n, length int) int {
	const limit = 1 << 20
	total := 1
	for i := 0; i < length; i++ {
		total *= n
		if total >= limit {
			return limit
		}
	}
	return total
}

// Variable returns up to count distinct labels forming a prefix-free code.
//
// The working queue starts with the empty string. While fewer than count
// entries remain past the offset (or only the seed exists), the entry at the
// offset is expanded by appending every alphabet rune in order and the offset
// moves past it. The count entries starting at the offset are returned.
// Every expanded entry sits before the offset, so no returned label is a
// prefix of another.
func Variable(alphabet []rune, count int) []string {
	if count <= 0 || len(alphabet) == 0 {
		return []string{}
	}
	// A single rune can only form a one-word prefix-free code.
	if len(alphabet) == 1 {
		return []string{string(alphabet[0])}
	}

	queue := []string{""}
	offset := 0
	for len(queue)-offset < count || len(queue) == 1 {
		head := queue[offset]
		offset++
		for _, r := range alphabet {
			queue = append(queue, head+string(r))
		}
	}

	out := make([]string, count)
	copy(out, queue[offset:offset+count])
	return out
}

// Generate dispatches to Fixed or Variable according to the policy.
func Generate(alphabet []rune, count int, policy Policy) []string {
	switch policy.Kind {
	case KindFixed:
		return Fixed(alphabet, count, policy.Length)
	default:
		return Variable(alphabet, count)
	}
}

// Distribute splits labels across groups, taking sizes[i] labels for group i
// from left to right. When labels runs out, later groups receive fewer
// labels than their size (possibly none).
func Distribute(labels []string, sizes []int) [][]string {
	groups := make([][]string, len(sizes))
	next := 0
	for i, size := range sizes {
		if size < 0 {
			size = 0
		}
		end := min(next+size, len(labels))
		groups[i] = make([]string, end-next)
		copy(groups[i], labels[next:end])
		next = end
	}
	return groups
}

// Exclude returns alphabet without the reserved runes, keeping order.
// The comparison is case-insensitive because label matching is.
func Exclude(alphabet, reserved []rune) []rune {
	if len(reserved) == 0 {
		return append([]rune(nil), alphabet...)
	}
	blocked := make(map[rune]struct{}, len(reserved))
	for _, r := range reserved {
		blocked[foldKey(r)] = struct{}{}
	}
	out := make([]rune, 0, len(alphabet))
	for _, r := range alphabet {
		if _, ok := blocked[foldKey(r)]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// foldKey returns the smallest rune in r's simple case folding orbit, so
// runes that match each other case-insensitively share one key.
func foldKey(r rune) rune {
	key := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < key {
			key = f
		}
	}
	return key
}
