package bet

import "strings"

// padNumbers left-pads every chosen number with zeros to the rule's digit
// length, matching how players type "7" for the 2-digit number "07". Entries
// already at or past the length pass through untouched; the engine's
// contract check rejects anything still off-length.
func padNumbers(numbers []string, digits int) []string {
	out := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if len(n) < digits {
			n = strings.Repeat("0", digits-len(n)) + n
		}
		out = append(out, n)
	}
	return out
}

func joinNumbers(numbers []string) string {
	return strings.Join(numbers, ",")
}
