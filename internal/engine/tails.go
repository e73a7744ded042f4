package engine

// DrawTiers holds the published winning numbers of one draw, grouped by
// prize tier. Callers must supply empty slices, never nil, for the tiers the
// bet's region publishes; the engine only truncates suffixes and does no
// further shape validation.
type DrawTiers struct {
	DacBiet []string // Đặc Biệt (Special)
	Nhat    []string // Giải Nhất (First)
	Nhi     []string // Giải Nhì (Second)
	Ba      []string // Giải Ba (Third)
	Tu      []string // Giải Tư (Fourth)
	Nam     []string // Giải Năm (Fifth)
	Sau     []string // Giải Sáu (Sixth)
	Bay     []string // Giải Bảy (Seventh)
	Tam     []string // Giải Tám (Eighth), M1 draws only
}

// tier pairs a display label with its numbers, preserving the published
// order from Special down to Eighth.
type tier struct {
	Label   string
	Numbers []string
}

func (d DrawTiers) ordered() []tier {
	return []tier{
		{"Đặc Biệt", d.DacBiet},
		{"Giải Nhất", d.Nhat},
		{"Giải Nhì", d.Nhi},
		{"Giải Ba", d.Ba},
		{"Giải Tư", d.Tu},
		{"Giải Năm", d.Nam},
		{"Giải Sáu", d.Sau},
		{"Giải Bảy", d.Bay},
		{"Giải Tám", d.Tam},
	}
}

// tailOf returns the last n digits of a published number, or the whole
// number when it is shorter than n.
func tailOf(number string, n int) string {
	if len(number) <= n {
		return number
	}
	return number[len(number)-n:]
}

// tailsOfLength maps every prize tier to the n-digit tails of its published
// numbers, keeping tier order. Shared by the bao-lô, xiên and đá handlers.
func tailsOfLength(d DrawTiers, n int) []tier {
	out := make([]tier, 0, 9)
	for _, t := range d.ordered() {
		tails := make([]string, 0, len(t.Numbers))
		for _, num := range t.Numbers {
			tails = append(tails, tailOf(num, n))
		}
		out = append(out, tier{Label: t.Label, Numbers: tails})
	}
	return out
}

// tailCounts flattens the whole draw into a multiset of n-digit tails.
// Xiên reads it as a set; đá needs the multiplicities.
func tailCounts(d DrawTiers, n int) map[string]int {
	counts := make(map[string]int)
	for _, t := range d.ordered() {
		for _, num := range t.Numbers {
			counts[tailOf(num, n)]++
		}
	}
	return counts
}

// firstOf returns the first published number of a tier, or "" when the tier
// is empty. The fixed-subset wager types (b7l, b8l) read single entries.
func firstOf(numbers []string) string {
	if len(numbers) == 0 {
		return ""
	}
	return numbers[0]
}

// ValidateNumbers checks the chosen-number input contract: non-empty list,
// every entry digit-only and exactly `digits` long. Callers zero-pad before
// reaching the engine.
func ValidateNumbers(numbers []string, digits int) error {
	if len(numbers) == 0 {
		return ErrInvalidNumbers
	}
	for _, n := range numbers {
		if len(n) != digits {
			return ErrInvalidNumbers
		}
		for _, c := range n {
			if c < '0' || c > '9' {
				return ErrInvalidNumbers
			}
		}
	}
	return nil
}
