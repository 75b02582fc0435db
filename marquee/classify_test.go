package marquee

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want Class
	}{
		{"latin letter", 'A', Regular},
		{"digit", '7', Regular},
		{"space", ' ', Regular},
		{"cjk", '中', Regular},
		{"grinning face", 0x1F600, Pictographic},
		{"last emoticon", 0x1F64F, Pictographic},
		{"cyclone", 0x1F300, Pictographic},
		{"rocket", 0x1F680, Pictographic},
		{"regional indicator A", 0x1F1E6, Pictographic},
		{"sun", 0x2600, Pictographic},
		{"scissors", 0x2702, Pictographic},
		{"supplemental pictograph", 0x1F9F0, Pictographic},
		{"chess symbol", 0x1FA00, Pictographic},
		{"extended-a pictograph", 0x1FA70, Pictographic},
		{"hourglass (misc technical)", 0x231B, Pictographic},
		{"double exclamation", 0x203C, Pictographic},
		{"circled ideograph", 0x3299, Pictographic},
		{"zero-width joiner", '‍', Ignorable},
		{"variation selector 1", '︀', Ignorable},
		{"variation selector 16", '️', Ignorable},
		{"alchemical (between transport and supplemental)", 0x1F700, Regular},
		{"after extended-a", 0x1FAFF + 1, Regular},
		{"before double exclamation", 0x203B, Regular},
		{"after various symbols", 0x3299 + 1, Regular},
		{"mahjong tile (below flags)", 0x1F000, Regular},
		{"after variation selectors", 0xFE10, Regular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.r); got != tt.want {
				t.Errorf("Classify(%#U) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

// Classification must be total and stable: every code point maps to one
// class and repeated calls agree.
func TestClassifyStable(t *testing.T) {
	for _, r := range []rune{0, 'a', 0x203C, 0x1F600, '‍', 0x10FFFF} {
		first := Classify(r)
		for i := 0; i < 3; i++ {
			if got := Classify(r); got != first {
				t.Fatalf("Classify(%#U) unstable: %v then %v", r, first, got)
			}
		}
	}
}

func TestClassRangeBounds(t *testing.T) {
	for _, rr := range pictographicRanges {
		if Classify(rr.lo) != Pictographic {
			t.Errorf("Classify(%#U) at range start = %v, want pictographic", rr.lo, Classify(rr.lo))
		}
		if Classify(rr.hi) != Pictographic {
			t.Errorf("Classify(%#U) at range end = %v, want pictographic", rr.hi, Classify(rr.hi))
		}
	}
}

func TestClassString(t *testing.T) {
	if Regular.String() != "regular" || Pictographic.String() != "pictographic" || Ignorable.String() != "ignorable" {
		t.Error("Class.String() returned unexpected names")
	}
}
