package leaderboard

import "testing"

func TestValidNickname(t *testing.T) {
	cases := []struct {
		nick string
		want bool
	}{
		{"1.2.3.ABC", true},
		{"0.0.0.000", true},
		{"999.999.999.ZZZ", true},
		{"192.168.1.X7K", true},
		{"", false},
		{"12.34.56.AB", false},     // suffix too short
		{"12.34.56.ABCD", false},   // suffix too long
		{"12.34.56.abc", false},    // lowercase suffix
		{"1000.2.3.ABC", false},    // component out of range
		{"1.2.1000.ABC", false},    // component out of range
		{"1.2.3", false},           // missing suffix
		{"1.2.3.AB!", false},       // punctuation in suffix
		{"a.b.c.ABC", false},       // non-numeric components
		{"1.2.3.4.ABC", false},     // too many components
		{" 1.2.3.ABC", false},      // leading whitespace
		{"1.2.3.ABC ", false},      // trailing whitespace
		{"-1.2.3.ABC", false},      // negative component
		{"1.2.3.ABC\n4.5.6", false}, // multiline
	}

	for _, tc := range cases {
		if got := ValidNickname(tc.nick); got != tc.want {
			t.Errorf("ValidNickname(%q) = %v, want %v", tc.nick, got, tc.want)
		}
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{1, 1},
		{5, 5},
		{20, 20},
		{21, MaxLimit},
		{1000, MaxLimit},
	}

	for _, tc := range cases {
		if got := ClampLimit(tc.in); got != tc.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSortKey(t *testing.T) {
	// The score dominates: one extra point beats any timestamp.
	if SortKey(10, 9_999_999_999_999) >= SortKey(11, 0) {
		t.Error("Timestamp component outranked a score point")
	}
	// Equal scores: later submission wins.
	if SortKey(10, 2000) <= SortKey(10, 1000) {
		t.Error("Later timestamp did not win the tie-break")
	}
}
