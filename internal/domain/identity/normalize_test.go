package identity

import "testing"

func TestNormalize_StripsSuffixesAndPunctuation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"Patrick Mahomes", "patrick_mahomes"},
		{"Patrick Mahomes Jr.", "patrick_mahomes"},
		{"Odell Beckham Jr", "odell_beckham"},
		{"Robert Griffin III", "robert_griffin"},
		{"D.J. Moore", "dj_moore"},
		{"Ja'Marr Chase", "jamarr_chase"},
		{"Amon-Ra St. Brown", "amonra_st_brown"},
		{"St. Brown", "brown"},
		{"  Josh   Allen  ", "josh_allen"},
		{"", ""},
		{" .'- ", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.raw); got != tc.want {
			t.Fatalf("Normalize(%q): got=%q want=%q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalize_SuffixOnlyAtWordBoundary(t *testing.T) {
	t.Parallel()

	// "jr" inside a name token must survive; only a trailing word is a suffix.
	if got := Normalize("Jrue Holiday"); got != "jrue_holiday" {
		t.Fatalf("unexpected normalization: got=%q want=%q", got, "jrue_holiday")
	}
}

func TestBuildKey_TeamAndPositionPassThrough(t *testing.T) {
	t.Parallel()

	got := BuildKey("Josh Allen Jr.", "BUF", "QB")
	want := "josh_allen_BUF_QB"
	if got != want {
		t.Fatalf("unexpected key: got=%q want=%q", got, want)
	}
}
