package club

import "testing"

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		raw, name, want string
	}{
		{raw: "Cavan-GAA", name: "ignored", want: "cavan-gaa"},
		{raw: "  ", name: "Monaghan GAA", want: "monaghan-gaa"},
		{raw: "", name: "Clones Shamrocks", want: "clones-shamrocks"},
	}
	for _, tc := range tests {
		if got := NormalizeSlug(tc.raw, tc.name); got != tc.want {
			t.Fatalf("NormalizeSlug(%q, %q)=%q want %q", tc.raw, tc.name, got, tc.want)
		}
	}
}

func TestValidSlug(t *testing.T) {
	valid := []string{"cavan-gaa", "club1", "-"}
	invalid := []string{"", "Cavan", "cavan gaa", "cavan_gaa", "ćavan"}

	for _, v := range valid {
		if !ValidSlug(v) {
			t.Fatalf("expected %q to be valid", v)
		}
	}
	for _, v := range invalid {
		if ValidSlug(v) {
			t.Fatalf("expected %q to be invalid", v)
		}
	}
}
