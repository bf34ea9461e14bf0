package main

import "testing"

func TestParseSteps(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{args: nil, want: 1},
		{args: []string{"3"}, want: 3},
		{args: []string{"0"}, wantErr: true},
		{args: []string{"two"}, wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseSteps(tc.args)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseSteps(%v) expected error", tc.args)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("parseSteps(%v)=%d,%v want %d", tc.args, got, err, tc.want)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if v, err := parseVersion(" 4 "); err != nil || v != 4 {
		t.Fatalf("unexpected version %d, %v", v, err)
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected error for invalid target")
	}
}

func TestNormalizeDBURL(t *testing.T) {
	const raw = "postgres://u:p@localhost:5432/gamemaster?sslmode=disable"

	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
	if got := normalizeDBURL(raw); got != raw {
		t.Fatalf("expected url unchanged, got %q", got)
	}

	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	if got := normalizeDBURL(raw); got == raw {
		t.Fatalf("expected disable_prepared_binary_result to be added")
	}
}
