package competition

import (
	"testing"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/template"
)

func TestCompetition_JoinWindowFallbacks(t *testing.T) {
	startAt := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	joinOpen := startAt.Add(-72 * time.Hour)
	joinClose := startAt.Add(-24 * time.Hour)
	firstRound := startAt.Add(-2 * time.Hour)

	tests := []struct {
		name      string
		comp      Competition
		tpl       *template.Template
		wantOpen  *time.Time
		wantClose time.Time
	}{
		{
			name:      "template join close wins",
			comp:      Competition{StartRoundAt: &firstRound},
			tpl:       &template.Template{StartAt: startAt, JoinOpenAt: &joinOpen, JoinCloseAt: &joinClose},
			wantOpen:  &joinOpen,
			wantClose: joinClose,
		},
		{
			name:      "competition start round second",
			comp:      Competition{StartRoundAt: &firstRound},
			tpl:       &template.Template{StartAt: startAt},
			wantClose: firstRound,
		},
		{
			name:      "template start last",
			comp:      Competition{},
			tpl:       &template.Template{StartAt: startAt},
			wantClose: startAt,
		},
		{
			name:      "no template uses start round",
			comp:      Competition{StartRoundAt: &firstRound},
			wantClose: firstRound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := tc.comp.JoinWindow(tc.tpl)
			if (w.OpenAt == nil) != (tc.wantOpen == nil) || (w.OpenAt != nil && !w.OpenAt.Equal(*tc.wantOpen)) {
				t.Fatalf("unexpected open bound: %v", w.OpenAt)
			}
			if w.CloseAt == nil || !w.CloseAt.Equal(tc.wantClose) {
				t.Fatalf("unexpected close bound: %v want %s", w.CloseAt, tc.wantClose)
			}
		})
	}
}

func TestCompetition_JoinWindowWithoutAnyBound(t *testing.T) {
	w := Competition{}.JoinWindow(nil)
	if !w.Contains(time.Now()) {
		t.Fatalf("template-less competition without start round must always accept joins")
	}
}

func TestParseStatus(t *testing.T) {
	if got, ok := ParseStatus("open"); !ok || got != StatusOpen {
		t.Fatalf("unexpected parse result %q %v", got, ok)
	}
	if _, ok := ParseStatus("CLOSED"); ok {
		t.Fatalf("expected CLOSED to be rejected")
	}
}
