package leaderboard

import (
	"errors"
	"testing"
	"time"
)

func testService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(testStore(t))
	svc.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return svc
}

func TestServiceSubmitAndTop(t *testing.T) {
	svc := testService(t)

	e, err := svc.Submit(42, "7.8.9.XYZ")
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if e.ID == "" {
		t.Error("Entry has no identifier")
	}
	if e.Ts != 1_700_000_000_000 {
		t.Errorf("Entry ts %d, want injected clock value", e.Ts)
	}

	top, err := svc.Top(5)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(top))
	}
	if top[0].Score != 42 || top[0].Nick != "7.8.9.XYZ" {
		t.Errorf("Round-trip mismatch: %+v", top[0])
	}
}

func TestServiceRejectsInvalidScore(t *testing.T) {
	svc := testService(t)

	for _, score := range []int{0, -5} {
		if _, err := svc.Submit(score, "1.2.3.ABC"); !errors.Is(err, ErrInvalidScore) {
			t.Errorf("Submit(%d) error = %v, want ErrInvalidScore", score, err)
		}
	}

	top, err := svc.Top(5)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("Rejected submission persisted: %d entries", len(top))
	}
}

func TestServiceRejectsInvalidNickname(t *testing.T) {
	svc := testService(t)

	for _, nick := range []string{"", "12.34.56.AB", "1000.2.3.ABC", "garbage"} {
		if _, err := svc.Submit(10, nick); !errors.Is(err, ErrInvalidNickname) {
			t.Errorf("Submit(%q) error = %v, want ErrInvalidNickname", nick, err)
		}
	}
}

func TestServiceTopClampsLimit(t *testing.T) {
	svc := testService(t)
	for i := 0; i < 30; i++ {
		if _, err := svc.Submit(i+1, "1.2.3.ABC"); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	cases := []struct {
		limit, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{3, 3},
		{1000, MaxLimit},
	}
	for _, tc := range cases {
		top, err := svc.Top(tc.limit)
		if err != nil {
			t.Fatalf("Top(%d) failed: %v", tc.limit, err)
		}
		if len(top) != tc.want {
			t.Errorf("Top(%d) returned %d entries, want %d", tc.limit, len(top), tc.want)
		}
	}
}

func TestServiceOnChange(t *testing.T) {
	svc := testService(t)

	fired := 0
	svc.OnChange = func() { fired++ }

	if _, err := svc.Submit(5, "1.2.3.ABC"); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if fired != 1 {
		t.Errorf("OnChange fired %d times, want 1", fired)
	}

	// Rejected submissions never notify.
	svc.Submit(0, "1.2.3.ABC")
	svc.Submit(5, "bad")
	if fired != 1 {
		t.Errorf("OnChange fired on rejected submission")
	}
}
