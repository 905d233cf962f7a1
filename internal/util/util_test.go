package util

import (
	"testing"
	"time"
)

func TestRandomChallenge_Shape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		c := RandomChallenge()
		if len(c) != 24 {
			t.Fatalf("challenge length = %d, want 24", len(c))
		}
		checkRange(t, c[0:6], upperChars)
		checkRange(t, c[6:12], punctChars)
		checkRange(t, c[12:18], lowerChars)
		checkRange(t, c[18:24], digitChars)
		if seen[c] {
			t.Fatalf("challenge repeated: %q", c)
		}
		seen[c] = true
	}
}

func checkRange(t *testing.T, segment, set string) {
	t.Helper()
	for i := 0; i < len(segment); i++ {
		found := false
		for j := 0; j < len(set); j++ {
			if segment[i] == set[j] {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("char %q outside expected set %q", segment[i], set)
		}
	}
}

func TestTruthiness(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "yes", "on", "t", "1", "Yes"} {
		if !Truthiness(s) {
			t.Fatalf("Truthiness(%q) = false", s)
		}
	}
	for _, s := range []string{"false", "no", "0", "", "si", "2"} {
		if Truthiness(s) {
			t.Fatalf("Truthiness(%q) = true", s)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	// 2024-01-06 es sábado, 2024-01-07 domingo, 2024-01-08 lunes.
	sat := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)
	sun := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	mon := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)

	if !IsWeekend(sat) || !IsWeekend(sun) {
		t.Fatal("saturday and sunday are weekend")
	}
	if IsWeekend(mon) {
		t.Fatal("monday is not weekend")
	}
}
