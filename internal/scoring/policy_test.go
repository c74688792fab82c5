package scoring

import "testing"

func TestPercentComplete(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		pageCount int
		want      float64
	}{
		{name: "zero_pages_read", page: 0, pageCount: 200, want: 0},
		{name: "halfway", page: 100, pageCount: 200, want: 50},
		{name: "uneven_rounds_to_two_places", page: 1, pageCount: 3, want: 33.33},
		{name: "finished", page: 200, pageCount: 200, want: 100},
		{name: "beyond_last_page_caps_at_hundred", page: 250, pageCount: 200, want: 100},
		{name: "unknown_page_count", page: 50, pageCount: 0, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PercentComplete(tc.page, tc.pageCount)
			if got != tc.want {
				t.Fatalf("PercentComplete(%d,%d)=%v, want %v", tc.page, tc.pageCount, got, tc.want)
			}
		})
	}
}

func TestStreakBonusCap(t *testing.T) {
	cases := []struct {
		streak int
		want   float64
	}{
		{streak: 1, want: 3},
		{streak: 4, want: 12},
		{streak: 5, want: 15},
		{streak: 10, want: 15},
	}
	for _, tc := range cases {
		if got := StreakBonus(tc.streak); got != tc.want {
			t.Fatalf("StreakBonus(%d)=%v, want %v", tc.streak, got, tc.want)
		}
	}
}

func TestPodiumBonus(t *testing.T) {
	cases := []struct {
		rank    int
		want    float64
		awarded bool
	}{
		{rank: 1, want: 300, awarded: true},
		{rank: 2, want: 100, awarded: true},
		{rank: 3, want: 50, awarded: true},
		{rank: 4, want: 0, awarded: false},
		{rank: 0, want: 0, awarded: false},
	}
	for _, tc := range cases {
		got, ok := PodiumBonus(tc.rank)
		if got != tc.want || ok != tc.awarded {
			t.Fatalf("PodiumBonus(%d)=(%v,%v), want (%v,%v)", tc.rank, got, ok, tc.want, tc.awarded)
		}
	}
}

func TestPagePointsAndCompletionBonus(t *testing.T) {
	if got := PagePoints(200); got != 2.00 {
		t.Fatalf("PagePoints(200)=%v, want 2.00", got)
	}
	if got := CompletionBonus(200); got != 20.00 {
		t.Fatalf("CompletionBonus(200)=%v, want 20.00", got)
	}
}
