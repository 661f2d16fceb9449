package service_test

import (
	"testing"

	"github.com/magala-news-api/internal/service"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Politics", "politics"},
		{"New Budget Passed", "new-budget-passed"},
		{"Hello, World!", "hello-world"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"UGANDA @ 60: What's Next?", "uganda-60-what-s-next"},
		{"--Already--Hyphenated--", "already-hyphenated"},
		{"2024 Election Results", "2024-election-results"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := service.Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	title := "Kampala Floods Worsen After Heavy Rains"
	first := service.Slugify(title)
	for i := 0; i < 10; i++ {
		if got := service.Slugify(title); got != first {
			t.Fatalf("Slugify not deterministic: %q vs %q", got, first)
		}
	}
}
