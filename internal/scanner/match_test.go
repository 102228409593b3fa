package scanner

import (
	"reflect"
	"testing"
)

func TestMatchKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     []string
	}{
		{
			name:     "case insensitive with original casing preserved",
			text:     "Experienced in python and sql scripting",
			keywords: []string{"Python", "SQL"},
			want:     []string{"Python", "SQL"},
		},
		{
			name:     "no matches",
			text:     "I herd sheep for a living",
			keywords: []string{"Python", "SQL"},
			want:     []string{},
		},
		{
			name:     "duplicate keywords deduplicated",
			text:     "go go go",
			keywords: []string{"Go", "Go", "Go"},
			want:     []string{"Go"},
		},
		{
			name:     "first seen order kept",
			text:     "kubernetes and go and sql",
			keywords: []string{"SQL", "Go", "Kubernetes", "Rust"},
			want:     []string{"SQL", "Go", "Kubernetes"},
		},
		{
			name:     "empty keyword list",
			text:     "anything",
			keywords: nil,
			want:     []string{},
		},
		{
			name:     "substring containment",
			text:     "PostgreSQL expert",
			keywords: []string{"SQL"},
			want:     []string{"SQL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchKeywords(tt.text, tt.keywords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchKeywords() = %v, want %v", got, tt.want)
			}

			// Idempotent: a second run yields the same result.
			again := MatchKeywords(tt.text, tt.keywords)
			if !reflect.DeepEqual(again, got) {
				t.Errorf("MatchKeywords() second run = %v, first = %v", again, got)
			}
		})
	}
}

func TestLooksLikeCV(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "skills and education",
			text: "Skills\nGo, SQL\nEducation\nSome University\n",
			want: true,
		},
		{
			name: "work experience counts twice",
			text: "Work Experience\n2010-2020 various things\n",
			want: true,
		},
		{
			name: "single indicator",
			text: "my skills are many",
			want: false,
		},
		{
			name: "not a cv",
			text: "quarterly sales report for Q3",
			want: false,
		},
		{
			name: "case insensitive",
			text: "CURRICULUM VITAE\nPROFILE\n",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeCV(tt.text); got != tt.want {
				t.Errorf("LooksLikeCV() = %v, want %v", got, tt.want)
			}
		})
	}
}
