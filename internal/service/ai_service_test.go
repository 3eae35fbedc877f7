package service

import (
	"strings"
	"testing"
)

func TestParseATSReport(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantScore int
		wantErr   bool
	}{
		{
			name:      "clean JSON",
			raw:       `{"score": 78, "matched_keywords": ["go", "sql"], "feedback": "solid", "strengths": ["backend"]}`,
			wantScore: 78,
		},
		{
			name:      "markdown fenced",
			raw:       "```json\n{\"score\": 42, \"feedback\": \"ok\"}\n```",
			wantScore: 42,
		},
		{
			name:      "prose around JSON",
			raw:       "Here is the analysis you asked for:\n{\"score\": 91, \"feedback\": \"great\"}\nLet me know if you need more.",
			wantScore: 91,
		},
		{
			name:      "score clamped above 100",
			raw:       `{"score": 140, "feedback": "overconfident model"}`,
			wantScore: 100,
		},
		{
			name:    "no JSON at all",
			raw:     "I cannot analyze this document.",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report, err := parseATSReport(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", report.Score, tc.wantScore)
			}
		})
	}
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "exactly three",
			raw:  `["What is a goroutine?", "Explain indexes.", "What does Docker solve?"]`,
			want: 3,
		},
		{
			name: "fenced with extra whitespace entries",
			raw:  "```json\n[\"q1\", \"  \", \"q2\"]\n```",
			want: 2,
		},
		{
			name: "more than three trimmed",
			raw:  `["a", "b", "c", "d", "e"]`,
			want: 3,
		},
		{
			name:    "empty array",
			raw:     `[]`,
			wantErr: true,
		},
		{
			name:    "no array",
			raw:     "Sorry, I could not generate questions.",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := parseQuestions(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(questions) != tc.want {
				t.Errorf("len = %d, want %d (%v)", len(questions), tc.want, questions)
			}
		})
	}
}

func TestParseSummary(t *testing.T) {
	raw := `{"strengths": ["clear communication"], "weaknesses": ["shallow on databases"], "recommendation": "Hire; strong fundamentals."}`
	summary, err := parseSummary(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Strengths) != 1 || len(summary.Weaknesses) != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.HasPrefix(summary.Recommendation, "Hire") {
		t.Errorf("recommendation = %q", summary.Recommendation)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"under limit", "short", 100, "short"},
		{"exact limit", "abcde", 5, "abcde"},
		{"over limit", "abcdefgh", 5, "abcde"},
		{"zero means unlimited", "abcdefgh", 0, "abcdefgh"},
		{"does not split a rune", "abécd", 3, "ab"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.input, tc.max); got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
			}
		})
	}
}
