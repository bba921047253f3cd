package sanitizer

import "testing"

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Weekly Sync  ",
			want:  "Weekly Sync",
		},
		{
			name:  "multiple spaces between words",
			input: "Weekly    Sync",
			want:  "Weekly Sync",
		},
		{
			name:  "tabs and newlines",
			input: "Weekly\t\nSync",
			want:  "Weekly Sync",
		},
		{
			name:  "control characters removed",
			input: "Weekly\x00Sync\x07",
			want:  "WeeklySync",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Spa™ ",
			want:  "Café & Spa™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTitle(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trimmed",
			input: " user-42 ",
			want:  "user-42",
		},
		{
			name:  "inner whitespace preserved",
			input: "svc account",
			want:  "svc account",
		},
		{
			name:  "control stripped",
			input: "user\x1b42",
			want:  "user42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeIdentity(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeIdentity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
