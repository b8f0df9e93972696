package hint

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Hint
	}{
		{"empty", "", Hint{}},
		{
			"next step marker",
			"Think about the denominator.\nNext step: Count the equal parts.",
			Hint{Text: "Think about the denominator.", Next: "Count the equal parts."},
		},
		{
			"case insensitive",
			"Look at the bottom number. NEXT: try halves",
			Hint{Text: "Look at the bottom number.", Next: "try halves"},
		},
		{
			"suggestion marker",
			"Compare the pieces.\r\nSuggestion: draw both bars",
			Hint{Text: "Compare the pieces.", Next: "draw both bars"},
		},
		{
			"paragraph fallback",
			"First paragraph.\n\n\nSecond paragraph.\n\nThird.",
			Hint{Text: "First paragraph.", Next: "Second paragraph."},
		},
		{
			"single paragraph",
			"  Only one  ",
			Hint{Text: "Only one"},
		},
		{
			"sanitized",
			"**\"Multiply   the\n tops\"**\n\n'then the bottoms'",
			Hint{Text: "Multiply the tops", Next: "then the bottoms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"“quoted”", "quoted"},
		{"a *bold* word", "a bold word"},
		{"  spaced\t\tout \n text ", "spaced out text"},
		{"it's fine", "it's fine"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
