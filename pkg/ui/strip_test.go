package ui

import "testing"

func TestStripANSI(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello", "hello"},
		{"empty", "", ""},
		{"sgr colors", "\x1b[31mred\x1b[0m plain", "red plain"},
		{"sgr bold and reset", "\x1b[1;4mloud\x1b[m", "loud"},
		{"cursor movement", "a\x1b[2Ab", "ab"},
		{"erase display", "\x1b[2J\x1b[Htop", "top"},
		{"osc title with bel", "\x1b]0;title\abody", "body"},
		{"osc title with st", "\x1b]0;title\x1b\\body", "body"},
		{
			"osc 8 hyperlink",
			"\x1b]8;;https://example.com\x1b\\link\x1b]8;;\x1b\\",
			"link",
		},
		{"newlines survive", "\x1b[32ma\nb\x1b[0m", "a\nb"},
		{"wide runes survive", "\x1b[7m你好\x1b[27m", "你好"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripANSI(tc.in); got != tc.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
