package storage

import "testing"

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "export file", in: "resume_resume_1_abc_1700000000000.pdf", want: true},
		{name: "empty", in: "", want: false},
		{name: "dot dot", in: "..", want: false},
		{name: "traversal", in: "../secret.pdf", want: false},
		{name: "nested", in: "a/b.pdf", want: false},
		{name: "windows separator", in: `a\b.pdf`, want: false},
		{name: "nul byte", in: "a\x00.pdf", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidName(tt.in); got != tt.want {
				t.Fatalf("ValidName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
