package s3

import (
	"errors"
	"testing"

	"resume-optimizer/internal/storage"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "resume.pdf", want: "resume.pdf"},
		{name: "simple prefix", prefix: "exports", key: "resume.pdf", want: "exports/resume.pdf"},
		{name: "prefix slashes", prefix: "/exports/", key: "/resume.pdf", want: "exports/resume.pdf"},
		{name: "nested prefix", prefix: "exports/pdf", key: "resume.pdf", want: "exports/pdf/resume.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestKeyRejectsNestedNames(t *testing.T) {
	s := &Store{bucket: "b", prefix: normalizePrefix(" exports/ ")}
	if _, err := s.key("../x.pdf"); !errors.Is(err, storage.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if got := s.Location("r.pdf"); got != "s3://b/exports/r.pdf" {
		t.Fatalf("Location = %q", got)
	}
}
