package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrResumeNotFound = errors.New("resume not found")

// Resume is the stored state of one optimization session. ID is an opaque
// correlator, not a durable key into anything else.
type Resume struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	OriginalResume string    `json:"originalResume,omitempty"`
	JobDescription string    `json:"jobDescription,omitempty"`
	MatchScore     int       `json:"matchScore"`
	Suggestions    []string  `json:"suggestions"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

const idSuffixLen = 9

// NewResumeID returns "resume_<unix millis>_<9 random chars>".
func NewResumeID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:idSuffixLen]
	return fmt.Sprintf("resume_%d_%s", now.UnixMilli(), suffix)
}

// ExportFileName names the PDF produced for a resume at a given time.
func ExportFileName(resumeID string, now time.Time) string {
	return fmt.Sprintf("resume_%s_%d.pdf", resumeID, now.UnixMilli())
}
