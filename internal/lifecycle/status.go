package lifecycle

import (
	"fmt"
	"strings"

	"recruit-workers/internal/common/errors"
)

// Status is the review state of an application.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusInReview  Status = "IN_REVIEW"
	StatusInterview Status = "INTERVIEW"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
)

// statusLiterals accepts the canonical names and the legacy French literals
// still sent by older clients.
var statusLiterals = map[string]Status{
	"PENDING":    StatusPending,
	"IN_REVIEW":  StatusInReview,
	"INTERVIEW":  StatusInterview,
	"ACCEPTED":   StatusAccepted,
	"REJECTED":   StatusRejected,
	"EN_ATTENTE": StatusPending,
	"EN_COURS":   StatusInReview,
	"ACCEPTEE":   StatusAccepted,
	"REFUSEE":    StatusRejected,
}

// ParseStatus normalises a status literal. Unknown literals are INVALID_INPUT.
func ParseStatus(s string) (Status, error) {
	if st, ok := statusLiterals[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", errors.NewInvalidInputError(fmt.Sprintf("unknown application status %q", s))
}

// Terminal reports whether no further review step is expected.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}
