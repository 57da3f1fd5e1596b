package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Report review statuses, encoded as small integers on the wire.
const (
	StatusPending  ReportStatus = 0
	StatusApproved ReportStatus = 1
	StatusRejected ReportStatus = 2
)

// ReportStatus tolerates every encoding the backend has been observed to use:
// integers, digit strings and the words pending/approved/rejected.
type ReportStatus int

func (s *ReportStatus) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*s = StatusPending
	case float64:
		*s = ReportStatus(int(t))
	case string:
		switch strings.ToLower(t) {
		case "", "0", "pending":
			*s = StatusPending
		case "1", "approved":
			*s = StatusApproved
		case "2", "rejected":
			*s = StatusRejected
		default:
			if n, err := strconv.Atoi(t); err == nil {
				*s = ReportStatus(n)
				return nil
			}
			return fmt.Errorf("unknown report status %q", t)
		}
	default:
		return fmt.Errorf("unknown report status type %T", v)
	}
	return nil
}

func (s ReportStatus) String() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Report is one service-hours submission as the backend returns it.
type Report struct {
	ID             FlexID       `json:"id"`
	ReviewID       FlexID       `json:"review_id,omitempty"`
	UserID         FlexID       `json:"user_id,omitempty"`
	Description    string       `json:"description"`
	AmountReported int          `json:"amount_reported"`
	AmountApproved *int         `json:"amount_approved,omitempty"`
	Status         ReportStatus `json:"status"`
	Comment        string       `json:"comment,omitempty"`
	Category       *Category    `json:"category,omitempty"`
	EvidenceURL    string       `json:"evidence_url,omitempty"`
	CreatedAt      *time.Time   `json:"created_at,omitempty"`
}

// Label is a short human-readable handle for the report, used in
// notification titles.
func (r *Report) Label() string {
	if r.Category != nil && r.Category.Name != "" {
		return r.Category.Name
	}
	if r.Description != "" {
		return r.Description
	}
	return "Servicio #" + r.ID.String()
}

// ReviewDecision is one admin verdict on one report. AmountApproved is
// forced to 0 by the review service whenever Status is rejected.
type ReviewDecision struct {
	Status         ReportStatus `json:"status"`
	AmountApproved int          `json:"amount_approved" validate:"min=0"`
	Comment        string       `json:"comment"`
}
