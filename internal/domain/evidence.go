package domain

import "time"

// Evidence is the portal's archive record of a PDF uploaded with a report.
// The original file is forwarded to the backend; a copy is kept in S3 so
// admins can retrieve evidence even when the backend prunes it.
type Evidence struct {
	EvidenceID       string    `json:"id" dynamodbav:"evidence_id"`
	ReportID         string    `json:"report_id" dynamodbav:"report_id"`
	Object           string    `json:"object" dynamodbav:"object"`
	Size             int64     `json:"size" dynamodbav:"size"`
	Name             string    `json:"name" dynamodbav:"name"`
	Hash             string    `json:"hash" dynamodbav:"hash"`
	UploadedByUserID string    `json:"user_who_uploaded_id" dynamodbav:"uploaded_by_user_id"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
}

// Evidence upload constraints, enforced before any upstream call.
const (
	EvidenceMaxSize     = 10 << 20 // 10MB
	EvidenceContentType = "application/pdf"
)
