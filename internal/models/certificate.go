package models

import "time"

// Certificate is one entry in a student's certificate list. IDs take the form
// {email}_{n}. Verified defaults to false; VerifiedAt is set when an admin
// verifies the certificate.
type Certificate struct {
	CertificateID       string     `json:"certificate_id"`
	Title               string     `json:"title"`
	IssuingOrganization string     `json:"issuing_organization"`
	IssueDate           string     `json:"issue_date"`
	FilePath            *string    `json:"file_path"`
	SubmittedAt         time.Time  `json:"submitted_at"`
	Verified            bool       `json:"verified"`
	VerifiedAt          *time.Time `json:"verified_at,omitempty"`
}

// CertificateDocument maps student email to that student's certificates.
type CertificateDocument map[string][]Certificate
