package api

import "github.com/diogo/chatwidget/internal/models"

// GJSON paths for extracting values from backend replies.
const (
	// PathResponse holds the assistant text on a successful chat reply
	PathResponse = models.FieldResponse

	// PathStatus holds the health state on /api/health
	PathStatus = models.FieldStatus

	// PathDetail holds the error description on failed replies
	PathDetail = models.FieldDetail
)

// maxBodyBytes bounds how much of a reply body is read
const maxBodyBytes = 4 << 20

// maxErrorBodyBytes bounds the body kept on an APIError for diagnostics
const maxErrorBodyBytes = 4096
