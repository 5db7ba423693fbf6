package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxCommentLength = 1000
	MaxNameLength    = 200
	MaxPhoneLength   = 30
)
