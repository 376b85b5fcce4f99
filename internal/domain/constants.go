package domain

// DefaultSlotDurationMinutes is the slot step used when neither the
// request nor the service configuration specifies one.
const DefaultSlotDurationMinutes = 30

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxReasonLength        = 500
	MaxReviewNotesLength   = 500
	MaxBlockDatesPerReq    = 62 // two months of daily blocks per request
)

// DateFormat is the wire format for calendar dates (YYYY-MM-DD)
const DateFormat = "2006-01-02"
