package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// ScheduleRequestType identifies what kind of availability change a
// professional is proposing
type ScheduleRequestType string

const (
	RequestAddHours          ScheduleRequestType = "add_hours"
	RequestRemoveHours       ScheduleRequestType = "remove_hours"
	RequestModifyHours       ScheduleRequestType = "modify_hours"
	RequestBlockDates        ScheduleRequestType = "block_dates"
	RequestUnblockDates      ScheduleRequestType = "unblock_dates"
	RequestChangeServiceType ScheduleRequestType = "change_service_type"
)

// ValidScheduleRequestType reports whether t is a known request type
func ValidScheduleRequestType(t ScheduleRequestType) bool {
	switch t {
	case RequestAddHours, RequestRemoveHours, RequestModifyHours,
		RequestBlockDates, RequestUnblockDates, RequestChangeServiceType:
		return true
	}
	return false
}

// ScheduleRequestStatus is the review state of a change request
type ScheduleRequestStatus string

const (
	RequestPending  ScheduleRequestStatus = "pending"
	RequestApproved ScheduleRequestStatus = "approved"
	RequestRejected ScheduleRequestStatus = "rejected"
)

// ErrPayloadMismatch is returned when a request's payload does not match
// its declared type
var ErrPayloadMismatch = errors.New("schedule change payload does not match request type")

// AddHoursData inserts a new availability window on approval
type AddHoursData struct {
	DayOfWeek   int              `json:"dayOfWeek"`
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
	ServiceType ServiceType      `json:"serviceType"`
}

// RemoveHoursData deletes an exactly matching window on approval
type RemoveHoursData struct {
	DayOfWeek int              `json:"dayOfWeek"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// ModifyHoursData replaces one window's start/end on approval
type ModifyHoursData struct {
	DayOfWeek    int              `json:"dayOfWeek"`
	OldStartTime types.TimeString `json:"oldStartTime"`
	OldEndTime   types.TimeString `json:"oldEndTime"`
	NewStartTime types.TimeString `json:"newStartTime"`
	NewEndTime   types.TimeString `json:"newEndTime"`
}

// BlockDatesData inserts one date block per listed date on approval.
// Dates are applied independently; partial success is reported per date.
type BlockDatesData struct {
	Dates     []string          `json:"dates"` // YYYY-MM-DD
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
	BlockType BlockType         `json:"blockType"`
}

// UnblockDatesData removes matching date blocks on approval
type UnblockDatesData struct {
	Dates []string `json:"dates"` // YYYY-MM-DD
}

// ChangeServiceTypeData updates the service type of a matching window
type ChangeServiceTypeData struct {
	DayOfWeek      int              `json:"dayOfWeek"`
	StartTime      types.TimeString `json:"startTime"`
	EndTime        types.TimeString `json:"endTime"`
	NewServiceType ServiceType      `json:"newServiceType"`
}

// ScheduleChangeData is the tagged payload of a schedule change request.
// Exactly one variant must be set and it must match the request type;
// Validate enforces this so downstream code can switch exhaustively.
type ScheduleChangeData struct {
	AddHours          *AddHoursData          `json:"addHours,omitempty"`
	RemoveHours       *RemoveHoursData       `json:"removeHours,omitempty"`
	ModifyHours       *ModifyHoursData       `json:"modifyHours,omitempty"`
	BlockDates        *BlockDatesData        `json:"blockDates,omitempty"`
	UnblockDates      *UnblockDatesData      `json:"unblockDates,omitempty"`
	ChangeServiceType *ChangeServiceTypeData `json:"changeServiceType,omitempty"`
}

// Validate checks that exactly the variant matching requestType is present
// and that its contents are well-formed
func (d *ScheduleChangeData) Validate(requestType ScheduleRequestType) error {
	if n := d.variantCount(); n != 1 {
		return fmt.Errorf("%w: expected exactly one payload variant, got %d", ErrPayloadMismatch, n)
	}

	switch requestType {
	case RequestAddHours:
		if d.AddHours == nil {
			return fmt.Errorf("%w: %s requires addHours payload", ErrPayloadMismatch, requestType)
		}
		return d.AddHours.validate()
	case RequestRemoveHours:
		if d.RemoveHours == nil {
			return fmt.Errorf("%w: %s requires removeHours payload", ErrPayloadMismatch, requestType)
		}
		return d.RemoveHours.validate()
	case RequestModifyHours:
		if d.ModifyHours == nil {
			return fmt.Errorf("%w: %s requires modifyHours payload", ErrPayloadMismatch, requestType)
		}
		return d.ModifyHours.validate()
	case RequestBlockDates:
		if d.BlockDates == nil {
			return fmt.Errorf("%w: %s requires blockDates payload", ErrPayloadMismatch, requestType)
		}
		return d.BlockDates.validate()
	case RequestUnblockDates:
		if d.UnblockDates == nil {
			return fmt.Errorf("%w: %s requires unblockDates payload", ErrPayloadMismatch, requestType)
		}
		return d.UnblockDates.validate()
	case RequestChangeServiceType:
		if d.ChangeServiceType == nil {
			return fmt.Errorf("%w: %s requires changeServiceType payload", ErrPayloadMismatch, requestType)
		}
		return d.ChangeServiceType.validate()
	default:
		return fmt.Errorf("%w: unsupported request type %q", ErrPayloadMismatch, requestType)
	}
}

func (d *ScheduleChangeData) variantCount() int {
	n := 0
	if d.AddHours != nil {
		n++
	}
	if d.RemoveHours != nil {
		n++
	}
	if d.ModifyHours != nil {
		n++
	}
	if d.BlockDates != nil {
		n++
	}
	if d.UnblockDates != nil {
		n++
	}
	if d.ChangeServiceType != nil {
		n++
	}
	return n
}

func (p *AddHoursData) validate() error {
	if err := validateWeeklyWindow(p.DayOfWeek, p.StartTime, p.EndTime); err != nil {
		return err
	}
	if !ValidServiceType(p.ServiceType) {
		return fmt.Errorf("%w: unknown service type %q", ErrPayloadMismatch, p.ServiceType)
	}
	return nil
}

func (p *RemoveHoursData) validate() error {
	return validateWeeklyWindow(p.DayOfWeek, p.StartTime, p.EndTime)
}

func (p *ModifyHoursData) validate() error {
	if err := validateWeeklyWindow(p.DayOfWeek, p.OldStartTime, p.OldEndTime); err != nil {
		return err
	}
	return validateWeeklyWindow(p.DayOfWeek, p.NewStartTime, p.NewEndTime)
}

func (p *BlockDatesData) validate() error {
	if len(p.Dates) == 0 {
		return fmt.Errorf("%w: blockDates requires at least one date", ErrPayloadMismatch)
	}
	if len(p.Dates) > MaxBlockDatesPerReq {
		return fmt.Errorf("%w: blockDates allows at most %d dates", ErrPayloadMismatch, MaxBlockDatesPerReq)
	}
	for _, d := range p.Dates {
		if _, err := time.Parse(DateFormat, d); err != nil {
			return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrPayloadMismatch, d)
		}
	}
	if !ValidBlockType(p.BlockType) {
		return fmt.Errorf("%w: unknown block type %q", ErrPayloadMismatch, p.BlockType)
	}
	// Either both times are set (partial-day block) or neither (full day)
	if (p.StartTime == nil) != (p.EndTime == nil) {
		return fmt.Errorf("%w: blockDates requires both startTime and endTime or neither", ErrPayloadMismatch)
	}
	if p.StartTime != nil {
		if err := p.StartTime.Validate(); err != nil {
			return err
		}
		if err := p.EndTime.Validate(); err != nil {
			return err
		}
		if !p.StartTime.IsBefore(*p.EndTime) {
			return fmt.Errorf("%w: blockDates startTime must be before endTime", ErrPayloadMismatch)
		}
	}
	return nil
}

func (p *UnblockDatesData) validate() error {
	if len(p.Dates) == 0 {
		return fmt.Errorf("%w: unblockDates requires at least one date", ErrPayloadMismatch)
	}
	for _, d := range p.Dates {
		if _, err := time.Parse(DateFormat, d); err != nil {
			return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrPayloadMismatch, d)
		}
	}
	return nil
}

func (p *ChangeServiceTypeData) validate() error {
	if err := validateWeeklyWindow(p.DayOfWeek, p.StartTime, p.EndTime); err != nil {
		return err
	}
	if !ValidServiceType(p.NewServiceType) {
		return fmt.Errorf("%w: unknown service type %q", ErrPayloadMismatch, p.NewServiceType)
	}
	return nil
}

func validateWeeklyWindow(dayOfWeek int, start, end types.TimeString) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be 0-6, got %d", ErrPayloadMismatch, dayOfWeek)
	}
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrPayloadMismatch, start, end)
	}
	return nil
}

// ScheduleChangeRequest is a professional-submitted proposal to alter
// recurring availability or insert/remove date blocks. It only takes
// effect once an authorized reviewer approves it.
type ScheduleChangeRequest struct {
	ID             int64
	ProfessionalID int64
	RequestType    ScheduleRequestType
	Data           ScheduleChangeData
	Reason         *string
	Status         ScheduleRequestStatus
	ReviewerID     *int64
	ReviewNotes    *string
	CreatedAt      time.Time
	ReviewedAt     *time.Time
}

// CanBeReviewed returns true while the request is still pending.
// Approved and rejected are terminal: a second review must fail,
// never silently reapply.
func (r *ScheduleChangeRequest) CanBeReviewed() bool {
	return r.Status == RequestPending
}
