package order

import (
	"database/sql/driver"
	"errors"
)

// Status is the lifecycle state of an order. The canonical labels are the
// Hebrew strings persisted in the database and shown to customers.
type Status string

const (
	StatusReceived   Status = "התקבל"
	StatusProcessing Status = "בטיפול"
	StatusPaid       Status = "שולם"
	StatusCompleted  Status = "הושלם"
	StatusCancelled  Status = "בוטל"
)

var ErrInvalidStatus = errors.New("invalid order status")

// legacyAliases are historical English status names still accepted on input.
// They are never produced on output: encoding always yields the canonical
// label, so an alias does not survive a decode/encode round trip.
var legacyAliases = map[string]Status{
	"Pending":    StatusReceived,
	"Processing": StatusProcessing,
	"Paid":       StatusPaid,
	"Completed":  StatusCompleted,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// ParseStatus decodes an external status string. It accepts the canonical
// labels and the legacy aliases; everything else fails with ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReceived, StatusProcessing, StatusPaid, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	if st, ok := legacyAliases[s]; ok {
		return st, nil
	}

	return "", ErrInvalidStatus
}
