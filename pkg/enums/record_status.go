package enums

import "fmt"

// RecordStatus tracks the lifecycle of a redeemable record. The persisted
// column is an open string; this closed set is enforced at the API boundary
// only.
type RecordStatus string

const (
	RecordStatusPending  RecordStatus = "pendente"
	RecordStatusApproved RecordStatus = "aprovado"
	RecordStatusRejected RecordStatus = "recusado"
)

var validRecordStatuses = []RecordStatus{
	RecordStatusPending,
	RecordStatusApproved,
	RecordStatusRejected,
}

// String implements fmt.Stringer.
func (s RecordStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RecordStatus.
func (s RecordStatus) IsValid() bool {
	for _, candidate := range validRecordStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRecordStatus converts raw input into a RecordStatus.
func ParseRecordStatus(value string) (RecordStatus, error) {
	for _, candidate := range validRecordStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record status %q", value)
}
