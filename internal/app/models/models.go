package models

// RoleType defines the user role type
type RoleType string

const (
	RoleCitizen RoleType = "CITIZEN"
	RoleStaff   RoleType = "STAFF"
	RoleAdmin   RoleType = "ADMIN"
)

// IssueStatus is the lifecycle state of a complaint.
type IssueStatus string

const (
	StatusPending    IssueStatus = "Pending"
	StatusInProgress IssueStatus = "InProgress"
	StatusResolved   IssueStatus = "Resolved"
)

// statusRank orders the lifecycle for forward-only enforcement.
var statusRank = map[IssueStatus]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusResolved:   2,
}

// ValidStatus reports whether s is one of the three defined statuses.
func ValidStatus(s IssueStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// IsForwardTransition reports whether moving from -> to does not step
// backward in the lifecycle. Same-status writes count as forward.
func IsForwardTransition(from, to IssueStatus) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// ParseStatusFilter maps a dashboard filter keyword to a status.
// Returns ("", false) for "all", unknown values fall back to all.
func ParseStatusFilter(filter string) (IssueStatus, bool) {
	switch filter {
	case "pending":
		return StatusPending, true
	case "inprogress":
		return StatusInProgress, true
	case "resolved":
		return StatusResolved, true
	default:
		return "", false
	}
}
