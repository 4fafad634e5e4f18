package domain

// EventStatus is the lifecycle status of an Event. The lifecycle is strictly
// linear: draft -> active -> closed -> archived.
type EventStatus string

const (
	EventStatusDraft    EventStatus = "draft"
	EventStatusActive   EventStatus = "active"
	EventStatusClosed   EventStatus = "closed"
	EventStatusArchived EventStatus = "archived"
)

// ParseEventStatus returns the EventStatus for s, or false if s is not a known
// status value.
func ParseEventStatus(s string) (EventStatus, bool) {
	switch EventStatus(s) {
	case EventStatusDraft, EventStatusActive, EventStatusClosed, EventStatusArchived:
		return EventStatus(s), true
	}
	return "", false
}

// IsPubliclyVisible reports whether events in this status appear on public pages.
func (s EventStatus) IsPubliclyVisible() bool {
	return s != EventStatusArchived
}

// AllowsSubmissions reports whether public submissions are open in this status.
func (s EventStatus) AllowsSubmissions() bool {
	return s == EventStatusActive
}

// AllowsNewPosts reports whether new posts may be created in this status.
func (s EventStatus) AllowsNewPosts() bool {
	return s == EventStatusActive
}

// AllowsInterests reports whether interest declarations are accepted in this status.
func (s EventStatus) AllowsInterests() bool {
	return s == EventStatusActive
}

// AllowsModeration reports whether posts of the event may be moderated in this status.
func (s EventStatus) AllowsModeration() bool {
	return s == EventStatusActive
}

// AllowsExport reports whether the event's data may be exported in this status.
func (s EventStatus) AllowsExport() bool {
	return s == EventStatusClosed || s == EventStatusArchived
}

// Order returns the position of this status on the lifecycle timeline.
func (s EventStatus) Order() int {
	switch s {
	case EventStatusDraft:
		return 0
	case EventStatusActive:
		return 1
	case EventStatusClosed:
		return 2
	case EventStatusArchived:
		return 3
	}
	return -1
}
