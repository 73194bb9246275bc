package domain

import "time"

// SpaceStatus availability status of a space
type SpaceStatus string

const (
	SpaceStatusAvailable   SpaceStatus = "available"
	SpaceStatusMaintenance SpaceStatus = "maintenance"
	SpaceStatusUnavailable SpaceStatus = "unavailable"
)

// IsValid reports whether s is a known status
func (s SpaceStatus) IsValid() bool {
	switch s {
	case SpaceStatusAvailable, SpaceStatusMaintenance, SpaceStatusUnavailable:
		return true
	}
	return false
}

// SpaceKind type of a bookable space
type SpaceKind string

const (
	SpaceKindMeetingRoom SpaceKind = "meeting_room"
	SpaceKindClassroom   SpaceKind = "classroom"
	SpaceKindAuditorium  SpaceKind = "auditorium"
	SpaceKindOffice      SpaceKind = "office"
	SpaceKindCoworking   SpaceKind = "coworking"
)

// AllSpaceKinds every known kind
var AllSpaceKinds = []SpaceKind{
	SpaceKindMeetingRoom,
	SpaceKindClassroom,
	SpaceKindAuditorium,
	SpaceKindOffice,
	SpaceKindCoworking,
}

// IsValid reports whether k is a known kind
func (k SpaceKind) IsValid() bool {
	switch k {
	case SpaceKindMeetingRoom, SpaceKindClassroom, SpaceKindAuditorium, SpaceKindOffice, SpaceKindCoworking:
		return true
	}
	return false
}

// Space represents a bookable physical resource
type Space struct {
	ID             int64
	Name           string
	Kind           SpaceKind
	Location       string
	Capacity       int
	OperatingHours TimeRange
	Status         SpaceStatus
	Equipment      []string
	Description    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if new reservations may target the space
func (s *Space) IsBookable() bool {
	return s.Status == SpaceStatusAvailable
}

// FitsParty returns true if partySize people fit into the space
func (s *Space) FitsParty(partySize int) bool {
	return partySize <= s.Capacity
}

// SpaceFilter filter for space listings. Nil fields are not applied.
type SpaceFilter struct {
	Kind   *SpaceKind
	Status *SpaceStatus
	Search *string // case-insensitive substring of name, location or description
	Page   int     // 1-based
	Limit  int
}

// Offset returns the row offset for Page and Limit
func (f SpaceFilter) Offset() int {
	return pageOffset(f.Page, f.Limit)
}

// SpacePage one page of the space registry together with the total match count
type SpacePage struct {
	Spaces []*Space
	Total  int
	Page   int
	Limit  int
}

// Pages returns the number of pages for Total and Limit
func (p *SpacePage) Pages() int {
	return pageCount(p.Total, p.Limit)
}
