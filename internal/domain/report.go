package domain

import "time"

// SpaceUsage aggregated usage of one space over a period
type SpaceUsage struct {
	SpaceID          int64
	SpaceName        string
	SpaceKind        SpaceKind
	Reservations     int
	BookedMinutes    int
	AveragePartySize float64
}

// ReportFilter narrows the reservations counted by a report. Nil fields are not applied.
type ReportFilter struct {
	From    *time.Time
	To      *time.Time
	Status  *ReservationStatus
	SpaceID *int64
}

// StatusKindCount number of reservations with one status on spaces of one kind
type StatusKindCount struct {
	Status ReservationStatus
	Kind   SpaceKind
	Count  int
}

// ReservationStats reservation totals broken down by status and by space kind
type ReservationStats struct {
	Total    int
	ByStatus map[ReservationStatus]int
	ByKind   map[SpaceKind]int
}

// NewReservationStats folds grouped counts into totals.
// Every known status and kind is present in the breakdowns, zero when nothing matched.
func NewReservationStats(rows []StatusKindCount) *ReservationStats {
	stats := &ReservationStats{
		ByStatus: make(map[ReservationStatus]int, len(AllStatuses)),
		ByKind:   make(map[SpaceKind]int, len(AllSpaceKinds)),
	}
	for _, status := range AllStatuses {
		stats.ByStatus[status] = 0
	}
	for _, kind := range AllSpaceKinds {
		stats.ByKind[kind] = 0
	}

	for _, row := range rows {
		stats.Total += row.Count
		stats.ByStatus[row.Status] += row.Count
		stats.ByKind[row.Kind] += row.Count
	}
	return stats
}

// RequesterUsage aggregated activity of one requester over a period
type RequesterUsage struct {
	RequesterID   int64
	Reservations  int
	BookedMinutes int
	FirstDate     time.Time
	LastDate      time.Time
}
