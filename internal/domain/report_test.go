package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReservationStats(t *testing.T) {
	stats := NewReservationStats([]StatusKindCount{
		{Status: StatusConfirmed, Kind: SpaceKindMeetingRoom, Count: 3},
		{Status: StatusConfirmed, Kind: SpaceKindClassroom, Count: 2},
		{Status: StatusCancelled, Kind: SpaceKindMeetingRoom, Count: 1},
	})

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 5, stats.ByStatus[StatusConfirmed])
	assert.Equal(t, 1, stats.ByStatus[StatusCancelled])
	assert.Equal(t, 4, stats.ByKind[SpaceKindMeetingRoom])
	assert.Equal(t, 2, stats.ByKind[SpaceKindClassroom])

	assert.Len(t, stats.ByStatus, len(AllStatuses))
	assert.Len(t, stats.ByKind, len(AllSpaceKinds))
	assert.Zero(t, stats.ByKind[SpaceKindAuditorium])
}

func TestNewReservationStats_Empty(t *testing.T) {
	stats := NewReservationStats(nil)

	assert.Zero(t, stats.Total)
	for _, status := range AllStatuses {
		assert.Contains(t, stats.ByStatus, status)
	}
}

func TestSpacePage_Pages(t *testing.T) {
	assert.Equal(t, 3, (&SpacePage{Total: 21, Limit: 10}).Pages())
	assert.Equal(t, 0, (&SpacePage{Total: 21}).Pages())
	assert.Equal(t, 20, SpaceFilter{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, SpaceFilter{Page: 0, Limit: 10}.Offset())
}
