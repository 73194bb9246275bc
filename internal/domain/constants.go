package domain

// Default values
const (
	DefaultSlotGranularityMinutes = 60
	DefaultOperatingHoursStart    = "08:00"
	DefaultOperatingHoursEnd      = "20:00"
	DefaultPageSize               = 10
)

// Business validation constants
const (
	MinPurposeLength     = 5
	MaxPurposeLength     = 300
	MaxAdminNoteLength   = 500
	MaxSpaceNameLength   = 100
	MaxDescriptionLength = 500
	MinSlotGranularity   = 5
	MaxSlotGranularity   = 240
	MaxPageSize          = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
