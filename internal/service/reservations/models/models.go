package models

import (
	"errors"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidKind возвращается при некорректном типе пространства
	ErrInvalidKind = errors.New("invalid space kind")
)

// Request модели

// ListMineRequest запрос на получение собственных бронирований
type ListMineRequest struct {
	Actor  domain.Actor
	Status *string
	Page   int
	Limit  int
}

// ListAllRequest запрос администратора на получение всех бронирований
type ListAllRequest struct {
	Actor   domain.Actor
	Status  *string
	SpaceID *int64
	Date    *time.Time
	Page    int
	Limit   int
}

// TransitionRequest запрос на смену статуса бронирования
type TransitionRequest struct {
	Actor  domain.Actor
	Status string
}

// AdminNoteRequest запрос на сохранение заметки администратора
type AdminNoteRequest struct {
	Actor domain.Actor
	Note  string
}

// UsageReportRequest запрос отчёта об использовании пространств
type UsageReportRequest struct {
	Actor domain.Actor
	From  time.Time
	To    time.Time
	Kind  *string
}

// ReservationsReportRequest запрос сводки бронирований. Все фильтры необязательны.
type ReservationsReportRequest struct {
	Actor   domain.Actor
	From    *time.Time
	To      *time.Time
	Status  *string
	SpaceID *int64
}

// RequesterReportRequest запрос отчёта по заявителям. Границы периода необязательны.
type RequesterReportRequest struct {
	Actor domain.Actor
	From  *time.Time
	To    *time.Time
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64   `json:"id"`
	SpaceID     int64   `json:"spaceId"`
	RequesterID int64   `json:"requesterId"`
	Date        string  `json:"date"`      // "2025-10-15"
	StartTime   string  `json:"startTime"` // "10:00"
	EndTime     string  `json:"endTime"`   // "11:00"
	PartySize   int     `json:"partySize"`
	Purpose     string  `json:"purpose"`
	Status      string  `json:"status"`
	AdminNote   *string `json:"adminNote,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse страница бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	Pages        int                   `json:"pages"`
}

// SpaceUsageResponse использование одного пространства за период
type SpaceUsageResponse struct {
	SpaceID          int64   `json:"spaceId"`
	SpaceName        string  `json:"spaceName"`
	SpaceKind        string  `json:"spaceKind"`
	Reservations     int     `json:"reservations"`
	BookedMinutes    int     `json:"bookedMinutes"`
	AveragePartySize float64 `json:"averagePartySize"`
}

// UsageReportResponse отчёт об использовании пространств
type UsageReportResponse struct {
	From   string               `json:"from"`
	To     string               `json:"to"`
	Spaces []SpaceUsageResponse `json:"spaces"`
}

// ReservationsReportResponse сводка бронирований в разрезе статуса и типа пространства
type ReservationsReportResponse struct {
	From        *string        `json:"from,omitempty"`
	To          *string        `json:"to,omitempty"`
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"byStatus"`
	BySpaceKind map[string]int `json:"bySpaceKind"`
}

// RequesterUsageResponse активность одного заявителя за период
type RequesterUsageResponse struct {
	RequesterID   int64  `json:"requesterId"`
	Reservations  int    `json:"reservations"`
	BookedMinutes int    `json:"bookedMinutes"`
	FirstDate     string `json:"firstDate"`
	LastDate      string `json:"lastDate"`
}

// RequesterReportResponse отчёт по заявителям
type RequesterReportResponse struct {
	From       *string                  `json:"from,omitempty"`
	To         *string                  `json:"to,omitempty"`
	Requesters []RequesterUsageResponse `json:"requesters"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:          r.ID,
		SpaceID:     r.SpaceID,
		RequesterID: r.RequesterID,
		Date:        r.Date.Format(domain.DateFormat),
		StartTime:   r.Range.Start.String(),
		EndTime:     r.Range.End.String(),
		PartySize:   r.PartySize,
		Purpose:     r.Purpose,
		Status:      string(r.Status),
		AdminNote:   r.AdminNote,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainPage конвертирует страницу domain моделей в DTO
func FromDomainPage(page *domain.ReservationPage) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(page.Reservations)),
		Total:        page.Total,
		Page:         page.Page,
		Limit:        page.Limit,
		Pages:        page.Pages(),
	}

	for _, r := range page.Reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// FromDomainUsage конвертирует агрегаты использования в DTO отчёта
func FromDomainUsage(from, to time.Time, usage []*domain.SpaceUsage) *UsageReportResponse {
	resp := &UsageReportResponse{
		From:   from.Format(domain.DateFormat),
		To:     to.Format(domain.DateFormat),
		Spaces: make([]SpaceUsageResponse, 0, len(usage)),
	}

	for _, u := range usage {
		resp.Spaces = append(resp.Spaces, SpaceUsageResponse{
			SpaceID:          u.SpaceID,
			SpaceName:        u.SpaceName,
			SpaceKind:        string(u.SpaceKind),
			Reservations:     u.Reservations,
			BookedMinutes:    u.BookedMinutes,
			AveragePartySize: u.AveragePartySize,
		})
	}

	return resp
}

// FromDomainStats конвертирует сводку бронирований в DTO
func FromDomainStats(from, to *time.Time, stats *domain.ReservationStats) *ReservationsReportResponse {
	resp := &ReservationsReportResponse{
		From:        formatDate(from),
		To:          formatDate(to),
		Total:       stats.Total,
		ByStatus:    make(map[string]int, len(stats.ByStatus)),
		BySpaceKind: make(map[string]int, len(stats.ByKind)),
	}
	for status, count := range stats.ByStatus {
		resp.ByStatus[string(status)] = count
	}
	for kind, count := range stats.ByKind {
		resp.BySpaceKind[string(kind)] = count
	}
	return resp
}

// FromDomainRequesterUsage конвертирует активность заявителей в DTO отчёта
func FromDomainRequesterUsage(from, to *time.Time, usage []*domain.RequesterUsage) *RequesterReportResponse {
	resp := &RequesterReportResponse{
		From:       formatDate(from),
		To:         formatDate(to),
		Requesters: make([]RequesterUsageResponse, 0, len(usage)),
	}

	for _, u := range usage {
		resp.Requesters = append(resp.Requesters, RequesterUsageResponse{
			RequesterID:   u.RequesterID,
			Reservations:  u.Reservations,
			BookedMinutes: u.BookedMinutes,
			FirstDate:     u.FirstDate.Format(domain.DateFormat),
			LastDate:      u.LastDate.Format(domain.DateFormat),
		})
	}

	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s, ok := domain.ParseReservationStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainSpaceKind конвертирует строку в domain.SpaceKind с валидацией
func ToDomainSpaceKind(kind string) (domain.SpaceKind, error) {
	k := domain.SpaceKind(kind)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}
