package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

// ErrInvalidPagination page или limit не являются положительными числами
var ErrInvalidPagination = errors.New("invalid pagination parameters")

// ParsePagination читает page и limit. Отсутствующие значения возвращаются нулями,
// значения по умолчанию подставляет сервис.
func ParsePagination(query url.Values) (page, limit int, err error) {
	if s := query.Get("page"); s != "" {
		page, err = strconv.Atoi(s)
		if err != nil || page < 1 {
			return 0, 0, ErrInvalidPagination
		}
	}
	if s := query.Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 1 {
			return 0, 0, ErrInvalidPagination
		}
	}
	return page, limit, nil
}

// OptionalString возвращает nil для пустого параметра
func OptionalString(query url.Values, key string) *string {
	if s := query.Get(key); s != "" {
		return &s
	}
	return nil
}

// OptionalDate читает дату в формате YYYY-MM-DD; nil для пустого параметра
func OptionalDate(query url.Values, key string) (*time.Time, error) {
	s := query.Get(key)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// OptionalInt64 читает целое число; nil для пустого параметра
func OptionalInt64(query url.Values, key string) (*int64, error) {
	s := query.Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
