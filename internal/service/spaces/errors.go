package spaces

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("space not found")

	// ErrDuplicateName возвращается, когда пространство с таким именем уже существует
	ErrDuplicateName = errors.New("space with this name already exists")

	// ErrSpaceInUse возвращается при удалении пространства с предстоящими бронированиями
	ErrSpaceInUse = errors.New("space has upcoming reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
