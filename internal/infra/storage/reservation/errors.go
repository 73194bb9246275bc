package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotConflict возвращается, когда ограничение исключения отклонило пересекающееся бронирование
	ErrSlotConflict = errors.New("reservation.repository: overlapping active reservation")

	// ErrStatusChanged возвращается, когда статус изменился между чтением и записью
	ErrStatusChanged = errors.New("reservation.repository: status changed concurrently")

	// ErrSpaceNotFound возвращается при нарушении внешнего ключа на пространство
	ErrSpaceNotFound = errors.New("reservation.repository: space not found")

	// ErrInvalidStatus возвращается при запросе выборки по статусу без временной границы
	ErrInvalidStatus = errors.New("reservation.repository: invalid reservation status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
