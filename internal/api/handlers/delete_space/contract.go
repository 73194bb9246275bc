package delete_space

import (
	"context"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

type SpaceService interface {
	Delete(ctx context.Context, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
