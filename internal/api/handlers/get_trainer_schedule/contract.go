package get_trainer_schedule

import (
	"context"

	getTrainerSchedule "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_trainer_schedule"
)

type GetTrainerScheduleUseCase interface {
	Execute(ctx context.Context, req *getTrainerSchedule.Request) (*getTrainerSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
