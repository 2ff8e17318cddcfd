package get_trainer_schedule

import "errors"

var (
	ErrInvalidInput = errors.New("get_trainer_schedule: invalid input data")
	ErrInternal     = errors.New("get_trainer_schedule: internal error")
)
