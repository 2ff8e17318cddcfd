package reschedule_booking

import "fmt"

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.Datetime.IsZero() {
		return fmt.Errorf("%w: datetime is required", ErrInvalidInput)
	}

	return nil
}
