package booking

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

func TestIsSlotConflict(t *testing.T) {
	assert.True(t, isSlotConflict(&pq.Error{Code: uniqueViolation, Constraint: activeSlotIndex}))
	assert.True(t, isSlotConflict(fmt.Errorf("wrapped: %w", &pq.Error{Code: uniqueViolation, Constraint: activeSlotIndex})))
	assert.False(t, isSlotConflict(&pq.Error{Code: uniqueViolation, Constraint: "bookings_pkey"}))
	assert.False(t, isSlotConflict(&pq.Error{Code: "23503"}))
	assert.False(t, isSlotConflict(fmt.Errorf("boom")))
}

func TestErrorsWrapDomain(t *testing.T) {
	assert.ErrorIs(t, ErrSlotTaken, domain.ErrSlotTaken)
	assert.ErrorIs(t, ErrBookingNotFound, domain.ErrBookingNotFound)
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, []string{"pending", "confirmed"}, statusStrings(domain.ActiveStatuses))
}
