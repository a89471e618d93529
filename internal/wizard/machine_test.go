package wizard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv() GuardEnv {
	return GuardEnv{
		Now:       time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
		Locations: []string{"atmos"},
	}
}

// completeForm fills every field a fresh guest session needs to reach the
// seating step.
func completeForm(m *Machine) {
	m.Form.FirstName = "Jordan"
	m.Form.LastName = "Reyes"
	m.Form.Email = "jordan.reyes@example.com"
	m.Form.Phone = "5125550101"
	m.Form.Gender = "male"
	m.Form.Race = "hispanic"
	m.Form.Education = "bachelors"
	m.Form.Profession = "athlete"
	m.Form.Age = "25-34"
	m.Form.Location = "atmos"
	m.Form.Date = "2026-03-10"
	m.Form.TimeSlot = "9:00 AM"
	m.Form.DurationMinutes = 60
}

func TestNewMachine(t *testing.T) {
	t.Run("guest starts at guest info", func(t *testing.T) {
		m := NewMachine(true, nil)
		assert.Equal(t, StepGuestInfo, m.Step)
		assert.True(t, m.IsGuest)
		assert.Nil(t, m.UserID)
	})

	t.Run("member skips guest info", func(t *testing.T) {
		uid := uuid.New()
		m := NewMachine(false, &uid)
		assert.Equal(t, StepSelectLocation, m.Step)
		assert.Equal(t, &uid, m.UserID)
	})

	t.Run("one seat selected from the start", func(t *testing.T) {
		m := NewMachine(true, nil)
		assert.Equal(t, 1, m.Form.GroupSize)
		assert.Equal(t, 1, m.SelectedCount())
		assert.True(t, m.Seats[0].Selected)
		for i, seat := range m.Seats {
			assert.Equal(t, i+1, seat.ID)
		}
	})
}

func TestAdvanceWalksAllSteps(t *testing.T) {
	m := NewMachine(true, nil)
	completeForm(m)
	env := testEnv()

	require.NoError(t, m.Advance(env))
	assert.Equal(t, StepSelectLocation, m.Step)

	require.NoError(t, m.Advance(env))
	assert.Equal(t, StepBookingDetails, m.Step)

	require.NoError(t, m.Advance(env))
	assert.Equal(t, StepSeatingOptions, m.Step)

	// Seating is the last step; only Submit can move past it
	assert.ErrorIs(t, m.Advance(env), ErrSubmitRequired)
	assert.Equal(t, StepSeatingOptions, m.Step)
}

func TestAdvanceBlockedByGuard(t *testing.T) {
	m := NewMachine(true, nil)
	env := testEnv()

	err := m.Advance(env)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "guest_info", verr.Group)
	assert.Equal(t, StepGuestInfo, m.Step, "failed guard must not move the machine")
}

func TestAdvanceAfterSubmit(t *testing.T) {
	m := NewMachine(true, nil)
	m.Step = StepSubmitted
	assert.ErrorIs(t, m.Advance(testEnv()), ErrAlreadySubmitted)
	assert.ErrorIs(t, m.Back(), ErrAlreadySubmitted)
}

func TestBack(t *testing.T) {
	t.Run("moves toward the start and stops", func(t *testing.T) {
		m := NewMachine(true, nil)
		m.Step = StepBookingDetails

		require.NoError(t, m.Back())
		assert.Equal(t, StepSelectLocation, m.Step)

		require.NoError(t, m.Back())
		assert.Equal(t, StepGuestInfo, m.Step)

		// Already at the first step; Back is a no-op, not an error
		require.NoError(t, m.Back())
		assert.Equal(t, StepGuestInfo, m.Step)
	})

	t.Run("member stops at location selection", func(t *testing.T) {
		uid := uuid.New()
		m := NewMachine(false, &uid)
		m.Step = StepBookingDetails

		require.NoError(t, m.Back())
		assert.Equal(t, StepSelectLocation, m.Step)

		require.NoError(t, m.Back())
		assert.Equal(t, StepSelectLocation, m.Step)
	})
}

func TestSetGroupSize(t *testing.T) {
	t.Run("selects exactly the first n seats", func(t *testing.T) {
		m := NewMachine(true, nil)

		require.NoError(t, m.SetGroupSize(3))
		assert.Equal(t, 3, m.Form.GroupSize)
		assert.Equal(t, 3, m.SelectedCount())
		assert.True(t, m.Seats[0].Selected)
		assert.True(t, m.Seats[1].Selected)
		assert.True(t, m.Seats[2].Selected)
		assert.False(t, m.Seats[3].Selected)
	})

	t.Run("shrinking clears stale errors on dropped seats", func(t *testing.T) {
		m := NewMachine(true, nil)
		require.NoError(t, m.SetGroupSize(4))
		m.Seats[3].Error = true

		require.NoError(t, m.SetGroupSize(2))
		assert.False(t, m.Seats[3].Error)
		assert.Equal(t, 2, m.Form.GroupSize)
	})

	t.Run("rejects out of range sizes", func(t *testing.T) {
		m := NewMachine(true, nil)
		assert.ErrorIs(t, m.SetGroupSize(0), ErrInvalidGroupSize)
		assert.ErrorIs(t, m.SetGroupSize(5), ErrInvalidGroupSize)
		assert.Equal(t, 1, m.Form.GroupSize)
	})
}

func TestToggleSeat(t *testing.T) {
	t.Run("group size follows selected count", func(t *testing.T) {
		m := NewMachine(true, nil)

		require.NoError(t, m.ToggleSeat(2))
		require.NoError(t, m.ToggleSeat(3))
		assert.Equal(t, 3, m.Form.GroupSize)
		assert.Equal(t, 3, m.SelectedCount())

		require.NoError(t, m.ToggleSeat(3))
		assert.Equal(t, 2, m.Form.GroupSize)
	})

	t.Run("deselecting the last seat keeps group size at one", func(t *testing.T) {
		m := NewMachine(true, nil)

		require.NoError(t, m.ToggleSeat(1))
		assert.Equal(t, 0, m.SelectedCount())
		assert.Equal(t, 1, m.Form.GroupSize)
	})

	t.Run("deselecting clears the error flag", func(t *testing.T) {
		m := NewMachine(true, nil)
		require.NoError(t, m.ToggleSeat(2))
		m.Seats[1].Error = true

		require.NoError(t, m.ToggleSeat(2))
		assert.False(t, m.Seats[1].Error)
	})

	t.Run("new selection prefills the visitor name", func(t *testing.T) {
		m := NewMachine(true, nil)
		m.Form.FirstName = "Jordan"
		m.Form.LastName = "Reyes"

		require.NoError(t, m.ToggleSeat(2))
		assert.Equal(t, "Jordan Reyes", m.Seats[1].Name)

		require.NoError(t, m.ToggleSeat(4))
		assert.Equal(t, "Jordan Reyes", m.Seats[3].Name)
	})

	t.Run("selection keeps a name typed earlier", func(t *testing.T) {
		m := NewMachine(true, nil)
		m.Form.FirstName = "Jordan"
		m.Form.LastName = "Reyes"
		require.NoError(t, m.SetSeatName(3, "Marco Diaz"))

		require.NoError(t, m.ToggleSeat(3))
		assert.Equal(t, "Marco Diaz", m.Seats[2].Name)
	})

	t.Run("rejects out of range seat ids", func(t *testing.T) {
		m := NewMachine(true, nil)
		assert.ErrorIs(t, m.ToggleSeat(0), ErrInvalidSeat)
		assert.ErrorIs(t, m.ToggleSeat(5), ErrInvalidSeat)
	})
}

func TestGroupSizeAndSeatCountStayInSync(t *testing.T) {
	m := NewMachine(true, nil)

	actions := []func() error{
		func() error { return m.SetGroupSize(4) },
		func() error { return m.ToggleSeat(2) },
		func() error { return m.SetGroupSize(2) },
		func() error { return m.ToggleSeat(4) },
		func() error { return m.ToggleSeat(1) },
	}

	for i, action := range actions {
		require.NoError(t, action())
		if count := m.SelectedCount(); count > 0 {
			assert.Equal(t, count, m.Form.GroupSize, "after action %d", i)
		} else {
			assert.Equal(t, 1, m.Form.GroupSize, "after action %d", i)
		}
	}
}

func TestAutofillLeadSeat(t *testing.T) {
	t.Run("copies the visitor name onto a blank lead seat", func(t *testing.T) {
		m := NewMachine(true, nil)
		m.Form.FirstName = "Jordan"
		m.Form.LastName = "Reyes"

		require.NoError(t, m.SetGroupSize(2))
		assert.Equal(t, "Jordan Reyes", m.Seats[0].Name)
	})

	t.Run("never overwrites an explicit name", func(t *testing.T) {
		m := NewMachine(true, nil)
		m.Form.FirstName = "Jordan"
		m.Form.LastName = "Reyes"
		require.NoError(t, m.SetSeatName(1, "Marco Diaz"))

		require.NoError(t, m.SetGroupSize(2))
		assert.Equal(t, "Marco Diaz", m.Seats[0].Name)
	})

	t.Run("reselecting seat one autofills", func(t *testing.T) {
		m := NewMachine(true, nil)
		m.Form.FirstName = "Sam"
		m.Form.LastName = "Okafor"

		require.NoError(t, m.ToggleSeat(1)) // deselect
		require.NoError(t, m.ToggleSeat(1)) // reselect
		assert.Equal(t, "Sam Okafor", m.Seats[0].Name)
	})
}

func TestSetSeatName(t *testing.T) {
	m := NewMachine(true, nil)
	m.Seats[0].Error = true

	require.NoError(t, m.SetSeatName(1, "Jordan Reyes"))
	assert.Equal(t, "Jordan Reyes", m.Seats[0].Name)
	assert.False(t, m.Seats[0].Error)

	// Blank names stick but do not clear the error flag
	m.Seats[0].Error = true
	require.NoError(t, m.SetSeatName(1, "   "))
	assert.True(t, m.Seats[0].Error)

	assert.ErrorIs(t, m.SetSeatName(0, "x"), ErrInvalidSeat)
}

func TestSelectedSeatNames(t *testing.T) {
	m := NewMachine(true, nil)
	require.NoError(t, m.SetGroupSize(3))
	require.NoError(t, m.SetSeatName(1, " Jordan Reyes "))
	require.NoError(t, m.SetSeatName(2, "Marco Diaz"))
	require.NoError(t, m.SetSeatName(3, "Lena Diaz"))
	require.NoError(t, m.SetSeatName(4, "Ghost"))

	assert.Equal(t, []string{"Jordan Reyes", "Marco Diaz", "Lena Diaz"}, m.SelectedSeatNames())
}
