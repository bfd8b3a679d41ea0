package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_HappyPath(t *testing.T) {
	tests := []struct {
		name    string
		current string
		action  string
		want    string
	}{
		{"accept pending", StatusPending, ActionAccept, StatusConfirmed},
		{"reject pending", StatusPending, ActionReject, StatusCancelled},
		{"cancel pending", StatusPending, ActionCancel, StatusCancelled},
		{"cancel confirmed", StatusConfirmed, ActionCancel, StatusCancelled},
		{"advance confirmed", StatusConfirmed, ActionAdvance, StatusPreparing},
		{"advance preparing", StatusPreparing, ActionAdvance, StatusReady},
		{"closeout ready", StatusReady, ActionCloseout, StatusCompleted},
		{"closeout confirmed", StatusConfirmed, ActionCloseout, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := NextStatus(tt.current, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestNextStatus_IllegalMoves(t *testing.T) {
	tests := []struct {
		name    string
		current string
		action  string
	}{
		{"closeout pending", StatusPending, ActionCloseout},
		{"advance pending", StatusPending, ActionAdvance},
		{"accept confirmed", StatusConfirmed, ActionAccept},
		{"reject confirmed", StatusConfirmed, ActionReject},
		{"cancel preparing", StatusPreparing, ActionCancel},
		{"advance ready", StatusReady, ActionAdvance},
		{"accept completed", StatusCompleted, ActionAccept},
		{"reject cancelled", StatusCancelled, ActionReject},
		{"closeout cancelled", StatusCancelled, ActionCloseout},
		{"unknown action", StatusPending, "teleport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextStatus(tt.current, tt.action)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))

			var orderErr *OrderError
			require.True(t, errors.As(err, &orderErr))
			assert.Equal(t, ErrCodeInvalidTransition, orderErr.Code)
		})
	}
}

func TestRefundsStudent(t *testing.T) {
	assert.True(t, RefundsStudent(StatusCancelled))
	assert.False(t, RefundsStudent(StatusConfirmed))
	assert.False(t, RefundsStudent(StatusCompleted))
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusCompleted))
	assert.True(t, IsTerminalStatus(StatusCancelled))
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusReady))
}
