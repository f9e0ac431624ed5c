package gpio

import (
	"testing"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oshokin/vibration-alarm/internal/domain/output"
)

// fakeLine records the mode and state history of one pin.
type fakeLine struct {
	// isOutput is set by Output.
	isOutput bool
	// states lists written states in order.
	states []rpio.State
}

func (f *fakeLine) Output() {
	f.isOutput = true
}

func (f *fakeLine) Write(state rpio.State) {
	f.states = append(f.states, state)
}

// newTestBoard builds a board over fake lines.
func newTestBoard(pins ...output.Pin) (*Board, map[output.Pin]*fakeLine) {
	fakes := make(map[output.Pin]*fakeLine)

	board := newBoard(zap.NewNop().Sugar(), func(p output.Pin) line {
		f := new(fakeLine)
		fakes[p] = f

		return f
	}, pins...)

	return board, fakes
}

// TestBoard_SetupAndSet verifies pins start low as outputs and follow Set.
func TestBoard_SetupAndSet(t *testing.T) {
	t.Parallel()

	board, fakes := newTestBoard(11, 12, 13)

	for _, f := range fakes {
		require.True(t, f.isOutput)
		require.Equal(t, []rpio.State{rpio.Low}, f.states)
	}

	board.Set(13, output.On)
	board.Set(13, output.Off)
	require.Equal(t, []rpio.State{rpio.Low, rpio.High, rpio.Low}, fakes[13].states)

	// Unknown pin is ignored.
	board.Set(4, output.On)
	require.Len(t, fakes, 3)
}

// TestBoard_Close drives every line low.
func TestBoard_Close(t *testing.T) {
	t.Parallel()

	board, fakes := newTestBoard(12, 13)
	board.Set(12, output.On)

	require.NoError(t, board.Close())
	require.Equal(t, rpio.Low, fakes[12].states[len(fakes[12].states)-1])
	require.Equal(t, rpio.Low, fakes[13].states[len(fakes[13].states)-1])
}
