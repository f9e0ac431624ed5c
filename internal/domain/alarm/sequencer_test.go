package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/vibration-alarm/internal/domain/output"
)

const buzzerPin output.Pin = 12

// TestSequencer_PlaysDefaultPattern steps a 10ms cycle through the pattern and checks every edge.
func TestSequencer_PlaysDefaultPattern(t *testing.T) {
	t.Parallel()

	var (
		rec   = output.NewRecorder()
		seq   = NewSequencer(DefaultPattern(), buzzerPin, rec)
		start = time.Unix(1000, 0)
		edges []time.Duration
	)

	seq.Start(start)
	require.True(t, seq.Running())

	edges = append(edges, 0)

	for elapsed := 10 * time.Millisecond; elapsed <= time.Second; elapsed += 10 * time.Millisecond {
		before := len(rec.Writes)
		seq.Advance(start.Add(elapsed))

		if len(rec.Writes) > before {
			edges = append(edges, elapsed)
		}
	}

	want := []time.Duration{0, 200, 300, 500, 600, 800}
	for i := range want {
		want[i] *= time.Millisecond
	}

	require.Equal(t, want, edges)
	require.Equal(t, 3, rec.Count(buzzerPin, output.On))
	require.Equal(t, 3, rec.Count(buzzerPin, output.Off))
	require.Equal(t, output.Off, rec.Level(buzzerPin))
	require.False(t, seq.Running())
	require.Equal(t, 900*time.Millisecond, DefaultPattern().Total())
}

// TestSequencer_SkipsElapsedPhases verifies a slow caller lands on the right phase without replaying the others.
func TestSequencer_SkipsElapsedPhases(t *testing.T) {
	t.Parallel()

	rec := output.NewRecorder()
	seq := NewSequencer(DefaultPattern(), buzzerPin, rec)
	start := time.Unix(0, 0)

	seq.Start(start)
	seq.Advance(start.Add(650 * time.Millisecond))
	require.True(t, seq.Running())
	require.Equal(t, output.On, rec.Level(buzzerPin))
	require.Len(t, rec.Writes, 1)

	seq.Advance(start.Add(5 * time.Second))
	require.False(t, seq.Running())
	require.Equal(t, output.Off, rec.Level(buzzerPin))
	require.Len(t, rec.Writes, 2)
}

// TestSequencer_StopForcesOff checks Stop writes the buzzer off even when idle.
func TestSequencer_StopForcesOff(t *testing.T) {
	t.Parallel()

	rec := output.NewRecorder()
	seq := NewSequencer(DefaultPattern(), buzzerPin, rec)

	seq.Stop()
	require.Equal(t, []output.Write{{Pin: buzzerPin, Level: output.Off}}, rec.Writes)

	seq.Start(time.Unix(0, 0))
	seq.Stop()
	require.False(t, seq.Running())
	require.Equal(t, output.Off, rec.Level(buzzerPin))

	// Advance after Stop is a no-op.
	seq.Advance(time.Unix(10, 0))
	require.Len(t, rec.Writes, 3)
}

// TestSequencer_EmptyPattern ensures a zero-beep pattern never sounds.
func TestSequencer_EmptyPattern(t *testing.T) {
	t.Parallel()

	rec := output.NewRecorder()
	seq := NewSequencer(Pattern{}, buzzerPin, rec)

	seq.Start(time.Unix(0, 0))
	require.False(t, seq.Running())
	require.Empty(t, rec.Writes)
}
