package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockMeasuresElapsedTime(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Update()

	require.GreaterOrEqual(t, c.Elapsed(), 0.02)
}

func TestClockIgnoresUpdateWhenStopped(t *testing.T) {
	c := NewClock()
	c.Update()
	require.Equal(t, 0.0, c.Elapsed())

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	elapsed := c.Elapsed()
	require.Greater(t, elapsed, 0.0)

	c.Stop()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	require.Equal(t, elapsed, c.Elapsed())
}

func TestClockStartResets(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	require.Greater(t, c.Elapsed(), 0.0)

	c.Start()
	require.Equal(t, 0.0, c.Elapsed())
}
