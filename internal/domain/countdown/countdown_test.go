package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStart(t *testing.T) {
	s := Start(DefaultSeconds)
	assert.False(t, s.Done())
	assert.Equal(t, 30, s.Remaining())
	assert.Equal(t, "Counting(30)", s.String())

	assert.True(t, Start(0).Done())
	assert.True(t, Start(-5).Done())
	assert.True(t, State{}.Done())
}

func TestTick_ThirtyTicksReachDone(t *testing.T) {
	s := Start(DefaultSeconds)
	for i := 0; i < DefaultSeconds-1; i++ {
		s = s.Tick()
		assert.False(t, s.Done(), "done early after %d ticks", i+1)
	}
	s = s.Tick()
	assert.True(t, s.Done())
	assert.Equal(t, "Done", s.String())

	assert.Equal(t, s, s.Tick(), "Done must be absorbing")
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "0:30", Start(30).Display())
	assert.Equal(t, "1:05", Start(65).Display())
	assert.Equal(t, "0:00", State{}.Display())
}

func TestClosing(t *testing.T) {
	assert.False(t, Start(4).Closing())
	assert.True(t, Start(3).Closing())
	assert.True(t, Start(1).Closing())
	assert.False(t, Start(0).Closing())
}
