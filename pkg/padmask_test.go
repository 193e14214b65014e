package tpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadMaskContains(t *testing.T) {
	mask := NewPadMask()
	mask.Add(0, 5, 7)
	mask.Add(36, 18, 7)

	assert.True(t, mask.Contains(0, 5, 7))
	assert.True(t, mask.Contains(36, 18, 7))
	assert.False(t, mask.Contains(0, 5, 8))
	assert.False(t, mask.Contains(1, 5, 7))
	assert.Equal(t, 2, mask.Size())
}

func TestPadMaskNilMasksNothing(t *testing.T) {
	var mask *PadMask
	assert.False(t, mask.Contains(0, 0, 0))
	assert.Equal(t, 0, mask.Size())
}

func TestPadMaskFromConfig(t *testing.T) {
	mask := NewPadMaskFromConfig([][3]int{{0, 5, 7}, {36, 18, 7}, {0, 5, 7}})
	assert.Equal(t, 2, mask.Size())
	assert.True(t, mask.Contains(0, 5, 7))

	empty := NewPadMaskFromConfig(nil)
	assert.Equal(t, 0, empty.Size())
}

func TestPadMaskMerge(t *testing.T) {
	mask := NewPadMask()
	mask.Add(0, 1, 2)

	other := NewPadMask()
	other.Add(0, 1, 2)
	other.Add(3, 4, 5)

	mask.Merge(other)
	assert.Equal(t, 2, mask.Size())
	assert.True(t, mask.Contains(3, 4, 5))

	mask.Merge(nil)
	assert.Equal(t, 2, mask.Size())
}
