package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, Easy, ParseDifficulty("easy"))
	assert.Equal(t, Normal, ParseDifficulty("normal"))
	assert.Equal(t, Hard, ParseDifficulty("hard"))
	assert.Equal(t, Normal, ParseDifficulty(""))
	assert.Equal(t, Normal, ParseDifficulty("EXTREME"))
}

func TestShapeClone(t *testing.T) {
	s := Shape{{1, 0}, {1, 1}}
	c := s.Clone()
	c[0][0] = 9
	assert.EqualValues(t, 1, s[0][0])
}

func TestNewBlockCopiesShape(t *testing.T) {
	s := Shape{{1, 1, 1}}
	b := NewBlock(s)

	require.Equal(t, 1, b.Height)
	require.Equal(t, 3, b.Width)

	b.Shape[0][0] = 0
	assert.EqualValues(t, 1, s[0][0], "blocks own their shape")
}

func TestShapeDims(t *testing.T) {
	assert.Zero(t, Shape{}.Height())
	assert.Zero(t, Shape{}.Width())
	assert.Equal(t, 2, Shape{{1}, {1}}.Height())
	assert.Equal(t, 1, Shape{{1}, {1}}.Width())
}
