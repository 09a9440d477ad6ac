package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestValidate(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	assert.Error(t, Validate(empty))

	gray := Zeros(8, 16, gocv.MatTypeCV8UC1)
	defer gray.Close()
	assert.NoError(t, Validate(gray))

	color := Zeros(8, 16, gocv.MatTypeCV32FC3)
	defer color.Close()
	assert.NoError(t, Validate(color))
}

func TestShapeOf(t *testing.T) {
	mat := Zeros(4, 6, gocv.MatTypeCV8UC3)
	defer mat.Close()

	shape := ShapeOf(mat)
	assert.Equal(t, 4, shape.Rows)
	assert.Equal(t, 6, shape.Cols)
	assert.Equal(t, 3, shape.Channels)
	assert.Equal(t, gocv.MatTypeCV8UC3, shape.Type)
	assert.Equal(t, "6x4x3", shape.String())
}

func TestSameShape(t *testing.T) {
	a := Zeros(4, 4, gocv.MatTypeCV8UC1)
	defer a.Close()
	b := Zeros(4, 4, gocv.MatTypeCV8UC1)
	defer b.Close()
	c := Zeros(4, 5, gocv.MatTypeCV8UC1)
	defer c.Close()
	d := Zeros(4, 4, gocv.MatTypeCV32FC1)
	defer d.Close()

	assert.True(t, SameShape(a, b))
	assert.False(t, SameShape(a, c))
	assert.False(t, SameShape(a, d))
}

func TestCloneIsIndependent(t *testing.T) {
	src := Zeros(3, 3, gocv.MatTypeCV8UC1)
	defer src.Close()

	dup := Clone(src)
	defer dup.Close()
	require.True(t, Equal(src, dup))

	dup.SetUCharAt(1, 1, 200)
	assert.Equal(t, uint8(0), src.GetUCharAt(1, 1))
	assert.False(t, Equal(src, dup))
}

func TestEqualMultiChannel(t *testing.T) {
	a := Zeros(2, 2, gocv.MatTypeCV8UC3)
	defer a.Close()
	b := Clone(a)
	defer b.Close()
	assert.True(t, Equal(a, b))

	b.SetUCharAt(0, 5, 1)
	assert.False(t, Equal(a, b))
}
