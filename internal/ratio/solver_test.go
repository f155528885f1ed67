package ratio

import (
	"math"
	"testing"

	"canvas-cropper/internal/canvassize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_FourThree(t *testing.T) {
	field, d, err := Solve(4, 3, 800, math.NaN(), FieldC)
	require.NoError(t, err)
	assert.Equal(t, FieldD, field)
	assert.Equal(t, 600.0, d)

	field, c, err := Solve(4, 3, math.NaN(), 600, FieldD)
	require.NoError(t, err)
	assert.Equal(t, FieldC, field)
	assert.Equal(t, 800.0, c)
}

func TestSolve_Rounds(t *testing.T) {
	d, err := SolveD(16, 9, 1000)
	require.NoError(t, err)
	assert.Equal(t, 563.0, d) // 562.5 rounds up
}

func TestSolve_DivideByZero(t *testing.T) {
	_, _, err := Solve(0, 3, 100, 7, FieldC)
	assert.ErrorIs(t, err, ErrDivideByZero)

	_, err = SolveC(4, 0, 100)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestSolve_NotANumber(t *testing.T) {
	_, err := SolveD(4, math.NaN(), 100)
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestSolve_ABEditsDoNothing(t *testing.T) {
	field, v, err := Solve(4, 3, 800, 600, FieldA)
	require.NoError(t, err)
	assert.Equal(t, FieldA, field)
	assert.True(t, math.IsNaN(v))
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(" 800px")
	require.NoError(t, err)
	assert.Equal(t, 800.0, v)

	v, err = ParseValue("1.5e2")
	require.NoError(t, err)
	assert.Equal(t, 150.0, v)

	_, err = ParseValue("abc")
	assert.ErrorIs(t, err, ErrNotANumber)

	_, err = ParseValue("")
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestForm_Defaults(t *testing.T) {
	f := NewForm(canvassize.Mobile)
	assert.Equal(t, "4", f.A)
	assert.Equal(t, "3", f.B)
	assert.Equal(t, "384", f.C)
	assert.Equal(t, "288", f.D)

	res, ok := f.Resolution()
	require.True(t, ok)
	assert.Equal(t, canvassize.Resolution{Width: 384, Height: 288}, res)
}

func TestForm_EditSolvesPartner(t *testing.T) {
	f := NewForm(canvassize.Desktop)
	require.NoError(t, f.Edit(FieldC, "800"))
	assert.Equal(t, "600", f.D)

	require.NoError(t, f.Edit(FieldD, "300"))
	assert.Equal(t, "400", f.C)
}

func TestForm_ABEditDoesNotResolve(t *testing.T) {
	f := NewForm(canvassize.Desktop)
	require.NoError(t, f.Edit(FieldA, "16"))
	assert.Equal(t, "512", f.C)
	assert.Equal(t, "384", f.D)

	// next c edit uses the new a
	require.NoError(t, f.Edit(FieldB, "9"))
	require.NoError(t, f.Edit(FieldC, "1600"))
	assert.Equal(t, "900", f.D)
}

func TestForm_DivideByZeroKeepsPartner(t *testing.T) {
	f := NewForm(canvassize.Desktop)
	require.NoError(t, f.Edit(FieldA, "0"))
	err := f.Edit(FieldC, "100")
	assert.ErrorIs(t, err, ErrDivideByZero)
	assert.Equal(t, "100", f.C)
	assert.Equal(t, "384", f.D)
}

func TestForm_PresetClears(t *testing.T) {
	f := NewForm(canvassize.Desktop)
	w, h, ok := ParsePreset("16:9")
	require.True(t, ok)
	f.SelectPreset(w, h)
	assert.Equal(t, "16", f.A)
	assert.Equal(t, "9", f.B)
	assert.Empty(t, f.C)
	assert.Empty(t, f.D)

	_, ok = f.Resolution()
	assert.False(t, ok)

	_, _, ok = ParsePreset("wide")
	assert.False(t, ok)
}

func TestForm_NonNumericEdit(t *testing.T) {
	f := NewForm(canvassize.Desktop)
	err := f.Edit(FieldC, "")
	assert.ErrorIs(t, err, ErrNotANumber)
	assert.Equal(t, "384", f.D)
	assert.Equal(t, "d", FieldD.String())
}
