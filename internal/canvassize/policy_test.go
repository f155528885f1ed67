package canvassize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplay_LandscapeDesktop(t *testing.T) {
	box, err := Display(Resolution{Width: 1000, Height: 500}, Desktop)
	require.NoError(t, err)
	assert.Equal(t, DisplayBox{Width: 512, Height: 256}, box)
}

func TestDisplay_PortraitMobile(t *testing.T) {
	box, err := Display(Resolution{Width: 600, Height: 1200}, Mobile)
	require.NoError(t, err)
	assert.InDelta(t, 192.0, box.Width, 1e-9)
	assert.InDelta(t, 384.0, box.Height, 1e-9)
}

func TestDisplay_BelowCapIsOneToOne(t *testing.T) {
	box, err := Display(Resolution{Width: 300, Height: 200}, Desktop)
	require.NoError(t, err)
	assert.InDelta(t, 300.0, box.Width, 1e-9)
	assert.InDelta(t, 200.0, box.Height, 1e-9)
}

func TestDisplay_SquareUsesHeightBranch(t *testing.T) {
	box, err := Display(Square(1024), Mobile)
	require.NoError(t, err)
	assert.Equal(t, DisplayBox{Width: 384, Height: 384}, box)
}

func TestDisplay_Invalid(t *testing.T) {
	for _, res := range []Resolution{{0, 10}, {10, 0}, {-4, 3}} {
		_, err := Display(res, Desktop)
		assert.True(t, errors.Is(err, ErrInvalidResolution), "res=%v", res)
	}
}

func TestForAspect(t *testing.T) {
	res, err := ForAspect(512, 16, 9)
	require.NoError(t, err)
	assert.Equal(t, Resolution{Width: 512, Height: 288}, res)

	res, err = ForAspect(100, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 67, res.Height)

	_, err = ForAspect(512, 0, 9)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, Resolution{Width: 512, Height: 384}, Desktop.DefaultResolution())
	assert.Equal(t, Resolution{Width: 384, Height: 288}, Mobile.DefaultResolution())
	assert.Equal(t, "512 x 384", Desktop.DefaultResolution().String())
}

func TestClassifyUserAgent(t *testing.T) {
	assert.Equal(t, Mobile, ClassifyUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"))
	assert.Equal(t, Mobile, ClassifyUserAgent("Mozilla/5.0 (Linux; android 14)"))
	assert.Equal(t, Desktop, ClassifyUserAgent("Mozilla/5.0 (X11; Linux x86_64) Firefox/130.0"))
}

func TestParseDeviceClass(t *testing.T) {
	d, err := ParseDeviceClass("Mobile")
	require.NoError(t, err)
	assert.Equal(t, Mobile, d)

	d, err = ParseDeviceClass("")
	require.NoError(t, err)
	assert.Equal(t, Desktop, d)

	_, err = ParseDeviceClass("watch")
	assert.Error(t, err)
}
