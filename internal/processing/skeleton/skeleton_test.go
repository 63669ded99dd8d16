package skeleton

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skeleton-workbench/internal/models"
)

var variants = []Variant{KMM, K3M}

// imageFromRows builds an RGBA image where '#' is ink.
func imageFromRows(t *testing.T, rows ...string) *models.Image {
	t.Helper()
	img, err := models.NewImage(len(rows[0]), len(rows), 4)
	require.NoError(t, err)
	for y, row := range rows {
		for x, c := range row {
			i := img.Offset(x, y)
			v := Background
			if c == '#' {
				v = Ink
			}
			img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2], img.Pixels[i+3] = v, v, v, 255
		}
	}
	return img
}

func filledRect(t *testing.T, w, h, x0, y0, x1, y1 int) *models.Image {
	rows := make([]string, h)
	for y := range rows {
		row := make([]byte, w)
		for x := range row {
			row[x] = '.'
			if x >= x0 && x <= x1 && y >= y0 && y <= y1 {
				row[x] = '#'
			}
		}
		rows[y] = string(row)
	}
	return imageFromRows(t, rows...)
}

func inkCount(img *models.Image) int {
	n := 0
	for i := 0; i < len(img.Pixels); i += img.Channels {
		if img.Pixels[i] == Ink {
			n++
		}
	}
	return n
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("KMM")
	require.NoError(t, err)
	assert.Equal(t, KMM, v)

	v, err = ParseVariant(" k3m ")
	require.NoError(t, err)
	assert.Equal(t, K3M, v)

	_, err = ParseVariant("zhang-suen")
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestUnknownVariantIsRejected(t *testing.T) {
	img := filledRect(t, 4, 4, 1, 1, 2, 2)
	_, err := Skeletonize(img, Variant(7))
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestInvalidImageIsRejected(t *testing.T) {
	img := &models.Image{Width: 2, Height: 2, Channels: 4, Pixels: make([]byte, 3)}
	_, err := Skeletonize(img, KMM)
	assert.Error(t, err)
}

func TestIsolatedPixelSurvives(t *testing.T) {
	for _, v := range variants {
		img := imageFromRows(t,
			".....",
			".....",
			"..#..",
			".....",
			".....",
		)
		res, err := Skeletonize(img, v)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Skeleton, v.String())
		assert.Equal(t, Ink, img.Pixels[img.Offset(2, 2)], v.String())
	}
}

func TestIsolatedPixelInImageCornerSurvives(t *testing.T) {
	for _, v := range variants {
		img := imageFromRows(t,
			"#..",
			"...",
			"...",
		)
		res, err := Skeletonize(img, v)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Skeleton, v.String())
	}
}

func TestThinLineIsKept(t *testing.T) {
	for _, v := range variants {
		img := filledRect(t, 12, 9, 1, 4, 10, 4)
		res, err := Skeletonize(img, v)
		require.NoError(t, err)
		assert.Equal(t, 10, res.Skeleton, v.String())
		assert.Zero(t, res.Removed(), v.String())
	}
}

func TestEmptyImageConvergesImmediately(t *testing.T) {
	for _, v := range variants {
		img := filledRect(t, 6, 6, 10, 10, 10, 10)
		res, err := Skeletonize(img, v)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Passes, v.String())
		assert.Zero(t, res.Skeleton)
	}
}

func TestRectangleThinsToSkeleton(t *testing.T) {
	for _, v := range variants {
		img := filledRect(t, 16, 16, 2, 3, 13, 11)
		res, err := Skeletonize(img, v)
		require.NoError(t, err)

		assert.Equal(t, 12*9, res.Foreground, v.String())
		assert.Greater(t, res.Skeleton, 0, v.String())
		assert.Less(t, res.Skeleton, 20, v.String())
		assert.Greater(t, res.Passes, 1, v.String())
		assert.Equal(t, res.Skeleton, inkCount(img), v.String())
	}
}

func TestKnownRectangleSkeletons(t *testing.T) {
	cases := []struct {
		variant Variant
		want    []string
	}{
		{KMM, []string{
			"............",
			"............",
			"............",
			"............",
			"....####....",
			"........#...",
			"........#...",
			"............",
			"............",
		}},
		{K3M, []string{
			"............",
			"............",
			"............",
			"............",
			"...#####....",
			"............",
			"............",
			"............",
			"............",
		}},
	}
	for _, tc := range cases {
		img := filledRect(t, 12, 9, 2, 2, 9, 6)
		_, err := Skeletonize(img, tc.variant)
		require.NoError(t, err)
		assert.Equal(t, imageFromRows(t, tc.want...).Pixels, img.Pixels, tc.variant.String())
	}
}

// A single K3M width cleanup can leave pixels a second run removes; the
// cleanup repeats until it deletes nothing so these shapes pass.
func TestSkeletonizationIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 40; trial++ {
		w, h := 5+rng.Intn(16), 5+rng.Intn(16)
		rows := make([][]byte, h)
		for y := range rows {
			rows[y] = bytes.Repeat([]byte{'.'}, w)
		}
		for blobs := 1 + rng.Intn(5); blobs > 0; blobs-- {
			x0, y0 := rng.Intn(w), rng.Intn(h)
			x1, y1 := x0+rng.Intn(w-x0), y0+rng.Intn(h-y0)
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					rows[y][x] = '#'
				}
			}
		}
		lines := make([]string, h)
		for y := range rows {
			lines[y] = string(rows[y])
		}

		for _, v := range variants {
			img := imageFromRows(t, lines...)
			_, err := Skeletonize(img, v)
			require.NoError(t, err)
			once := append([]byte(nil), img.Pixels...)

			res, err := Skeletonize(img, v)
			require.NoError(t, err)
			assert.Zero(t, res.Removed(), "trial %d %s", trial, v)
			assert.Equal(t, 1, res.Passes, "trial %d %s", trial, v)
			assert.Equal(t, once, img.Pixels, "trial %d %s", trial, v)
		}
	}
}

func TestWriteBackLeavesAlphaAlone(t *testing.T) {
	img := filledRect(t, 5, 5, 1, 1, 3, 3)
	for i := 3; i < len(img.Pixels); i += 4 {
		img.Pixels[i] = 77
	}
	_, err := Skeletonize(img, KMM)
	require.NoError(t, err)
	for i := 3; i < len(img.Pixels); i += 4 {
		require.Equal(t, uint8(77), img.Pixels[i])
	}
}

func TestNonInkValuesAreBackground(t *testing.T) {
	img := imageFromRows(t, "...", ".#.", "...")
	// a mid-grey pixel next to the ink is not foreground
	i := img.Offset(0, 1)
	img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2] = 128, 128, 128

	bitmap := Extract(img)
	assert.Equal(t, []uint8{0, 0, 0, 0, 1, 0, 0, 0, 0}, bitmap)
}
