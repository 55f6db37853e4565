package export

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(min, max float64) section.Loop {
	return section.Loop{
		Closed: true,
		Points: []geometry.Vector3{
			geometry.NewVector3(min, min, 0),
			geometry.NewVector3(max, min, 0),
			geometry.NewVector3(max, max, 0),
			geometry.NewVector3(min, max, 0),
		},
	}
}

func TestImageFillsEvenOdd(t *testing.T) {
	result := section.Result{Curve: section.Polygon{}, Loops: []section.Loop{square(0, 4), square(1, 3)}}

	// 68 drawable pixels over 4 units
	img, err := Image(result, []projection.View{projection.Front}, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 2*imageMargin+labelHeight+68, img.Bounds().Dy())

	// inside the ring, x=0.5 y=0.5
	assert.NotEqual(t, backgroundColor, img.RGBAAt(24, 91))
	// inside the hole, x=2 y=2
	assert.Equal(t, backgroundColor, img.RGBAAt(50, 66))
	// margin
	assert.Equal(t, backgroundColor, img.RGBAAt(5, 60))
	// left outline at x=0
	assert.Equal(t, viewColors[projection.Front], img.RGBAAt(16, 66))
}

func TestImageOpenLoopIsNotFilled(t *testing.T) {
	img, err := Image(openCut(), []projection.View{projection.Front}, 100)
	require.NoError(t, err)

	// below the diagonal of the open corner, x=0.75 y=0.25
	assert.Equal(t, backgroundColor, img.RGBAAt(16+51, 32+51))
}

func TestImageEmpty(t *testing.T) {
	img, err := Image(section.Result{}, projection.Views, 64)
	require.NoError(t, err)
	assert.Equal(t, 2*imageMargin+labelHeight, img.Bounds().Dy())
	assert.Equal(t, backgroundColor, img.RGBAAt(10, 10))
}

func TestImageTooNarrow(t *testing.T) {
	_, err := Image(openCut(), projection.Views, 2*imageMargin)
	assert.Error(t, err)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.png")
	require.NoError(t, SavePNG(path, twoBoxCut(t), projection.Views, 400))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestDrawLineClipsToImage(t *testing.T) {
	result := section.Result{Loops: []section.Loop{square(0, 1)}}
	img, err := Image(result, []projection.View{projection.Top}, 50)
	require.NoError(t, err)

	drawLine(img, -10, -10, 100, 100, labelColor)
	assert.Equal(t, labelColor, img.RGBAAt(20, 20))
}
