package glw_test

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/glw/glwtest"
)

// twoRows is 2x2: red on top, blue at the bottom.
func twoRows() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
		img.Set(x, 1, color.NRGBA{B: 255, A: 255})
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	px := glw.DecodeImage(twoRows(), false)
	assert.Equal(t, 2, px.Width)
	assert.Equal(t, 2, px.Height)
	assert.Equal(t, 4, px.Channels)
	assert.Equal(t, uint32(glw.RGBA), px.Format)
	assert.Len(t, px.Data, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, px.Data[:4])

	flipped := glw.DecodeImage(twoRows(), true)
	assert.Equal(t, []byte{0, 0, 255, 255}, flipped.Data[:4], "flipped data starts at the bottom row")
}

func TestDecodeImage_GrayKeepsOneChannel(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	gray.Pix = []byte{10, 20, 30}

	px := glw.DecodeImage(gray, false)

	assert.Equal(t, 1, px.Channels)
	assert.Equal(t, uint32(glw.RED), px.Format)
	assert.Equal(t, []byte{10, 20, 30}, px.Data)
}

func TestLoadTexture2D(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/rows.png": {Data: encodePNG(t, twoRows())},
		"textures/junk.png": {Data: []byte("not an image")},
	}

	t.Run("uploads and unbinds", func(t *testing.T) {
		api := glwtest.NewRecorder()
		texture, err := glw.LoadTexture2D(api, fsys, "textures/rows.png", true, glw.DefaultTextureParams())
		require.NoError(t, err)

		require.Len(t, api.Uploads, 1)
		upload := api.Uploads[0]
		assert.Equal(t, texture.Handle(), upload.Texture)
		assert.Equal(t, int32(2), upload.Width)
		assert.Equal(t, 16, upload.Bytes)
		assert.Contains(t, api.Calls, "GenerateMipmap")
		w, h := texture.Size()
		assert.Equal(t, [2]int{2, 2}, [2]int{w, h})

		texture.Delete()
		texture.Delete()
		assert.Zero(t, api.LiveTotal())
		assert.Empty(t, api.Misuse())
	})

	t.Run("missing file", func(t *testing.T) {
		api := glwtest.NewRecorder()
		_, err := glw.LoadTexture2D(api, fsys, "textures/none.png", false, glw.DefaultTextureParams())
		assert.True(t, errors.Is(err, glw.ErrResourceLoad))
		assert.Zero(t, api.Created(glwtest.TextureObject))
	})

	t.Run("undecodable file", func(t *testing.T) {
		api := glwtest.NewRecorder()
		_, err := glw.LoadTexture2D(api, fsys, "textures/junk.png", false, glw.DefaultTextureParams())
		assert.True(t, errors.Is(err, glw.ErrResourceLoad))
		assert.Contains(t, err.Error(), "load texture failed")
		assert.Zero(t, api.Created(glwtest.TextureObject))
	})
}

func TestNewTexture2D_SingleChannelAlignment(t *testing.T) {
	api := glwtest.NewRecorder()
	px := &glw.Pixels{Width: 3, Height: 1, Channels: 1, Format: glw.RED, Data: []byte{1, 2, 3}}

	texture, err := glw.NewTexture2D(api, px, glw.TextureParams{WrapS: glw.CLAMP_TO_EDGE, WrapT: glw.CLAMP_TO_EDGE, MinFilter: glw.NEAREST, MagFilter: glw.NEAREST})
	require.NoError(t, err)
	defer texture.Delete()

	assert.Contains(t, api.Calls, "PixelStorei(0xCF5,1)")
	assert.Equal(t, int32(4), api.PixelStore(glw.UNPACK_ALIGNMENT), "alignment is restored after upload")
	assert.NotContains(t, api.Calls, "GenerateMipmap")
}

func TestNewTexture2D_RejectsTruncatedData(t *testing.T) {
	api := glwtest.NewRecorder()
	_, err := glw.NewTexture2D(api, &glw.Pixels{Width: 4, Height: 4, Channels: 4, Format: glw.RGBA, Data: make([]byte, 8)}, glw.DefaultTextureParams())
	assert.True(t, errors.Is(err, glw.ErrResourceLoad))
	assert.Zero(t, api.Created(glwtest.TextureObject))
}

func TestTexture_Bind(t *testing.T) {
	api := glwtest.NewRecorder()
	texture, err := glw.NewTexture2D(api, glw.DecodeImage(twoRows(), false), glw.DefaultTextureParams())
	require.NoError(t, err)

	texture.Bind(1)
	assert.Equal(t, fmt.Sprintf("BindTexture(0xDE1,%d)", texture.Handle()), api.Calls[len(api.Calls)-1])
	assert.Contains(t, api.Calls, "ActiveTexture(1)")
}
