package glw

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Pixels is a decoded 8-bit image ready for upload.
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Format   uint32 // RED or RGBA
	Data     []byte
}

// DecodeImage converts img to tightly packed rows. Gray images keep one
// channel, everything else becomes RGBA. With flipY the first row of Data is
// the bottom row of the image.
func DecodeImage(img image.Image, flipY bool) *Pixels {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var (
		pix      []byte
		stride   int
		channels int
		format   uint32
	)
	switch src := img.(type) {
	case *image.Gray:
		dst := image.NewGray(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
		pix, stride, channels, format = dst.Pix, dst.Stride, 1, RED
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
		pix, stride, channels, format = dst.Pix, dst.Stride, 4, RGBA
	}

	rowBytes := w * channels
	data := make([]byte, rowBytes*h)
	for y := 0; y < h; y++ {
		srcRow := y
		if flipY {
			srcRow = h - 1 - y
		}
		copy(data[y*rowBytes:(y+1)*rowBytes], pix[srcRow*stride:srcRow*stride+rowBytes])
	}
	return &Pixels{Width: w, Height: h, Channels: channels, Format: format, Data: data}
}

// LoadImage decodes a JPEG, PNG, BMP, TIFF or WebP file from fsys.
func LoadImage(fsys fs.FS, path string, flipY bool) (*Pixels, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindResourceLoad, Op: "open texture " + path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &Error{Kind: KindResourceLoad, Op: "decode texture " + path, Err: errors.Wrap(err, "load texture failed")}
	}
	Logger().Debug("image decoded", slog.String("path", path), slog.String("format", format))
	return DecodeImage(img, flipY), nil
}

// TextureParams are the sampler settings applied at creation.
type TextureParams struct {
	WrapS     int32
	WrapT     int32
	MinFilter int32
	MagFilter int32
	Mipmaps   bool
}

// DefaultTextureParams repeats in both directions with linear filtering.
func DefaultTextureParams() TextureParams {
	return TextureParams{
		WrapS:     REPEAT,
		WrapT:     REPEAT,
		MinFilter: LINEAR,
		MagFilter: LINEAR,
		Mipmaps:   true,
	}
}

// Texture owns one 2D texture object.
type Texture struct {
	api    API
	handle uint32
	width  int
	height int
}

// NewTexture2D uploads px with params and leaves no texture bound.
func NewTexture2D(api API, px *Pixels, params TextureParams) (*Texture, error) {
	if px == nil || px.Width <= 0 || px.Height <= 0 || len(px.Data) < px.Width*px.Height*px.Channels {
		return nil, &Error{Kind: KindResourceLoad, Op: "create texture", Log: "empty or truncated pixel data"}
	}
	handle := api.GenTexture()
	api.BindTexture(TEXTURE_2D, handle)
	api.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, params.WrapS)
	api.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, params.WrapT)
	api.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, params.MinFilter)
	api.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, params.MagFilter)
	if px.Channels != 4 {
		api.PixelStorei(UNPACK_ALIGNMENT, 1)
	}
	api.TexImage2D(TEXTURE_2D, 0, int32(px.Format), int32(px.Width), int32(px.Height), px.Format, UNSIGNED_BYTE, px.Data)
	if px.Channels != 4 {
		api.PixelStorei(UNPACK_ALIGNMENT, 4)
	}
	if params.Mipmaps {
		api.GenerateMipmap(TEXTURE_2D)
	}
	api.BindTexture(TEXTURE_2D, 0)

	Logger().Debug("texture created", slog.Uint64("handle", uint64(handle)), slog.Int("width", px.Width), slog.Int("height", px.Height))
	return &Texture{api: api, handle: handle, width: px.Width, height: px.Height}, nil
}

// LoadTexture2D is LoadImage followed by NewTexture2D.
func LoadTexture2D(api API, fsys fs.FS, path string, flipY bool, params TextureParams) (*Texture, error) {
	px, err := LoadImage(fsys, path, flipY)
	if err != nil {
		return nil, err
	}
	return NewTexture2D(api, px, params)
}

func (t *Texture) Handle() uint32 {
	if t == nil {
		return 0
	}
	return t.handle
}

func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Bind activates texture unit TEXTURE0+unit and binds t to it.
func (t *Texture) Bind(unit uint32) {
	if t == nil || t.handle == 0 {
		return
	}
	t.api.ActiveTexture(TEXTURE0 + unit)
	t.api.BindTexture(TEXTURE_2D, t.handle)
}

func (t *Texture) Delete() {
	if t == nil || t.handle == 0 {
		return
	}
	t.api.DeleteTexture(t.handle)
	Logger().Debug("texture deleted", slog.Uint64("handle", uint64(t.handle)))
	t.handle = 0
}
