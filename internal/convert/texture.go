package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"

	"despawn-particles/internal/utils"
)

// Texture formats stored in the TEXV header.
const (
	FormatRGBA8888 = 0
	FormatDXT1     = 4
	FormatDXT5     = 6
	FormatDXT1A    = 7
	FormatRG88     = 8
	FormatR8       = 9
)

var (
	ErrBadMagic    = errors.New("convert: not a TEXV0005 texture")
	ErrNoImage     = errors.New("convert: texture has no images")
	ErrUnsupported = errors.New("convert: unsupported texture payload")
)

type texReader struct {
	r   io.ReadSeeker
	err error
}

func (t *texReader) u32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// str reads a fixed-width NUL padded string and the NUL terminator after it.
func (t *texReader) str(n int) string {
	b := make([]byte, n+1)
	if t.err == nil {
		_, t.err = io.ReadFull(t.r, b)
	}
	return string(bytes.TrimRight(b, "\x00"))
}

func (t *texReader) skip(n int64) {
	if t.err == nil {
		_, t.err = t.r.Seek(n, io.SeekCurrent)
	}
}

// DecodeTex decodes the first mipmap of the first image in a .tex stream.
// The result is cropped to the texture's logical size.
func DecodeTex(r io.ReadSeeker) (*image.RGBA, error) {
	t := &texReader{r: r}

	magic := t.str(8)
	_ = t.str(8)
	if t.err != nil {
		return nil, t.err
	}
	if magic != "TEXV0005" {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}

	format := t.u32()
	t.skip(4)
	_ = t.u32() // texture width
	_ = t.u32() // texture height
	imgW := t.u32()
	imgH := t.u32()
	_ = t.u32()

	container := t.str(8)
	imageCount := t.u32()
	if container == "TEXB0003" {
		_ = t.u32()
	}
	if t.err != nil {
		return nil, t.err
	}
	if imageCount == 0 {
		return nil, ErrNoImage
	}

	mipmaps := t.u32()
	if mipmaps == 0 {
		return nil, ErrNoImage
	}
	mW := t.u32()
	mH := t.u32()
	var compressed bool
	var decompressedSize uint32
	if container != "TEXB0001" {
		compressed = t.u32() == 1
		decompressedSize = t.u32()
	}
	dataSize := t.u32()
	if t.err != nil {
		return nil, t.err
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	if compressed {
		utils.Debug("tex: lz4 %d -> %d bytes", dataSize, decompressedSize)
		out := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("convert: lz4: %w", err)
		}
		data = out[:n]
	}

	pix, err := decodePixels(format, data, mW, mH)
	if err != nil {
		return nil, err
	}

	img := &image.RGBA{Pix: pix, Stride: int(mW * 4), Rect: image.Rect(0, 0, int(mW), int(mH))}
	if imgW > 0 && imgH > 0 && (imgW < mW || imgH < mH) {
		return img.SubImage(image.Rect(0, 0, int(imgW), int(imgH))).(*image.RGBA), nil
	}
	return img, nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	size := uint32(len(data))
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	rgba := w * h * 4

	switch format {
	case FormatRGBA8888:
		if size == rgba {
			return data, nil
		}
	case FormatDXT5:
		if size >= blocks*16 {
			return decodeDXT5(data, w, h)
		}
	case FormatDXT1, FormatDXT1A:
		if size >= blocks*8 {
			return decodeDXT1(data, w, h)
		}
	case FormatR8:
		if size == w*h {
			return expandR8(data, rgba), nil
		}
	case FormatRG88:
		if size == w*h*2 {
			return expandRG88(data, rgba), nil
		}
	default:
		// unknown format ids: guess from the payload size
		switch size {
		case rgba:
			utils.Debug("tex: format %d treated as RGBA", format)
			return data, nil
		case blocks * 16:
			utils.Debug("tex: format %d treated as DXT5", format)
			return decodeDXT5(data, w, h)
		case blocks * 8:
			utils.Debug("tex: format %d treated as DXT1", format)
			return decodeDXT1(data, w, h)
		}
	}
	return nil, fmt.Errorf("%w: format %d, %d bytes for %dx%d", ErrUnsupported, format, size, w, h)
}

func decodeDXT5(data []byte, w, h uint32) ([]byte, error) {
	utils.Debug("tex: DXT5 %dx%d", w, h)
	pix, err := dxt.DecodeDXT5(data, uint(w), uint(h))
	if err != nil {
		return nil, err
	}
	fixAlpha(pix, int(w), int(h))
	return pix, nil
}

func decodeDXT1(data []byte, w, h uint32) ([]byte, error) {
	utils.Debug("tex: DXT1 %dx%d", w, h)
	return dxt.DecodeDXT1(data, uint(w), uint(h))
}

// expandR8 spreads one luminance byte per pixel over opaque RGBA.
func expandR8(data []byte, rgba uint32) []byte {
	pix := make([]byte, rgba)
	for i, v := range data {
		pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
	}
	return pix
}

// expandRG88 uses the second channel as both luminance and alpha.
func expandRG88(data []byte, rgba uint32) []byte {
	pix := make([]byte, rgba)
	for i := 0; i < len(data)/2; i++ {
		lum := data[i*2+1]
		pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = lum, lum, lum, lum
	}
	return pix
}

// fixAlpha hardens DXT5 alpha to 0 or 255, keeping thin interior edges.
func fixAlpha(pix []byte, width, height int) {
	const (
		alphaThreshold = 200
		edgeThreshold  = 2
	)
	stride := width * 4
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 4
			if pix[idx+3] > alphaThreshold {
				pix[idx+3] = 255
				continue
			}
			pix[idx+3] = 0
			if x == 0 || x == width-1 || y == 0 || y == height-1 {
				continue
			}
			left, right := pix[idx-4+3], pix[idx+4+3]
			up, down := pix[idx-stride+3], pix[idx+stride+3]
			if (left > edgeThreshold && right > edgeThreshold) || (up > edgeThreshold && down > edgeThreshold) {
				pix[idx+3] = 255
			}
		}
	}
}

// CacheDir receives PNG copies of decoded .tex files. Empty means next to
// the source file.
var CacheDir string

func cachePath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".tex") + ".png"
	if CacheDir != "" {
		return filepath.Join(CacheDir, name)
	}
	return filepath.Join(filepath.Dir(path), name)
}

// LoadImage reads a .tex, .png or .jpg file. Decoded .tex files are cached
// as PNG and the cache is preferred on later loads.
func LoadImage(path string) (image.Image, error) {
	if !strings.HasSuffix(path, ".tex") {
		return decodeFile(path)
	}

	cached := cachePath(path)
	if img, err := decodeFile(cached); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeTex(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := writePNG(cached, img); err != nil {
		utils.Warn("Failed to cache %s: %v", cached, err)
	}
	return img, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
