package balls

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"net/url"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder
)

// SpriteSize is the diameter in pixels of every decoded ball.
const SpriteSize = 64

var errNotImage = errors.New("balls: payload is not a supported image")

// payloadBytes returns the encoded image inside payload, unwrapping a
// "data:image/...;base64," URL when present.
func payloadBytes(payload []byte) ([]byte, error) {
	if !bytes.HasPrefix(payload, []byte("data:")) {
		return payload, nil
	}

	header, data, ok := strings.Cut(string(payload[len("data:"):]), ",")
	if !ok {
		return nil, fmt.Errorf("balls: malformed data URL")
	}

	mediaType, params, _ := strings.Cut(header, ";")
	if mediaType != "" && !strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("balls: data URL has media type %q, expected an image", mediaType)
	}

	if strings.Contains(params, "base64") {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
		if err != nil {
			return nil, fmt.Errorf("balls: cannot decode base64 data URL: %w", err)
		}
		return raw, nil
	}

	raw, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("balls: cannot unescape data URL: %w", err)
	}
	return []byte(raw), nil
}

// Probe checks that payload holds a decodable image without decoding pixels.
// It returns the image format name.
func Probe(payload []byte) (string, error) {
	raw, err := payloadBytes(payload)
	if err != nil {
		return "", err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errNotImage, err)
	}
	return format, nil
}

// Decode turns payload into a square size x size image: the largest centered
// square of the source, scaled, and masked to its inscribed circle with an
// antialiased edge.
func Decode(payload []byte, size int) (*image.RGBA, error) {
	if size <= 0 {
		size = SpriteSize
	}

	raw, err := payloadBytes(payload)
	if err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotImage, err)
	}

	b := src.Bounds()
	side := min(b.Dx(), b.Dy())
	if side == 0 {
		return nil, fmt.Errorf("balls: image is empty")
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)

	maskCircle(dst)
	return dst, nil
}

// maskCircle clears every pixel outside the inscribed circle of img and
// fades the one-pixel rim by coverage.
func maskCircle(img *image.RGBA) {
	b := img.Bounds()
	r := float64(b.Dx()) / 2
	cx := float64(b.Min.X) + r
	cy := float64(b.Min.Y) + float64(b.Dy())/2

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dist := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			coverage := r - dist + 0.5
			switch {
			case coverage >= 1:
				continue
			case coverage <= 0:
				img.SetRGBA(x, y, color.RGBA{})
			default:
				c := img.RGBAAt(x, y)
				img.SetRGBA(x, y, color.RGBA{
					R: uint8(float64(c.R) * coverage),
					G: uint8(float64(c.G) * coverage),
					B: uint8(float64(c.B) * coverage),
					A: uint8(float64(c.A) * coverage),
				})
			}
		}
	}
}
