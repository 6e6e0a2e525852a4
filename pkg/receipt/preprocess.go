package receipt

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/disintegration/imaging"
)

// Contrast stretch parameters. The midpoint sits well above 50% gray so that
// light-gray anti-aliased text is pulled toward black while true white
// background stays white.
const (
	padPx            = 50
	contrastFactor   = 2.5
	contrastMidpoint = 210.0
)

// Normalize prepares a receipt photo for recognition: a white border keeps
// edge characters inside Tesseract's view, then the image is reduced to luma
// and contrast-stretched around the shifted midpoint. The result is written to
// a temporary PNG whose path is returned; the caller removes it. The source
// image is never modified.
func Normalize(srcPath string) (string, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*padPx, b.Dy()+2*padPx, color.NRGBA{255, 255, 255, 255})
	canvas = imaging.Paste(canvas, img, image.Pt(padPx, padPx))

	out := imaging.AdjustFunc(canvas, func(c color.NRGBA) color.NRGBA {
		gray := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		v := (gray-contrastMidpoint)*contrastFactor + contrastMidpoint
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		g := uint8(v)
		return color.NRGBA{R: g, G: g, B: g, A: 255}
	})

	tmp, err := os.CreateTemp("", "struk-prep-*.png")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	_ = tmp.Close()
	if err := imaging.Save(out, tmp.Name()); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("save normalized image: %w", err)
	}
	return tmp.Name(), nil
}

// removeTemp deletes an intermediate image, logging rather than failing when
// the file is already gone.
func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("remove temp image %s: %v", path, err)
	}
}

// cropBand describes a fractional region of an image (0..1 coordinates).
type cropBand struct {
	X, Y, W, H float64
}

// cropRegion cuts a fractional band out of an image, upscales it and applies a
// mean adaptive threshold, producing a temporary PNG tuned for a narrow digit
// re-scan. The caller removes the returned file.
func cropRegion(srcPath string, band cropBand, scale int) (string, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}
	b := img.Bounds()
	x0 := b.Min.X + int(float64(b.Dx())*band.X)
	y0 := b.Min.Y + int(float64(b.Dy())*band.Y)
	w := int(float64(b.Dx()) * band.W)
	h := int(float64(b.Dy()) * band.H)
	if w < 1 || h < 1 {
		return "", fmt.Errorf("crop band out of range")
	}
	crop := imaging.Crop(img, image.Rect(x0, y0, x0+w, y0+h))
	if scale > 1 {
		crop = imaging.Resize(crop, crop.Bounds().Dx()*scale, 0, imaging.Lanczos)
	}
	bw := meanThreshold(crop)

	tmp, err := os.CreateTemp("", "struk-crop-*.png")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	_ = tmp.Close()
	if err := imaging.Save(bw, tmp.Name()); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("save crop: %w", err)
	}
	return tmp.Name(), nil
}

// meanThreshold binarizes against the average brightness of the region, which
// tolerates the uneven lighting typical of phone photos better than a fixed
// cutoff.
func meanThreshold(img image.Image) *image.NRGBA {
	b := img.Bounds()
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			sum += 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bb>>8)
		}
	}
	avg := sum / float64(b.Dx()*b.Dy())
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bb>>8)
			var v uint8
			if gray > avg {
				v = 255
			}
			out.Set(x-b.Min.X, y-b.Min.Y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
