package photos

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	canvasSize  = 1080
	jpegQuality = 90
)

// normalizeImage decodes an uploaded image and renders it cover-fit onto a
// white 1080x1080 canvas: scaled by max(1080/w, 1080/h) and centered, so the
// short edge fills the square and the overflow is cropped. White shows only
// behind transparency. Re-encoded as JPEG so stored photos are uniform
// regardless of what the client uploaded.
func normalizeImage(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}

	scale := float64(canvasSize) / float64(srcW)
	if h := float64(canvasSize) / float64(srcH); h > scale {
		scale = h
	}

	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	if dstW < canvasSize {
		dstW = canvasSize
	}
	if dstH < canvasSize {
		dstH = canvasSize
	}

	canvas := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	stddraw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, stddraw.Src)

	offsetX := (canvasSize - dstW) / 2
	offsetY := (canvasSize - dstH) / 2
	target := image.Rect(offsetX, offsetY, offsetX+dstW, offsetY+dstH)
	xdraw.CatmullRom.Scale(canvas, target, src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}
