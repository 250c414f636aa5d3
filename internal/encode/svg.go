package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// fallbackCanvasSize is used when the SVG carries no usable dimensions.
const fallbackCanvasSize = 1024

// rasterizeSVG renders SVG source onto an off-screen RGBA canvas sized to
// the document's natural dimensions and encodes the result as PNG.
func rasterizeSVG(data []byte) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	width := int(icon.ViewBox.W)
	height := int(icon.ViewBox.H)
	if width <= 0 || height <= 0 {
		width = fallbackCanvasSize
		height = fallbackCanvasSize
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
