package server

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// hudHeight is the height of the status bar drawn over streamed frames
const hudHeight = 18

// encodeFrame scales the frame by an integer factor, draws the HUD text across the top
// when hud is non-empty, and returns the result as base64 PNG
func encodeFrame(img *image.RGBA, scale int, hud string) (string, error) {
	var frame image.Image = img
	if scale > 1 {
		b := img.Bounds()
		frame = resize.Resize(uint(b.Dx()*scale), uint(b.Dy()*scale), img, resize.NearestNeighbor)
	}

	if hud != "" {
		dc := gg.NewContextForImage(frame)
		dc.SetRGBA(0, 0, 0, 0.55)
		dc.DrawRectangle(0, 0, float64(dc.Width()), hudHeight)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawString(hud, 6, hudHeight-5)
		frame = dc.Image()
	}

	return imageToBase64PNG(frame)
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
