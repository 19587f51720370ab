package export

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/san-kum/fractalab/internal/render"
)

// WritePNG encodes a rendered buffer as a PNG file.
func WritePNG(path string, buf render.Buffer, width, height int) error {
	if len(buf) != width*height {
		return fmt.Errorf("buffer length %d does not match %dx%d frame", len(buf), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, buf.RGBA())

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// WritePPM writes a binary P6 netpbm image, handy for piping into other
// tools without an image decoder.
func WritePPM(path string, buf render.Buffer, width, height int) error {
	if len(buf) != width*height {
		return fmt.Errorf("buffer length %d does not match %dx%d frame", len(buf), width, height)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	for _, pix := range buf {
		if _, err := w.Write([]byte{byte(pix >> 16), byte(pix >> 8), byte(pix)}); err != nil {
			return err
		}
	}
	return nil
}
