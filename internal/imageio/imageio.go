// Package imageio writes frames fetched from the render server to disk.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an image file encoding.
type Format int

const (
	None Format = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
)

// JPEGQuality is used when Save re-encodes a frame as JPEG.
const JPEGQuality = 95

// FormatFromExt returns the format for a filename extension, with or
// without the leading dot.
func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "":
		return None, fmt.Errorf("no image extension")
	}
	return None, fmt.Errorf("image extension %q not recognized", ext)
}

// Save writes img to filename in the format its extension names. Missing
// parent directories are created.
func Save(img image.Image, filename string) error {
	f, err := FormatFromExt(filepath.Ext(filename))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(file)
	if err := Write(img, bw, f); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write encodes img to w in format f.
func Write(img image.Image, w io.Writer, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case GIF:
		return gif.Encode(w, img, nil)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("image format %d not valid", f)
}
