// Package assets manages item photo files: a generated placeholder and a
// directory of normalized photos owned by the application. Only files
// inside the managed directory are ever deleted.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	// register decoders for uploaded photos
	_ "image/gif"
	_ "image/jpeg"
	_ "golang.org/x/image/bmp"
)

// Photos are normalized to this resolution before storage.
const (
	photoWidth  = 300
	photoHeight = 200
)

const placeholderName = "placeholder.png"

// Store owns the images directory and the generated placeholder.
type Store struct {
	ImagesDir    string
	ResourcesDir string
}

func NewStore(imagesDir, resourcesDir string) *Store {
	return &Store{ImagesDir: imagesDir, ResourcesDir: resourcesDir}
}

// PlaceholderPath is the location of the generated placeholder image.
func (s *Store) PlaceholderPath() string {
	return filepath.Join(s.ResourcesDir, placeholderName)
}

// Bootstrap ensures the images directory and the placeholder exist.
// Idempotent; called on startup and on database reinitialization.
func (s *Store) Bootstrap() error {
	if err := os.MkdirAll(s.ImagesDir, 0o755); err != nil {
		return fmt.Errorf("create images dir: %w", err)
	}
	if err := os.MkdirAll(s.ResourcesDir, 0o755); err != nil {
		return fmt.Errorf("create resources dir: %w", err)
	}
	if _, err := os.Stat(s.PlaceholderPath()); err == nil {
		return nil
	}
	return s.writePlaceholder()
}

func (s *Store) writePlaceholder() error {
	img := image.NewRGBA(image.Rect(0, 0, photoWidth, photoHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{245, 245, 245, 255}}, image.Point{}, draw.Src)

	border := color.RGBA{70, 70, 70, 255}
	for i := 0; i < 3; i++ {
		rect := image.Rect(8+i, 8+i, 292-i, 192-i)
		drawRectOutline(img, rect, border)
	}

	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.RGBA{40, 40, 40, 255}},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(95, 100),
	}
	d.DrawString("URBAN GEAR")

	f, err := os.Create(s.PlaceholderPath())
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func drawRectOutline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// SaveImage normalizes an uploaded photo to 300x200 PNG under the images
// directory and returns its path. The caller removes the previous managed
// file once the owning record has been updated, never before.
func (s *Store) SaveImage(r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, photoWidth, photoHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	if err := os.MkdirAll(s.ImagesDir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}
	now := time.Now()
	name := fmt.Sprintf("item_%s%06d.png", now.Format("20060102150405"), now.Nanosecond()/1000)
	out := filepath.Join(s.ImagesDir, name)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		return "", fmt.Errorf("encode photo: %w", err)
	}
	return out, nil
}

// IsManaged reports whether the path points into the images directory.
func (s *Store) IsManaged(path string) bool {
	if path == "" {
		return false
	}
	dir, err := filepath.Abs(s.ImagesDir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return false
	}
	return abs == dir
}

// Remove deletes a managed photo file; paths outside the images directory
// are left untouched.
func (s *Store) Remove(path string) {
	if !s.IsManaged(path) {
		return
	}
	_ = os.Remove(path)
}

// Resolve returns the given path when the file exists, otherwise the
// placeholder.
func (s *Store) Resolve(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return s.PlaceholderPath()
}
