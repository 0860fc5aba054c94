package imageprocessor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decode support
)

// ErrNotEncodable: the format can be decoded but imaging cannot write it (webp).
var ErrNotEncodable = errors.New("image format cannot be encoded")

// Processor handles image processing operations
type Processor struct {
	quality      int // JPEG quality (1-100)
	maxDimension int
}

// NewProcessor creates a new image processor
func NewProcessor(quality, maxDimension int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85 // Default quality
	}
	if maxDimension <= 0 {
		maxDimension = 1920
	}
	return &Processor{
		quality:      quality,
		maxDimension: maxDimension,
	}
}

func (p *Processor) Quality() int { return p.quality }

// CanEncode reports whether imaging can write files with this extension.
func CanEncode(path string) bool {
	_, err := imaging.FormatFromFilename(path)
	return err == nil
}

// Open decodes an image file, honouring EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Flatten composes img over an opaque white background.
func Flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// Fit scales img down to fit in a size×size box with Lanczos, keeping aspect ratio.
// Smaller images are returned unchanged.
func Fit(img image.Image, size int) image.Image {
	return imaging.Fit(img, size, size, imaging.Lanczos)
}

// Normalize flattens transparency onto white and, when the longest side exceeds
// the max dimension, downscales it. It returns the path of the normalized file:
// formats that can only be decoded (webp) are re-encoded as <base>.jpg and the
// original is removed. Animated GIFs keep every frame and their delays.
func (p *Processor) Normalize(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return path, p.normalizeGIF(path)
	}

	img, err := Open(path)
	if err != nil {
		return path, err
	}

	out := Flatten(img)
	b := out.Bounds()
	if b.Dx() > p.maxDimension || b.Dy() > p.maxDimension {
		out = Fit(out, p.maxDimension)
	}

	if CanEncode(path) {
		return path, p.save(out, path)
	}

	dst := strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
	if err := p.save(out, dst); err != nil {
		return path, err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return dst, fmt.Errorf("failed to remove original image: %w", err)
	}
	return dst, nil
}

// normalizeGIF composes each frame over a white canvas, downscales the composite
// and quantizes it back to the opaque colours seen so far.
func (p *Processor) normalizeGIF(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	g, err := gif.DecodeAll(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if len(g.Image) == 0 {
		return fmt.Errorf("failed to decode image: gif has no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		r := image.Rectangle{}
		for _, frame := range g.Image {
			r = r.Union(frame.Bounds())
		}
		w, h = r.Max.X, r.Max.Y
	}
	tw, th := fitSize(w, h, p.maxDimension)

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	// всё, что уже видно на холсте, должно остаться в палитре кадра
	pal := color.Palette{color.White}
	frames := make([]*image.Paletted, len(g.Image))
	for i, frame := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(canvas.Bounds())
			copy(previous.Pix, canvas.Pix)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		var composed image.Image = canvas
		if tw != w || th != h {
			composed = imaging.Resize(canvas, tw, th, imaging.Lanczos)
		}
		pal = mergePalette(pal, frame.Palette)
		out := image.NewPaletted(image.Rect(0, 0, tw, th), append(color.Palette(nil), pal...))
		draw.Draw(out, out.Bounds(), composed, composed.Bounds().Min, draw.Src)
		frames[i] = out

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.White, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	g.Image = frames
	g.Disposal = make([]byte, len(frames))
	for i := range g.Disposal {
		g.Disposal[i] = gif.DisposalNone
	}
	g.Config = image.Config{Width: tw, Height: th}
	g.BackgroundIndex = 0

	return replaceFile(path, func(dst io.Writer) error {
		return gif.EncodeAll(dst, g)
	})
}

// fitSize is the size imaging.Fit would produce for a w×h image in a limit×limit box.
func fitSize(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	ratio := float64(w) / float64(h)
	if ratio > 1 {
		return limit, clampDim(int(float64(limit)/ratio + 0.5))
	}
	return clampDim(int(float64(limit)*ratio + 0.5)), limit
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// mergePalette adds the opaque colours of src to dst, up to 256 entries.
func mergePalette(dst, src color.Palette) color.Palette {
	for _, c := range src {
		if len(dst) == 256 {
			break
		}
		if _, _, _, a := c.RGBA(); a != 0xffff {
			continue
		}
		if !hasColor(dst, c) {
			dst = append(dst, c)
		}
	}
	return dst
}

func hasColor(pal color.Palette, c color.Color) bool {
	r, g, b, _ := c.RGBA()
	for _, p := range pal {
		pr, pg, pb, _ := p.RGBA()
		if pr == r && pg == g && pb == b {
			return true
		}
	}
	return false
}

// Thumbnail writes a size-bounded copy of src to dst.
func (p *Processor) Thumbnail(src, dst string, size int) error {
	img, err := Open(src)
	if err != nil {
		return err
	}
	return p.save(Fit(Flatten(img), size), dst)
}

// SaveJPEG fits img in a size×size box and writes it to dst as a JPEG.
func (p *Processor) SaveJPEG(img image.Image, dst string, size int) error {
	if !strings.EqualFold(filepath.Ext(dst), ".jpg") && !strings.EqualFold(filepath.Ext(dst), ".jpeg") {
		return fmt.Errorf("destination must be a .jpg file: %s", dst)
	}
	return p.save(Fit(Flatten(img), size), dst)
}

func (p *Processor) save(img image.Image, dst string) error {
	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotEncodable, filepath.Ext(dst))
	}
	return replaceFile(dst, func(w io.Writer) error {
		return imaging.Encode(w, img, format, imaging.JPEGQuality(p.quality))
	})
}

// replaceFile пишет во временный файл и переименовывает, чтобы не оставить битый оригинал
func replaceFile(dst string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".img-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace image: %w", err)
	}
	return nil
}

// GetImageDimensions returns the dimensions of an image file
func GetImageDimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
