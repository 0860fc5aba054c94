package media

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
)

const placeholderSize = 400

type placeholderSpec struct {
	url   string
	label string
	bg    color.Color
	icon  func(dc *gg.Context)
}

// EnsurePlaceholders draws the video and pdf fallback thumbnails if missing.
// URLs are /static/... paths resolved against staticDir.
func EnsurePlaceholders(staticDir, videoURL, pdfURL string) error {
	specs := []placeholderSpec{
		{url: videoURL, label: "VÍDEO", bg: color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}, icon: drawPlay},
		{url: pdfURL, label: "PDF", bg: color.RGBA{R: 0xb9, G: 0x1c, B: 0x1c, A: 0xff}, icon: drawPage},
	}

	parsed, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(parsed, &truetype.Options{Size: 48})

	for _, s := range specs {
		path, ok := StaticPath(staticDir, s.url)
		if !ok {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create placeholder dir: %w", err)
		}

		dc := gg.NewContext(placeholderSize, placeholderSize)
		dc.SetColor(s.bg)
		dc.Clear()

		dc.SetColor(color.White)
		s.icon(dc)

		dc.SetFontFace(face)
		dc.DrawStringAnchored(s.label, placeholderSize/2, placeholderSize*0.78, 0.5, 0.5)

		if err := dc.SavePNG(path); err != nil {
			return fmt.Errorf("write placeholder %s: %w", path, err)
		}
	}
	return nil
}

// StaticPath maps "/static/<rel>" onto staticDir/<rel>.
func StaticPath(staticDir, url string) (string, bool) {
	rel, ok := strings.CutPrefix(url, "/static/")
	if !ok || rel == "" {
		return "", false
	}
	return filepath.Join(staticDir, filepath.FromSlash(rel)), true
}

func drawPlay(dc *gg.Context) {
	cx, cy := float64(placeholderSize)/2, float64(placeholderSize)*0.4
	dc.DrawCircle(cx, cy, 80)
	dc.SetLineWidth(8)
	dc.Stroke()
	dc.MoveTo(cx-28, cy-45)
	dc.LineTo(cx-28, cy+45)
	dc.LineTo(cx+50, cy)
	dc.ClosePath()
	dc.Fill()
}

func drawPage(dc *gg.Context) {
	x, y := float64(placeholderSize)/2-60, float64(placeholderSize)*0.4-80
	dc.DrawRoundedRectangle(x, y, 120, 160, 10)
	dc.Fill()
}
