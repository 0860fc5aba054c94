package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mural_backend/internal/imageprocessor"
	"mural_backend/internal/logger"
	"mural_backend/internal/media/tools"
	"mural_backend/internal/metrics"
	"mural_backend/internal/transcription"
)

type ProcessorConfig struct {
	ThumbnailSize    int
	PDFDPI           int
	VideoPlaceholder string
	PDFPlaceholder   string
	DefaultLanguage  string
}

type ProcessOptions struct {
	Transcribe bool
	Language   string
}

// Outcome holds the derived artifacts. Every field is optional.
type Outcome struct {
	ThumbnailURL *string
	// ThumbnailFile is set only when a thumbnail was actually written.
	ThumbnailFile string
	Duration      *int
	Transcript    *transcription.Result
}

type Processor struct {
	cfg         ProcessorConfig
	tools       tools.Tools
	images      *imageprocessor.Processor
	transcriber transcription.Transcriber
	placer      *Placer
}

func NewProcessor(cfg ProcessorConfig, t tools.Tools, images *imageprocessor.Processor, transcriber transcription.Transcriber, placer *Placer) *Processor {
	if cfg.ThumbnailSize <= 0 {
		cfg.ThumbnailSize = 400
	}
	if cfg.PDFDPI <= 0 {
		cfg.PDFDPI = 150
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "pt"
	}
	return &Processor{
		cfg:         cfg,
		tools:       t,
		images:      images,
		transcriber: transcriber,
		placer:      placer,
	}
}

// Process runs the category branch. It never fails: each derived artifact
// degrades to its fallback and the cause is logged.
func (p *Processor) Process(ctx context.Context, asset *StoredAsset, cat Category, opts ProcessOptions) Outcome {
	switch cat {
	case Image, GIF:
		return p.processImage(ctx, asset, cat)
	case Video:
		return p.processVideo(ctx, asset)
	case PDF:
		return p.processPDF(ctx, asset)
	case Audio:
		return p.processAudio(ctx, asset, opts)
	case Text:
		return Outcome{}
	}
	panic(fmt.Sprintf("media: unhandled category %q", string(cat)))
}

func (p *Processor) processImage(ctx context.Context, asset *StoredAsset, cat Category) Outcome {
	fallback := Outcome{ThumbnailURL: strPtr(asset.URL)}

	var normalized string
	err := p.step(ctx, cat, "normalize", func() error {
		var err error
		normalized, err = p.images.Normalize(asset.FullPath)
		return err
	})
	if normalized != "" && normalized != asset.FullPath {
		p.reencoded(asset, normalized)
		fallback.ThumbnailURL = strPtr(asset.URL)
	}
	if err != nil {
		metrics.ThumbnailFallbacksTotal.WithLabelValues(string(cat)).Inc()
		return fallback
	}
	if info, statErr := os.Stat(asset.FullPath); statErr == nil {
		asset.Size = info.Size()
	}

	thumbName := "thumb_" + asset.FileName
	if !imageprocessor.CanEncode(thumbName) {
		thumbName = "thumb_" + asset.Base() + ".jpg"
	}
	dst := filepath.Join(p.placer.ThumbnailDir(), thumbName)

	err = p.step(ctx, cat, "thumbnail", func() error {
		return p.images.Thumbnail(asset.FullPath, dst, p.cfg.ThumbnailSize)
	})
	if err != nil {
		metrics.ThumbnailFallbacksTotal.WithLabelValues(string(cat)).Inc()
		return fallback
	}
	return Outcome{ThumbnailURL: strPtr(p.placer.ThumbnailURL(thumbName)), ThumbnailFile: thumbName}
}

// reencoded points asset at the JPEG that replaced the uploaded file.
func (p *Processor) reencoded(asset *StoredAsset, fullPath string) {
	asset.FileName = filepath.Base(fullPath)
	asset.FullPath = fullPath
	asset.URL = p.placer.URL(asset.Folder, asset.FileName)
	asset.Extension = Extension(asset.FileName)
	asset.MimeType = "image/jpeg"
}

func (p *Processor) processVideo(ctx context.Context, asset *StoredAsset) Outcome {
	var out Outcome
	seconds, probed := p.probe(ctx, asset, Video)
	if probed {
		d := int(seconds)
		out.Duration = &d
	}

	thumbName := "thumb_" + asset.Base() + ".jpg"
	err := p.step(ctx, Video, "frame", func() error {
		at := 1.0
		if probed && seconds < 2 {
			at = seconds / 2
		}
		img, err := p.tools.ExtractFrame(ctx, asset.FullPath, at)
		if err != nil && !probed {
			// длительность неизвестна, клип может быть короче секунды
			img, err = p.tools.ExtractFrame(ctx, asset.FullPath, 0)
		}
		if err != nil {
			return err
		}
		return p.images.SaveJPEG(img, filepath.Join(p.placer.ThumbnailDir(), thumbName), p.cfg.ThumbnailSize)
	})
	if err != nil {
		metrics.ThumbnailFallbacksTotal.WithLabelValues(string(Video)).Inc()
		out.ThumbnailURL = strPtr(p.cfg.VideoPlaceholder)
		return out
	}

	out.ThumbnailURL = strPtr(p.placer.ThumbnailURL(thumbName))
	out.ThumbnailFile = thumbName
	return out
}

func (p *Processor) processPDF(ctx context.Context, asset *StoredAsset) Outcome {
	thumbName := "thumb_" + asset.Base() + ".jpg"
	err := p.step(ctx, PDF, "rasterize", func() error {
		pngPath, cleanup, err := p.tools.RenderPDFPage(ctx, asset.FullPath, 1, p.cfg.PDFDPI)
		if err != nil {
			return err
		}
		defer cleanup()

		img, err := imageprocessor.Open(pngPath)
		if err != nil {
			return err
		}
		return p.images.SaveJPEG(img, filepath.Join(p.placer.ThumbnailDir(), thumbName), p.cfg.ThumbnailSize)
	})
	if err != nil {
		metrics.ThumbnailFallbacksTotal.WithLabelValues(string(PDF)).Inc()
		return Outcome{ThumbnailURL: strPtr(p.cfg.PDFPlaceholder)}
	}
	return Outcome{ThumbnailURL: strPtr(p.placer.ThumbnailURL(thumbName)), ThumbnailFile: thumbName}
}

func (p *Processor) processAudio(ctx context.Context, asset *StoredAsset, opts ProcessOptions) Outcome {
	var out Outcome
	if seconds, ok := p.probe(ctx, asset, Audio); ok {
		d := int(seconds)
		out.Duration = &d
	}

	if !opts.Transcribe {
		return out
	}
	if p.transcriber == nil {
		logger.CtxWarn(ctx, "transcription requested but no transcriber configured")
		return out
	}

	lang := opts.Language
	if lang == "" {
		lang = p.cfg.DefaultLanguage
	}

	var res transcription.Result
	err := p.step(ctx, Audio, "transcribe", func() error {
		res = p.transcriber.Transcribe(ctx, asset.FullPath, transcription.Options{
			Language:     lang,
			WithSegments: true,
		})
		if !res.Success {
			return errors.New(res.Error)
		}
		return nil
	})
	if err == nil {
		out.Transcript = &res
	}
	return out
}

func (p *Processor) probe(ctx context.Context, asset *StoredAsset, cat Category) (float64, bool) {
	var seconds float64
	err := p.step(ctx, cat, "probe", func() error {
		var err error
		seconds, err = p.tools.ProbeDuration(ctx, asset.FullPath)
		return err
	})
	return seconds, err == nil
}

// step times fn, records metrics and logs a fallback. Panics become errors.
func (p *Processor) step(ctx context.Context, cat Category, name string, fn func() error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", name, r)
		}
		elapsed := time.Since(start)
		metrics.MediaProcessingDuration.WithLabelValues(string(cat), name).Observe(elapsed.Seconds())
		switch {
		case err == nil:
			logger.MediaLog(string(cat), name, elapsed, nil)
		default:
			logger.CtxWarn(ctx, "media step fell back",
				"category", string(cat),
				"step", name,
				"duration_ms", elapsed.Milliseconds(),
				"error", err.Error(),
			)
		}
	}()
	return fn()
}

func strPtr(s string) *string { return &s }
