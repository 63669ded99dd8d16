package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skeleton-workbench/internal/models"
)

type imageLoader struct {
	decoders      []Decoder
	logger        Logger
	timingTracker TimingTracker
}

func newImageLoader(logger Logger, timingTracker TimingTracker, decoders []Decoder) *imageLoader {
	return &imageLoader{
		decoders:      decoders,
		logger:        logger,
		timingTracker: timingTracker,
	}
}

func (l *imageLoader) LoadFromPath(path string) (*models.Image, error) {
	ctx := l.timingTracker.StartTiming("load_from_path")
	defer l.timingTracker.EndTiming(ctx)

	l.logger.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path": path,
	})

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img, err := l.LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	img.Path = path
	return img, nil
}

// LoadFromBytes tries each decoder in order and returns the first success.
func (l *imageLoader) LoadFromBytes(data []byte, ext string) (*models.Image, error) {
	ctx := l.timingTracker.StartTiming("load_from_bytes")
	defer l.timingTracker.EndTiming(ctx)

	if len(l.decoders) == 0 {
		return nil, fmt.Errorf("no image decoders configured")
	}

	var errs []error
	for _, decoder := range l.decoders {
		img, err := decoder.Decode(data)
		if err != nil {
			l.logger.Warning("ImageLoader", "decoder failed", map[string]interface{}{
				"decoder": decoder.Name(),
				"error":   err.Error(),
			})
			errs = append(errs, err)
			continue
		}

		l.logger.Info("ImageLoader", "image loaded successfully", map[string]interface{}{
			"width":    img.Width,
			"height":   img.Height,
			"channels": img.Channels,
			"format":   strings.TrimPrefix(strings.ToLower(ext), "."),
			"decoder":  decoder.Name(),
		})
		return img, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, errors.Join(errs...))
}
