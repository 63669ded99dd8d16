package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"skeleton-workbench/internal/models"
)

type imageSaver struct {
	encoders      []Encoder
	logger        Logger
	timingTracker TimingTracker
}

func newImageSaver(logger Logger, timingTracker TimingTracker, encoders []Encoder) *imageSaver {
	return &imageSaver{
		encoders:      encoders,
		logger:        logger,
		timingTracker: timingTracker,
	}
}

// SaveToPath encodes img in the format of path's extension, defaulting to
// PNG when there is none.
func (s *imageSaver) SaveToPath(path string, img *models.Image) error {
	if img == nil {
		return ErrNoImage
	}

	ctx := s.timingTracker.StartTiming("save_to_path")
	defer s.timingTracker.EndTiming(ctx)

	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
		path += ext
	}

	data, err := s.Encode(ext, img)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"path": path,
		})
		return fmt.Errorf("failed to write image: %w", err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":       path,
		"size_bytes": len(data),
	})
	return nil
}

// Encode tries each encoder in order and returns the first success.
func (s *imageSaver) Encode(ext string, img *models.Image) ([]byte, error) {
	var errs []error
	for _, encoder := range s.encoders {
		data, err := encoder.Encode(ext, img)
		if err != nil {
			s.logger.Warning("ImageSaver", "encoder failed", map[string]interface{}{
				"encoder": encoder.Name(),
				"format":  ext,
				"error":   err.Error(),
			})
			errs = append(errs, err)
			continue
		}
		return data, nil
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("no image encoders configured")
	}
	return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, errors.Join(errs...))
}
