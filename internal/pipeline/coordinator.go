package pipeline

import (
	"fmt"
	"sync"

	"skeleton-workbench/internal/algorithms"
	"skeleton-workbench/internal/algorithms/descriptor"
	"skeleton-workbench/internal/debug/timing"
	"skeleton-workbench/internal/logger"
	"skeleton-workbench/internal/models"
	"skeleton-workbench/internal/processing/histogram"
	"skeleton-workbench/internal/processing/minutiae"
	"skeleton-workbench/internal/processing/skeleton"
)

// Config wires a Coordinator. Decoders and Encoders are tried in order and
// default to the standard library codec; Uploader defaults to a
// MemoryUploader.
type Config struct {
	Logger        Logger
	TimingTracker TimingTracker
	Decoders      []Decoder
	Encoders      []Encoder
	Uploader      Uploader
}

// Coordinator holds one workbench session: the current image, its histogram
// and the algorithm descriptors derived from them.
type Coordinator struct {
	mu               sync.RWMutex
	image            *models.Image
	histogram        *histogram.Histogram
	histogramStale   bool
	algorithmManager *algorithms.Manager
	loader           *imageLoader
	saver            *imageSaver
	uploader         Uploader
	logger           Logger
	timingTracker    TimingTracker
}

func NewCoordinator(cfg Config) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.TimingTracker == nil {
		cfg.TimingTracker = timing.NewTracker(cfg.Logger)
	}
	if cfg.Decoders == nil {
		cfg.Decoders = []Decoder{NewStdCodec()}
	}
	if cfg.Encoders == nil {
		cfg.Encoders = []Encoder{NewStdCodec()}
	}
	uploader := cfg.Uploader
	if uploader == nil {
		uploader = NewMemoryUploader()
	}

	return &Coordinator{
		histogram:        histogram.New(),
		histogramStale:   true,
		algorithmManager: algorithms.NewManager(),
		loader:           newImageLoader(cfg.Logger, cfg.TimingTracker, cfg.Decoders),
		saver:            newImageSaver(cfg.Logger, cfg.TimingTracker, cfg.Encoders),
		uploader:         uploader,
		logger:           cfg.Logger,
		timingTracker:    cfg.TimingTracker,
	}
}

func (c *Coordinator) Algorithms() *algorithms.Manager {
	return c.algorithmManager
}

func (c *Coordinator) LoadImage(path string) (*models.Image, error) {
	img, err := c.loader.LoadFromPath(path)
	if err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"path": path,
		})
		return nil, err
	}

	if err := c.SetImage(img); err != nil {
		return nil, err
	}
	return img, nil
}

// SetImage replaces the session image; the coordinator owns it afterwards.
// An invalid image is rejected and the previous one kept.
func (c *Coordinator) SetImage(img *models.Image) error {
	if img == nil {
		return ErrNoImage
	}
	if err := img.Validate(); err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"path": img.Path,
		})
		return fmt.Errorf("set image: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.image = img
	c.histogramStale = true
	return nil
}

// Image returns the session image, or nil.
func (c *Coordinator) Image() *models.Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.image
}

func (c *Coordinator) SaveImage(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.image == nil {
		return ErrNoImage
	}
	return c.saver.SaveToPath(path, c.image)
}

// Histogram returns the histogram of the current image, recomputing it if
// the image changed since the last call.
func (c *Coordinator) Histogram() (*histogram.Histogram, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refreshHistogramLocked(); err != nil {
		return nil, err
	}
	return c.histogram, nil
}

func (c *Coordinator) refreshHistogramLocked() error {
	if c.image == nil {
		return ErrNoImage
	}
	if !c.histogramStale {
		return nil
	}

	ctx := c.timingTracker.StartTiming("histogram")
	c.histogram.Clear()
	c.histogram.Set(c.image.Pixels, c.image.Channels)
	c.timingTracker.EndTiming(ctx)

	c.histogramStale = false
	c.logger.Debug("Coordinator", "histogram refreshed", map[string]interface{}{
		"samples": c.histogram.SampleCount(),
	})
	return nil
}

// Prepare derives the descriptor of a histogram- or image-driven algorithm
// from the current image. Algorithms driven by user parameters only are
// left unchanged.
func (c *Coordinator) Prepare(name string) error {
	alg, err := c.algorithmManager.GetAlgorithm(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := c.timingTracker.StartTiming("prepare")
	defer c.timingTracker.EndTiming(ctx)

	switch p := alg.(type) {
	case algorithms.HistogramPreparer:
		if err := c.refreshHistogramLocked(); err != nil {
			return err
		}
		p.PrepareFromHistogram(c.histogram)
	case algorithms.ImagePreparer:
		if c.image == nil {
			return ErrNoImage
		}
		if err := p.PrepareFromImage(c.image); err != nil {
			c.logger.Error("Coordinator", err, map[string]interface{}{
				"algorithm": name,
			})
			return fmt.Errorf("prepare %s: %w", name, err)
		}
	default:
		return nil
	}

	c.logger.Debug("Coordinator", "descriptor prepared", map[string]interface{}{
		"algorithm": name,
	})
	return nil
}

// LoadKernel loads a kernel file into an algorithm that accepts one. On
// failure the previous kernel stays in place.
func (c *Coordinator) LoadKernel(name, path string) error {
	alg, err := c.algorithmManager.GetAlgorithm(name)
	if err != nil {
		return err
	}

	kp, ok := alg.(algorithms.KernelPreparer)
	if !ok {
		return fmt.Errorf("%w: %s cannot load kernels", ErrAlgorithmNotCapable, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := kp.PrepareFromFile(path); err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"algorithm": name,
			"path":      path,
		})
		return err
	}

	c.logger.Info("Coordinator", "kernel loaded", map[string]interface{}{
		"algorithm": name,
		"path":      path,
	})
	return nil
}

// Submit uploads the full descriptor of the named algorithm and returns the
// uploaded bytes.
func (c *Coordinator) Submit(name string) ([]byte, error) {
	return c.upload(name, "submit", algorithms.Algorithm.Submit)
}

// ContinuousSubmit uploads the per-frame part of the descriptor. An empty
// part is not uploaded.
func (c *Coordinator) ContinuousSubmit(name string) ([]byte, error) {
	return c.upload(name, "continuous_submit", algorithms.Algorithm.ContinuousSubmit)
}

func (c *Coordinator) upload(name, operation string, serialize func(algorithms.Algorithm) []byte) ([]byte, error) {
	alg, err := c.algorithmManager.GetAlgorithm(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data := serialize(alg)
	if len(data) > descriptor.MaxSize {
		err := fmt.Errorf("%w: %s %s is %d bytes, limit %d", ErrDescriptorTooLarge, name, operation, len(data), descriptor.MaxSize)
		c.logger.Error("Coordinator", err, nil)
		return nil, err
	}
	if len(data) == 0 {
		return data, nil
	}

	if err := c.uploader.Upload(0, data); err != nil {
		return nil, fmt.Errorf("%s %s: %w", name, operation, err)
	}

	c.logger.Debug("Coordinator", "descriptor uploaded", map[string]interface{}{
		"algorithm": name,
		"operation": operation,
		"bytes":     len(data),
	})
	return data, nil
}

// Skeletonize thins the current image in place.
func (c *Coordinator) Skeletonize(variant skeleton.Variant) (skeleton.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.image == nil {
		return skeleton.Result{}, ErrNoImage
	}

	ctx := c.timingTracker.StartTiming("skeletonize")
	result, err := skeleton.Skeletonize(c.image, variant)
	c.timingTracker.EndTiming(ctx)
	if err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"variant": variant.String(),
		})
		return skeleton.Result{}, err
	}

	c.histogramStale = true
	c.logger.Info("Coordinator", "skeletonization completed", map[string]interface{}{
		"variant":    result.Variant.String(),
		"passes":     result.Passes,
		"foreground": result.Foreground,
		"skeleton":   result.Skeleton,
	})
	return result, nil
}

// ClassifyMinutiae marks the minutiae of the current image in place and,
// when reportPath is not empty, writes the report there.
func (c *Coordinator) ClassifyMinutiae(reportPath string) (minutiae.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.image == nil {
		return minutiae.Report{}, ErrNoImage
	}

	ctx := c.timingTracker.StartTiming("minutiae")
	report, err := minutiae.Classify(c.image)
	c.timingTracker.EndTiming(ctx)
	if err != nil {
		c.logger.Error("Coordinator", err, nil)
		return minutiae.Report{}, err
	}
	c.histogramStale = true

	fields := map[string]interface{}{"total": report.Total()}
	for _, class := range minutiae.Classes() {
		fields[class.Label()] = report.Count(class)
	}
	c.logger.Info("Coordinator", "minutiae classified", fields)

	if reportPath == "" {
		return report, nil
	}
	if err := report.Save(reportPath); err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"path": reportPath,
		})
		return report, err
	}
	return report, nil
}
