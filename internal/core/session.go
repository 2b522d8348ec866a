// Session facade owning the scale state and the render lifecycle
package core

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"image-resolution-scaler/internal/resample"
)

// Codec decodes and encodes image files. The engine never touches file
// formats itself; internal/imgio provides the production implementation.
type Codec interface {
	Load(path string) (*image.RGBA, error)
	Save(img *image.RGBA, path string) error
}

// SessionConfig carries the tunable parts of a session.
type SessionConfig struct {
	Method          resample.Method
	MaxOutputPixels int
	RenderDebounce  time.Duration
}

// Session ties the scale state machine, the resize orchestrator and the
// codec together behind one facade. It outlives any number of loads; the UI
// issues commands against it and receives results through callbacks.
//
// Scale and method changes trigger an asynchronous render with a
// single-flight discipline: a newer request supersedes an in-flight one, and
// a superseded render's result is dropped, never published. The SourceImage
// is read-only during render, so superseded renders cannot corrupt state.
type Session struct {
	mu     sync.RWMutex
	logger *logrus.Logger
	codec  Codec

	source   *SourceImage
	scale    ScaleState
	method   resample.Method
	rendered *RenderedImage
	viewport *Dimensions

	maxPixels int
	debounce  time.Duration

	renderTimer    *time.Timer
	cancelInflight context.CancelFunc
	generation     uint64

	onRendered func(*RenderedImage, SizeReport)
	onError    func(error)
}

// NewSession creates a session in the NoImage state.
func NewSession(codec Codec, logger *logrus.Logger, cfg SessionConfig) *Session {
	if logger == nil {
		logger = logrus.New()
	}
	maxPixels := cfg.MaxOutputPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxOutputPixels
	}
	return &Session{
		logger:    logger,
		codec:     codec,
		method:    cfg.Method,
		maxPixels: maxPixels,
		debounce:  cfg.RenderDebounce,
	}
}

// SetCallbacks registers the render-complete and error callbacks used by the
// asynchronous render path. Callbacks are invoked from a worker goroutine;
// UI layers must marshal onto their own thread.
func (s *Session) SetCallbacks(onRendered func(*RenderedImage, SizeReport), onError func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRendered = onRendered
	s.onError = onError
}

// Load decodes the file at path, replaces the SourceImage wholesale, resets
// the scale to 1.00x and renders synchronously so the session is immediately
// presentable. On failure the previous image, scale and rendered output are
// all kept.
func (s *Session) Load(path string) error {
	pix, err := s.codec.Load(path)
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("Image load failed")
		return fmt.Errorf("load %s: %w", path, err)
	}

	source, err := NewSourceImage(pix, path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	// Render and commit under one lock acquisition so the rendered buffer
	// always matches the method a concurrent SetMethod may have just set.
	s.mu.Lock()
	defer s.mu.Unlock()
	rendered, err := Render(source, DefaultTick, s.method, s.maxPixels)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	s.supersedeLocked()
	s.source = source
	s.scale.Load()
	s.rendered = rendered

	s.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  source.Width(),
		"height": source.Height(),
	}).Info("Image loaded")
	return nil
}

// Increase steps the scale up one tick and schedules a render.
func (s *Session) Increase() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.scale.Increase(); err != nil {
		return err
	}
	s.requestRenderLocked()
	return nil
}

// Decrease steps the scale down one tick and schedules a render.
func (s *Session) Decrease() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.scale.Decrease(); err != nil {
		return err
	}
	s.requestRenderLocked()
	return nil
}

// Reset returns the scale to 1.00x and schedules a render.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.scale.Reset(); err != nil {
		return err
	}
	s.requestRenderLocked()
	return nil
}

// SetMethod switches the interpolation method. Valid in any state; with an
// image loaded it schedules a re-render from the original.
func (s *Session) SetMethod(method resample.Method) error {
	if _, exists := resample.Get(method); !exists {
		return fmt.Errorf("set method %s: %w", method, ErrUnsupportedFormat)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if method == s.method {
		return nil
	}
	s.method = method
	if s.scale.Loaded() {
		s.requestRenderLocked()
	}
	return nil
}

// SetViewport records the display bound used for the Displayed field of size
// reports. A nil viewport means no bound. Changing the viewport never
// triggers a render; it only affects reporting.
func (s *Session) SetViewport(viewport *Dimensions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = viewport
}

// RenderNow renders synchronously with the current state, superseding any
// pending asynchronous render, and publishes the result. Intended for
// headless use and tests.
func (s *Session) RenderNow() (*RenderedImage, SizeReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scale.Loaded() {
		return nil, SizeReport{}, ErrNoImageLoaded
	}
	s.supersedeLocked()

	rendered, err := Render(s.source, s.scale.Tick(), s.method, s.maxPixels)
	if err != nil {
		return nil, SizeReport{}, err
	}
	s.rendered = rendered
	return rendered, s.buildReportLocked(), nil
}

// Save hands the current rendered buffer to the codec. The session state is
// unaffected by failure.
func (s *Session) Save(path string) error {
	s.mu.RLock()
	rendered := s.rendered
	s.mu.RUnlock()

	if rendered == nil {
		return fmt.Errorf("save: %w", ErrNoImageLoaded)
	}
	if err := s.codec.Save(rendered.Image, path); err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("Image save failed")
		return fmt.Errorf("save %s: %w", path, err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  rendered.Width,
		"height": rendered.Height,
	}).Info("Image saved")
	return nil
}

// CurrentRendered returns the most recently published render, or nil before
// the first load.
func (s *Session) CurrentRendered() *RenderedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rendered
}

// CurrentSizeReport reports the true scaled dimensions for the current tick,
// even while an asynchronous render is still in flight.
func (s *Session) CurrentSizeReport() (SizeReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.scale.Loaded() {
		return SizeReport{}, ErrNoImageLoaded
	}
	return s.buildReportLocked(), nil
}

func (s *Session) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale.Loaded()
}

func (s *Session) IsAtMinScale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale.AtMin()
}

func (s *Session) IsAtMaxScale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale.AtMax()
}

func (s *Session) Tick() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale.Tick()
}

func (s *Session) Factor() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale.Factor()
}

func (s *Session) Method() resample.Method {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.method
}

// ActiveMethodLabel names the interpolation method when the image is
// upscaled and returns "" otherwise.
func (s *Session) ActiveMethodLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.scale.Loaded() {
		return ""
	}
	return s.buildReportLocked().MethodLabel
}

// Close stops the debounce timer and abandons any in-flight render.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
}

func (s *Session) buildReportLocked() SizeReport {
	original := Dimensions{Width: s.source.Width(), Height: s.source.Height()}
	scaled := Dimensions{
		Width:  scaleDim(original.Width, s.scale.Tick()),
		Height: scaleDim(original.Height, s.scale.Tick()),
	}
	return BuildSizeReport(original, scaled, s.viewport, s.scale.Tick(), s.method)
}

// supersedeLocked invalidates any pending or in-flight asynchronous render.
func (s *Session) supersedeLocked() {
	s.generation++
	if s.renderTimer != nil {
		s.renderTimer.Stop()
		s.renderTimer = nil
	}
	if s.cancelInflight != nil {
		s.cancelInflight()
		s.cancelInflight = nil
	}
}

// requestRenderLocked starts the debounced single-flight render for the
// current state. Rapid successive scale steps collapse into one render.
// The request supersedes first and debounces second: any in-flight render
// for an older tick is invalidated before the timer is armed, so it cannot
// complete inside the debounce window and publish against the new state.
func (s *Session) requestRenderLocked() {
	s.supersedeLocked()
	if s.debounce <= 0 {
		s.startRenderLocked()
		return
	}
	s.renderTimer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.scale.Loaded() {
			return
		}
		s.startRenderLocked()
	})
}

func (s *Session) startRenderLocked() {
	s.generation++
	gen := s.generation
	if s.cancelInflight != nil {
		s.cancelInflight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelInflight = cancel

	source := s.source
	tick := s.scale.Tick()
	method := s.method

	go s.runRender(ctx, gen, source, tick, method)
}

// runRender executes one asynchronous render. The result is published only
// if the request is still the latest; a superseded render is abandoned
// without touching shared state.
func (s *Session) runRender(ctx context.Context, gen uint64, source *SourceImage, tick int, method resample.Method) {
	start := time.Now()
	rendered, err := Render(source, tick, method, s.maxPixels)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	if err != nil {
		onError := s.onError
		s.mu.Unlock()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"tick":   tick,
			"method": method.String(),
		}).Warn("Render failed")
		if onError != nil {
			onError(err)
		}
		return
	}
	s.rendered = rendered
	report := s.buildReportLocked()
	onRendered := s.onRendered
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"tick":     tick,
		"method":   method.String(),
		"width":    rendered.Width,
		"height":   rendered.Height,
		"duration": time.Since(start),
	}).Debug("Render complete")
	if onRendered != nil {
		onRendered(rendered, report)
	}
}
