package core

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"image-resolution-scaler/internal/resample"
)

// fakeCodec serves a fixed in-memory image and records saves.
type fakeCodec struct {
	img     *image.RGBA
	loadErr error
	saveErr error

	savedPaths []string
	savedDims  []Dimensions
}

func (f *fakeCodec) Load(path string) (*image.RGBA, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.img, nil
}

func (f *fakeCodec) Save(img *image.RGBA, path string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedPaths = append(f.savedPaths, path)
	f.savedDims = append(f.savedDims, Dimensions{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	})
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestSession(t *testing.T, w, h int, cfg SessionConfig) (*Session, *fakeCodec) {
	t.Helper()
	pix := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	codec := &fakeCodec{img: pix}
	session := NewSession(codec, quietLogger(), cfg)
	t.Cleanup(session.Close)
	return session, codec
}

func TestSession_GuardsBeforeLoad(t *testing.T) {
	session, _ := newTestSession(t, 8, 8, SessionConfig{Method: resample.Bicubic})

	require.ErrorIs(t, session.Increase(), ErrNoImageLoaded)
	require.ErrorIs(t, session.Decrease(), ErrNoImageLoaded)
	require.ErrorIs(t, session.Reset(), ErrNoImageLoaded)
	require.ErrorIs(t, session.Save("out.png"), ErrNoImageLoaded)

	_, _, err := session.RenderNow()
	require.ErrorIs(t, err, ErrNoImageLoaded)
	_, err = session.CurrentSizeReport()
	require.ErrorIs(t, err, ErrNoImageLoaded)

	require.Nil(t, session.CurrentRendered())
	require.False(t, session.HasImage())
	require.Empty(t, session.ActiveMethodLabel())
}

func TestSession_LoadResetsToNaturalScale(t *testing.T) {
	session, _ := newTestSession(t, 200, 100, SessionConfig{Method: resample.Bicubic})

	require.NoError(t, session.Load("test.png"))
	require.True(t, session.HasImage())
	require.Equal(t, DefaultTick, session.Tick())

	report, err := session.CurrentSizeReport()
	require.NoError(t, err)
	require.Equal(t, Dimensions{Width: 200, Height: 100}, report.Original)
	require.Equal(t, Dimensions{Width: 200, Height: 100}, report.Scaled)
	require.False(t, report.IsUpscaled)

	rendered := session.CurrentRendered()
	require.NotNil(t, rendered)
	require.Equal(t, 200, rendered.Width)
	require.Equal(t, 100, rendered.Height)

	// stepping around then reloading starts over at 1.00x
	require.NoError(t, session.Increase())
	require.NoError(t, session.Load("test.png"))
	require.Equal(t, DefaultTick, session.Tick())
}

func TestSession_LoadFailureKeepsState(t *testing.T) {
	session, codec := newTestSession(t, 40, 40, SessionConfig{Method: resample.Bicubic})
	require.NoError(t, session.Load("first.png"))
	require.NoError(t, session.Increase())

	codec.loadErr = fmt.Errorf("decode: %w", ErrInvalidImage)
	err := session.Load("broken.png")
	require.ErrorIs(t, err, ErrInvalidImage)

	// previous image and scale untouched
	require.True(t, session.HasImage())
	require.Equal(t, DefaultTick+1, session.Tick())
}

func TestSession_StepReporting(t *testing.T) {
	session, _ := newTestSession(t, 100, 100, SessionConfig{Method: resample.Bicubic})
	require.NoError(t, session.Load("test.png"))

	require.NoError(t, session.Increase())
	report, err := session.CurrentSizeReport()
	require.NoError(t, err)
	require.Equal(t, 1.05, report.Factor)
	require.True(t, report.IsUpscaled)
	require.Equal(t, "Bicubic", session.ActiveMethodLabel())

	require.NoError(t, session.Reset())
	require.Empty(t, session.ActiveMethodLabel())
	require.False(t, session.IsAtMinScale())
	require.False(t, session.IsAtMaxScale())

	for i := 0; i < 100; i++ {
		require.NoError(t, session.Increase())
	}
	require.True(t, session.IsAtMaxScale())
	require.Equal(t, MaxTick, session.Tick())
}

func TestSession_RenderNowMatchesTick(t *testing.T) {
	session, _ := newTestSession(t, 60, 40, SessionConfig{Method: resample.Nearest})
	require.NoError(t, session.Load("test.png"))

	require.NoError(t, session.Increase()) // 1.05x
	rendered, report, err := session.RenderNow()
	require.NoError(t, err)
	require.Equal(t, 63, rendered.Width)
	require.Equal(t, 42, rendered.Height)
	require.Equal(t, report.Scaled, Dimensions{Width: 63, Height: 42})
}

func TestSession_FailedRenderKeepsPreviousOutput(t *testing.T) {
	session, _ := newTestSession(t, 100, 100, SessionConfig{
		Method:          resample.Nearest,
		MaxOutputPixels: 20000, // enough for 1.00x, not for 1.50x
		RenderDebounce:  time.Hour,
	})
	require.NoError(t, session.Load("test.png"))
	before := session.CurrentRendered()

	for i := 0; i < 10; i++ {
		require.NoError(t, session.Increase())
	}
	_, _, err := session.RenderNow()
	require.ErrorIs(t, err, ErrDimensionOverflow)
	require.Same(t, before, session.CurrentRendered())
}

func TestSession_SetMethodValidation(t *testing.T) {
	session, _ := newTestSession(t, 10, 10, SessionConfig{Method: resample.Bicubic})
	require.Error(t, session.SetMethod(resample.Method(42)))
	require.NoError(t, session.SetMethod(resample.Lanczos))
	require.Equal(t, resample.Lanczos, session.Method())
}

func TestSession_SaveHandsRenderedBufferToCodec(t *testing.T) {
	session, codec := newTestSession(t, 80, 40, SessionConfig{Method: resample.Nearest})
	require.NoError(t, session.Load("test.png"))
	require.NoError(t, session.Increase())
	_, _, err := session.RenderNow()
	require.NoError(t, err)

	require.NoError(t, session.Save("scaled.png"))
	require.Equal(t, []string{"scaled.png"}, codec.savedPaths)
	require.Equal(t, Dimensions{Width: 84, Height: 42}, codec.savedDims[0])
}

func TestSession_SaveFailureLeavesStateUntouched(t *testing.T) {
	session, codec := newTestSession(t, 20, 20, SessionConfig{Method: resample.Bicubic})
	require.NoError(t, session.Load("test.png"))
	rendered := session.CurrentRendered()

	codec.saveErr = fmt.Errorf("write: %w", ErrEncodeFailure)
	err := session.Save("out.png")
	require.ErrorIs(t, err, ErrEncodeFailure)
	require.Same(t, rendered, session.CurrentRendered())
	require.Equal(t, DefaultTick, session.Tick())
}

func TestSession_ViewportAffectsOnlyDisplayed(t *testing.T) {
	session, _ := newTestSession(t, 400, 200, SessionConfig{Method: resample.Bicubic})
	require.NoError(t, session.Load("test.png"))

	session.SetViewport(&Dimensions{Width: 100, Height: 100})
	report, err := session.CurrentSizeReport()
	require.NoError(t, err)
	require.Equal(t, Dimensions{Width: 400, Height: 200}, report.Scaled)
	require.Equal(t, Dimensions{Width: 100, Height: 50}, report.Displayed)

	session.SetViewport(nil)
	report, err = session.CurrentSizeReport()
	require.NoError(t, err)
	require.Equal(t, report.Scaled, report.Displayed)
}

func TestSession_AsyncRenderLastRequestWins(t *testing.T) {
	session, _ := newTestSession(t, 64, 64, SessionConfig{Method: resample.Nearest})

	results := make(chan SizeReport, 16)
	session.SetCallbacks(func(_ *RenderedImage, report SizeReport) {
		results <- report
	}, func(err error) {
		t.Errorf("unexpected render error: %v", err)
	})

	require.NoError(t, session.Load("test.png"))
	require.NoError(t, session.Increase()) // tick 21
	require.NoError(t, session.Increase()) // tick 22, supersedes 21

	deadline := time.After(5 * time.Second)
	wantFactor := TickFactor(22)
	for {
		select {
		case report := <-results:
			if report.Factor == wantFactor {
				require.Equal(t, Dimensions{Width: 70, Height: 70}, report.Scaled)
				rendered := session.CurrentRendered()
				require.Equal(t, 70, rendered.Width)
				return
			}
			// an earlier render may have been published before it was
			// superseded; it must never arrive after the newer one
		case <-deadline:
			t.Fatal("timed out waiting for the final render")
		}
	}
}

func TestSession_DebounceCollapsesRapidSteps(t *testing.T) {
	session, _ := newTestSession(t, 32, 32, SessionConfig{
		Method:         resample.Nearest,
		RenderDebounce: 20 * time.Millisecond,
	})

	var published []float64
	done := make(chan struct{}, 8)
	session.SetCallbacks(func(_ *RenderedImage, report SizeReport) {
		published = append(published, report.Factor)
		done <- struct{}{}
	}, nil)

	require.NoError(t, session.Load("test.png"))
	for i := 0; i < 5; i++ {
		require.NoError(t, session.Increase())
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("debounced render never fired")
	}
	require.Equal(t, []float64{TickFactor(25)}, published)
}

func TestSession_DebouncedStepsNeverPublishStale(t *testing.T) {
	session, _ := newTestSession(t, 300, 300, SessionConfig{
		Method:         resample.Lanczos,
		RenderDebounce: 20 * time.Millisecond,
	})
	require.NoError(t, session.Load("test.png"))

	type publication struct {
		rendered *RenderedImage
		report   SizeReport
	}
	var mu sync.Mutex
	var published []publication
	session.SetCallbacks(func(rendered *RenderedImage, report SizeReport) {
		mu.Lock()
		published = append(published, publication{rendered, report})
		mu.Unlock()
	}, func(err error) {
		t.Errorf("unexpected render error: %v", err)
	})

	// Step while renders for earlier ticks are still in flight; each step
	// lands inside a fresh debounce window.
	const steps = 10
	for i := 0; i < steps; i++ {
		require.NoError(t, session.Increase())
		time.Sleep(5 * time.Millisecond)
	}

	deadline := time.Now().Add(10 * time.Second)
	for {
		if rendered := session.CurrentRendered(); rendered != nil && rendered.Tick == DefaultTick+steps {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("render never settled at the final tick")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Every published payload must be internally consistent: the report
	// always describes the buffer it arrived with, never a newer tick.
	mu.Lock()
	defer mu.Unlock()
	for _, p := range published {
		want := Dimensions{
			Width:  scaleDim(300, p.rendered.Tick),
			Height: scaleDim(300, p.rendered.Tick),
		}
		require.Equal(t, want.Width, p.rendered.Width)
		require.Equal(t, want, p.report.Scaled)
		require.Equal(t, TickFactor(p.rendered.Tick), p.report.Factor)
	}
}

func TestSession_LoadCommitsMethodAtomically(t *testing.T) {
	session, _ := newTestSession(t, 24, 24, SessionConfig{Method: resample.Bilinear})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			method := resample.Nearest
			if i%2 == 0 {
				method = resample.Bicubic
			}
			_ = session.SetMethod(method)
		}
	}()
	for i := 0; i < 50; i++ {
		require.NoError(t, session.Load("test.png"))
	}
	<-done

	// The rendered buffer must converge on the session's method: Load
	// renders under the same lock that commits, and SetMethod after a
	// commit schedules its own re-render.
	deadline := time.Now().Add(5 * time.Second)
	for {
		rendered := session.CurrentRendered()
		if rendered != nil && rendered.Method == session.Method() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("rendered with %v while session method is %v",
				rendered.Method, session.Method())
		}
		time.Sleep(2 * time.Millisecond)
	}
}
