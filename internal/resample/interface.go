// Resampling kernel system using a package-level registry
package resample

import (
	"fmt"
	"image"
)

// Method identifies one of the supported interpolation methods.
type Method int

const (
	Nearest Method = iota
	Bilinear
	Bicubic
	Lanczos
)

func (m Method) String() string {
	switch m {
	case Nearest:
		return "Nearest"
	case Bilinear:
		return "Bilinear"
	case Bicubic:
		return "Bicubic"
	case Lanczos:
		return "Lanczos"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves a method from its display name.
func ParseMethod(name string) (Method, error) {
	for _, m := range Methods() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation method: %q", name)
}

// Methods returns all supported methods in display order.
func Methods() []Method {
	return []Method{Nearest, Bilinear, Bicubic, Lanczos}
}

// Kernel defines the interface for resampling kernels. Implementations must
// be deterministic, preserve the RGBA8 channel layout, and clamp interpolated
// channel values to [0, 255].
type Kernel interface {
	Resample(src *image.RGBA, dstW, dstH int) *image.RGBA
	Name() string
	Description() string
}

var kernels = make(map[Method]Kernel)

func register(method Method, kernel Kernel) {
	kernels[method] = kernel
}

// Get returns the kernel registered for the given method.
func Get(method Method) (Kernel, bool) {
	kernel, exists := kernels[method]
	return kernel, exists
}

// Resample dispatches to the kernel registered for the given method.
func Resample(method Method, src *image.RGBA, dstW, dstH int) (*image.RGBA, error) {
	kernel, exists := kernels[method]
	if !exists {
		return nil, fmt.Errorf("no kernel registered for method: %s", method)
	}
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	if dstW < 1 || dstH < 1 {
		return nil, fmt.Errorf("invalid target dimensions: %dx%d", dstW, dstH)
	}
	return kernel.Resample(src, dstW, dstH), nil
}

func init() {
	register(Nearest, &nearestKernel{})
	register(Bilinear, &bilinearKernel{})
	register(Bicubic, &bicubicKernel{})
	register(Lanczos, &lanczosKernel{})
}
