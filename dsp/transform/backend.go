package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend selects the FFT implementation used by the Fast transform.
type Backend int

const (
	// BackendAlgoFFT uses github.com/MeKo-Christian/algo-fft plans.
	BackendAlgoFFT Backend = iota
	// BackendGonum uses gonum's dsp/fourier complex FFT.
	BackendGonum
)

func (b Backend) String() string {
	switch b {
	case BackendAlgoFFT:
		return "algo-fft"
	case BackendGonum:
		return "gonum"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend resolves a backend name as printed by Backend.String.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "algo-fft", "algofft", "":
		return BackendAlgoFFT, nil
	case "gonum":
		return BackendGonum, nil
	default:
		return BackendAlgoFFT, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// fftEngine computes unscaled DFTs in both directions.
type fftEngine interface {
	forward(dst, src []complex128) error
	inverse(dst, src []complex128) error
}

func newEngine(b Backend, n int) (fftEngine, error) {
	switch b {
	case BackendGonum:
		return &gonumEngine{fft: fourier.NewCmplxFFT(n)}, nil
	default:
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("transform: failed to create FFT plan: %w", err)
		}

		return &algoEngine{plan: plan, n: float64(n)}, nil
	}
}

type algoEngine struct {
	plan *algofft.Plan[complex128]
	n    float64
}

func (e *algoEngine) forward(dst, src []complex128) error {
	return e.plan.Forward(dst, src)
}

// inverse undoes the 1/N scale applied by algo-fft's Inverse.
func (e *algoEngine) inverse(dst, src []complex128) error {
	if err := e.plan.Inverse(dst, src); err != nil {
		return err
	}

	scale := complex(e.n, 0)
	for i := range dst {
		dst[i] *= scale
	}

	return nil
}

type gonumEngine struct {
	fft *fourier.CmplxFFT
}

func (e *gonumEngine) forward(dst, src []complex128) error {
	e.fft.Coefficients(dst, src)
	return nil
}

func (e *gonumEngine) inverse(dst, src []complex128) error {
	e.fft.Sequence(dst, src)
	return nil
}
