package transform_test

import (
	"fmt"

	"github.com/cwbudde/algo-windowing/dsp/transform"
)

func ExampleTransform_Forward() {
	tr := transform.New()
	tr.SetSize(8)
	tr.SetSampleRate(8000)
	tr.SetNorm(transform.NormLinear)

	if err := tr.Prepare(); err != nil {
		fmt.Println(err)
		return
	}

	for i := 0; i < 8; i++ {
		tr.Set(i, 1)
	}

	if err := tr.Forward(); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("bins=%d df=%.0f dc=%.1f\n", tr.Bins(), tr.Frequencies()[1], real(tr.At(0)))
	// Output: bins=4 df=1000 dc=1.0
}

func ExampleTransform_Log() {
	tr := transform.New()
	tr.SetType(transform.Log)
	tr.SetSize(1024)
	tr.SetSampleRate(48000)
	tr.SetNorm(transform.NormLinear)

	if err := tr.Prepare(); err != nil {
		fmt.Println(err)
		return
	}

	for i := 0; i < 1024; i++ {
		if i == 511 {
			tr.Add(1)
		} else {
			tr.Add(0)
		}
	}

	if err := tr.Log(); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("first=%.4f Hz |X|=%.3f\n", tr.Frequencies()[0], real(tr.At(0)))
	// Output: first=46.8750 Hz |X|=1.000
}
