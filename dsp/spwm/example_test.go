package spwm_test

import (
	"fmt"

	"github.com/cwbudde/algo-spwm/dsp/lut"
	"github.com/cwbudde/algo-spwm/dsp/spwm"
)

func ExampleGenerate() {
	p := spwm.Params{ClockFreq: 8000, OutputFreq: 10, SampleCount: 8, Width: lut.Uint8}

	table, err := spwm.Generate(p)
	if err != nil {
		panic(err)
	}

	data, err := table.Encode(p.Width)
	if err != nil {
		panic(err)
	}

	fmt.Println(table.ClockPerSample, table.Ticks)
	fmt.Printf("% x\n", data)

	// Output:
	// 100 [69 95 95 69 31 5 5 31]
	// 45 5f 5f 45 1f 05 05 1f
}

func ExampleResolve() {
	cps, err := spwm.Resolve(72_000_000, 50, 100)
	fmt.Println(cps, err)

	_, err = spwm.Resolve(72_000_000, 1_000_000, 100)
	fmt.Println(err)

	// Output:
	// 14400 <nil>
	// spwm: invalid configuration (clock=7.2e+07 Hz, output=1000000 Hz, samples=100): clock per sample is 0, counter period would be degenerate
}
