package integrate_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spwm/dsp/integrate"
)

func ExampleAdaptive() {
	res, err := integrate.Adaptive(math.Sin, 0, math.Pi)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.10f\n", res.Value)

	// Output:
	// 2.0000000000
}
