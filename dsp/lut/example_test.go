package lut_test

import (
	"fmt"

	"github.com/cwbudde/algo-spwm/dsp/lut"
)

func ExampleEncode() {
	data, err := lut.Encode([]int{7200, 14400}, lut.Uint16)
	if err != nil {
		panic(err)
	}

	fmt.Printf("% x\n", data)

	_, err = lut.Encode([]int{0, 200}, lut.Int8)
	fmt.Println(err)

	// Output:
	// 20 1c 40 38
	// lut: entry 1 = 200 does not fit int8 [-128, 127]
}
