package escape_test

import (
	"fmt"

	"github.com/autocorr/gadex/core"
	"github.com/autocorr/gadex/escape"
)

// ExampleBeta evaluates the escape probability of a moderately thick line
// in a uniform sphere.
func ExampleBeta() {
	b, err := escape.Beta(1.0, core.Sphere)
	if err != nil {
		panic(err)
	}
	fmt.Printf("beta(1.0, sphere) = %.3f\n", b)
	// Output:
	// beta(1.0, sphere) = 0.707
}
