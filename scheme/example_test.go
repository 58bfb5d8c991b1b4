package scheme_test

import (
	"fmt"

	"github.com/ymelnyk/idpeuler/euler"
	"github.com/ymelnyk/idpeuler/initial"
	"github.com/ymelnyk/idpeuler/offline"
	"github.com/ymelnyk/idpeuler/scheme"
)

// ExampleModule_Advance integrates the Sod shock tube for a short time
// and checks that every nodal state stays inside the invariant domain.
func ExampleModule_Advance() {
	model, _ := euler.NewModel(1, euler.WithGamma(1.4))
	data, _ := offline.NewLine1D(100, 1.0)
	mod, _ := scheme.New(model, data, scheme.WithCFL(0.9))

	f, _ := initial.ByName(model, "contrast")
	U := initial.Interpolate(f, data, 0)

	steps, err := mod.Advance(U, 0.05)

	admissible := true
	for i := range U {
		admissible = admissible && model.Admissible(U[i])
	}

	fmt.Println("error:", err)
	fmt.Println("stepped:", steps > 0)
	fmt.Println("admissible:", admissible)
	// Output:
	// error: <nil>
	// stepped: true
	// admissible: true
}
