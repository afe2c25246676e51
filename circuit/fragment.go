package circuit

import "github.com/consensys/gnark/frontend"

// Fragment is the lifecycle every sub-circuit in this module implements. The
// circuit type C declares the wires (its exported fields) and adds the
// algebraic constraints over them in Define, which depends only on the circuit
// shape and is run once per compilation. A Fragment instance carries the
// concrete data for one proof attempt:
//
//   - Placeholder returns a shape-only value of C used to compile the circuit.
//     It must not depend on instance data.
//   - Assign fills every declared wire with the instance's field-element
//     values. It fails on data that cannot produce a well-formed witness;
//     data that assigns cleanly but violates the constraints is rejected
//     later, at proving time.
type Fragment[C frontend.Circuit] interface {
	Placeholder() C
	Assign() (C, error)
}
