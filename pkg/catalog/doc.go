/*
Package catalog holds the static table of signals and their evaluators.

Each entry is a causal signal f(t) with a rational Laplace transform F(p).
A variant implements the closed form once (the time response and the
numerator/denominator of F); the magnitude, phase and complex-plane views are
all derived from that single transfer function by substituting p = jω or
p = σ + jω, which keeps them consistent by construction.

# Singularities

Evaluating at a pole is not an error. The transform views return
domain.Undefined whenever the denominator magnitude is within PoleTolerance
of zero, and callers forward that as a gap.

# Usage

	sig, err := catalog.Lookup("damped_sine")
	if err != nil {
		return err
	}
	params, err := sig.Resolve(domain.Params{"a": 0.2})
	if err != nil {
		return err
	}
	mag := sig.Model().FrequencyMagnitude(3, params)
	if v, ok := mag.Float(); ok {
		fmt.Println(v)
	}
*/
package catalog
