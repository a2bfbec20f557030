/*
Package laplace is an interactive explorer for the Laplace transform of
elementary signals.

It pairs each signal f(t) of a fixed catalog with its transform F(s) and
samples three views of it: the time response, the frequency response on
the imaginary axis (magnitude and phase), and the magnitude surface over the
complex plane. Poles are never hidden: wherever F is undefined the sampled
curves carry a gap instead of a huge finite number.

# Architecture

The library follows a hexagonal layout:

  - pkg/catalog: the static signal catalog and its evaluators.
  - pkg/sampler: turns (signal, params) into a Frame of plottable arrays.
  - pkg/session: server-side parameter state with per-session locking.
  - pkg/adapters: stores (memory, redis) and transports (http, mcp).

# Usage

	explorer := laplace.New()

	frame, err := explorer.Sample(ctx, "damped_sine", domain.Params{"a": 0.8})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(frame.Magnitude.Gaps())

Sessions keep the parameter state on the server, for front-ends that only
send edits:

	state, _ := explorer.StartSession(ctx, "session-123", "sine")
	state, _ = explorer.SetParams(ctx, state.SessionID, domain.Params{"w0": 4})
	frame, _ = explorer.SessionFrame(ctx, state.SessionID)
*/
package laplace
