/*
Package sampler materializes the plottable arrays of a catalog signal.

A Frame holds four views evaluated over fixed grids:

  - Time: f(t) for t in [-1, 10], step 0.05.
  - Magnitude and Phase: |F(jω)| and arg F(jω) for ω in [-10, 10], step 0.05,
    with Undefined entries (poles) kept as gaps.
  - Surface: |F(σ+jω)| for σ, ω in [-5, 5], step 0.2, clamped to SurfaceCeiling.

Sampling is a pure function of (signal, params). Recompute the frame whenever
either changes.
*/
package sampler
