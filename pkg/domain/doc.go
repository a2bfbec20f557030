/*
Package domain contains the value types shared by every layer of the explorer.

It is kept free of I/O. Evaluation formulas live in package catalog and
sampling in package sampler; domain only defines what flows between them.

# Key Entities

  - SignalDefinition: an immutable catalog entry with its TeX formulas and parameter specs.
  - Params: the current value of every parameter of the active signal.
  - Value: an evaluation result that is either a number or Undefined (a pole).
  - Grid: a fixed 1D sampling domain.
  - State: the persisted snapshot of one explorer session.
*/
package domain
