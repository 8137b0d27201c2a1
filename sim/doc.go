// Package sim provides the Monte Carlo kernels for PushTASEP-family particle
// systems.
//
// # Reading Guide
//
// Start with these files:
//   - push.go: multilayer PushTASEP on a finite lattice (row and column cascades)
//   - continuous.go: continuous-space TASEP with a source at the origin
//   - run.go: the stepping loop shared by both processes
//
// # Clocks
//
// Lattice sites keep absolute deadlines in a ClockQueue (clock_queue.go); the
// site with the earliest deadline rings next, lowest index first on ties.
// Continuous space runs a single race over the total rate instead, with the
// winner picked from a rate-augmented treap (particles.go).
//
// # Randomness
//
// All draws come from a PartitionedRNG (rng.go). Each concern reads its own
// named stream, so a fixed SimulationKey reproduces a run exactly.
//
// # Other models
//
// sixvertex.go samples the dynamic stochastic six-vertex model in raster
// order from a pure per-vertex transition.
package sim
