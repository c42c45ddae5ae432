// Package simulation generates the synthetic business dataset the rest of
// the pipeline derives metrics from and exports.
//
// # Data Flow
//
// A Simulator is built from SimulationConfig and draws three batches from a
// single seeded PCG source, always in the same order:
//
//  1. sector assignments  (uniform over the five categories)
//  2. pre-shock revenues  (Normal(500, 150), clamped to >= 100)
//  3. drop factors        (Uniform(0.3, 1.0))
//
// Post-shock revenue is the elementwise product of the second and third
// batches. Keeping the draws batched rather than interleaved per record is
// what makes a seed map to exactly one dataset regardless of how records
// are assembled afterwards.
//
// # Usage
//
//	sim := simulation.NewSimulator(cfg.Simulation, logger)
//	dataset, err := sim.Run(ctx)
//	if err != nil {
//	    return err
//	}
//
// The returned Dataset is treated as immutable: later stages read it, attach
// derived metrics through the analytics package, and export it, but never
// reorder or regenerate records.
//
// # Randomness
//
// There is no process-global seed. Each Run constructs its own
// rand.NewPCG(seed, seed) source and hands it to the gonum distributions,
// so concurrent or repeated runs cannot interfere with each other.
package simulation
