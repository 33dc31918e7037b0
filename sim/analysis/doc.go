// Package analysis derives distributions from cluster logs and simulator output:
// scaling event counts and gaps, runtime and arrival fits, attempt interrupts,
// and single-job timelines. Statistics follow numpy conventions (population
// standard deviation, histogram densities over [min, max]).
package analysis
