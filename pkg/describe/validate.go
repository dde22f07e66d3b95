package describe

import (
	"math"
	"slices"

	"github.com/orcalab/speed/pkg/errors"
)

// Validate checks the description's structural invariants:
//
//   - n_total equals the sum of population sizes
//   - every population size is positive
//   - every synapse group has a tag set and vice versa
//   - every connection probability lies in [0, 1]
//   - weight statistics are finite
//   - every synapse group's target names a known population
//   - s_total is consistent with the per-group synapse counts recovered
//     from p_connection and the population sizes
//
// Sources are allowed to reference input populations (Poisson, spike
// generator), which have no n_pop entry, so only targets are resolved
// against n_pop, and the s_total check degrades to a lower bound when
// any group has an input source.
//
// Returns the first violation found, or nil for a valid description.
func (d *Description) Validate() error {
	if d.NTotal < 0 || d.STotal < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative totals: n_total=%d s_total=%d", d.NTotal, d.STotal)
	}

	sum := 0
	for name, n := range d.NPop {
		if n <= 0 {
			return errors.New(errors.ErrCodeEmptyPopulation, "population %s has non-positive size %d", name, n)
		}
		sum += n
	}
	if sum != d.NTotal {
		return errors.New(errors.ErrCodeInvalidInput,
			"n_total=%d does not match population sum %d", d.NTotal, sum)
	}

	for _, name := range sortedKeys(d.SPop) {
		pair := d.SPop[name]
		tags, ok := d.STags[name]
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "synapse group %s has no tags", name)
		}
		if _, ok := d.NPop[pair.Target()]; !ok {
			return errors.New(errors.ErrCodeUnknownGroup,
				"synapse group %s targets unknown population %q", name, pair.Target())
		}
		if tags.PConnection < 0 || tags.PConnection > 1 {
			return errors.New(errors.ErrCodeInvalidInput,
				"synapse group %s: connection probability %g outside [0,1]", name, tags.PConnection)
		}
		if !isFinite(tags.Mean) || !isFinite(tags.Std) {
			return errors.New(errors.ErrCodeInvalidInput,
				"synapse group %s: non-finite weight statistics", name)
		}
	}

	for name := range d.STags {
		if _, ok := d.SPop[name]; !ok {
			return errors.New(errors.ErrCodeInvalidInput, "tags for unknown synapse group %s", name)
		}
	}

	// Cross-check s_total against the counts recoverable from the tags.
	// A group's count is p_connection * |source| * |target|, which is
	// exact only when the source is a declared population: input
	// population sizes are not part of the wire format, so groups with
	// input sources are skipped and the recovered sum is a lower bound.
	recovered := 0
	complete := true
	for _, name := range sortedKeys(d.SPop) {
		pair := d.SPop[name]
		srcN, ok := d.NPop[pair.Source()]
		if !ok {
			complete = false
			continue
		}
		dstN := d.NPop[pair.Target()]
		count := d.STags[name].PConnection * float64(srcN) * float64(dstN)
		recovered += int(math.Round(count))
	}
	if complete && recovered != d.STotal {
		return errors.New(errors.ErrCodeInvalidInput,
			"s_total=%d does not match recovered synapse count %d", d.STotal, recovered)
	}
	if recovered > d.STotal {
		return errors.New(errors.ErrCodeInvalidInput,
			"s_total=%d below recovered synapse count %d", d.STotal, recovered)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sortedKeys returns the map's keys in sorted order for deterministic
// validation errors.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
