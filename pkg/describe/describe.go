// Package describe extracts portable network descriptions from simulation
// snapshots.
//
// # Overview
//
// A [Description] is the canonical serialization format consumed by the
// downstream hardware compiler. It captures everything the compiler needs
// to place a network on the processor - population sizes, connectivity
// pairs, synaptic tags (sign, connection probability, plasticity, weight
// statistics), and initial parameters - and nothing about simulation
// dynamics.
//
// The format is human-readable JSON designed for round-trip fidelity:
// extract, save, and reload produce identical results.
//
// # Usage
//
//	desc, err := describe.Extract(net, describe.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	path, err := desc.Save("orca_net", "")
package describe

import (
	"maps"

	"github.com/orcalab/speed/pkg/errors"
	"github.com/orcalab/speed/pkg/network"
)

// =============================================================================
// Description - Canonical Serialization Format
// =============================================================================

// Description is the extracted, immutable form of one network snapshot.
// Field names match the wire keys consumed by the hardware compiler.
//
// Built once by [Extract]; never modified afterwards except by wholesale
// replacement through [Load].
type Description struct {
	// NTotal is the total number of neurons across all populations.
	NTotal int `json:"n_total" bson:"n_total"`

	// STotal is the total number of synapses across all synapse groups.
	STotal int `json:"s_total" bson:"s_total"`

	// NPop maps population name to size.
	NPop map[string]int `json:"n_pop" bson:"n_pop"`

	// SPop maps synapse group name to its [source, target] population pair.
	SPop map[string]PopulationPair `json:"s_pop" bson:"s_pop"`

	// STags maps synapse group name to its tag set.
	STags map[string]SynapseTags `json:"s_tags" bson:"s_tags"`

	// NParams maps population name to its initial parameters.
	NParams map[string]Params `json:"n_params" bson:"n_params"`

	// SParams maps synapse group name to its initial parameters.
	SParams map[string]Params `json:"s_params" bson:"s_params"`
}

// PopulationPair is a [source, target] population name pair.
// It serializes as a two-element array.
type PopulationPair [2]string

// Source returns the presynaptic population name.
func (p PopulationPair) Source() string { return p[0] }

// Target returns the postsynaptic population name.
func (p PopulationPair) Target() string { return p[1] }

// SynapseTags is the meta information of one synapse group needed for
// hardware placement.
type SynapseTags struct {
	// Sign is "exc" or "inh" - the effect of the group's synapses.
	Sign string `json:"sign" bson:"sign"`

	// TargetSign is the sign of the target population.
	TargetSign string `json:"target_sign" bson:"target_sign"`

	// PConnection is the realized connection probability in [0, 1]:
	// synapse count divided by the size of the full bipartite product.
	PConnection float64 `json:"p_connection" bson:"p_connection"`

	// Plastic reports whether the group carries plasticity parameters.
	Plastic bool `json:"plastic" bson:"plastic"`

	// Mean is the mean plastic weight, rounded to 4 decimals.
	Mean float64 `json:"mean" bson:"mean"`

	// Std is the population standard deviation of the plastic weights,
	// rounded to 4 decimals.
	Std float64 `json:"std" bson:"std"`
}

// Params holds a group's initial parameter assignment by name.
type Params map[string]float64

// =============================================================================
// Options
// =============================================================================

// Options controls what goes into an extracted description.
type Options struct {
	// Weights includes weight statistics (mean, std) in synapse tags.
	Weights bool

	// Params includes initial parameter maps for populations and synapse
	// groups.
	Params bool
}

// DefaultOptions returns the options for a complete description.
func DefaultOptions() Options {
	return Options{Weights: true, Params: true}
}

// =============================================================================
// Extraction
// =============================================================================

// Extract builds a Description from a network snapshot.
//
// Populations and synapse groups are classified by type: neuron groups
// contribute to n_pop and n_params; Poisson and spike-generator groups are
// input-only and appear solely as synapse sources; connection groups
// contribute to s_pop, s_tags, and s_params.
//
// Returns an error with code EMPTY_POPULATION if a synapse group's source
// or target population is empty - the connection probability would be
// undefined.
func Extract(net *network.Network, opts Options) (*Description, error) {
	desc := &Description{
		NTotal:  net.TotalNeurons(),
		STotal:  net.TotalSynapses(),
		NPop:    make(map[string]int),
		SPop:    make(map[string]PopulationPair),
		STags:   make(map[string]SynapseTags),
		NParams: make(map[string]Params),
		SParams: make(map[string]Params),
	}

	for _, g := range net.NeuronGroups() {
		desc.NPop[g.Name] = g.N
		if opts.Params {
			desc.NParams[g.Name] = cloneParams(g.Params)
		}
	}

	for _, c := range net.ConnectionGroups() {
		tags, err := extractTags(c, opts)
		if err != nil {
			return nil, err
		}
		desc.SPop[c.Name] = PopulationPair{c.Source.GroupName(), c.Target.GroupName()}
		desc.STags[c.Name] = tags
		if opts.Params {
			desc.SParams[c.Name] = cloneParams(c.Params)
		}
	}

	return desc, nil
}

// extractTags computes the tag set of one synapse group.
func extractTags(c *network.Connections, opts Options) (SynapseTags, error) {
	srcN := c.Source.Size()
	dstN := c.Target.Size()
	if srcN <= 0 || dstN <= 0 {
		return SynapseTags{}, errors.New(errors.ErrCodeEmptyPopulation,
			"synapse group %s: connection probability undefined for empty population pair (%s: %d, %s: %d)",
			c.Name, c.Source.GroupName(), srcN, c.Target.GroupName(), dstN)
	}

	tags := SynapseTags{
		Sign:        string(c.EffectiveSign()),
		TargetSign:  string(c.Target.PopulationSign()),
		PConnection: float64(c.NumSynapses()) / float64(srcN*dstN),
		Plastic:     c.Plastic(),
	}

	if opts.Weights {
		mean, std, err := weightStats(c.Weights())
		if err != nil {
			return SynapseTags{}, err
		}
		tags.Mean = mean
		tags.Std = std
	}

	return tags, nil
}

// cloneParams converts a network parameter map to the wire type.
// Always returns a non-nil map so serialized params are {} rather than null.
func cloneParams(p network.Parameters) Params {
	if p == nil {
		return Params{}
	}
	return Params(maps.Clone(map[string]float64(p)))
}
