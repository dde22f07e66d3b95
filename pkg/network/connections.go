package network

import (
	"math/rand"

	"github.com/orcalab/speed/pkg/errors"
)

// plasticityMarker is the initial parameter whose presence marks a synapse
// group as plastic. STDP models carry a presynaptic trace time constant;
// static models do not.
const plasticityMarker = "taupre"

// Synapse is a single connection between a source neuron and a target
// neuron, identified by their indices within their populations.
type Synapse struct {
	Pre    int     // index into the source population
	Post   int     // index into the target population
	Weight float64 // plastic weight, nominally in [0, 1]
}

// Connections is a named synapse group between two populations.
//
// The synapse list is explicit: each connected pair is stored with its
// weight. Use the Connect* methods to build standard connectivity
// patterns, or AddSynapse for arbitrary ones.
type Connections struct {
	Name   string     // unique group name
	Source Population // presynaptic population
	Target Population // postsynaptic population
	Sign   Sign       // explicit sign; inferred from weights when empty
	Params Parameters // initial synapse parameters

	synapses []Synapse
}

// NewConnections creates an empty synapse group between source and target.
func NewConnections(name string, source, target Population) *Connections {
	return &Connections{
		Name:   name,
		Source: source,
		Target: target,
	}
}

// GroupName returns the group's unique name.
func (c *Connections) GroupName() string { return c.Name }

// NumSynapses returns the number of connected pairs.
func (c *Connections) NumSynapses() int { return len(c.synapses) }

// Synapses returns the synapse list. The returned slice is owned by the
// group and must not be modified.
func (c *Connections) Synapses() []Synapse { return c.synapses }

// AddSynapse appends a single connection.
// Returns an error if either index is out of range for its population.
func (c *Connections) AddSynapse(pre, post int, weight float64) error {
	if pre < 0 || pre >= c.Source.Size() {
		return errors.New(errors.ErrCodeInvalidGroup,
			"synapse group %s: pre index %d out of range [0,%d)", c.Name, pre, c.Source.Size())
	}
	if post < 0 || post >= c.Target.Size() {
		return errors.New(errors.ErrCodeInvalidGroup,
			"synapse group %s: post index %d out of range [0,%d)", c.Name, post, c.Target.Size())
	}
	c.synapses = append(c.synapses, Synapse{Pre: pre, Post: post, Weight: weight})
	return nil
}

// ConnectAll connects every source neuron to every target neuron with the
// given weight. Existing synapses are replaced.
func (c *Connections) ConnectAll(weight float64) {
	c.synapses = c.synapses[:0]
	for pre := 0; pre < c.Source.Size(); pre++ {
		for post := 0; post < c.Target.Size(); post++ {
			c.synapses = append(c.synapses, Synapse{Pre: pre, Post: post, Weight: weight})
		}
	}
}

// ConnectOneToOne connects source neuron i to target neuron i.
// Returns an error if the population sizes differ. Existing synapses are
// replaced.
func (c *Connections) ConnectOneToOne(weight float64) error {
	if c.Source.Size() != c.Target.Size() {
		return errors.New(errors.ErrCodeInvalidGroup,
			"synapse group %s: one-to-one requires equal sizes, got %d and %d",
			c.Name, c.Source.Size(), c.Target.Size())
	}
	c.synapses = c.synapses[:0]
	for i := 0; i < c.Source.Size(); i++ {
		c.synapses = append(c.synapses, Synapse{Pre: i, Post: i, Weight: weight})
	}
	return nil
}

// ConnectRandom connects each source/target pair independently with
// probability p, assigning the given weight. The rng makes connectivity
// reproducible; it must not be nil. Existing synapses are replaced.
func (c *Connections) ConnectRandom(p, weight float64, rng *rand.Rand) {
	c.synapses = c.synapses[:0]
	for pre := 0; pre < c.Source.Size(); pre++ {
		for post := 0; post < c.Target.Size(); post++ {
			if rng.Float64() < p {
				c.synapses = append(c.synapses, Synapse{Pre: pre, Post: post, Weight: weight})
			}
		}
	}
}

// SetWeights assigns the same weight to every synapse.
func (c *Connections) SetWeights(weight float64) {
	for i := range c.synapses {
		c.synapses[i].Weight = weight
	}
}

// RandomizeWeights assigns each synapse a uniform random weight in [0, 1).
// This mirrors initializing plastic weights before training.
func (c *Connections) RandomizeWeights(rng *rand.Rand) {
	for i := range c.synapses {
		c.synapses[i].Weight = rng.Float64()
	}
}

// Weights returns the weight of every synapse in list order.
func (c *Connections) Weights() []float64 {
	ws := make([]float64, len(c.synapses))
	for i, s := range c.synapses {
		ws[i] = s.Weight
	}
	return ws
}

// Plastic reports whether the group's initial parameters mark it as
// plastic.
func (c *Connections) Plastic() bool {
	_, ok := c.Params[plasticityMarker]
	return ok
}

// EffectiveSign returns the group's sign. An explicit Sign wins; otherwise
// the sign is inferred from the weights (any negative weight means
// inhibitory), defaulting to excitatory for empty groups.
func (c *Connections) EffectiveSign() Sign {
	if c.Sign != "" {
		return c.Sign
	}
	for _, s := range c.synapses {
		if s.Weight < 0 {
			return SignInhibitory
		}
	}
	return SignExcitatory
}

// Interface check.
var _ Object = (*Connections)(nil)
