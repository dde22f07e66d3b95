package network

import "maps"

// Sign marks a population or synapse group as excitatory or inhibitory.
type Sign string

const (
	// SignExcitatory marks excitatory populations and synapses.
	SignExcitatory Sign = "exc"
	// SignInhibitory marks inhibitory populations and synapses.
	SignInhibitory Sign = "inh"
)

// Valid reports whether the sign is one of the known values.
func (s Sign) Valid() bool {
	return s == SignExcitatory || s == SignInhibitory
}

// Parameters holds a group's initial parameter assignment by name.
// Values are unitless magnitudes; units are fixed by the downstream
// hardware compiler's parameter tables. Networks are assumed to have
// homogeneous parameters within a group.
type Parameters map[string]float64

// Clone returns an independent copy of the parameter map.
// Returns nil for a nil map.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// NeuronGroup is a named population of neurons.
type NeuronGroup struct {
	Name   string     // unique group name
	N      int        // number of neurons
	Sign   Sign       // outgoing effect sign (defaults to excitatory)
	Params Parameters // initial neuron parameters
}

// GroupName returns the group's unique name.
func (g *NeuronGroup) GroupName() string { return g.Name }

// Size returns the number of neurons.
func (g *NeuronGroup) Size() int { return g.N }

// PopulationSign returns the group's sign, defaulting to excitatory.
func (g *NeuronGroup) PopulationSign() Sign {
	if g.Sign == "" {
		return SignExcitatory
	}
	return g.Sign
}

// PoissonGroup is an input population that emits Poisson spike trains.
// It stimulates the network but carries no neuron parameters.
type PoissonGroup struct {
	Name string  // unique group name
	N    int     // number of input channels
	Rate float64 // firing rate in Hz
}

// GroupName returns the group's unique name.
func (g *PoissonGroup) GroupName() string { return g.Name }

// Size returns the number of input channels.
func (g *PoissonGroup) Size() int { return g.N }

// PopulationSign returns excitatory; input groups only drive.
func (g *PoissonGroup) PopulationSign() Sign { return SignExcitatory }

// SpikeGeneratorGroup is an input population that replays a fixed spike
// pattern. Indices and Times are parallel slices: neuron Indices[i] fires
// at Times[i] (milliseconds).
type SpikeGeneratorGroup struct {
	Name    string    // unique group name
	N       int       // number of input channels
	Indices []int     // spiking neuron index per event
	Times   []float64 // spike time per event, in ms
}

// GroupName returns the group's unique name.
func (g *SpikeGeneratorGroup) GroupName() string { return g.Name }

// Size returns the number of input channels.
func (g *SpikeGeneratorGroup) Size() int { return g.N }

// PopulationSign returns excitatory; input groups only drive.
func (g *SpikeGeneratorGroup) PopulationSign() Sign { return SignExcitatory }

// Interface checks.
var (
	_ Population = (*NeuronGroup)(nil)
	_ Population = (*PoissonGroup)(nil)
	_ Population = (*SpikeGeneratorGroup)(nil)
)
