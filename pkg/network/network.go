// Package network provides the in-memory representation of a spiking
// neural network simulation snapshot.
//
// # Overview
//
// A [Network] is a flat container of named objects: neuron groups, input
// groups (Poisson and spike-generator), and connection groups. It mirrors
// how simulators assemble networks - objects are created independently and
// added to the network, which classifies them by type on access.
//
// The package models structure only: population sizes, connectivity,
// per-synapse weights, and initial parameters. It does not simulate
// dynamics; descriptions extracted from a Network (see the describe
// package) feed a downstream hardware compiler.
//
// # Usage
//
//	net := network.New("stdp_example")
//	input := &network.PoissonGroup{Name: "input", N: 1000, Rate: 8}
//	neurons := &network.NeuronGroup{Name: "neurons", N: 2, Sign: network.SignExcitatory}
//	syn := network.NewConnections("stdp_synapse", input, neurons)
//	syn.ConnectAll(1.0)
//	if err := net.Add(input, neurons, syn); err != nil {
//	    return err
//	}
package network

import (
	"slices"
	"strings"

	"github.com/orcalab/speed/pkg/errors"
)

// Object is anything that can be added to a Network.
// All objects carry a unique name used as their identifier in extracted
// descriptions.
type Object interface {
	// GroupName returns the unique name of the object.
	GroupName() string
}

// Population is an Object with a neuron count. Neuron groups and input
// groups (Poisson, spike generator) are populations; connection groups
// are not.
type Population interface {
	Object

	// Size returns the number of neurons in the population.
	Size() int

	// PopulationSign returns the excitatory/inhibitory sign of the
	// population's outgoing effect.
	PopulationSign() Sign
}

// Network is a container for the objects of one simulation snapshot.
//
// The zero value is not usable - use New. Network is not safe for
// concurrent use without external synchronization; once handed to the
// extractor it must not be modified.
type Network struct {
	name    string
	objects []Object
	byName  map[string]Object
}

// New creates an empty network with the given name.
func New(name string) *Network {
	return &Network{
		name:   name,
		byName: make(map[string]Object),
	}
}

// Name returns the network's name.
func (n *Network) Name() string { return n.name }

// Add registers objects with the network.
// Returns an error if an object has an invalid name or a name that is
// already taken. Objects are kept in insertion order; accessors sort by
// name for deterministic extraction.
func (n *Network) Add(objs ...Object) error {
	for _, obj := range objs {
		name := obj.GroupName()
		if err := errors.ValidateGroupName(name); err != nil {
			return err
		}
		if _, exists := n.byName[name]; exists {
			return errors.New(errors.ErrCodeDuplicateGroup, "duplicate group name: %s", name)
		}
		n.objects = append(n.objects, obj)
		n.byName[name] = obj
	}
	return nil
}

// Lookup returns the object with the given name, or nil if absent.
func (n *Network) Lookup(name string) Object {
	return n.byName[name]
}

// NeuronGroups returns all neuron groups sorted by name.
func (n *Network) NeuronGroups() []*NeuronGroup {
	var groups []*NeuronGroup
	for _, obj := range n.objects {
		if g, ok := obj.(*NeuronGroup); ok {
			groups = append(groups, g)
		}
	}
	sortByName(groups)
	return groups
}

// PoissonGroups returns all Poisson input groups sorted by name.
func (n *Network) PoissonGroups() []*PoissonGroup {
	var groups []*PoissonGroup
	for _, obj := range n.objects {
		if g, ok := obj.(*PoissonGroup); ok {
			groups = append(groups, g)
		}
	}
	sortByName(groups)
	return groups
}

// SpikeGeneratorGroups returns all spike-generator groups sorted by name.
func (n *Network) SpikeGeneratorGroups() []*SpikeGeneratorGroup {
	var groups []*SpikeGeneratorGroup
	for _, obj := range n.objects {
		if g, ok := obj.(*SpikeGeneratorGroup); ok {
			groups = append(groups, g)
		}
	}
	sortByName(groups)
	return groups
}

// ConnectionGroups returns all connection groups sorted by name.
func (n *Network) ConnectionGroups() []*Connections {
	var groups []*Connections
	for _, obj := range n.objects {
		if g, ok := obj.(*Connections); ok {
			groups = append(groups, g)
		}
	}
	sortByName(groups)
	return groups
}

// TotalNeurons sums the sizes of all neuron groups.
// Input groups (Poisson, spike generator) are not counted; they stimulate
// the network but are not mapped to hardware neurons.
func (n *Network) TotalNeurons() int {
	total := 0
	for _, g := range n.NeuronGroups() {
		total += g.N
	}
	return total
}

// TotalSynapses sums the synapse counts of all connection groups.
func (n *Network) TotalSynapses() int {
	total := 0
	for _, g := range n.ConnectionGroups() {
		total += g.NumSynapses()
	}
	return total
}

// ObjectCount returns the number of registered objects of all kinds.
func (n *Network) ObjectCount() int { return len(n.objects) }

// sortByName sorts a slice of objects by their group name.
func sortByName[T Object](objs []T) {
	slices.SortFunc(objs, func(a, b T) int {
		return strings.Compare(a.GroupName(), b.GroupName())
	})
}
