package network

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/orcalab/speed/pkg/errors"
)

// Connectivity modes for synapse specs.
const (
	ConnectAll      = "all"        // every source/target pair
	ConnectOneToOne = "one_to_one" // source i to target i
	ConnectRandom   = "random"     // each pair with probability p
	ConnectExplicit = "explicit"   // pairs listed in Pairs
)

// Snapshot is the on-disk TOML form of a network. It is the input format
// for conversion: simulators (or the example builders) write snapshots,
// and Build turns one into a live [Network].
type Snapshot struct {
	Name     string         `toml:"name"`
	Neurons  []NeuronSpec   `toml:"neurons"`
	Poisson  []PoissonSpec  `toml:"poisson,omitempty"`
	SpikeGen []SpikeGenSpec `toml:"spikegen,omitempty"`
	Synapses []SynapseSpec  `toml:"synapses,omitempty"`
}

// NeuronSpec describes one neuron group.
type NeuronSpec struct {
	Name   string             `toml:"name"`
	N      int                `toml:"n"`
	Sign   string             `toml:"sign,omitempty"`
	Params map[string]float64 `toml:"params,omitempty"`
}

// PoissonSpec describes one Poisson input group.
type PoissonSpec struct {
	Name string  `toml:"name"`
	N    int     `toml:"n"`
	Rate float64 `toml:"rate"`
}

// SpikeGenSpec describes one spike-generator input group.
type SpikeGenSpec struct {
	Name    string    `toml:"name"`
	N       int       `toml:"n"`
	Indices []int     `toml:"indices,omitempty"`
	Times   []float64 `toml:"times,omitempty"`
}

// SynapseSpec describes one synapse group. Connectivity is either
// generated (connect = "all" | "one_to_one" | "random") or listed
// explicitly in Pairs. When Connect is empty it defaults to "explicit"
// if Pairs is non-empty and "all" otherwise.
type SynapseSpec struct {
	Name          string             `toml:"name"`
	Source        string             `toml:"source"`
	Target        string             `toml:"target"`
	Sign          string             `toml:"sign,omitempty"`
	Connect       string             `toml:"connect,omitempty"`
	P             float64            `toml:"p,omitempty"`
	Weight        float64            `toml:"weight,omitempty"`
	RandomWeights bool               `toml:"random_weights,omitempty"`
	Seed          int64              `toml:"seed,omitempty"`
	Params        map[string]float64 `toml:"params,omitempty"`
	Pairs         []PairSpec         `toml:"pairs,omitempty"`
}

// PairSpec is one explicit synapse in a SynapseSpec.
type PairSpec struct {
	Pre    int     `toml:"pre"`
	Post   int     `toml:"post"`
	Weight float64 `toml:"weight"`
}

// defaultSeed keeps generated connectivity reproducible when a spec does
// not pin its own seed.
const defaultSeed = 42

// LoadSnapshot reads and parses a TOML snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return nil, err
	}
	return ParseSnapshot(data)
}

// ParseSnapshot parses TOML snapshot bytes.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "parse snapshot")
	}
	return &snap, nil
}

// Encode serializes the snapshot to TOML.
func (s *Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Build constructs a live Network from the snapshot.
//
// All group names are validated and synapse specs must reference declared
// populations. Generated connectivity is reproducible: each synapse spec
// draws from its own rng seeded with Seed (or a fixed default).
func (s *Snapshot) Build() (*Network, error) {
	if s.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no name")
	}

	net := New(s.Name)

	for _, spec := range s.Neurons {
		if spec.N <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot,
				"neuron group %s: n must be positive, got %d", spec.Name, spec.N)
		}
		sign := Sign(spec.Sign)
		if spec.Sign != "" && !sign.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot,
				"neuron group %s: invalid sign %q", spec.Name, spec.Sign)
		}
		g := &NeuronGroup{Name: spec.Name, N: spec.N, Sign: sign, Params: Parameters(spec.Params)}
		if err := net.Add(g); err != nil {
			return nil, err
		}
	}

	for _, spec := range s.Poisson {
		if spec.N <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot,
				"poisson group %s: n must be positive, got %d", spec.Name, spec.N)
		}
		g := &PoissonGroup{Name: spec.Name, N: spec.N, Rate: spec.Rate}
		if err := net.Add(g); err != nil {
			return nil, err
		}
	}

	for _, spec := range s.SpikeGen {
		if spec.N <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot,
				"spikegen group %s: n must be positive, got %d", spec.Name, spec.N)
		}
		if len(spec.Indices) != len(spec.Times) {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot,
				"spikegen group %s: indices and times must have equal length", spec.Name)
		}
		g := &SpikeGeneratorGroup{Name: spec.Name, N: spec.N, Indices: spec.Indices, Times: spec.Times}
		if err := net.Add(g); err != nil {
			return nil, err
		}
	}

	for _, spec := range s.Synapses {
		conn, err := s.buildSynapses(net, spec)
		if err != nil {
			return nil, err
		}
		if err := net.Add(conn); err != nil {
			return nil, err
		}
	}

	return net, nil
}

// buildSynapses resolves a synapse spec against the populations already
// added to net and generates its connectivity.
func (s *Snapshot) buildSynapses(net *Network, spec SynapseSpec) (*Connections, error) {
	source, ok := net.Lookup(spec.Source).(Population)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownGroup,
			"synapse group %s: unknown source population %q", spec.Name, spec.Source)
	}
	target, ok := net.Lookup(spec.Target).(Population)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownGroup,
			"synapse group %s: unknown target population %q", spec.Name, spec.Target)
	}

	sign := Sign(spec.Sign)
	if spec.Sign != "" && !sign.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot,
			"synapse group %s: invalid sign %q", spec.Name, spec.Sign)
	}

	conn := NewConnections(spec.Name, source, target)
	conn.Sign = sign
	conn.Params = Parameters(spec.Params)

	mode := spec.Connect
	if mode == "" {
		if len(spec.Pairs) > 0 {
			mode = ConnectExplicit
		} else {
			mode = ConnectAll
		}
	}

	seed := spec.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	switch mode {
	case ConnectAll:
		conn.ConnectAll(spec.Weight)
	case ConnectOneToOne:
		if err := conn.ConnectOneToOne(spec.Weight); err != nil {
			return nil, err
		}
	case ConnectRandom:
		if spec.P < 0 || spec.P > 1 {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot,
				"synapse group %s: connection probability %g outside [0,1]", spec.Name, spec.P)
		}
		conn.ConnectRandom(spec.P, spec.Weight, rng)
	case ConnectExplicit:
		for _, pair := range spec.Pairs {
			if err := conn.AddSynapse(pair.Pre, pair.Post, pair.Weight); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidSnapshot,
			"synapse group %s: unknown connect mode %q", spec.Name, mode)
	}

	if spec.RandomWeights {
		conn.RandomizeWeights(rng)
	}

	return conn, nil
}
