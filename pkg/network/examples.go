package network

// Example snapshot builders. These reproduce the two canonical test
// networks used when bringing up the conversion path: a plastic
// feed-forward network and a static winner-take-all block. The CLI
// exposes them under "speed example" so users have working snapshots to
// convert without a simulator at hand.

// STDPExample returns a feed-forward network: a Poisson input population
// fully connected to a small neuron group through a plastic STDP synapse
// group with randomized initial weights.
func STDPExample() *Snapshot {
	return &Snapshot{
		Name: "stdp_example",
		Neurons: []NeuronSpec{
			{Name: "neurons", N: 2, Sign: string(SignExcitatory)},
		},
		Poisson: []PoissonSpec{
			{Name: "input", N: 1000, Rate: 8},
		},
		Synapses: []SynapseSpec{
			{
				Name:          "stdp_synapse",
				Source:        "input",
				Target:        "neurons",
				Connect:       ConnectAll,
				Weight:        1.0,
				RandomWeights: true,
				Params: map[string]float64{
					"taupre":  20, // ms
					"taupost": 20, // ms
					"dApre":   0.01,
				},
			},
		},
	}
}

// WTAOptions configures the winner-take-all example.
type WTAOptions struct {
	NumNeurons     int     // excitatory population size
	NumInhNeurons  int     // inhibitory population size (defaults to NumNeurons/4)
	EIConnProb     float64 // excitatory-to-inhibitory connection probability
	WeightInpExc   float64 // input -> excitatory weight
	WeightExcInh   float64 // excitatory -> inhibitory weight
	WeightInhExc   float64 // inhibitory -> excitatory weight (negative)
	WeightExcExc   float64 // recurrent excitatory weight
	NoiseRate      float64 // background Poisson rate in Hz
	WeightNoiseSyn float64 // noise -> excitatory weight
	Seed           int64   // seed for generated connectivity
}

// DefaultWTAOptions returns the parameter set of the reference 1-D WTA
// block.
func DefaultWTAOptions() WTAOptions {
	return WTAOptions{
		NumNeurons:     50,
		EIConnProb:     0.7,
		WeightInpExc:   2.0,
		WeightExcInh:   0.6,
		WeightInhExc:   -0.55,
		WeightExcExc:   1.6,
		NoiseRate:      10,
		WeightNoiseSyn: 5.0,
		Seed:           defaultSeed,
	}
}

// WTAExample returns a 1-D winner-take-all block: an excitatory and an
// inhibitory population with recurrent excitation, broad inhibition, a
// spike-generator input, and background Poisson noise.
func WTAExample(opts WTAOptions) *Snapshot {
	if opts.NumNeurons <= 0 {
		opts.NumNeurons = 50
	}
	if opts.NumInhNeurons <= 0 {
		opts.NumInhNeurons = opts.NumNeurons / 4
	}
	if opts.Seed == 0 {
		opts.Seed = defaultSeed
	}

	return &Snapshot{
		Name: "wta",
		Neurons: []NeuronSpec{
			{Name: "n_exc", N: opts.NumNeurons, Sign: string(SignExcitatory)},
			{Name: "n_inh", N: opts.NumInhNeurons, Sign: string(SignInhibitory)},
		},
		Poisson: []PoissonSpec{
			{Name: "noise_input", N: opts.NumNeurons, Rate: opts.NoiseRate},
		},
		SpikeGen: []SpikeGenSpec{
			{Name: "spike_gen", N: opts.NumNeurons},
		},
		Synapses: []SynapseSpec{
			{
				Name:    "s_inp_exc",
				Source:  "spike_gen",
				Target:  "n_exc",
				Connect: ConnectOneToOne,
				Weight:  opts.WeightInpExc,
			},
			{
				Name:    "s_exc_inh",
				Source:  "n_exc",
				Target:  "n_inh",
				Connect: ConnectRandom,
				P:       opts.EIConnProb,
				Weight:  opts.WeightExcInh,
				Seed:    opts.Seed,
			},
			{
				Name:    "s_inh_exc",
				Source:  "n_inh",
				Target:  "n_exc",
				Sign:    string(SignInhibitory),
				Connect: ConnectAll,
				Weight:  opts.WeightInhExc,
			},
			{
				Name:    "s_exc_exc",
				Source:  "n_exc",
				Target:  "n_exc",
				Connect: ConnectRandom,
				P:       opts.EIConnProb,
				Weight:  opts.WeightExcExc,
				Seed:    opts.Seed + 1,
			},
			{
				Name:    "noise_syn",
				Source:  "noise_input",
				Target:  "n_exc",
				Connect: ConnectOneToOne,
				Weight:  opts.WeightNoiseSyn,
			},
		},
	}
}
