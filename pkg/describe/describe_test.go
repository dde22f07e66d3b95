package describe

import (
	"math/rand"
	"testing"

	"github.com/orcalab/speed/pkg/errors"
	"github.com/orcalab/speed/pkg/network"
)

// buildTestNetwork assembles a small two-population network with one
// static inhibitory and one plastic excitatory synapse group.
func buildTestNetwork(t *testing.T) *network.Network {
	t.Helper()

	net := network.New("test")
	exc := &network.NeuronGroup{
		Name:   "n_exc",
		N:      4,
		Sign:   network.SignExcitatory,
		Params: network.Parameters{"tau": 9},
	}
	inh := &network.NeuronGroup{Name: "n_inh", N: 2, Sign: network.SignInhibitory}
	input := &network.PoissonGroup{Name: "input", N: 4, Rate: 8}

	plastic := network.NewConnections("s_inp_exc", input, exc)
	if err := plastic.ConnectOneToOne(0.5); err != nil {
		t.Fatalf("ConnectOneToOne error: %v", err)
	}
	plastic.Params = network.Parameters{"taupre": 20, "taupost": 20}

	static := network.NewConnections("s_inh_exc", inh, exc)
	static.ConnectAll(-0.55)

	if err := net.Add(exc, inh, input, plastic, static); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	return net
}

func TestExtract(t *testing.T) {
	net := buildTestNetwork(t)

	desc, err := Extract(net, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if desc.NTotal != 6 {
		t.Errorf("NTotal = %d, want 6", desc.NTotal)
	}
	// 4 one-to-one + 2*4 all-to-all
	if desc.STotal != 12 {
		t.Errorf("STotal = %d, want 12", desc.STotal)
	}

	// Input groups do not appear in n_pop
	if _, ok := desc.NPop["input"]; ok {
		t.Error("Poisson group should not appear in n_pop")
	}
	if desc.NPop["n_exc"] != 4 || desc.NPop["n_inh"] != 2 {
		t.Errorf("NPop = %v", desc.NPop)
	}

	// Connectivity pairs
	pair := desc.SPop["s_inp_exc"]
	if pair.Source() != "input" || pair.Target() != "n_exc" {
		t.Errorf("s_inp_exc pair = %v", pair)
	}

	// Parameter extraction
	if desc.NParams["n_exc"]["tau"] != 9 {
		t.Errorf("NParams = %v", desc.NParams)
	}
	if desc.SParams["s_inp_exc"]["taupre"] != 20 {
		t.Errorf("SParams = %v", desc.SParams)
	}
}

func TestExtractSumInvariants(t *testing.T) {
	net := buildTestNetwork(t)
	desc, err := Extract(net, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	sum := 0
	for _, n := range desc.NPop {
		sum += n
	}
	if sum != desc.NTotal {
		t.Errorf("population sum %d != n_total %d", sum, desc.NTotal)
	}

	sSum := 0
	for _, c := range net.ConnectionGroups() {
		sSum += c.NumSynapses()
	}
	if sSum != desc.STotal {
		t.Errorf("synapse sum %d != s_total %d", sSum, desc.STotal)
	}
}

func TestExtractTags(t *testing.T) {
	net := buildTestNetwork(t)
	desc, err := Extract(net, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	plastic := desc.STags["s_inp_exc"]
	if !plastic.Plastic {
		t.Error("group with taupre should be tagged plastic")
	}
	if plastic.Sign != "exc" {
		t.Errorf("sign = %q, want exc", plastic.Sign)
	}
	if plastic.TargetSign != "exc" {
		t.Errorf("target_sign = %q, want exc", plastic.TargetSign)
	}
	// 4 synapses over a 4x4 product
	if plastic.PConnection != 0.25 {
		t.Errorf("p_connection = %g, want 0.25", plastic.PConnection)
	}
	if plastic.Mean != 0.5 || plastic.Std != 0 {
		t.Errorf("mean/std = %g/%g, want 0.5/0", plastic.Mean, plastic.Std)
	}

	static := desc.STags["s_inh_exc"]
	if static.Plastic {
		t.Error("group without taupre should not be tagged plastic")
	}
	if static.Sign != "inh" {
		t.Errorf("sign = %q, want inh (inferred from negative weights)", static.Sign)
	}
	if static.PConnection != 1 {
		t.Errorf("p_connection = %g, want 1", static.PConnection)
	}
	if static.Mean != -0.55 {
		t.Errorf("mean = %g, want -0.55", static.Mean)
	}
}

func TestExtractProbabilityRange(t *testing.T) {
	net := network.New("rand")
	a := &network.NeuronGroup{Name: "a", N: 30}
	b := &network.NeuronGroup{Name: "b", N: 30}
	c := network.NewConnections("s", a, b)
	c.ConnectRandom(0.7, 1.0, rand.New(rand.NewSource(7)))
	if err := net.Add(a, b, c); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	desc, err := Extract(net, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	p := desc.STags["s"].PConnection
	if p < 0 || p > 1 {
		t.Errorf("p_connection = %g outside [0,1]", p)
	}
}

func TestExtractEmptyPopulation(t *testing.T) {
	net := network.New("broken")
	a := &network.NeuronGroup{Name: "a", N: 0}
	b := &network.NeuronGroup{Name: "b", N: 2}
	c := network.NewConnections("s", a, b)
	if err := net.Add(b, c); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	_ = a // intentionally empty and unregistered source

	_, err := Extract(net, DefaultOptions())
	if err == nil {
		t.Fatal("expected error for empty source population")
	}
	if !errors.Is(err, errors.ErrCodeEmptyPopulation) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeEmptyPopulation)
	}
}

func TestExtractWithoutOptionalSections(t *testing.T) {
	net := buildTestNetwork(t)

	desc, err := Extract(net, Options{Weights: false, Params: false})
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if len(desc.NParams) != 0 || len(desc.SParams) != 0 {
		t.Error("params should be empty when disabled")
	}
	tags := desc.STags["s_inh_exc"]
	if tags.Mean != 0 || tags.Std != 0 {
		t.Error("weight stats should be zero when disabled")
	}
	// Structural tags stay present
	if tags.Sign == "" || tags.PConnection == 0 {
		t.Error("structural tags should be extracted regardless of options")
	}
}

func TestExtractEmptySynapseGroup(t *testing.T) {
	net := network.New("sparse")
	a := &network.NeuronGroup{Name: "a", N: 2}
	b := &network.NeuronGroup{Name: "b", N: 2}
	c := network.NewConnections("s", a, b) // no synapses connected
	if err := net.Add(a, b, c); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	desc, err := Extract(net, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	tags := desc.STags["s"]
	if tags.PConnection != 0 {
		t.Errorf("p_connection = %g, want 0", tags.PConnection)
	}
	if tags.Mean != 0 || tags.Std != 0 {
		t.Errorf("empty group stats = %g/%g, want 0/0", tags.Mean, tags.Std)
	}
}

func TestWeightStatsRounding(t *testing.T) {
	weights := []float64{0.11111111, 0.22222222, 0.33333333}
	mean, std, err := weightStats(weights)
	if err != nil {
		t.Fatalf("weightStats error: %v", err)
	}
	if mean != 0.2222 {
		t.Errorf("mean = %v, want 0.2222", mean)
	}
	if std != 0.0907 {
		t.Errorf("std = %v, want 0.0907", std)
	}
}
