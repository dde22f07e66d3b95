package describe

import (
	"testing"

	"github.com/orcalab/speed/pkg/errors"
	"github.com/orcalab/speed/pkg/network"
)

// buildClosedNetwork assembles a network whose synapse groups all have
// declared populations on both ends, so every synapse count is
// recoverable from the description alone.
func buildClosedNetwork(t *testing.T) *network.Network {
	t.Helper()

	net := network.New("closed")
	exc := &network.NeuronGroup{Name: "n_exc", N: 4, Sign: network.SignExcitatory}
	inh := &network.NeuronGroup{Name: "n_inh", N: 2, Sign: network.SignInhibitory}

	fwd := network.NewConnections("s_exc_inh", exc, inh)
	fwd.ConnectAll(0.6)
	back := network.NewConnections("s_inh_exc", inh, exc)
	back.ConnectAll(-0.55)

	if err := net.Add(exc, inh, fwd, back); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	return net
}

func TestValidateAcceptsExtracted(t *testing.T) {
	for _, build := range []func(*testing.T) *network.Network{buildClosedNetwork, buildTestNetwork} {
		net := build(t)
		desc, err := Extract(net, DefaultOptions())
		if err != nil {
			t.Fatalf("Extract error: %v", err)
		}
		if err := desc.Validate(); err != nil {
			t.Errorf("Validate(%s) error: %v", net.Name(), err)
		}
	}
}

func TestValidateNeuronTotalMismatch(t *testing.T) {
	desc, err := Extract(buildClosedNetwork(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	desc.NTotal++
	err = desc.Validate()
	if err == nil {
		t.Fatal("expected error for tampered n_total")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestValidateSynapseTotalMismatch(t *testing.T) {
	// All sources declared: any s_total edit must be caught
	desc, err := Extract(buildClosedNetwork(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	desc.STotal += 5
	err = desc.Validate()
	if err == nil {
		t.Fatal("expected error for tampered s_total")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestValidateSynapseTotalLowerBound(t *testing.T) {
	// With an input-source group the recovered sum is only a lower
	// bound, but an s_total below it is still impossible
	desc, err := Extract(buildTestNetwork(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	// s_inh_exc alone contributes 2*4 recoverable synapses
	desc.STotal = 7
	err = desc.Validate()
	if err == nil {
		t.Fatal("expected error for s_total below recoverable count")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestValidateProbabilityOutOfRange(t *testing.T) {
	desc, err := Extract(buildClosedNetwork(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	tags := desc.STags["s_exc_inh"]
	tags.PConnection = 1.5
	desc.STags["s_exc_inh"] = tags
	if err := desc.Validate(); err == nil {
		t.Fatal("expected error for probability outside [0,1]")
	}
}
