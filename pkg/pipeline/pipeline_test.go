package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/orcalab/speed/pkg/cache"
	"github.com/orcalab/speed/pkg/errors"
	"github.com/orcalab/speed/pkg/network"
)

// writeSnapshot encodes the STDP example network to a TOML file.
func writeSnapshot(t *testing.T) string {
	t.Helper()

	data, err := network.STDPExample().Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "stdp.toml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func testRunner(t *testing.T) *Runner {
	t.Helper()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestExecute(t *testing.T) {
	runner := testRunner(t)
	outDir := t.TempDir()

	result, err := runner.Execute(context.Background(), Options{
		Snapshot:  writeSnapshot(t),
		Weights:   true,
		Params:    true,
		Directory: outDir,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Network == nil || result.Description == nil {
		t.Fatal("result should carry network and description")
	}
	if result.SnapshotHash == "" {
		t.Error("result should carry the snapshot hash")
	}
	if result.Stats.NeuronCount != result.Description.NTotal {
		t.Errorf("NeuronCount = %d, description NTotal = %d",
			result.Stats.NeuronCount, result.Description.NTotal)
	}

	if filepath.Base(result.Path) != "stdp.json" {
		t.Errorf("Path = %s, want snapshot basename with .json", result.Path)
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	runner := testRunner(t)
	opts := Options{
		Snapshot:  writeSnapshot(t),
		Weights:   true,
		Directory: t.TempDir(),
	}
	ctx := context.Background()

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.CacheInfo.ExtractHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheInfo.ExtractHit {
		t.Error("second run should hit the cache")
	}
	if second.Description.NTotal != first.Description.NTotal {
		t.Error("cached description should match")
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if third.CacheInfo.ExtractHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteOptionVariantsCachedSeparately(t *testing.T) {
	runner := testRunner(t)
	snapshot := writeSnapshot(t)
	ctx := context.Background()

	if _, err := runner.Execute(ctx, Options{Snapshot: snapshot, Weights: true, SkipSave: true}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	// Different extraction options must not reuse the cached entry
	result, err := runner.Execute(ctx, Options{Snapshot: snapshot, Weights: false, SkipSave: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.CacheInfo.ExtractHit {
		t.Error("different options should produce a cache miss")
	}
}

func TestExecuteSkipSave(t *testing.T) {
	runner := testRunner(t)

	result, err := runner.Execute(context.Background(), Options{
		Snapshot: writeSnapshot(t),
		SkipSave: true,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Path != "" {
		t.Errorf("Path = %s, want empty with SkipSave", result.Path)
	}
}

func TestExecuteSnapshotData(t *testing.T) {
	data, err := network.WTAExample(network.DefaultWTAOptions()).Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		SnapshotData: data,
		Weights:      true,
		SkipSave:     true,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Network.Name() == "" {
		t.Error("network should be built from raw snapshot data")
	}
}

func TestExecuteMissingSnapshot(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{
		Snapshot: filepath.Join(t.TempDir(), "missing.toml"),
		SkipSave: true,
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestValidateForLoad(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"path only", Options{Snapshot: "net.toml"}, false},
		{"data only", Options{SnapshotData: []byte("name = \"n\"")}, false},
		{"neither", Options{}, true},
		{"both", Options{Snapshot: "net.toml", SnapshotData: []byte("x")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLoad()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForLoad() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultFilename(t *testing.T) {
	tests := []struct {
		snapshot string
		want     string
	}{
		{"", "description"},
		{"net.toml", "net"},
		{"/some/dir/wta.toml", "wta"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := defaultFilename(tt.snapshot); got != tt.want {
			t.Errorf("defaultFilename(%q) = %q, want %q", tt.snapshot, got, tt.want)
		}
	}
}
