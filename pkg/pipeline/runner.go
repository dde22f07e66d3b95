package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/orcalab/speed/pkg/cache"
	"github.com/orcalab/speed/pkg/describe"
	"github.com/orcalab/speed/pkg/errors"
	"github.com/orcalab/speed/pkg/network"
	"github.com/orcalab/speed/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → extract → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	net, hash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Network = net
	result.SnapshotHash = hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NeuronCount = net.TotalNeurons()
	result.Stats.SynapseCount = net.TotalSynapses()

	r.Logger.Info("loaded network",
		"name", net.Name(),
		"neurons", result.Stats.NeuronCount,
		"synapses", result.Stats.SynapseCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Extract
	extractStart := time.Now()
	desc, extractHit, err := r.ExtractWithCacheInfo(ctx, net, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Description = desc
	result.Stats.ExtractTime = time.Since(extractStart)
	result.CacheInfo.ExtractHit = extractHit

	r.Logger.Info("extracted description",
		"populations", len(desc.NPop),
		"synapse_groups", len(desc.SPop),
		"cached", extractHit,
		"duration", result.Stats.ExtractTime)

	// Stage 3: Export
	if !opts.SkipSave {
		exportStart := time.Now()
		path, err := r.Export(ctx, desc, opts)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		result.Path = path
		result.Stats.ExportTime = time.Since(exportStart)

		r.Logger.Info("exported description",
			"path", path,
			"duration", result.Stats.ExportTime)
	}

	return result, nil
}

// Load reads the snapshot, builds the network, and returns the network
// together with the snapshot content hash used for cache keys.
func (r *Runner) Load(ctx context.Context, opts Options) (*network.Network, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}

	start := time.Now()
	observability.Extract().OnLoadStart(ctx, opts.Snapshot)

	data := opts.SnapshotData
	if opts.Snapshot != "" {
		var err error
		data, err = os.ReadFile(opts.Snapshot)
		if err != nil {
			if os.IsNotExist(err) {
				err = errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s not found", opts.Snapshot)
			}
			observability.Extract().OnLoadComplete(ctx, opts.Snapshot, 0, time.Since(start), err)
			return nil, "", err
		}
	}

	snap, err := network.ParseSnapshot(data)
	if err != nil {
		observability.Extract().OnLoadComplete(ctx, opts.Snapshot, 0, time.Since(start), err)
		return nil, "", err
	}

	net, err := snap.Build()
	if err != nil {
		observability.Extract().OnLoadComplete(ctx, opts.Snapshot, 0, time.Since(start), err)
		return nil, "", err
	}

	observability.Extract().OnLoadComplete(ctx, opts.Snapshot, net.ObjectCount(), time.Since(start), nil)
	return net, cache.Hash(data), nil
}

// ExtractWithCacheInfo derives the description with caching and returns
// cache hit info. The snapshotHash keys the cache entry; pass an empty hash
// to disable caching for this call.
func (r *Runner) ExtractWithCacheInfo(ctx context.Context, net *network.Network, snapshotHash string, opts Options) (*describe.Description, bool, error) {
	cacheKey := ""
	if snapshotHash != "" {
		cacheKey = r.Keyer.DescriptionKey(snapshotHash, opts.DescriptionKeyOpts())
	}

	// Try cache first (unless refresh requested). Lookups are retried so
	// a transient backend failure degrades to a re-extraction at worst.
	if cacheKey != "" && !opts.Refresh {
		var (
			data []byte
			hit  bool
		)
		err := cache.RetryWithBackoff(ctx, func() error {
			var getErr error
			data, hit, getErr = r.Cache.Get(ctx, cacheKey)
			return getErr
		})
		if err == nil && hit {
			if desc, err := describe.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "description")
				return desc, true, nil
			}
			// Corrupt entry, fall through to re-extract
		} else {
			observability.Cache().OnCacheMiss(ctx, "description")
		}
	}

	start := time.Now()
	observability.Extract().OnExtractStart(ctx, net.Name())

	desc, err := describe.Extract(net, opts.ExtractOptions())
	if err != nil {
		observability.Extract().OnExtractComplete(ctx, net.Name(), 0, 0, time.Since(start), err)
		return nil, false, err
	}
	if err := desc.Validate(); err != nil {
		observability.Extract().OnExtractComplete(ctx, net.Name(), 0, 0, time.Since(start), err)
		return nil, false, err
	}

	observability.Extract().OnExtractComplete(ctx, net.Name(), desc.NTotal, desc.STotal, time.Since(start), nil)

	// Cache the result
	if cacheKey != "" {
		if data, err := desc.MarshalIndent(); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDescription); err == nil {
				observability.Cache().OnCacheSet(ctx, "description", len(data))
			}
		}
	}

	return desc, false, nil
}

// Extract is a convenience wrapper that calls ExtractWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Extract(ctx context.Context, net *network.Network, snapshotHash string, opts Options) (*describe.Description, error) {
	desc, _, err := r.ExtractWithCacheInfo(ctx, net, snapshotHash, opts)
	return desc, err
}

// Export writes the description and returns the final output path.
func (r *Runner) Export(ctx context.Context, desc *describe.Description, opts Options) (string, error) {
	opts.SetExportDefaults()

	filename := opts.Filename
	if filename == "" {
		filename = defaultFilename(opts.Snapshot)
	}

	start := time.Now()
	observability.Extract().OnExportStart(ctx, filename)

	path, err := desc.Save(filename, opts.Directory)
	observability.Extract().OnExportComplete(ctx, path, time.Since(start), err)
	return path, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// defaultFilename derives the output filename from the snapshot path.
func defaultFilename(snapshot string) string {
	if snapshot == "" {
		return "description"
	}
	base := filepath.Base(snapshot)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
