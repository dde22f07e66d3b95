// Package pipeline provides the core conversion pipeline for Speed.
//
// This package implements the complete load → extract → export pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse a network snapshot file and build the network
//  2. Extract: Derive the population-level description from the network
//  3. Export: Serialize the description to JSON
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Snapshot: "network.toml",
//	    Filename: "network",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Path)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/orcalab/speed/pkg/cache"
	"github.com/orcalab/speed/pkg/describe"
	"github.com/orcalab/speed/pkg/network"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Options contains all configuration for the conversion pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Snapshot (a file path) or SnapshotData
	// (raw TOML content) must be set.
	Snapshot     string `json:"snapshot,omitempty"`
	SnapshotData []byte `json:"snapshot_data,omitempty"`

	// Extract options
	Weights bool `json:"weights"`
	Params  bool `json:"params"`
	Refresh bool `json:"refresh,omitempty"` // Bypass the description cache

	// Export options
	Filename  string `json:"filename,omitempty"`  // Output filename (default: snapshot basename)
	Directory string `json:"directory,omitempty"` // Output directory (default: ~/.speed/output)
	SkipSave  bool   `json:"skip_save,omitempty"` // Extract only, do not write a file

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network is the loaded network.
	Network *network.Network

	// Description is the extracted description.
	Description *describe.Description

	// SnapshotHash is the content hash of the snapshot input.
	SnapshotHash string

	// Path is the final output path, empty when SkipSave is set.
	Path string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NeuronCount  int
	SynapseCount int
	LoadTime     time.Duration
	ExtractTime  time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ExtractHit bool // Whether the description came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetExportDefaults()
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for snapshot loading.
func (o *Options) ValidateForLoad() error {
	if o.Snapshot == "" && len(o.SnapshotData) == 0 {
		return fmt.Errorf("snapshot path or snapshot data is required")
	}
	if o.Snapshot != "" && len(o.SnapshotData) > 0 {
		return fmt.Errorf("snapshot path and snapshot data are mutually exclusive")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetExportDefaults sets default values for export.
func (o *Options) SetExportDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ExtractOptions returns the extraction options for this run.
func (o *Options) ExtractOptions() describe.Options {
	return describe.Options{
		Weights: o.Weights,
		Params:  o.Params,
	}
}

// DescriptionKeyOpts returns cache key options for the extraction stage.
func (o *Options) DescriptionKeyOpts() cache.DescriptionKeyOpts {
	return cache.DescriptionKeyOpts{
		Weights: o.Weights,
		Params:  o.Params,
	}
}
