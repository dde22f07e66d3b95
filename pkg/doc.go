// Package pkg provides the core libraries for Speed network description extraction.
//
// # Overview
//
// Speed converts spiking network snapshots into compact population-level
// descriptions suitable for neuromorphic hardware toolchains. The pkg
// directory is organized into five main areas:
//
//  1. [network] - Domain model (neuron groups, connections, snapshots)
//  2. [describe] - Description extraction, validation, and serialization
//  3. [pipeline] - Orchestration (load → extract → export)
//  4. [cache] / [store] - Infrastructure (result caching, persistence)
//  5. [viz] - Graphviz rendering of population graphs
//
// # Architecture
//
// The typical data flow through Speed:
//
//	TOML snapshot
//	         ↓
//	    [network] package (parse + build groups and connections)
//	         ↓
//	    [describe] package (population counts, probabilities, weight stats)
//	         ↓
//	    JSON description / [viz] DOT+SVG output
//
// # Quick Start
//
// Load a snapshot and extract its description:
//
//	import (
//	    "github.com/orcalab/speed/pkg/describe"
//	    "github.com/orcalab/speed/pkg/network"
//	)
//
//	// 1. Load and build the network
//	snap, _ := network.LoadSnapshot("stdp.toml")
//	net, _ := snap.Build()
//
//	// 2. Extract the population-level description
//	desc, _ := describe.Extract(net, describe.Options{
//	    Weights: true,
//	    Params:  true,
//	})
//
//	// 3. Export as JSON
//	path, _ := desc.Save("stdp", "")
//
// # Main Packages
//
// [network] models neuron groups, Poisson inputs, spike generators, and
// synaptic connections, and parses TOML snapshots into networks.
//
// [describe] reduces a network to population counts, connection
// probabilities, weight statistics, and plasticity tags, and handles the
// JSON wire format.
//
// [pipeline] ties loading, extraction, and export together with caching
// and observability hooks.
//
// [cache] provides file- and Redis-backed caching keyed by snapshot
// content hashes. [store] persists named descriptions in memory or
// MongoDB for the HTTP API.
//
// [viz] renders descriptions as Graphviz DOT and SVG population graphs.
package pkg
