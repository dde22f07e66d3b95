// Package viz renders network descriptions as connectivity diagrams.
//
// A description is converted to Graphviz DOT format with [ToDOT]: neuron
// populations become boxes, input populations become dashed ellipses, and
// synapse groups become edges annotated with their connection tags. The DOT
// string can then be rendered to SVG with [RenderSVG].
package viz

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/orcalab/speed/pkg/describe"
)

// Options configures connectivity diagram rendering.
type Options struct {
	// Detailed includes connection probability, plasticity and weight
	// statistics in edge labels. When false, only the group name is shown.
	Detailed bool
}

// ToDOT converts a description to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Populations that appear only as synapse sources (input populations such as
// Poisson or spike generator groups) are rendered with dashed outlines and
// grey fill to distinguish them from neuron populations.
func ToDOT(d *describe.Description, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph network {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.7;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, name := range slices.Sorted(maps.Keys(d.NPop)) {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, popLabel(name, d.NPop[name]))
	}
	for _, name := range inputPopulations(d) {
		fmt.Fprintf(&buf, "  %q [shape=ellipse, style=\"filled,dashed\", fillcolor=lightgrey, label=%q];\n",
			name, name)
	}

	buf.WriteString("\n")
	for _, name := range slices.Sorted(maps.Keys(d.SPop)) {
		pair := d.SPop[name]
		attrs := edgeAttrs(name, d.STags[name], opts.Detailed)
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", pair.Source(), pair.Target(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// inputPopulations returns synapse sources that are not neuron populations,
// sorted and deduplicated.
func inputPopulations(d *describe.Description) []string {
	seen := make(map[string]bool)
	for _, pair := range d.SPop {
		src := pair.Source()
		if _, ok := d.NPop[src]; !ok {
			seen[src] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func popLabel(name string, size int) string {
	return fmt.Sprintf("%s\nN=%d", name, size)
}

func edgeAttrs(name string, tags describe.SynapseTags, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", edgeLabel(name, tags, detailed))}
	if tags.Sign == "inh" {
		attrs = append(attrs, "color=firebrick", "arrowhead=dot")
	}
	if tags.Plastic {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

func edgeLabel(name string, tags describe.SynapseTags, detailed bool) string {
	if !detailed {
		return name
	}

	parts := []string{
		name,
		fmt.Sprintf("p: %g", tags.PConnection),
		fmt.Sprintf("w: %g±%g", tags.Mean, tags.Std),
	}
	if tags.Plastic {
		parts = append(parts, "plastic")
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
