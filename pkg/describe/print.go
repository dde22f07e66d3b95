package describe

import (
	"fmt"
	"strings"
)

// Render returns a human-readable listing of the description for quick
// inspection. Keys are sorted for stable output.
func (d *Description) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "n_total: %d\n", d.NTotal)
	fmt.Fprintf(&b, "s_total: %d\n", d.STotal)

	b.WriteString("n_pop\n")
	for _, name := range sortedKeys(d.NPop) {
		fmt.Fprintf(&b, "  %s: %d\n", name, d.NPop[name])
	}

	b.WriteString("s_pop\n")
	for _, name := range sortedKeys(d.SPop) {
		pair := d.SPop[name]
		fmt.Fprintf(&b, "  %s: [%s, %s]\n", name, pair.Source(), pair.Target())
	}

	b.WriteString("s_tags\n")
	for _, name := range sortedKeys(d.STags) {
		tags := d.STags[name]
		fmt.Fprintf(&b, "  %s\n", name)
		fmt.Fprintf(&b, "    sign: %s\n", tags.Sign)
		fmt.Fprintf(&b, "    target_sign: %s\n", tags.TargetSign)
		fmt.Fprintf(&b, "    p_connection: %g\n", tags.PConnection)
		fmt.Fprintf(&b, "    plastic: %t\n", tags.Plastic)
		fmt.Fprintf(&b, "    mean: %g\n", tags.Mean)
		fmt.Fprintf(&b, "    std: %g\n", tags.Std)
	}

	writeParams(&b, "n_params", d.NParams)
	writeParams(&b, "s_params", d.SParams)

	return b.String()
}

func writeParams(b *strings.Builder, heading string, params map[string]Params) {
	b.WriteString(heading + "\n")
	for _, name := range sortedKeys(params) {
		fmt.Fprintf(b, "  %s\n", name)
		for _, key := range sortedKeys(params[name]) {
			fmt.Fprintf(b, "    %s: %g\n", key, params[name][key])
		}
	}
}
