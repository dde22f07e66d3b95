package describe

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/orcalab/speed/pkg/errors"
)

// ReadJSON decodes a description from r.
//
// The input must be a JSON object with the wire keys n_total, s_total,
// n_pop, s_pop, s_tags, n_params, and s_params. Missing maps decode as
// empty. ReadJSON does not validate invariants; use
// [Description.Validate] for that.
func ReadJSON(r io.Reader) (*Description, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	d.normalize()
	return &d, nil
}

// Load reads a previously saved description from path, replacing whatever
// was extracted before wholesale.
func Load(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "description %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return d, nil
}

// Unmarshal decodes a description from JSON bytes.
func Unmarshal(data []byte) (*Description, error) {
	var d Description
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	d.normalize()
	return &d, nil
}

// normalize replaces nil maps with empty ones so descriptions behave the
// same whether extracted or decoded from sparse JSON.
func (d *Description) normalize() {
	if d.NPop == nil {
		d.NPop = make(map[string]int)
	}
	if d.SPop == nil {
		d.SPop = make(map[string]PopulationPair)
	}
	if d.STags == nil {
		d.STags = make(map[string]SynapseTags)
	}
	if d.NParams == nil {
		d.NParams = make(map[string]Params)
	}
	if d.SParams == nil {
		d.SParams = make(map[string]Params)
	}
}
