package describe

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/orcalab/speed/pkg/errors"
)

func testDescription(t *testing.T) *Description {
	t.Helper()
	desc, err := Extract(buildTestNetwork(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	return desc
}

func TestSaveLoadRoundTrip(t *testing.T) {
	desc := testDescription(t)
	dir := t.TempDir()

	path, err := desc.Save("orca_net", dir)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if filepath.Base(path) != "orca_net.json" {
		t.Errorf("Save path = %s, want default extension appended", path)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(desc, loaded) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", desc, loaded)
	}
}

func TestSaveLoadByteIdentical(t *testing.T) {
	desc := testDescription(t)
	dir := t.TempDir()

	path, err := desc.Save("net.json", dir)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	path2, err := loaded.Save("net2.json", dir)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	second, err := os.ReadFile(path2)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("save/load/save should be byte-identical")
	}
}

func TestSaveKeepsExistingExtension(t *testing.T) {
	desc := testDescription(t)
	dir := t.TempDir()

	path, err := desc.Save("already.json", dir)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if filepath.Base(path) != "already.json" {
		t.Errorf("Save path = %s, extension should not be doubled", path)
	}
}

func TestSaveRejectsPathComponents(t *testing.T) {
	desc := testDescription(t)

	_, err := desc.Save("sub/dir.json", t.TempDir())
	if err == nil {
		t.Fatal("expected error for filename with path separator")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}

func TestWireKeys(t *testing.T) {
	desc := testDescription(t)
	data, err := desc.MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent error: %v", err)
	}

	for _, key := range []string{
		`"n_total"`, `"s_total"`, `"n_pop"`, `"s_pop"`, `"s_tags"`, `"n_params"`, `"s_params"`,
	} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("serialized description missing wire key %s", key)
		}
	}

	// Population pairs serialize as two-element arrays
	if !bytes.Contains(data, []byte(`"s_inh_exc": [`)) {
		t.Error("s_pop entries should serialize as arrays")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestReadJSONSparse(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(`{"n_total": 5, "s_total": 0}`))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if d.NPop == nil || d.SPop == nil || d.STags == nil || d.NParams == nil || d.SParams == nil {
		t.Error("sparse input should decode with empty, non-nil maps")
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"n_total": `)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestRender(t *testing.T) {
	out := testDescription(t).Render()

	for _, want := range []string{
		"n_total: 6",
		"s_total: 12",
		"n_exc: 4",
		"s_inp_exc: [input, n_exc]",
		"p_connection: 1",
		"taupre: 20",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q in:\n%s", want, out)
		}
	}
}
