package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// run executes the root command against a fresh store and returns what the
// printers wrote.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	out := color.Output
	color.Output = &buf
	color.NoColor = true
	t.Cleanup(func() { color.Output = out })

	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	err := cmd.Execute()
	return buf.String(), err
}

func withStore(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SHELFLIFE_CONFIG_PATH", dir)
	t.Setenv("SHELFLIFE_PATH", dir)
	t.Setenv("SHELFLIFE_LOG_LEVEL", "error")
}

func TestAddThenList(t *testing.T) {
	withStore(t)

	if _, err := run(t, "add", "oat", "milk", "--expires=2d", "--category=dairy"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := run(t, "add", "rice", "--location=shelf"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := run(t, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got struct {
		Total   int `json:"total"`
		Entries []struct {
			Item struct {
				Name     string `json:"name"`
				Location string `json:"storageLocation"`
			} `json:"item"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Total != 2 || len(got.Entries) != 2 {
		t.Fatalf("expected two items, got %+v", got)
	}
	if got.Entries[0].Item.Name != "oat milk" {
		t.Errorf("expected the dated item first, got %q", got.Entries[0].Item.Name)
	}
	if got.Entries[1].Item.Location != "shelf" {
		t.Errorf("expected rice on the shelf, got %q", got.Entries[1].Item.Location)
	}
}

func TestAddRequiresName(t *testing.T) {
	withStore(t)
	if _, err := run(t, "add"); err == nil {
		t.Fatalf("expected an error without a name")
	}
}

func TestJSONErrors(t *testing.T) {
	withStore(t)
	out, err := run(t, "rm", "nope", "--json")
	if err != nil {
		t.Fatalf("expected the error to be printed, got %v", err)
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("expected a JSON error, got %q", out)
	}
}

func TestListRejectsPageZero(t *testing.T) {
	withStore(t)
	if _, err := run(t, "list", "--page=0"); err == nil {
		t.Fatalf("expected --page=0 to fail")
	}
}

func TestLegendJSON(t *testing.T) {
	withStore(t)
	if _, err := run(t, "add", "bread", "--expires=today"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := run(t, "add", "salt", "--location=shelf"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := run(t, "legend", "--json")
	if err != nil {
		t.Fatalf("legend: %v", err)
	}
	var counts map[string]interface{}
	if err := json.Unmarshal([]byte(out), &counts); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if counts["total"] != float64(2) {
		t.Fatalf("expected total 2, got %v", counts["total"])
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("expected the dev version, got %q", out)
	}
}
