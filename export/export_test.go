package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/tally/stat"
)

func testTable() *stat.Table {
	t := stat.NewTable()
	t.Set(stat.Key("Enemies Killed"), stat.NewCounter(42))
	t.Set(stat.Key("Playtime"), stat.NewElapsed(90*time.Minute))
	t.Set(stat.Key("Crops Grown"), stat.NewCountMap(map[string]uint64{"Potato": 5}))
	return t
}

func TestSnapshotRows(t *testing.T) {
	rows := Snapshot(3, testTable())

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Sorted key order
	wantKeys := []string{"Crops Grown", "Enemies Killed", "Playtime"}
	for i, want := range wantKeys {
		if rows[i].Key != want {
			t.Errorf("row %d key = %q, want %q", i, rows[i].Key, want)
		}
		if rows[i].Step != 3 {
			t.Errorf("row %d step = %d, want 3", i, rows[i].Step)
		}
	}

	byKey := map[string]Row{}
	for _, r := range rows {
		byKey[r.Key] = r
	}
	if r := byKey["Enemies Killed"]; r.Kind != "counter" || r.Value != "42" {
		t.Errorf("counter row = %+v", r)
	}
	if r := byKey["Playtime"]; r.Kind != "elapsed" || r.Value != "1h30m0s" {
		t.Errorf("elapsed row = %+v", r)
	}
	if r := byKey["Crops Grown"]; r.Kind != "countmap" || r.Value != "{Potato: 5}" {
		t.Errorf("countmap row = %+v", r)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("disabled manager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should return nil manager")
	}

	// All methods are nil-safe
	if err := om.WriteSnapshot(0, testTable()); err != nil {
		t.Errorf("nil WriteSnapshot: %v", err)
	}
	if err := om.WriteTableYAML("t.yaml", testTable()); err != nil {
		t.Errorf("nil WriteTableYAML: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir() = %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestWriteSnapshotCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}

	if err := om.WriteSnapshot(1, testTable()); err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	if err := om.WriteSnapshot(2, testTable()); err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatalf("reading stats.csv: %v", err)
	}
	content := string(data)

	// One header plus 3 rows per snapshot
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 7 {
		t.Errorf("got %d lines, want 7:\n%s", len(lines), content)
	}
	if !strings.HasPrefix(lines[0], "step,key,kind,value") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(content, "step,key,kind,value") != 1 {
		t.Error("header written more than once")
	}
	if !strings.Contains(content, "Enemies Killed,counter,42") {
		t.Errorf("missing counter row:\n%s", content)
	}
}

func TestTableYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}
	defer om.Close()

	orig := testTable()
	if err := om.WriteTableYAML("final.yaml", orig); err != nil {
		t.Fatalf("write: %v", err)
	}

	restored, err := ReadTableYAML(filepath.Join(dir, "final.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !orig.Equal(restored) {
		t.Error("round trip lost data")
	}
}

func TestReadTableYAMLMissingFile(t *testing.T) {
	if _, err := ReadTableYAML(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file read without error")
	}
}
