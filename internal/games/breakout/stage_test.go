package breakout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantErr bool
		isEmpty bool
	}{
		{"single block", []string{"1"}, false, false},
		{"blanks and steel", []string{"X.1 X"}, false, false},
		{"all symbols", []string{"1234567GX"}, false, false},
		{"unknown symbol", []string{"11", "1?"}, true, false},
		{"steel only", []string{"XXX"}, true, true},
		{"blank", []string{"...", "   "}, true, true},
		{"no rows", nil, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStage("t", "T", tc.rows)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseStage() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.isEmpty && !errors.Is(err, ErrEmptyStage) {
				t.Errorf("expected ErrEmptyStage, got %v", err)
			}
		})
	}
}

func TestBuiltinStages(t *testing.T) {
	stages := BuiltinStages()
	if len(stages) == 0 {
		t.Fatal("no built-in stages")
	}

	seen := map[string]bool{}
	for _, s := range stages {
		if s.ID == "" || s.Name == "" {
			t.Errorf("stage %+v lacks an id or name", s)
		}
		if seen[s.ID] {
			t.Errorf("duplicate stage id %q", s.ID)
		}
		seen[s.ID] = true

		if err := s.Validate(); err != nil {
			t.Errorf("stage %s invalid: %v", s.ID, err)
		}
		if blocks := s.Layout(testField(), testConfig().Blocks); len(blocks) == 0 {
			t.Errorf("stage %s lays out no blocks", s.ID)
		}
	}
}

func TestStageLayout(t *testing.T) {
	s := Stage{ID: "grid", Rows: []string{"11", "1."}}
	blocks := s.Layout(testField(), testConfig().Blocks)

	want := []core.Box{
		{X: 2, Y: 4, W: 37, H: 1},
		{X: 40, Y: 4, W: 37, H: 1},
		{X: 2, Y: 5, W: 37, H: 1},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, expected %d", len(blocks), len(want))
	}
	for i, b := range blocks {
		if b.Bounds() != want[i] {
			t.Errorf("block %d at %+v, expected %+v", i, b.Bounds(), want[i])
		}
	}
}

func TestStageLayoutInsideField(t *testing.T) {
	field := testField()
	for _, s := range BuiltinStages() {
		for _, b := range s.Layout(field, testConfig().Blocks) {
			bb := b.Bounds()
			if bb.Left() < field.Left() || bb.Right() > field.Right() || bb.Top() < field.Top() {
				t.Errorf("stage %s: block %+v outside field %+v", s.ID, bb, field)
			}
		}
	}
}

func TestStageLayoutMinWidth(t *testing.T) {
	row := ""
	for range 60 {
		row += "1"
	}
	field := testField()
	blocks := Stage{ID: "wide", Rows: []string{row}}.Layout(field, testConfig().Blocks)

	if len(blocks) == 0 || len(blocks) >= 60 {
		t.Fatalf("got %d blocks, expected the ones that fit in %v columns", len(blocks), field.W)
	}
	for _, b := range blocks {
		bb := b.Bounds()
		if bb.W != minBlockWidth {
			t.Fatalf("block width = %v, expected %v", bb.W, float64(minBlockWidth))
		}
		if bb.Left() < field.Left() || bb.Right() > field.Right() {
			t.Errorf("block %+v outside field %+v", bb, field)
		}
	}
}

func TestStageLayoutDropsRowsBelowField(t *testing.T) {
	rows := make([]string, 40)
	for i := range rows {
		rows[i] = "1"
	}
	field := testField()
	blocks := Stage{ID: "tall", Rows: rows}.Layout(field, testConfig().Blocks)

	if len(blocks) == 0 || len(blocks) >= len(rows) {
		t.Fatalf("got %d blocks for %d rows", len(blocks), len(rows))
	}
	for _, b := range blocks {
		if b.Bounds().Bottom() > field.Bottom() {
			t.Errorf("block %+v below field %+v", b.Bounds(), field)
		}
	}
}

func TestStageColumns(t *testing.T) {
	s := Stage{Rows: []string{"1", "1.1.1", "11"}}
	if got := s.Columns(); got != 5 {
		t.Errorf("Columns() = %d, expected 5", got)
	}
}

func TestStageDestructible(t *testing.T) {
	s := Stage{Rows: []string{"X1X", "G.7", "??2"}}
	if got := s.Destructible(); got != 4 {
		t.Errorf("Destructible() = %d, expected 4", got)
	}
}

func writeStageFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadStagesDir(t *testing.T) {
	dir := t.TempDir()
	writeStageFile(t, dir, "b.yaml", `
stages:
  - id: "02"
    name: Second
    rows: ["22"]
`)
	writeStageFile(t, dir, "a.yml", `
stages:
  - id: "01"
    name: First
    rows: ["1X1"]
`)
	writeStageFile(t, dir, "notes.txt", "not a stage")

	stages, err := LoadStagesDir(dir)
	if err != nil {
		t.Fatalf("LoadStagesDir() error = %v", err)
	}
	if len(stages) != 2 || stages[0].ID != "01" || stages[1].ID != "02" {
		t.Fatalf("stages = %+v", stages)
	}
	if stages[0].Name != "First" || stages[0].Rows[0] != "1X1" {
		t.Errorf("first stage = %+v", stages[0])
	}
}

func TestLoadStagesDirErrors(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		if _, err := LoadStagesDir(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("empty stage", func(t *testing.T) {
		dir := t.TempDir()
		writeStageFile(t, dir, "bad.yaml", `
stages:
  - id: "x"
    name: Steel
    rows: ["XX"]
`)
		_, err := LoadStagesDir(dir)
		if !errors.Is(err, ErrEmptyStage) {
			t.Errorf("expected ErrEmptyStage, got %v", err)
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeStageFile(t, dir, "bad.yaml", "stages: [\n")
		if _, err := LoadStagesDir(dir); err == nil {
			t.Error("expected parse error")
		}
	})
}
