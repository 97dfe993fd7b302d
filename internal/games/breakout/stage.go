package breakout

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

//go:embed stages/builtin.yaml
var builtinStagesYAML []byte

// Stage is a block map. Each rune of a row is one grid cell.
type Stage struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

type stageFile struct {
	Stages []Stage `yaml:"stages"`
}

// ErrEmptyStage is returned for a stage without any block.
var ErrEmptyStage = errors.New("stage has no destructible blocks")

// ParseStage validates a stage map and returns it.
func ParseStage(id, name string, rows []string) (Stage, error) {
	s := Stage{ID: id, Name: name, Rows: rows}
	if err := s.Validate(); err != nil {
		return Stage{}, err
	}
	return s, nil
}

// Validate checks every symbol and that the stage can be cleared.
func (s Stage) Validate() error {
	destructible := 0
	for row, line := range s.Rows {
		for col, r := range []rune(line) {
			if IsBlankSymbol(r) {
				continue
			}
			t, ok := BlockTypeForSymbol(r)
			if !ok {
				return fmt.Errorf("stage %s: unknown symbol %q at row %d col %d", s.ID, r, row, col)
			}
			if blockKinds[t].destructible {
				destructible++
			}
		}
	}
	if destructible == 0 {
		return fmt.Errorf("stage %s: %w", s.ID, ErrEmptyStage)
	}
	return nil
}

// Destructible counts the blocks that must be destroyed to clear the stage.
func (s Stage) Destructible() int {
	n := 0
	for _, line := range s.Rows {
		for _, r := range line {
			if t, ok := BlockTypeForSymbol(r); ok && blockKinds[t].destructible {
				n++
			}
		}
	}
	return n
}

// Columns returns the width of the widest row.
func (s Stage) Columns() int {
	cols := 0
	for _, line := range s.Rows {
		cols = max(cols, len([]rune(line)))
	}
	return cols
}

// minBlockWidth is the narrowest block the layout will produce.
const minBlockWidth = 2

// Layout instantiates the blocks of the stage inside field. Block width is
// derived from the field width and the widest row; the grid is centred.
// Cells that do not fit in field at minBlockWidth are dropped, so a stage
// wider than the screen can still be cleared.
func (s Stage) Layout(field core.Box, cfg config.BlocksConfig) []*Block {
	cols := s.Columns()
	if cols == 0 {
		return nil
	}

	inner := field.W - 2*cfg.Margin
	bw := math.Max(minBlockWidth, math.Floor(inner/float64(cols)-cfg.GapX))
	bh := cfg.Height
	pitchX := bw + cfg.GapX
	pitchY := bh + cfg.GapY
	left := field.Left() + cfg.Margin + math.Floor(math.Max(0, inner-float64(cols)*pitchX)/2)
	top := field.Top() + cfg.TopOffset

	var blocks []*Block
	for row, line := range s.Rows {
		for col, r := range []rune(line) {
			t, ok := BlockTypeForSymbol(r)
			if !ok {
				continue
			}
			x := left + float64(col)*pitchX + math.Floor(cfg.GapX/2)
			y := top + float64(row)*pitchY + math.Floor(cfg.GapY/2)
			if x+bw > field.Right() || y+bh > field.Bottom() {
				continue
			}
			blocks = append(blocks, NewBlock(t, core.Box{X: x, Y: y, W: bw, H: bh}))
		}
	}
	return blocks
}

// BuiltinStages returns the embedded stages in play order.
func BuiltinStages() []Stage {
	stages, err := ParseStages(builtinStagesYAML)
	if err != nil {
		panic(fmt.Sprintf("breakout: built-in stages are invalid: %v", err))
	}
	return stages
}

// ParseStages decodes and validates a stage document.
func ParseStages(data []byte) ([]Stage, error) {
	var f stageFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for _, s := range f.Stages {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Stages, nil
}

// MarshalStages encodes stages in the format ParseStages reads.
func MarshalStages(stages []Stage) ([]byte, error) {
	return yaml.Marshal(stageFile{Stages: stages})
}

// LoadStagesDir reads every .yaml/.yml file under dir.
// Returns stages sorted by ID for deterministic ordering.
func LoadStagesDir(dir string) ([]Stage, error) {
	var stages []Stage

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", path, err)
		}
		parsed, err := ParseStages(data)
		if err != nil {
			return fmt.Errorf("parsing file %s: %w", path, err)
		}
		stages = append(stages, parsed...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}

	// Sort by ID for determinism
	sort.Slice(stages, func(i, j int) bool {
		return stages[i].ID < stages[j].ID
	})
	return stages, nil
}
