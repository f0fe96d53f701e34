// Package data loads the read-only game tables: constants, affix ranges and
// pools, martial-art techniques, armor sets and reference builds.
package data

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/buildcalc/internal/model"
)

//go:embed gamedata/*.yaml
var embedded embed.FS

var (
	ErrUnknownSubSchool = errors.New("unknown sub-school")
	ErrUnknownTechnique = errors.New("unknown technique")
	ErrUnknownArmorSet  = errors.New("unknown armor set")
)

// Tables is the full read-only game-data set. A loaded Tables value is never
// mutated and may be shared between goroutines.
type Tables struct {
	Constants     GameConstants
	Affixes       map[string]AffixDefinition
	Pools         AffixPools
	MartialArts   map[model.SubSchool]MartialArtSchool
	Universal     MartialArtSchool
	OptimalBuilds map[model.SubSchool]OptimalBuild
	ArmorSets     map[model.ArmorSet]model.SetBonus
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the embedded tables, loaded on first use.
// It panics if the embedded data is malformed, which is a build defect.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := LoadFS(embeddedFS())
		if err != nil {
			panic(fmt.Sprintf("loading embedded game data: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

func embeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "gamedata")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load reads the game-data tables from dir. An empty dir selects the
// embedded tables.
func Load(dir string) (*Tables, error) {
	if dir == "" {
		return LoadFS(embeddedFS())
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every table from fsys and cross-checks references between them.
func LoadFS(fsys fs.FS) (*Tables, error) {
	t := &Tables{}

	if err := decodeFile(fsys, "constants.yaml", &t.Constants); err != nil {
		return nil, err
	}
	slog.Info("loaded game constants", "version", t.Constants.Version, "resistance_levels", len(t.Constants.ResistanceTable))

	var affixes struct {
		Affixes map[string]AffixDefinition `yaml:"affixes"`
	}
	if err := decodeFile(fsys, "affix_values.yaml", &affixes); err != nil {
		return nil, err
	}
	t.Affixes = affixes.Affixes
	slog.Info("loaded affix values", "count", len(t.Affixes))

	if err := decodeFile(fsys, "affix_pools.yaml", &t.Pools); err != nil {
		return nil, err
	}
	slog.Info("loaded affix pools", "schools", len(t.Pools.Schools), "sub_schools", len(t.Pools.SubSchools))

	var arts struct {
		Schools   map[model.SubSchool]MartialArtSchool `yaml:"schools"`
		Universal MartialArtSchool                     `yaml:"universal"`
	}
	if err := decodeFile(fsys, "martial_arts.yaml", &arts); err != nil {
		return nil, err
	}
	t.MartialArts = arts.Schools
	t.Universal = arts.Universal
	slog.Info("loaded techniques", "schools", len(t.MartialArts), "universal", len(t.Universal.Techniques))

	var builds struct {
		Builds map[model.SubSchool]OptimalBuild `yaml:"builds"`
	}
	if err := decodeFile(fsys, "optimal_builds.yaml", &builds); err != nil {
		return nil, err
	}
	t.OptimalBuilds = builds.Builds
	slog.Info("loaded optimal builds", "count", len(t.OptimalBuilds))

	var sets struct {
		Sets map[model.ArmorSet]model.SetBonus `yaml:"sets"`
	}
	if err := decodeFile(fsys, "armor_sets.yaml", &sets); err != nil {
		return nil, err
	}
	t.ArmorSets = make(map[model.ArmorSet]model.SetBonus, len(sets.Sets))
	for id, b := range sets.Sets {
		b.Set = id
		t.ArmorSets[id] = b
	}
	slog.Info("loaded armor sets", "count", len(t.ArmorSets))

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("validating game data: %w", err)
	}
	return t, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func (t *Tables) validate() error {
	for sub, info := range t.Pools.SubSchools {
		if _, ok := t.Pools.Schools[info.ParentSchool]; !ok {
			return fmt.Errorf("sub-school %s: unknown parent school %q", sub, info.ParentSchool)
		}
	}
	for sub := range t.OptimalBuilds {
		if _, ok := t.Pools.SubSchools[sub]; !ok {
			return fmt.Errorf("optimal build: %w %q", ErrUnknownSubSchool, sub)
		}
	}
	for sub := range t.MartialArts {
		if _, ok := t.Pools.SubSchools[sub]; !ok {
			return fmt.Errorf("martial arts: %w %q", ErrUnknownSubSchool, sub)
		}
	}
	if t.Constants.PenetrationCoefficient <= 0 {
		return errors.New("penetration_coefficient must be positive")
	}
	return nil
}
