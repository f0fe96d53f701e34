package build

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/buildcalc/internal/model"
)

// File is the YAML form of a build.
type File struct {
	SubSchool  model.SubSchool       `yaml:"sub_school"`
	BaseStats  model.PanelStats      `yaml:"base_stats"`
	Items      []model.EquipmentItem `yaml:"items"`
	Techniques []string              `yaml:"techniques"`
	ArmorSet   model.ArmorSetConfig  `yaml:"armor_set"`
	Target     *model.CombatTarget   `yaml:"target"`
	Skill      *model.Skill          `yaml:"skill"`
}

// LoadFile reads a build file.
func LoadFile(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading build file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("parsing build file %s: %w", path, err)
	}
	return f, nil
}

// Apply replaces the session's selections with the file's, validating each
// edit the same way the individual setters do. The session is left
// unchanged when any edit fails.
func (s *Session) Apply(f File) error {
	staged := s.fork()
	if err := staged.SetSubSchool(f.SubSchool); err != nil {
		return err
	}
	staged.SetBaseStats(f.BaseStats)
	for _, item := range f.Items {
		if err := staged.Equip(item); err != nil {
			return err
		}
	}
	if len(f.Techniques) > model.TechniqueSlots {
		return fmt.Errorf("%w: %d techniques, max %d", ErrTechniqueSlot, len(f.Techniques), model.TechniqueSlots)
	}
	for i, name := range f.Techniques {
		if err := staged.SetTechnique(i, name); err != nil {
			return err
		}
	}
	if err := staged.SetArmorSet(f.ArmorSet); err != nil {
		return err
	}
	if f.Target != nil {
		staged.SetTarget(*f.Target)
	}
	if f.Skill != nil {
		staged.SetSkill(*f.Skill)
	}

	sel := staged.Selections()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = sel
	return nil
}

// fork returns an empty, uncached session sharing s's tables and engines,
// with s's target and skill.
func (s *Session) fork() *Session {
	cur := s.Selections()
	return &Session{
		tables:    s.tables,
		consts:    s.consts,
		conv:      s.conv,
		checker:   s.checker,
		evaluator: s.evaluator,
		optimizer: s.optimizer,
		sel: Selections{
			Equipment: make(map[model.Slot]model.EquipmentItem),
			Target:    cur.Target,
			Skill:     cur.Skill,
		},
	}
}
