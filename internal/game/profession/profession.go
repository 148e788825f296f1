// Package profession defines the six professions and the base properties each favours.
package profession

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/proflevels/internal/game/property"
)

// Code identifies a profession.
type Code string

const (
	Fighter   Code = "fighter"
	Thief     Code = "thief"
	Ranger    Code = "ranger"
	Wizard    Code = "wizard"
	Theurgist Code = "theurgist"
	Priest    Code = "priest"
)

// Codes returns every profession code in canonical order.
func Codes() []Code {
	return []Code{Fighter, Thief, Ranger, Wizard, Theurgist, Priest}
}

// Valid reports whether c is one of the six known codes.
func (c Code) Valid() bool {
	switch c {
	case Fighter, Thief, Ranger, Wizard, Theurgist, Priest:
		return true
	}
	return false
}

func (c Code) String() string { return string(c) }

// ParseCode converts text into a Code, ignoring case and surrounding space.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown profession code %q", s)
	}
	return c, nil
}

// ErrInvalidProfession is returned when a profession definition breaks its invariants.
var ErrInvalidProfession = errors.New("invalid profession")

// Profession is a playable profession with exactly two primary base properties.
//
// Invariant: code is valid; primary holds two distinct valid property codes.
type Profession struct {
	code    Code
	name    string
	primary [2]property.Code
}

// New builds a Profession.
//
// Precondition: code must be valid; primaries must be exactly two distinct valid property codes.
// Postcondition: Returns a Profession or an error wrapping ErrInvalidProfession.
func New(code Code, name string, primaries ...property.Code) (*Profession, error) {
	if !code.Valid() {
		return nil, fmt.Errorf("%w: unknown code %q", ErrInvalidProfession, code)
	}
	if len(primaries) != 2 {
		return nil, fmt.Errorf("%w: %s must have exactly 2 primary properties, got %d",
			ErrInvalidProfession, code, len(primaries))
	}
	for _, p := range primaries {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %s has unknown primary property %q", ErrInvalidProfession, code, p)
		}
	}
	if primaries[0] == primaries[1] {
		return nil, fmt.Errorf("%w: %s lists primary property %q twice", ErrInvalidProfession, code, primaries[0])
	}
	if name == "" {
		name = strings.ToUpper(string(code[:1])) + string(code[1:])
	}
	return &Profession{code: code, name: name, primary: [2]property.Code{primaries[0], primaries[1]}}, nil
}

// Code returns the profession code.
func (p *Profession) Code() Code { return p.code }

// Name returns the display name.
func (p *Profession) Name() string { return p.name }

// IsPrimaryProperty reports whether code is one of this profession's two primary properties.
func (p *Profession) IsPrimaryProperty(code property.Code) bool {
	return p.primary[0] == code || p.primary[1] == code
}

// PrimaryProperties returns the two primary property codes.
func (p *Profession) PrimaryProperties() []property.Code {
	return []property.Code{p.primary[0], p.primary[1]}
}

func mustNew(code Code, primaries ...property.Code) *Profession {
	p, err := New(code, "", primaries...)
	if err != nil {
		panic(err)
	}
	return p
}

// Defaults returns the six built-in professions in canonical order.
func Defaults() []*Profession {
	return []*Profession{
		mustNew(Fighter, property.Strength, property.Agility),
		mustNew(Thief, property.Agility, property.Knack),
		mustNew(Ranger, property.Strength, property.Knack),
		mustNew(Wizard, property.Will, property.Intelligence),
		mustNew(Theurgist, property.Intelligence, property.Charisma),
		mustNew(Priest, property.Will, property.Charisma),
	}
}

type professionFile struct {
	Code              string   `yaml:"code"`
	Name              string   `yaml:"name"`
	PrimaryProperties []string `yaml:"primary_properties"`
}

// LoadProfessions reads all .yaml files in dir and parses each as a Profession.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed professions (may be empty slice) or a non-nil error.
func LoadProfessions(dir string) ([]*Profession, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	professions := make([]*Profession, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f professionFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing profession file %s: %w", path, err)
		}
		p, err := f.profession()
		if err != nil {
			return nil, fmt.Errorf("profession file %s: %w", path, err)
		}
		professions = append(professions, p)
	}
	return professions, nil
}

func (f professionFile) profession() (*Profession, error) {
	code, err := ParseCode(f.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfession, err)
	}
	primaries := make([]property.Code, 0, len(f.PrimaryProperties))
	for _, raw := range f.PrimaryProperties {
		pc, err := property.ParseCode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProfession, err)
		}
		primaries = append(primaries, pc)
	}
	return New(code, f.Name, primaries...)
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
