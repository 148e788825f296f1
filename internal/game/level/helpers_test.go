package level_test

import (
	"github.com/cory-johannsen/proflevels/internal/game/profession"
	"github.com/cory-johannsen/proflevels/internal/game/property"
)

// fakeProfession is an in-memory Profession keyed by the known primary table.
type fakeProfession struct {
	code profession.Code
}

var primaryTable = map[profession.Code][]property.Code{
	profession.Fighter:   {property.Strength, property.Agility},
	profession.Thief:     {property.Agility, property.Knack},
	profession.Ranger:    {property.Strength, property.Knack},
	profession.Wizard:    {property.Will, property.Intelligence},
	profession.Theurgist: {property.Intelligence, property.Charisma},
	profession.Priest:    {property.Will, property.Charisma},
}

func makeProfession(code profession.Code) *fakeProfession {
	return &fakeProfession{code: code}
}

func (f *fakeProfession) Code() profession.Code { return f.code }

func (f *fakeProfession) PrimaryProperties() []property.Code {
	return append([]property.Code(nil), primaryTable[f.code]...)
}

func (f *fakeProfession) IsPrimaryProperty(code property.Code) bool {
	for _, p := range primaryTable[f.code] {
		if p == code {
			return true
		}
	}
	return false
}

func isPrimary(prof profession.Code, code property.Code) bool {
	return makeProfession(prof).IsPrimaryProperty(code)
}

// primaryIncrements spends one point on each primary property of prof.
func primaryIncrements(prof profession.Code) property.Increments {
	return property.FromCodes(primaryTable[prof]...)
}

// oneProperty returns increments with value on code and zero elsewhere.
func oneProperty(code property.Code, value int) property.Increments {
	return property.Increments{}.With(code, value)
}
