// Package property defines the six base property codes and per-level increments.
package property

import (
	"fmt"
	"strings"
)

// Code identifies one of the six base properties.
type Code string

const (
	Strength     Code = "strength"
	Agility      Code = "agility"
	Knack        Code = "knack"
	Will         Code = "will"
	Intelligence Code = "intelligence"
	Charisma     Code = "charisma"
)

// All returns every base property code in canonical order.
//
// Postcondition: Returns a fresh slice of exactly six distinct codes.
func All() []Code {
	return []Code{Strength, Agility, Knack, Will, Intelligence, Charisma}
}

// Valid reports whether c is one of the six known codes.
func (c Code) Valid() bool {
	switch c {
	case Strength, Agility, Knack, Will, Intelligence, Charisma:
		return true
	}
	return false
}

// String returns the code text.
func (c Code) String() string {
	return string(c)
}

// Abbrev returns the short display label for the code.
func (c Code) Abbrev() string {
	names := map[Code]string{
		Strength:     "STR",
		Agility:      "AGI",
		Knack:        "KNA",
		Will:         "WIL",
		Intelligence: "INT",
		Charisma:     "CHA",
	}
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("<%s>", string(c))
}

// ParseCode converts text into a Code, ignoring case and surrounding space.
//
// Postcondition: Returns a valid Code or a non-nil error.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown property code %q", s)
	}
	return c, nil
}

// Increment is the delta applied to a single base property at one level.
type Increment struct {
	code  Code
	value int
}

// NewIncrement pairs a property code with its delta.
func NewIncrement(code Code, value int) Increment {
	return Increment{code: code, value: value}
}

// Code returns the property this increment applies to.
func (i Increment) Code() Code { return i.code }

// Value returns the delta.
func (i Increment) Value() int { return i.value }

// Increments holds the six per-level deltas of a single level.
type Increments struct {
	Strength     int
	Agility      int
	Knack        int
	Will         int
	Intelligence int
	Charisma     int
}

// Get returns the delta for code, or 0 for an unknown code.
func (in Increments) Get(code Code) int {
	switch code {
	case Strength:
		return in.Strength
	case Agility:
		return in.Agility
	case Knack:
		return in.Knack
	case Will:
		return in.Will
	case Intelligence:
		return in.Intelligence
	case Charisma:
		return in.Charisma
	}
	return 0
}

// Of returns the delta for code as an Increment.
func (in Increments) Of(code Code) Increment {
	return NewIncrement(code, in.Get(code))
}

// Sum returns the total of all six deltas.
func (in Increments) Sum() int {
	return in.Strength + in.Agility + in.Knack + in.Will + in.Intelligence + in.Charisma
}

// With returns a copy of in with the delta for code replaced by value.
// Unknown codes leave the copy unchanged.
func (in Increments) With(code Code, value int) Increments {
	switch code {
	case Strength:
		in.Strength = value
	case Agility:
		in.Agility = value
	case Knack:
		in.Knack = value
	case Will:
		in.Will = value
	case Intelligence:
		in.Intelligence = value
	case Charisma:
		in.Charisma = value
	}
	return in
}

// FromCodes returns Increments with value 1 for every listed code and 0 elsewhere.
func FromCodes(codes ...Code) Increments {
	var in Increments
	for _, c := range codes {
		in = in.With(c, 1)
	}
	return in
}
