package place

import (
	"github.com/talgard/crownlands/internal/domain/shared"
)

// Fief is the lowest tier of the hierarchy: the place characters
// actually stand in, with a garrison gaol and an appointed bailiff.
type Fief struct {
	FiefID     shared.PlaceID `json:"id"`
	FiefName   string         `json:"name"`
	Language   string         `json:"language"`
	Loyalty    float64        `json:"loyalty"`
	Treasury   int64          `json:"treasury"`
	ProvinceID shared.PlaceID `json:"province"`

	OwnerID         shared.CharacterID `json:"owner,omitempty"`
	AncestralOwner  shared.CharacterID `json:"ancestral_owner,omitempty"`
	TitleHolderID   shared.CharacterID `json:"title_holder,omitempty"`
	BailiffID       shared.CharacterID `json:"bailiff,omitempty"`
	SiegeID         shared.SiegeID     `json:"siege,omitempty"`

	Present   []shared.CharacterID `json:"present,omitempty"`
	Prisoners []shared.CharacterID `json:"prisoners,omitempty"`
}

func (f *Fief) ID() shared.PlaceID          { return f.FiefID }
func (f *Fief) Name() string                { return f.FiefName }
func (f *Fief) Rank() Rank                  { return RankFief }
func (f *Fief) Owner() shared.CharacterID   { return f.OwnerID }
func (f *Fief) TransferOwnership(to shared.CharacterID) { f.OwnerID = to }
func (f *Fief) TitleHolder() shared.CharacterID         { return f.TitleHolderID }
func (f *Fief) SetTitleHolder(to shared.CharacterID)    { f.TitleHolderID = to }

// UnderSiege reports whether a siege is in progress.
func (f *Fief) UnderSiege() bool { return f.SiegeID != "" }

// AvailableTreasury exposes the treasury hook; the tax model feeding it
// is an external concern.
func (f *Fief) AvailableTreasury() int64 { return f.Treasury }

// AdjustTreasury applies a delta, flooring at zero.
func (f *Fief) AdjustTreasury(delta int64) {
	f.Treasury += delta
	if f.Treasury < 0 {
		f.Treasury = 0
	}
}

// HasCharacter reports whether the character is present in the fief.
func (f *Fief) HasCharacter(id shared.CharacterID) bool {
	for _, c := range f.Present {
		if c == id {
			return true
		}
	}
	return false
}

// AddCharacter records presence, ignoring duplicates.
func (f *Fief) AddCharacter(id shared.CharacterID) {
	if f.HasCharacter(id) {
		return
	}
	f.Present = append(f.Present, id)
}

// RemoveCharacter clears presence if recorded.
func (f *Fief) RemoveCharacter(id shared.CharacterID) {
	for i, c := range f.Present {
		if c == id {
			f.Present = append(f.Present[:i], f.Present[i+1:]...)
			return
		}
	}
}

// InGaol reports whether the character is imprisoned here.
func (f *Fief) InGaol(id shared.CharacterID) bool {
	for _, c := range f.Prisoners {
		if c == id {
			return true
		}
	}
	return false
}

// Imprison adds the character to the gaol, ignoring duplicates.
func (f *Fief) Imprison(id shared.CharacterID) {
	if f.InGaol(id) {
		return
	}
	f.Prisoners = append(f.Prisoners, id)
}

// ReleasePrisoner removes the character from the gaol if held.
func (f *Fief) ReleasePrisoner(id shared.CharacterID) {
	for i, c := range f.Prisoners {
		if c == id {
			f.Prisoners = append(f.Prisoners[:i], f.Prisoners[i+1:]...)
			return
		}
	}
}
