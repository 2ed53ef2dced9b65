// Package place models the nested place hierarchy: fiefs within
// provinces within kingdoms. The engine consumes places through the
// Place contract; the economic model behind treasury numbers lives
// outside this module.
package place

import (
	"github.com/talgard/crownlands/internal/domain/shared"
)

// Rank orders the place hierarchy.
type Rank int

const (
	RankFief Rank = iota + 1
	RankProvince
	RankKingdom
)

// StatureValue is the stature a held title of this rank confers.
func (r Rank) StatureValue() float64 {
	switch r {
	case RankFief:
		return 3
	case RankProvince:
		return 6
	case RankKingdom:
		return 9
	default:
		return 0
	}
}

// Place is the contract every tier of the hierarchy satisfies.
type Place interface {
	ID() shared.PlaceID
	Name() string
	Rank() Rank
	Owner() shared.CharacterID
	TransferOwnership(to shared.CharacterID)
	TitleHolder() shared.CharacterID
	SetTitleHolder(to shared.CharacterID)
}
