package place

import (
	"github.com/talgard/crownlands/internal/domain/shared"
)

// Province groups fiefs under a kingdom.
type Province struct {
	ProvID    shared.PlaceID   `json:"id"`
	ProvName  string           `json:"name"`
	KingdomID shared.PlaceID   `json:"kingdom"`
	FiefIDs   []shared.PlaceID `json:"fiefs,omitempty"`

	OwnerID       shared.CharacterID `json:"owner,omitempty"`
	TitleHolderID shared.CharacterID `json:"title_holder,omitempty"`
}

func (p *Province) ID() shared.PlaceID        { return p.ProvID }
func (p *Province) Name() string              { return p.ProvName }
func (p *Province) Rank() Rank                { return RankProvince }
func (p *Province) Owner() shared.CharacterID { return p.OwnerID }
func (p *Province) TransferOwnership(to shared.CharacterID) { p.OwnerID = to }
func (p *Province) TitleHolder() shared.CharacterID         { return p.TitleHolderID }
func (p *Province) SetTitleHolder(to shared.CharacterID)    { p.TitleHolderID = to }

// Kingdom is the top tier; its owner is the king ownerless property
// escheats to.
type Kingdom struct {
	KingdomID   shared.PlaceID   `json:"id"`
	KingdomName string           `json:"name"`
	ProvinceIDs []shared.PlaceID `json:"provinces,omitempty"`

	OwnerID       shared.CharacterID `json:"owner,omitempty"`
	TitleHolderID shared.CharacterID `json:"title_holder,omitempty"`
}

func (k *Kingdom) ID() shared.PlaceID        { return k.KingdomID }
func (k *Kingdom) Name() string              { return k.KingdomName }
func (k *Kingdom) Rank() Rank                { return RankKingdom }
func (k *Kingdom) Owner() shared.CharacterID { return k.OwnerID }
func (k *Kingdom) TransferOwnership(to shared.CharacterID) { k.OwnerID = to }
func (k *Kingdom) TitleHolder() shared.CharacterID         { return k.TitleHolderID }
func (k *Kingdom) SetTitleHolder(to shared.CharacterID)    { k.TitleHolderID = to }
