// Package testutils provides entity fixtures shared by the package
// tests.
package testutils

import (
	"fmt"

	"github.com/talgard/crownlands/internal/domain/army"
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/place"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/world"
)

// StartDate is the calendar date test worlds begin at.
var StartDate = shared.Date{Year: 1320, Season: shared.SeasonSpring}

// CreateTestNPC creates a healthy adult NPC born in spring 1290.
func CreateTestNPC(id, name string, sex shared.Sex) *character.Character {
	c, err := character.New(shared.CharacterID(id), name, "", sex,
		shared.Date{Year: 1290, Season: shared.SeasonSpring}, 12)
	if err != nil {
		panic(fmt.Sprintf("test npc %s: %v", id, err))
	}
	c.Kind = character.NonPlayerKind(nil)
	c.Virility = 5
	c.BaseManagement = 5
	c.BaseCombat = 5
	c.Days = 30
	return c
}

// CreateTestPC creates an adult player character bound to the given
// player.
func CreateTestPC(id, name string, playerID shared.PlayerID) *character.Character {
	c, err := character.New(shared.CharacterID(id), name, "", shared.SexMale,
		shared.Date{Year: 1290, Season: shared.SeasonSpring}, 12)
	if err != nil {
		panic(fmt.Sprintf("test pc %s: %v", id, err))
	}
	c.Kind = character.PlayerKind(&character.PlayerState{PlayerID: playerID})
	c.Virility = 5
	c.BaseManagement = 5
	c.BaseCombat = 5
	c.Days = 30
	return c
}

// CreateTestFief creates a fief inside a province.
func CreateTestFief(id, name string, provinceID shared.PlaceID) *place.Fief {
	return &place.Fief{
		FiefID:     shared.PlaceID(id),
		FiefName:   name,
		Language:   "common",
		Loyalty:    5,
		Treasury:   1000,
		ProvinceID: provinceID,
	}
}

// CreateTestProvince creates a province inside a kingdom.
func CreateTestProvince(id, name string, kingdomID shared.PlaceID, fiefs ...shared.PlaceID) *place.Province {
	return &place.Province{
		ProvID:    shared.PlaceID(id),
		ProvName:  name,
		KingdomID: kingdomID,
		FiefIDs:   fiefs,
	}
}

// CreateTestKingdom creates a kingdom.
func CreateTestKingdom(id, name string, provinces ...shared.PlaceID) *place.Kingdom {
	return &place.Kingdom{
		KingdomID:   shared.PlaceID(id),
		KingdomName: name,
		ProvinceIDs: provinces,
	}
}

// CreateTestArmy creates an army with a flat hundred of each troop type.
func CreateTestArmy(id string, owner shared.CharacterID) *army.Army {
	a := &army.Army{
		ArmyID:     shared.ArmyID(id),
		OwnerID:    owner,
		Aggression: army.DefaultAggression,
		CombatOdds: army.DefaultCombatOdds,
	}
	for i := range a.Troops {
		a.Troops[i] = 100
	}
	return a
}

// CreateTestWorld builds a small realm: king chr_king (player p1) owns
// kingdom_1, province_1 and fief_1..fief_3, holds all their titles, and
// stands in fief_1 next to the unattached npc chr_npc.
func CreateTestWorld() *world.World {
	w := world.New(StartDate)

	kingdom := CreateTestKingdom("kingdom_1", "Aldmark", "province_1")
	province := CreateTestProvince("province_1", "Westvale", "kingdom_1", "fief_1", "fief_2", "fief_3")
	fiefs := []*place.Fief{
		CreateTestFief("fief_1", "Ashford", "province_1"),
		CreateTestFief("fief_2", "Birchham", "province_1"),
		CreateTestFief("fief_3", "Caldwell", "province_1"),
	}

	king := CreateTestPC("chr_king", "Osric", "p1")
	st, _ := king.Player()
	st.Purse = 10000

	kingdom.OwnerID = king.ID
	kingdom.TitleHolderID = king.ID
	province.OwnerID = king.ID
	province.TitleHolderID = king.ID
	st.Provinces = append(st.Provinces, province.ID())
	king.AddTitle(kingdom.ID())
	king.AddTitle(province.ID())

	for _, f := range fiefs {
		f.OwnerID = king.ID
		f.AncestralOwner = king.ID
		f.TitleHolderID = king.ID
		st.Fiefs = append(st.Fiefs, f.ID())
		king.AddTitle(f.ID())
	}

	king.Location = "fief_1"
	fiefs[0].AddCharacter(king.ID)

	npc := CreateTestNPC("chr_npc", "Wat", shared.SexMale)
	npc.Location = "fief_1"
	fiefs[0].AddCharacter(npc.ID)

	mustAdd := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	mustAdd(w.AddPlace(kingdom))
	mustAdd(w.AddPlace(province))
	for _, f := range fiefs {
		mustAdd(w.AddPlace(f))
	}
	mustAdd(w.AddCharacter(king))
	mustAdd(w.AddCharacter(npc))

	w.BindSession(&world.Session{
		PlayerID:        "p1",
		RootCharacter:   king.ID,
		ActiveCharacter: king.ID,
		Connected:       true,
	})

	return w
}
