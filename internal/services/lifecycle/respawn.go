package lifecycle

import (
	"context"
	"log"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/place"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/world"
)

var (
	maleNames   = []string{"Aldric", "Bertram", "Corwin", "Dunstan", "Edmund", "Godwin", "Harold", "Osric", "Randolf", "Wilfred"}
	femaleNames = []string{"Adela", "Beatrix", "Cecily", "Edith", "Gisela", "Ida", "Maud", "Rohese", "Sybil", "Winifred"}
)

// respawnNPC replaces a dead unaffiliated or employed NPC with a fresh
// record: new id, new name, traits and language seeded from the
// deceased, placed in a random fief speaking the same language when
// one exists.
func (s *service) respawnNPC(ctx context.Context, deceased *character.Character) *Outcome {
	id := shared.CharacterID("chr_" + s.ids.New())

	sex := shared.SexMale
	if s.rand.Percent() < 50 {
		sex = shared.SexFemale
	}

	born := shared.Date{
		Year:   s.world.Now.Year - int(s.rand.Between(18, 30)),
		Season: shared.Season(int(s.rand.Float64(4))),
	}

	npc, err := character.New(id, s.pickName(sex), deceased.FamilyName, sex, born, s.rand.Between(8, 12))
	if err != nil {
		log.Printf("lifecycle: respawn of %s failed: %v", deceased.ID, err)
		return deny(MsgUnknownCharacter, fields("character", string(deceased.ID)))
	}

	npc.Language = deceased.Language
	npc.Nation = deceased.Nation
	npc.Traits = deceased.Traits
	npc.Virility = s.rand.Between(1, 9)
	npc.BaseManagement = s.rand.Between(1, 9)
	npc.BaseCombat = s.rand.Between(1, 9)
	npc.Kind = character.NonPlayerKind(&character.NonPlayerState{})

	home := s.pickRespawnFief(deceased.Language)
	if home != nil {
		npc.Location = home.ID()
		home.AddCharacter(npc.ID)
	}
	s.world.SetDays(npc, world.DayAllowance(npc))

	if err := s.world.AddCharacter(npc); err != nil {
		log.Printf("lifecycle: respawn of %s failed to register: %v", deceased.ID, err)
		return deny(MsgUnknownCharacter, fields("character", string(deceased.ID)))
	}

	return succeed(MsgRespawn, fields(
		"deceased", deceased.Name(),
		"replacement", npc.Name(),
	))
}

func (s *service) pickName(sex shared.Sex) string {
	names := maleNames
	if sex == shared.SexFemale {
		names = femaleNames
	}
	return names[int(s.rand.Float64(float64(len(names))))]
}

// pickRespawnFief prefers a random same-language fief, falling back to
// any fief.
func (s *service) pickRespawnFief(language string) *place.Fief {
	candidates := s.world.FiefsByLanguage(language)
	if len(candidates) == 0 {
		candidates = s.world.Fiefs()
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[int(s.rand.Float64(float64(len(candidates))))]
}
