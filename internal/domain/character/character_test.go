package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/shared"
	"github.com/talgard/crownlands/internal/domain/trait"
	cerr "github.com/talgard/crownlands/internal/errors"
)

var born = shared.Date{Year: 1300, Season: shared.SeasonSpring}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		id        shared.CharacterID
		sex       shared.Sex
		maxHealth float64
		wantErr   bool
	}{
		{name: "valid", id: "chr_1", sex: shared.SexMale, maxHealth: 10},
		{name: "empty id", id: "", sex: shared.SexMale, maxHealth: 10, wantErr: true},
		{name: "pipe in id", id: "chr|1", sex: shared.SexMale, maxHealth: 10, wantErr: true},
		{name: "invalid sex", id: "chr_1", sex: "other", maxHealth: 10, wantErr: true},
		{name: "zero max health", id: "chr_1", sex: shared.SexFemale, maxHealth: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := character.New(tt.id, "Edric", "Vane", tt.sex, born, tt.maxHealth)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, cerr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, c.Alive)
			assert.Equal(t, tt.id, c.ID)
			assert.Equal(t, "Edric Vane", c.Name())
		})
	}
}

func TestTitles(t *testing.T) {
	c, err := character.New("chr_1", "Edric", "Vane", shared.SexMale, born, 10)
	require.NoError(t, err)

	c.AddTitle("fief_1")
	c.AddTitle("fief_1") // duplicate ignored
	c.AddTitle("fief_2")
	assert.Equal(t, []shared.PlaceID{"fief_1", "fief_2"}, c.Titles)
	assert.True(t, c.HoldsTitle("fief_1"))

	c.RemoveTitle("fief_1")
	assert.False(t, c.HoldsTitle("fief_1"))
	assert.Equal(t, []shared.PlaceID{"fief_2"}, c.Titles)

	c.RemoveTitle("fief_9") // absent, no-op
	assert.Equal(t, []shared.PlaceID{"fief_2"}, c.Titles)
}

func TestTraitEffect(t *testing.T) {
	c, err := character.New("chr_1", "Edric", "Vane", shared.SexMale, born, 10)
	require.NoError(t, err)
	assert.Zero(t, c.TraitEffect(shared.StatStealth))

	shadow, err := trait.NewHolding(trait.Shadow, 3)
	require.NoError(t, err)
	c.Traits = append(c.Traits, shadow)

	assert.InDelta(t, 0.6*3.0/9.0, c.TraitEffect(shared.StatStealth), 1e-9)
	assert.Equal(t, 3, c.TraitLevel("shadow"))
	assert.Zero(t, c.TraitLevel("warrior"))
}

func TestValidate(t *testing.T) {
	base := func(t *testing.T) *character.Character {
		t.Helper()
		c, err := character.New("chr_1", "Edric", "Vane", shared.SexMale, born, 10)
		require.NoError(t, err)
		return c
	}

	t.Run("clean record", func(t *testing.T) {
		assert.NoError(t, base(t).Validate())
	})

	t.Run("family member with an employer", func(t *testing.T) {
		c := base(t)
		c.FamilyHead = "chr_2"
		c.Employer = "chr_3"
		assert.Error(t, c.Validate())
	})

	t.Run("pregnant male", func(t *testing.T) {
		c := base(t)
		c.Pregnant = true
		assert.Error(t, c.Validate())
	})

	t.Run("negative days", func(t *testing.T) {
		c := base(t)
		c.Days = -1
		assert.Error(t, c.Validate())
	})
}

func TestAilmentDecay(t *testing.T) {
	c, err := character.New("chr_1", "Edric", "Vane", shared.SexFemale, born, 10)
	require.NoError(t, err)

	c.Inflict(&character.Ailment{Name: "fever", Magnitude: 3, Decay: 2})
	c.Inflict(&character.Ailment{Name: "old wound", Magnitude: 2, Floor: 1, Decay: 1})
	c.Inflict(nil) // ignored
	assert.InDelta(t, 5, c.AilmentTotal(), 1e-9)

	c.DecayAilments()
	assert.InDelta(t, 2, c.AilmentTotal(), 1e-9) // fever 1, wound at floor 1

	c.DecayAilments()
	// Fever healed and dropped; the wound holds at its floor forever.
	require.Len(t, c.Ailments, 1)
	assert.Equal(t, "old wound", c.Ailments[0].Name)
	assert.InDelta(t, 1, c.AilmentTotal(), 1e-9)
}

func TestCaptive(t *testing.T) {
	c, err := character.New("chr_1", "Edric", "Vane", shared.SexMale, born, 10)
	require.NoError(t, err)
	assert.False(t, c.Captive())
	c.Captor = "chr_2"
	assert.True(t, c.Captive())
}
