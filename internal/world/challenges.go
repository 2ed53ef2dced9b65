package world

import (
	"sort"

	"github.com/talgard/crownlands/internal/domain/shared"

	cerr "github.com/talgard/crownlands/internal/errors"
)

// ChallengeKind distinguishes what is being contested.
type ChallengeKind string

const (
	ChallengeProvince ChallengeKind = "province"
	ChallengeKingdom  ChallengeKind = "kingdom"
)

// Challenge is an open ownership dispute over a place. The resolver
// tallies it each season; lifecycle transitions retarget or cancel it
// when the challenger dies.
type Challenge struct {
	ID         string             `json:"id"`
	Challenger shared.CharacterID `json:"challenger"`
	Place      shared.PlaceID     `json:"place"`
	Kind       ChallengeKind      `json:"kind"`
	Seasons    int                `json:"seasons"`
}

// challenges live on the world so both the resolver and the lifecycle
// machine reach them without owning each other.
func (w *World) ensureChallenges() {
	if w.challenges == nil {
		w.challenges = make(map[string]*Challenge)
	}
}

// AddChallenge opens a challenge. Only one open challenge per place is
// permitted.
func (w *World) AddChallenge(c *Challenge) error {
	if c == nil {
		return cerr.InvalidArgument("challenge cannot be nil")
	}
	w.ensureChallenges()
	for _, open := range w.challenges {
		if open.Place == c.Place {
			return cerr.AlreadyExistsf("place %s already has an open challenge", c.Place).
				WithMeta("place_id", string(c.Place))
		}
	}
	w.challenges[c.ID] = c
	return nil
}

// OpenChallenges lists open challenges in id order.
func (w *World) OpenChallenges() []*Challenge {
	w.ensureChallenges()
	out := make([]*Challenge, 0, len(w.challenges))
	for _, c := range w.challenges {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ChallengeFor returns the open challenge on a place, nil when none.
func (w *World) ChallengeFor(place shared.PlaceID) *Challenge {
	w.ensureChallenges()
	for _, c := range w.challenges {
		if c.Place == place {
			return c
		}
	}
	return nil
}

// CloseChallenge removes an open challenge.
func (w *World) CloseChallenge(id string) {
	w.ensureChallenges()
	delete(w.challenges, id)
}

// RetargetChallenger moves open challenges from a deceased challenger
// to their heir.
func (w *World) RetargetChallenger(old, promoted shared.CharacterID) {
	w.ensureChallenges()
	for _, c := range w.challenges {
		if c.Challenger == old {
			c.Challenger = promoted
		}
	}
}

// CancelChallengesBy drops every open challenge raised by the
// character. Used by escheat.
func (w *World) CancelChallengesBy(id shared.CharacterID) {
	w.ensureChallenges()
	for cid, c := range w.challenges {
		if c.Challenger == id {
			delete(w.challenges, cid)
		}
	}
}
