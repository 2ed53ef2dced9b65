package world

import (
	"sort"

	"github.com/talgard/crownlands/internal/domain/shared"
)

// BindSession registers (or replaces) a player session.
func (w *World) BindSession(s *Session) {
	if s == nil || s.PlayerID == "" {
		return
	}
	w.sessions[s.PlayerID] = s
}

// SessionFor returns the session of a player, nil when unknown.
func (w *World) SessionFor(playerID shared.PlayerID) *Session {
	if playerID == "" {
		return nil
	}
	return w.sessions[playerID]
}

// PlayerFor maps a character id to the player whose root or active
// character it is. Satisfies the journal's roster contract.
func (w *World) PlayerFor(id shared.CharacterID) (shared.PlayerID, bool) {
	c := w.Character(id)
	if c == nil {
		return "", false
	}
	st, ok := c.Player()
	if !ok || st.PlayerID == "" {
		return "", false
	}
	return st.PlayerID, true
}

// IsConnected reports whether the player has a connected session.
func (w *World) IsConnected(playerID shared.PlayerID) bool {
	s := w.SessionFor(playerID)
	return s != nil && s.Connected
}

// ConnectedPlayers lists players with connected sessions, sorted for
// deterministic iteration.
func (w *World) ConnectedPlayers() []shared.PlayerID {
	var out []shared.PlayerID
	for id, s := range w.sessions {
		if s.Connected {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SwitchControlToRoot rebinds any connected session actively
// controlling the given character back to its root character. Called
// when the actively-controlled character dies.
func (w *World) SwitchControlToRoot(dead shared.CharacterID) {
	for _, s := range w.sessions {
		if s.ActiveCharacter == dead {
			s.ActiveCharacter = s.RootCharacter
		}
	}
}

// RebindSessions retargets sessions rooted at old to the promoted
// character. Used when inheritance promotes an heir.
func (w *World) RebindSessions(old, promoted shared.CharacterID) {
	for _, s := range w.sessions {
		if s.RootCharacter == old {
			s.RootCharacter = promoted
		}
		if s.ActiveCharacter == old {
			s.ActiveCharacter = promoted
		}
	}
}
