package journal

//go:generate mockgen -destination=mock/mock_notifier.go -package=mockjournal -source=notifier.go

import (
	"github.com/talgard/crownlands/internal/domain/shared"
)

// Notifier is the fire-and-forget notification sink toward connected
// observers. Delivery is best-effort; the journal keeps the
// authoritative per-player inbox regardless.
type Notifier interface {
	UpdatePlayer(playerID shared.PlayerID, messageCode string, fields map[string]any)
}

// Roster answers which players exist and are connected. Implemented by
// the world's session registry.
type Roster interface {
	PlayerFor(id shared.CharacterID) (shared.PlayerID, bool)
	IsConnected(playerID shared.PlayerID) bool
	ConnectedPlayers() []shared.PlayerID
}
