package models

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

func GeneratePlayerID() uuid.UUID {
	return uuid.New()
}

func ParsePlayerID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// HashPlayerID derives the opaque identifier used when referencing a player
// in broadcasts. One-way: other players never see the raw id they would need
// to rebind the session on reconnect.
func HashPlayerID(id uuid.UUID) string {
	sum := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(sum[:])[:16]
}
