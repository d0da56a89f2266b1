package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ActionShiftCreated is recorded for every shift the scheduler persists
const ActionShiftCreated = "shift.created"

// ErrChainBroken is returned by Verify when an entry does not match its predecessor or its own hash
var ErrChainBroken = errors.New("audit chain broken")

// Entry is one link of the audit hash chain
type Entry struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Action         string    `json:"action"`
	EntityID       string    `json:"entityId"`
	Payload        string    `json:"payload"`
	PrevHash       string    `json:"prevHash"`
	Hash           string    `json:"hash"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ComputeHash returns the hex SHA-256 of the entry's content chained to prevHash.
// Each field is written as its byte length, a colon and its bytes, so no field
// value can shift content into a neighbouring field.
func ComputeHash(prevHash string, e Entry) string {
	h := sha256.New()
	for _, field := range []string{
		prevHash,
		e.OrganizationID,
		e.Action,
		e.EntityID,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
		e.Payload,
	} {
		fmt.Fprintf(h, "%d:%s", len(field), field)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Link chains e to prevHash and sets its hash
func Link(prevHash string, e Entry) Entry {
	e.PrevHash = prevHash
	e.Hash = ComputeHash(prevHash, e)
	return e
}

// Verify checks that entries, oldest first, form an unbroken chain.
// The first entry's PrevHash is trusted as the chain's anchor.
func Verify(entries []Entry) error {
	for i, entry := range entries {
		if i > 0 && entry.PrevHash != entries[i-1].Hash {
			return fmt.Errorf("%w: entry %d (%s) does not follow entry %d", ErrChainBroken, i, entry.ID, i-1)
		}
		if ComputeHash(entry.PrevHash, entry) != entry.Hash {
			return fmt.Errorf("%w: entry %d (%s) has been modified", ErrChainBroken, i, entry.ID)
		}
	}
	return nil
}
