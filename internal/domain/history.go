// internal/domain/history.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is an immutable full copy of a plan, appended to the client's
// history on every save or send. Snapshots are never updated or deleted —
// not even when the live plan is — so a client's authoring record survives
// plan deletion.
type Snapshot struct {
	ID      primitive.ObjectID `json:"id"`
	Plan    Plan               `json:"plan"`
	SavedAt time.Time          `json:"savedAt"`
}
