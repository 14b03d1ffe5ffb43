// internal/domain/preset.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Preset is a reusable, named plan template. Presets belong to the tenant,
// not to any client, and are captured from a live plan's current content.
// Data is a fragment rather than a full plan: older presets in the store may
// omit top-level fields, and import must leave those fields of the current
// plan untouched.
type Preset struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Data      PlanFragment       `json:"data"`
	CreatedAt time.Time          `json:"createdAt"`
}
