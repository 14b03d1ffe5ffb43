// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogExercise is an entry of the tenant's exercise library. Adding it to
// a plan copies its fields into the plan entry (see NewExerciseEntry); the
// catalog record itself is never referenced from a plan afterwards.
type CatalogExercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID    string             `bson:"tenantId" json:"-"`
	Name        string             `bson:"nome" json:"nome"`
	Equipment   string             `bson:"attrezzo,omitempty" json:"attrezzo,omitempty"` // e.g., "Bilanciere", "Manubri", "Corpo libero"
	MuscleGroup string             `bson:"gruppoMuscolare,omitempty" json:"gruppoMuscolare,omitempty"`
	GifURL      string             `bson:"gifUrl,omitempty" json:"gifUrl,omitempty"`
	VideoURL    string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CatalogFilter narrows a catalog search. Zero-value fields match everything.
type CatalogFilter struct {
	Name        string
	Equipment   string
	MuscleGroup string
}
