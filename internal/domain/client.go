// internal/domain/client.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is the coached person a plan is authored for. Account management
// lives elsewhere; this backend only reads identity fields and owns the
// plan-delivery status block.
type Client struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID string             `bson:"tenantId" json:"-"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`

	WorkoutPlan DeliveryStatus `bson:"schedaAllenamento,omitempty" json:"schedaAllenamento,omitempty"`
}

// DeliveryStatus is the client-facing delivery tracker for the workout plan:
// whether a plan has been handed over, when, and until when it is valid.
type DeliveryStatus struct {
	Delivered   bool       `bson:"consegnata" json:"consegnata"`
	DeliveredAt *time.Time `bson:"consegnataAt,omitempty" json:"consegnataAt,omitempty"`
	Expiry      *time.Time `bson:"scadenza,omitempty" json:"scadenza,omitempty"`
}
