// internal/repository/mongo/documents.go
package mongo

import (
	"time"

	"flowfit/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Persisted document shapes. Field names match the documents already in the
// store (Italian wire names, giorni keyed by weekday name strings); the
// in-memory model keeps days in a fixed array instead, so the mapping
// between the two lives here and nowhere else.

type planDocument struct {
	ID            primitive.ObjectID            `bson:"_id,omitempty"`
	TenantID      string                        `bson:"tenantId"`
	ClientID      primitive.ObjectID            `bson:"clientId"`
	Goal          string                        `bson:"obiettivo"`
	Level         string                        `bson:"livello"`
	DurationWeeks int                           `bson:"durataSettimane,omitempty"`
	Notes         string                        `bson:"note"`
	Days          map[string]domain.DaySchedule `bson:"giorni"`
	UpdatedAt     time.Time                     `bson:"updatedAt"`
	SentAt        *time.Time                    `bson:"sentAt,omitempty"`
}

type snapshotDocument struct {
	ID            primitive.ObjectID            `bson:"_id,omitempty"`
	TenantID      string                        `bson:"tenantId"`
	ClientID      primitive.ObjectID            `bson:"clientId"`
	Goal          string                        `bson:"obiettivo"`
	Level         string                        `bson:"livello"`
	DurationWeeks int                           `bson:"durataSettimane,omitempty"`
	Notes         string                        `bson:"note"`
	Days          map[string]domain.DaySchedule `bson:"giorni"`
	UpdatedAt     time.Time                     `bson:"updatedAt"`
	SentAt        *time.Time                    `bson:"sentAt,omitempty"`
	SavedAt       time.Time                     `bson:"savedAt"`
}

type presetDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TenantID  string             `bson:"tenantId"`
	Name      string             `bson:"name"`
	Data      fragmentDocument   `bson:"data"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// fragmentDocument keeps plan fields as pointers: a preset written before a
// field existed simply lacks the key, and import must not touch that field.
type fragmentDocument struct {
	Goal          *string                        `bson:"obiettivo,omitempty"`
	Level         *string                        `bson:"livello,omitempty"`
	DurationWeeks *int                           `bson:"durataSettimane,omitempty"`
	Notes         *string                        `bson:"note,omitempty"`
	Days          *map[string]domain.DaySchedule `bson:"giorni,omitempty"`
}

func daysToMap(days [domain.DaysPerWeek]domain.DaySchedule) map[string]domain.DaySchedule {
	m := make(map[string]domain.DaySchedule, domain.DaysPerWeek)
	for _, w := range domain.Weekdays() {
		day := days[w]
		if day.Entries == nil {
			day.Entries = []domain.Entry{}
		}
		m[w.Key()] = day
	}
	return m
}

func daysFromMap(m map[string]domain.DaySchedule) [domain.DaysPerWeek]domain.DaySchedule {
	var days [domain.DaysPerWeek]domain.DaySchedule
	for i := range days {
		days[i].Entries = []domain.Entry{}
	}
	for key, day := range m {
		w, ok := domain.ParseWeekday(key)
		if !ok {
			continue
		}
		if day.Entries == nil {
			day.Entries = []domain.Entry{}
		}
		days[w] = day
	}
	return days
}

func newPlanDocument(tenantID string, clientID primitive.ObjectID, plan *domain.Plan) planDocument {
	return planDocument{
		TenantID:      tenantID,
		ClientID:      clientID,
		Goal:          plan.Goal,
		Level:         plan.Level,
		DurationWeeks: plan.DurationWeeks,
		Notes:         plan.Notes,
		Days:          daysToMap(plan.Days),
		UpdatedAt:     plan.UpdatedAt,
		SentAt:        plan.SentAt,
	}
}

func (d *planDocument) toDomain() *domain.Plan {
	return &domain.Plan{
		Goal:          d.Goal,
		Level:         d.Level,
		DurationWeeks: d.DurationWeeks,
		Notes:         d.Notes,
		Days:          daysFromMap(d.Days),
		UpdatedAt:     d.UpdatedAt,
		SentAt:        d.SentAt,
	}
}

func newSnapshotDocument(tenantID string, clientID primitive.ObjectID, snap *domain.Snapshot) snapshotDocument {
	return snapshotDocument{
		TenantID:      tenantID,
		ClientID:      clientID,
		Goal:          snap.Plan.Goal,
		Level:         snap.Plan.Level,
		DurationWeeks: snap.Plan.DurationWeeks,
		Notes:         snap.Plan.Notes,
		Days:          daysToMap(snap.Plan.Days),
		UpdatedAt:     snap.Plan.UpdatedAt,
		SentAt:        snap.Plan.SentAt,
		SavedAt:       snap.SavedAt,
	}
}

func (d *snapshotDocument) toDomain() domain.Snapshot {
	return domain.Snapshot{
		ID: d.ID,
		Plan: domain.Plan{
			Goal:          d.Goal,
			Level:         d.Level,
			DurationWeeks: d.DurationWeeks,
			Notes:         d.Notes,
			Days:          daysFromMap(d.Days),
			UpdatedAt:     d.UpdatedAt,
			SentAt:        d.SentAt,
		},
		SavedAt: d.SavedAt,
	}
}

func newFragmentDocument(frag domain.PlanFragment) fragmentDocument {
	doc := fragmentDocument{
		Goal:          frag.Goal,
		Level:         frag.Level,
		DurationWeeks: frag.DurationWeeks,
		Notes:         frag.Notes,
	}
	if frag.Days != nil {
		m := daysToMap(*frag.Days)
		doc.Days = &m
	}
	return doc
}

func (d *fragmentDocument) toDomain() domain.PlanFragment {
	frag := domain.PlanFragment{
		Goal:          d.Goal,
		Level:         d.Level,
		DurationWeeks: d.DurationWeeks,
		Notes:         d.Notes,
	}
	if d.Days != nil {
		days := daysFromMap(*d.Days)
		frag.Days = &days
	}
	return frag
}
