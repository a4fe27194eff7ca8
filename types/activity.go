package types

import "time"

// ActivityEntry is one row of the unified activity feed. Every successful
// log write appends a human-readable entry here.
type ActivityEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Activity feed entry types, one per log collection.
const (
	ActivityTypeSymptom        = "Symptom"
	ActivityTypeExercise       = "Exercise"
	ActivityTypeIntake         = "Intake"
	ActivityTypeSleep          = "Sleep"
	ActivityTypeCompression    = "Compression"
	ActivityTypeCountermeasure = "Countermeasure"
	ActivityTypeCooling        = "Skin Cooling"
)
