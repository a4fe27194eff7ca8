package types

import "time"

// ExerciseType splits training into the two modalities the protocol tracks.
type ExerciseType string

const (
	ExerciseHorizontal ExerciseType = "horizontal"
	ExerciseUpright    ExerciseType = "upright"
)

// GarmentType is the style of compression garment worn.
type GarmentType string

const (
	GarmentAbdomen   GarmentType = "abdomen"
	GarmentFullLower GarmentType = "full-lower"
)

// Symptoms is the catalog of symptoms a patient can log.
var Symptoms = []string{
	"Dizziness",
	"Lightheadedness",
	"Tachycardia (fast heart rate)",
	"Fatigue",
	"Brain Fog",
	"Palpitations",
	"Headache",
	"Nausea",
	"Shortness of Breath",
	"Tremulousness",
	"Visual Disturbances",
}

// Countermeasures is the catalog of physical countermeasures.
var Countermeasures = []string{
	"squeeze-ball",
	"leg-cross",
	"muscle-pump",
	"squat",
	"cough-cpr",
}

// CoolingMethods is the catalog of skin-cooling methods.
var CoolingMethods = []string{
	"cool-shower",
	"ice-pack",
	"cooling-vest",
	"spray-bottle",
	"other",
}

// SymptomLog records one symptom observation with a 0-10 severity.
type SymptomLog struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Symptom  string    `json:"symptom"`
	Severity int       `json:"severity"`
	Notes    string    `json:"notes,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// SymptomLogCreate is the request body for logging a symptom.
type SymptomLogCreate struct {
	Symptom  string `json:"symptom" binding:"required,max=100"`
	Severity int    `json:"severity" binding:"min=0,max=10"`
	Notes    string `json:"notes" binding:"max=2000"`
}

// ExerciseLog records one exercise session.
type ExerciseLog struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	ExerciseType    ExerciseType `json:"exercise_type"`
	DurationMinutes int          `json:"duration_minutes"`
	RPE             int          `json:"rpe"`
	LoggedAt        time.Time    `json:"logged_at"`
}

// ExerciseLogCreate is the request body for logging an exercise session.
type ExerciseLogCreate struct {
	ExerciseType    ExerciseType `json:"exercise_type" binding:"required,oneof=horizontal upright"`
	DurationMinutes int          `json:"duration_minutes" binding:"required,min=1,max=1440"`
	RPE             int          `json:"rpe" binding:"min=0,max=10"`
}

// IntakeLog records daily fluid and salt intake toward the volume-expansion
// goals (3000 ml fluid, 10 g sodium).
type IntakeLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SaltGrams float64   `json:"salt_grams"`
	FluidML   int       `json:"fluid_ml"`
	LoggedAt  time.Time `json:"logged_at"`
}

// IntakeLogCreate is the request body for logging fluid/salt intake.
type IntakeLogCreate struct {
	SaltGrams float64 `json:"salt_grams" binding:"min=0,max=50"`
	FluidML   int     `json:"fluid_ml" binding:"min=0,max=10000"`
}

// SleepLog records whether the patient slept with the head of the bed
// elevated.
type SleepLog struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	HeadElevated bool      `json:"head_elevated"`
	LoggedAt     time.Time `json:"logged_at"`
}

// SleepLogCreate is the request body for logging sleep position.
type SleepLogCreate struct {
	HeadElevated *bool `json:"head_elevated" binding:"required"`
}

// CompressionLog records one period of compression-garment use.
type CompressionLog struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	GarmentType   GarmentType `json:"garment_type"`
	DurationHours float64     `json:"duration_hours"`
	LoggedAt      time.Time   `json:"logged_at"`
}

// CompressionLogCreate is the request body for logging garment use.
type CompressionLogCreate struct {
	GarmentType   GarmentType `json:"garment_type" binding:"required,oneof=abdomen full-lower"`
	DurationHours float64     `json:"duration_hours" binding:"required,gt=0,max=24"`
}

// CountermeasureLog records one physical countermeasure maneuver.
type CountermeasureLog struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Countermeasure  string    `json:"countermeasure"`
	DurationMinutes int       `json:"duration_minutes"`
	LoggedAt        time.Time `json:"logged_at"`
}

// CountermeasureLogCreate is the request body for logging a countermeasure.
type CountermeasureLogCreate struct {
	Countermeasure  string `json:"countermeasure" binding:"required,oneof=squeeze-ball leg-cross muscle-pump squat cough-cpr"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0,max=240"`
}

// CoolingLog records one use of skin-surface cooling.
type CoolingLog struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CoolingMethod string    `json:"cooling_method"`
	Conditions    string    `json:"conditions,omitempty"`
	LoggedAt      time.Time `json:"logged_at"`
}

// CoolingLogCreate is the request body for logging skin cooling.
type CoolingLogCreate struct {
	CoolingMethod string `json:"cooling_method" binding:"required,oneof=cool-shower ice-pack cooling-vest spray-bottle other"`
	Conditions    string `json:"conditions" binding:"max=2000"`
}

// ListParams carries pagination for log listing endpoints.
type ListParams struct {
	Limit  int
	Offset int
}
