package types

// Volume-expansion daily goals from the management protocol.
const (
	FluidGoalML    = 3000
	SodiumGoalGram = 10
)

// SymptomSeverityPoint is one day's average severity for one symptom.
type SymptomSeverityPoint struct {
	Day         string  `json:"day"` // yyyy-MM-dd
	Symptom     string  `json:"symptom"`
	AvgSeverity float64 `json:"avg_severity"`
}

// IntakeDay is one day's intake totals against the protocol goals.
type IntakeDay struct {
	Day        string  `json:"day"`
	FluidML    int     `json:"fluid_ml"`
	SaltGrams  float64 `json:"salt_grams"`
	FluidGoal  int     `json:"fluid_goal"`
	SodiumGoal float64 `json:"sodium_goal"`
}

// ExerciseSplit totals exercise minutes by modality over the window.
type ExerciseSplit struct {
	ExerciseType ExerciseType `json:"exercise_type"`
	TotalMinutes int          `json:"total_minutes"`
}

// CountermeasureCount totals maneuvers by kind over the window.
type CountermeasureCount struct {
	Countermeasure string `json:"countermeasure"`
	Count          int    `json:"count"`
}

// DashboardSummary aggregates a user's recent logs for the chart surfaces.
type DashboardSummary struct {
	Days            int                    `json:"days"`
	SymptomSeverity []SymptomSeverityPoint `json:"symptom_severity"`
	Intake          []IntakeDay            `json:"intake"`
	Exercise        []ExerciseSplit        `json:"exercise"`
	Countermeasures []CountermeasureCount  `json:"countermeasures"`
}
