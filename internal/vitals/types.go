// Vital sign types, distribution parameters, and wire rows
package vitals

import (
	"os"
	"time"
)

// VitalType identifies one of the five tracked physiological signals.
type VitalType string

const (
	HeartRate   VitalType = "heart_rate"
	Systolic    VitalType = "systolic"
	Diastolic   VitalType = "diastolic"
	SpO2        VitalType = "spo2"
	Temperature VitalType = "temperature"
)

// Types lists all tracked vitals. Iteration over this slice defines the
// processing order inside a tick, so it must stay fixed.
var Types = []VitalType{HeartRate, Systolic, Diastolic, SpO2, Temperature}

// Params describes the clinically normal distribution of a vital and its
// hard physiological bounds. Generated values are always clamped to
// [Min, Max].
type Params struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

var params = map[VitalType]Params{
	HeartRate:   {Mean: 80, StdDev: 8, Min: 40, Max: 180},
	Systolic:    {Mean: 115, StdDev: 10, Min: 70, Max: 200},
	Diastolic:   {Mean: 75, StdDev: 7, Min: 40, Max: 120},
	SpO2:        {Mean: 98, StdDev: 1, Min: 85, Max: 100},
	Temperature: {Mean: 36.8, StdDev: 0.3, Min: 34, Max: 41},
}

// ParamsFor returns the distribution parameters for a vital type.
func ParamsFor(vt VitalType) (Params, bool) {
	p, ok := params[vt]
	return p, ok
}

// Sample is one timestamped measurement. Immutable once created.
type Sample struct {
	Timestamp time.Time `json:"ts"`
	Value     float64   `json:"value"`
}

// Row represents one per-patient vitals record for GreptimeDB, holding
// the latest value of each signal plus the aggregated severity.
type Row struct {
	WardID      string    `json:"ward_id"`    // TAG
	PatientID   string    `json:"patient_id"` // TAG
	SessionID   string    `json:"session_id"` // FIELD
	HeartRate   float64   `json:"heart_rate"`
	Systolic    float64   `json:"systolic"`
	Diastolic   float64   `json:"diastolic"`
	SpO2        float64   `json:"spo2"`
	Temperature float64   `json:"temperature"`
	Severity    string    `json:"severity"`
	Timestamp   time.Time `json:"ts"` // TIME INDEX
}

// VitalsTableName holds the table name used when writing to GreptimeDB.
// It defaults to "patient_vitals" but can be overridden via the
// VITALS_TABLE environment variable.
var VitalsTableName = func() string {
	if env := os.Getenv("VITALS_TABLE"); env != "" {
		return env
	}
	return "patient_vitals"
}()

func (Row) TableName() string {
	return VitalsTableName
}

// Value returns the row's reading for the given vital type.
func (r Row) Value(vt VitalType) float64 {
	switch vt {
	case HeartRate:
		return r.HeartRate
	case Systolic:
		return r.Systolic
	case Diastolic:
		return r.Diastolic
	case SpO2:
		return r.SpO2
	case Temperature:
		return r.Temperature
	}
	return 0
}
