package models

import "time"

// NotAvailable stands in for any field the page did not provide.
const NotAvailable = "Н/Д"

// MaxDayParts caps the day-part forecast: morning, day, evening, night.
const MaxDayParts = 4

type DayPart struct {
	Label       string `json:"label" example:"утром"`
	Temperature string `json:"temperature" example:"+12"`
}

// WeatherReport is built per request, rendered and dropped.
type WeatherReport struct {
	CurrentTemperature string    `json:"current_temperature" example:"+14"`
	Condition          string    `json:"condition" example:"Облачно с прояснениями"`
	FeelsLike          string    `json:"feels_like" example:"+11"`
	DayParts           []DayPart `json:"day_parts"`
	FetchedAt          time.Time `json:"fetched_at"`

	// Summary holds a ready one-line report from a plain-text source.
	// When set, the structured fields are not rendered.
	Summary string `json:"summary,omitempty"`
}

// NewWeatherReport returns a report with every field set to NotAvailable.
func NewWeatherReport() WeatherReport {
	return WeatherReport{
		CurrentTemperature: NotAvailable,
		Condition:          NotAvailable,
		FeelsLike:          NotAvailable,
	}
}

// PairDayParts zips labels with temperatures by position, capped at MaxDayParts.
func PairDayParts(labels, temperatures []string) []DayPart {
	n := min(len(labels), len(temperatures), MaxDayParts)

	parts := make([]DayPart, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, DayPart{
			Label:       labels[i],
			Temperature: temperatures[i],
		})
	}

	return parts
}
