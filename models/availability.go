package models

// AvailableSlot is one legal start time for a requested service duration.
type AvailableSlot struct {
	Date        string `json:"date"`
	StartMinute int    `json:"startMinute"`
	Time        string `json:"time"` // "HH:MM" label for the UI
}
