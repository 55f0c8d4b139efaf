package models

// CheckoutSession references a payment-provider checkout created for an
// appointment. The appointment id travels as the provider-side external
// reference so the webhook can resolve it back.
type CheckoutSession struct {
	SessionID     string `json:"sessionId"`
	AppointmentID string `json:"appointmentId"`
	URL           string `json:"url"`
	ExpiresAt     int64  `json:"expiresAt"`
}

// PaymentExpiryPayload is the asynq task payload for the unpaid-booking sweep.
type PaymentExpiryPayload struct {
	AppointmentID string `json:"appointmentId"`
}
