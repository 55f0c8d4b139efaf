package tasks

import (
	"encoding/json"
	"time"

	"gmpwellness/models"

	"github.com/hibiken/asynq"
)

const TypePaymentExpire = "payment:expire"

// NewPaymentExpiryTask builds the delayed task that sweeps an unpaid booking.
// It fires shortly after the checkout session's own expiry so a payment
// completed at the last second still wins.
func NewPaymentExpiryTask(payload models.PaymentExpiryPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePaymentExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
