package tasks

import (
	"time"

	"gmpwellness/config"
	"gmpwellness/models"

	"github.com/hibiken/asynq"
)

// AsynqScheduler enqueues delayed tasks on the shared Redis-backed queue.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler connects an asynq client to the configured task queue.
func NewAsynqScheduler() *AsynqScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	return &AsynqScheduler{client: client}
}

// SchedulePaymentExpiry queues the sweep that cancels the appointment if its
// payment never arrives.
func (s *AsynqScheduler) SchedulePaymentExpiry(appointmentID string, fireAt time.Time) error {
	task, opts, err := NewPaymentExpiryTask(models.PaymentExpiryPayload{AppointmentID: appointmentID}, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

// Close releases the underlying queue connection.
func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
