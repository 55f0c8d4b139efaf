package notification

import (
	"context"
	"fmt"
	"time"

	"gmpwellness/config"
	"gmpwellness/models"
	"gmpwellness/services/booking"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailNotifier sends transactional booking email through SendGrid.
type EmailNotifier struct {
	client *sendgrid.Client
	logger *zap.Logger
}

// NewEmailNotifier builds a notifier from the configured SendGrid key.
func NewEmailNotifier(logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		client: sendgrid.NewSendClient(config.AppConfig.SendGridKey),
		logger: logger,
	}
}

// SendBookingConfirmed emails the client their confirmed appointment details
// along with a self-service cancellation link.
func (n *EmailNotifier) SendBookingConfirmed(ctx context.Context, appt *models.Appointment) error {
	cfg := config.AppConfig
	subject := fmt.Sprintf("Agendamento confirmado - %s", cfg.ClinicName)
	cancelLink := fmt.Sprintf("%s/cancel/%s", cfg.BaseURL, appt.ID)

	plain := fmt.Sprintf(
		"Olá %s,\n\nSeu agendamento foi confirmado.\n\n"+
			"Serviço: %s\nProfissional: %s\nData: %s\nHorário: %s\nDuração: %d minutos\nValor: R$ %.2f\n\n"+
			"Para cancelar (até 24h antes do horário): %s\n\nDúvidas? %s\n\n%s",
		appt.Contact.Name,
		appt.ServiceName,
		appt.TherapistName,
		displayDate(appt.Date),
		booking.FormatMinute(appt.StartMinute),
		appt.DurationMinutes,
		appt.Price,
		cancelLink,
		cfg.ClinicPhone,
		cfg.ClinicName,
	)

	return n.send(ctx, appt, subject, plain)
}

// SendBookingCancelled emails the client that their appointment was cancelled.
func (n *EmailNotifier) SendBookingCancelled(ctx context.Context, appt *models.Appointment) error {
	cfg := config.AppConfig
	subject := fmt.Sprintf("Agendamento cancelado - %s", cfg.ClinicName)

	plain := fmt.Sprintf(
		"Olá %s,\n\nSeu agendamento de %s em %s às %s foi cancelado.\n\n"+
			"Para remarcar, acesse %s ou fale conosco: %s\n\n%s",
		appt.Contact.Name,
		appt.ServiceName,
		displayDate(appt.Date),
		booking.FormatMinute(appt.StartMinute),
		cfg.BaseURL,
		cfg.ClinicPhone,
		cfg.ClinicName,
	)

	return n.send(ctx, appt, subject, plain)
}

func (n *EmailNotifier) send(ctx context.Context, appt *models.Appointment, subject, plain string) error {
	cfg := config.AppConfig
	from := mail.NewEmail(cfg.ClinicName, cfg.EmailFrom)
	to := mail.NewEmail(appt.Contact.Name, appt.Contact.Email)
	message := mail.NewSingleEmail(from, subject, to, plain, "")

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}

	n.logger.Info("booking email sent",
		zap.String("appointmentID", appt.ID),
		zap.String("subject", subject))
	return nil
}

// displayDate converts the stored "YYYY-MM-DD" date into the DD/MM/YYYY form
// clients expect.
func displayDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
