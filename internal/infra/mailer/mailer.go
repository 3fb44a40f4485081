package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/tgcs/experience-api/internal/config"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("smtp host is not configured")

// Job is the queue payload for one outbound message.
type Job struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Mailer struct {
	cfg       config.SMTPCfg
	log       *zap.Logger
	newSender func(cfg config.SMTPCfg) (sender, error)
	now       func() time.Time
}

func New(cfg *config.Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg.SMTP, log: log, newSender: newClient, now: time.Now}
}

// newClient upgrades to TLS when the server offers STARTTLS and
// authenticates only when a user is configured.
func newClient(cfg config.SMTPCfg) (sender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	return mail.NewClient(cfg.Host, opts...)
}

func (m *Mailer) message(job Job) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(job.To); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(job.Subject)
	msg.SetDateWithValue(m.now())
	msg.SetBodyString(mail.TypeTextPlain, job.Body)
	return msg, nil
}

func (m *Mailer) Send(ctx context.Context, job Job) error {
	if m.cfg.Host == "" {
		return ErrNotConfigured
	}
	msg, err := m.message(job)
	if err != nil {
		return err
	}
	client, err := m.newSender(m.cfg)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	m.log.Info("mail sent", zap.String("to", job.To), zap.String("subject", job.Subject))
	return nil
}

// HandleDelivery decodes a queued Job and sends it.
func (m *Mailer) HandleDelivery(ctx context.Context, body []byte) error {
	var job Job
	if err := sonic.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("decode mail job: %w", err)
	}
	if job.To == "" {
		return errors.New("mail job has no recipient")
	}
	return m.Send(ctx, job)
}
