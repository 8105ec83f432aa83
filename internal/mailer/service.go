package mailer

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/metrics"
)

// ErrDailyLimit indica que o provedor recusou por limite diário de envio.
// O scheduler usa este sinal para pausar a rodada.
var ErrDailyLimit = errors.New("mail provider daily limit reached")

type Service struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewService(host string, port int, user, pass, from, frontendURL string, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		dialer:      gomail.NewDialer(host, port, user, pass),
		from:        from,
		frontendURL: frontendURL,
		logger:      logger,
		metrics:     m,
	}
}

func (s *Service) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(msg); err != nil {
		if s.metrics != nil {
			s.metrics.MailsFailed.Inc()
		}
		if isDailyLimitResponse(err) {
			return ErrDailyLimit
		}
		return err
	}

	if s.metrics != nil {
		s.metrics.MailsSent.Inc()
	}
	return nil
}

// Gmail responde "Daily user sending limit exceeded" com código 550 5.4.5.
func isDailyLimitResponse(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Daily user sending limit exceeded") ||
		strings.Contains(msg, "5.4.5")
}
