// Package mailer delivers transactional mail. Delivery is fire-and-forget:
// callers never wait on it and never see its failures.
package mailer

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// LogMailer writes messages to the log instead of a mail server.
type LogMailer struct {
	log *logrus.Logger
}

func NewLogMailer(log *logrus.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (l *LogMailer) Send(_ context.Context, m Message) error {
	l.log.WithFields(logrus.Fields{
		"to":      m.To,
		"subject": m.Subject,
	}).Info(m.Body)
	return nil
}

const sendTimeout = 30 * time.Second

// SendAsync sends m on its own goroutine, detached from the request context.
// done, when non-nil, is closed once the attempt finishes.
func SendAsync(mailer Mailer, log *logrus.Logger, m Message, done chan<- struct{}) {
	go func() {
		if done != nil {
			defer close(done)
		}
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := mailer.Send(ctx, m); err != nil && log != nil {
			log.WithError(err).WithField("to", m.To).Warn("mail delivery failed")
		}
	}()
}
