package mail

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"
)

// ErrSimulatedFailure is returned by SimulatedSender for messages it decides to drop.
var ErrSimulatedFailure = errors.New("mail: simulated delivery failure")

// SimulatedSender logs messages instead of delivering them and fails a
// configurable fraction of sends.
type SimulatedSender struct {
	logger      *zap.Logger
	failureRate float64
	roll        func() float64
}

// Ensure SimulatedSender implements Sender
var _ Sender = (*SimulatedSender)(nil)

// NewSimulatedSender creates a sender failing with probability failureRate, clamped to [0, 1].
func NewSimulatedSender(logger *zap.Logger, failureRate float64) *SimulatedSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if failureRate < 0 {
		failureRate = 0
	}
	if failureRate > 1 {
		failureRate = 1
	}
	return &SimulatedSender{logger: logger, failureRate: failureRate, roll: rand.Float64}
}

// Send logs msg and reports a simulated failure when the roll says so.
func (s *SimulatedSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(msg.To) == "" {
		return ErrNoRecipient
	}
	if s.failureRate > 0 && s.roll() < s.failureRate {
		s.logger.Warn("simulated email delivery failed", zap.String("to", msg.To))
		return ErrSimulatedFailure
	}
	s.logger.Info("simulated email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
