package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/user-auth-service/internal/queue"
)

// SMSSender publishes reset codes to the sms.outbound queue instead of
// talking to a provider directly. Delivery to the handset is the consumer's
// job; a publish failure is reported to the caller because at that point
// the code never left the service.
type SMSSender struct {
	url    string
	logger *slog.Logger
}

func NewSMSSender(amqpURL string, logger *slog.Logger) *SMSSender {
	return &SMSSender{url: amqpURL, logger: logger}
}

// SendResetCode enqueues an SMSDispatchEvent for the user's phone number.
// Messages are marked persistent so a broker restart does not drop a code
// the user is already waiting for.
func (s *SMSSender) SendResetCode(ctx context.Context, toPhone, code string) error {
	conn, err := amqp.Dial(s.url)
	if err != nil {
		return fmt.Errorf("sms: dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("sms: open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.SMSOutboundQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("sms: declare queue: %w", err)
	}

	ev := q.SMSDispatchEvent{
		MessageID: uuid.NewString(),
		To:        toPhone,
		Body:      fmt.Sprintf("Your password reset code is: %s", code),
		QueuedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("sms: marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.MessageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.SMSOutboundQueue, false, false, pub); err != nil {
		return fmt.Errorf("sms: publish: %w", err)
	}

	s.logger.Info("reset code sms queued",
		slog.String("to", toPhone), slog.String("message_id", ev.MessageID))
	return nil
}
