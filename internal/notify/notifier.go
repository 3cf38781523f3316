// Package notify implements the notification gateway that delivers
// password-reset codes to users over the channel they asked for.
package notify

import "context"

// Channel selects how a reset code reaches the user.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Notifier delivers a reset code to an address on a channel. Implementations
// must respect ctx for a bounded send and return an error on failure; the
// caller decides what a failed delivery means for the request.
type Notifier interface {
	SendResetCode(ctx context.Context, ch Channel, address, code string) error
}

// Gateway routes reset-code deliveries to the channel-specific sender.
type Gateway struct {
	Email *EmailSender
	SMS   *SMSSender
}

func NewGateway(email *EmailSender, sms *SMSSender) *Gateway {
	return &Gateway{Email: email, SMS: sms}
}

func (g *Gateway) SendResetCode(ctx context.Context, ch Channel, address, code string) error {
	if ch == ChannelSMS {
		return g.SMS.SendResetCode(ctx, address, code)
	}
	return g.Email.SendResetCode(ctx, address, code)
}
