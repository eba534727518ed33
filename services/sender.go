package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// MessageSender delivers a text over a channel and returns the provider id.
type MessageSender interface {
	Send(ctx context.Context, channel, to, body string) (string, error)
}

type TwilioSender struct {
	client       *twilio.RestClient
	phoneNumber  string
	whatsappFrom string
}

func NewTwilioSender(accountSid, authToken, phoneNumber, whatsappNumber string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		phoneNumber:  phoneNumber,
		whatsappFrom: whatsappNumber,
	}
}

func (t *TwilioSender) Send(_ context.Context, channel, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if channel == ChannelWhatsApp {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + t.whatsappFrom)
	} else {
		params.SetTo(to)
		params.SetFrom(t.phoneNumber)
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// LogSender only logs. It stands in when Twilio is not configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (l *LogSender) Send(_ context.Context, channel, to, body string) (string, error) {
	id := "log-" + uuid.NewString()
	l.logger.Info("reminder not delivered, no provider configured",
		zap.String("channel", channel), zap.String("to", to), zap.Int("length", len(body)), zap.String("id", id))
	return id, nil
}
