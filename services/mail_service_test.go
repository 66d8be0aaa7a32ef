package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestMailService() MailService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMailService(MailConfig{
		FromAddress:  "no-reply@stadiumport.com",
		FromName:     "StadiumPort",
		ContactInbox: "hello@stadiumport.com",
		SiteBaseURL:  "https://stadiumport.com",
	}, logger)
}

func TestSendPredictionConfirmation_RejectsBadAddress(t *testing.T) {
	svc := newTestMailService()

	err := svc.SendPredictionConfirmation(context.Background(), "not-an-email", "Jamal", "Brazil", "abc")
	assert.ErrorIs(t, err, ErrEmailInvalid)
}

func TestSendContactMessage_Validation(t *testing.T) {
	svc := newTestMailService()
	ctx := context.Background()

	err := svc.SendContactMessage(ctx, "not-an-email", "Jamal", "Hi", "hello")
	assert.ErrorIs(t, err, ErrEmailInvalid)

	err = svc.SendContactMessage(ctx, "jamal@example.com", "Jamal", "Hi", "   ")
	assert.ErrorIs(t, err, ErrMessageEmpty)
}
