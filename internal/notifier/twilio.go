package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Twilio error codes for an unreachable or malformed destination.
const (
	twilioErrInvalidTo     = 21211
	twilioErrNotOnWhatsApp = 63003
)

// TwilioTransport delivers WhatsApp messages through the Twilio REST API.
type TwilioTransport struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioTransport builds the transport from account credentials. The
// from number must be in Twilio's "whatsapp:+<number>" form.
func NewTwilioTransport(accountSID, authToken, from string) (*TwilioTransport, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioTransport{client: client, from: from}, nil
}

// Connect is a no-op: the Twilio REST API needs no activation handshake,
// the channel is usable as soon as credentials exist.
func (t *TwilioTransport) Connect(_ context.Context) error {
	return nil
}

func (t *TwilioTransport) Send(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("whatsapp:+%s", to))
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) {
			switch restErr.Code {
			case twilioErrInvalidTo, twilioErrNotOnWhatsApp:
				return "", ErrUnknownRecipient
			}
		}
		return "", err
	}

	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		if *resp.ErrorCode == twilioErrNotOnWhatsApp {
			return "", ErrUnknownRecipient
		}
		return "", fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, deref(resp.ErrorMessage))
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("twilio response missing message sid")
	}
	return *resp.Sid, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
