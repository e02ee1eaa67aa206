package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BridgeTransport talks to a self-hosted whatsapp-web sidecar over HTTP.
// The sidecar completes its activation out of band (QR scan); until then
// its status endpoint reports not ready and Connect keeps failing, which
// the gateway retries on its backoff.
type BridgeTransport struct {
	baseURL string
	client  *http.Client
}

func NewBridgeTransport(baseURL string) *BridgeTransport {
	return &BridgeTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type bridgeStatus struct {
	Ready bool `json:"ready"`
}

func (b *BridgeTransport) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/status", nil)
	if err != nil {
		return err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge status returned %d", resp.StatusCode)
	}

	var status bridgeStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return err
	}
	if !status.Ready {
		return fmt.Errorf("bridge awaiting activation (scan the QR code)")
	}
	return nil
}

type bridgeSendRequest struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

type bridgeSendResponse struct {
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

func (b *BridgeTransport) Send(ctx context.Context, to, body string) (string, error) {
	payload, err := json.Marshal(bridgeSendRequest{Number: to, Message: body})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result bridgeSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return result.MessageID, nil
	case http.StatusNotFound:
		return "", ErrUnknownRecipient
	case http.StatusServiceUnavailable:
		return "", fmt.Errorf("bridge not ready: %s", result.Error)
	default:
		return "", fmt.Errorf("bridge send returned %d: %s", resp.StatusCode, result.Error)
	}
}
