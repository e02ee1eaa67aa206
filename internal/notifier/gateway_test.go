package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeTransport struct {
	mu         sync.Mutex
	connectErr error
	sendErr    error
	connects   int
	sent       []outbound
}

func (f *fakeTransport) Connect(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	return f.connectErr
}

func (f *fakeTransport) Send(_ context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, outbound{address: to, message: body})
	return "msg-1", nil
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestGateway(tr Transport) *Gateway {
	g := NewGateway(tr)
	g.pollInterval = time.Millisecond
	g.pollLimit = 50
	g.backoff = time.Millisecond
	return g
}

func TestGatewaySendNormalizesAndDelivers(t *testing.T) {
	tr := &fakeTransport{}
	g := newTestGateway(tr)
	g.Start()
	defer g.Stop()

	id, err := g.Send(context.Background(), "09800000001", "hello")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if id != "msg-1" {
		t.Fatalf("expected transport message id, got %q", id)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if len(tr.sent) != 1 || tr.sent[0].address != "9779800000001" {
		t.Fatalf("expected one send to normalized number, got %+v", tr.sent)
	}
}

func TestGatewaySendRejectsInvalidAddressWithoutTransportCall(t *testing.T) {
	tr := &fakeTransport{}
	g := newTestGateway(tr)
	g.Start()
	defer g.Stop()

	if _, err := g.Send(context.Background(), "12345", "hello"); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
	if tr.sentCount() != 0 {
		t.Fatal("invalid address must not reach the transport")
	}
}

func TestGatewaySendGivesUpWhenChannelNeverActivates(t *testing.T) {
	tr := &fakeTransport{connectErr: errors.New("awaiting QR scan")}
	g := newTestGateway(tr)
	g.pollLimit = 3
	g.Start()
	defer g.Stop()

	if _, err := g.Send(context.Background(), "9779800000001", "hello"); !errors.Is(err, ErrChannelNotReady) {
		t.Fatalf("expected ErrChannelNotReady, got %v", err)
	}
	if tr.sentCount() != 0 {
		t.Fatal("send must not reach a transport that never activated")
	}
}

func TestGatewayUnknownRecipientKeepsChannelUp(t *testing.T) {
	tr := &fakeTransport{sendErr: ErrUnknownRecipient}
	g := newTestGateway(tr)
	g.Start()
	defer g.Stop()

	if _, err := g.Send(context.Background(), "9779800000001", "hello"); !errors.Is(err, ErrUnknownRecipient) {
		t.Fatalf("expected ErrUnknownRecipient, got %v", err)
	}
	if !g.Ready() {
		t.Fatal("unknown recipient is not a channel failure")
	}
}

func TestGatewayReconnectsAfterTransportFailure(t *testing.T) {
	tr := &fakeTransport{sendErr: errors.New("connection reset")}
	g := newTestGateway(tr)
	g.Start()
	defer g.Stop()

	if _, err := g.Send(context.Background(), "9779800000001", "hello"); err == nil {
		t.Fatal("expected transport failure to surface")
	}

	// The activation loop should bring the channel back up.
	tr.mu.Lock()
	tr.sendErr = nil
	tr.mu.Unlock()

	id, err := g.Send(context.Background(), "9779800000001", "hello again")
	if err != nil {
		t.Fatalf("send after reconnect failed: %v", err)
	}
	if id != "msg-1" {
		t.Fatalf("unexpected message id %q", id)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.connects < 2 {
		t.Fatalf("expected a reconnect, saw %d connects", tr.connects)
	}
}
