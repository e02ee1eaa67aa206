package notifier

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrChannelNotReady is returned when the transport has not completed
	// its activation handshake within the bounded wait.
	ErrChannelNotReady = errors.New("messaging channel is not ready")
	// ErrUnknownRecipient is returned when the transport confirms the
	// address is not reachable on the channel.
	ErrUnknownRecipient = errors.New("recipient is not registered on the channel")
)

// Sender is the narrow contract callers depend on. Failures from Send are
// logged by callers, never propagated as request failures.
type Sender interface {
	Ready() bool
	Send(ctx context.Context, address, message string) (string, error)
}

// Transport is the underlying messaging channel. Connect performs whatever
// out-of-band activation the channel needs; Send delivers one message to a
// normalized address and returns the transport-assigned message id.
type Transport interface {
	Connect(ctx context.Context) error
	Send(ctx context.Context, to, body string) (string, error)
}

// Gateway owns the process-wide transport lifecycle: it activates once at
// start, re-initiates activation after a fixed backoff when the channel
// drops, and exposes a binary ready signal. Sends wait for readiness up to
// a bounded number of polls before giving up.
type Gateway struct {
	transport Transport

	pollInterval time.Duration
	pollLimit    int
	backoff      time.Duration

	ready atomic.Bool
	down  chan struct{}

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewGateway(transport Transport) *Gateway {
	return &Gateway{
		transport:    transport,
		pollInterval: time.Second,
		pollLimit:    30,
		backoff:      5 * time.Second,
		down:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start launches the activation loop.
func (g *Gateway) Start() {
	go g.run()
}

// Stop tears the gateway down. In-flight sends fail with ErrChannelNotReady
// once the ready flag drops.
func (g *Gateway) Stop() {
	g.stopOnce.Do(func() { close(g.stop) })
	<-g.done
}

// Ready reports whether the channel has completed activation.
func (g *Gateway) Ready() bool {
	return g.ready.Load()
}

// Send normalizes the address, waits for channel readiness and dispatches
// the message. It returns the transport-assigned message id on success.
func (g *Gateway) Send(ctx context.Context, address, message string) (string, error) {
	to, err := NormalizeNumber(address)
	if err != nil {
		return "", err
	}

	if err := g.waitReady(ctx); err != nil {
		return "", err
	}

	id, err := g.transport.Send(ctx, to, message)
	if err != nil {
		if errors.Is(err, ErrUnknownRecipient) {
			return "", err
		}
		// Anything else is treated as a channel drop; the activation
		// loop takes over re-establishing the connection.
		g.markDown()
		return "", err
	}
	return id, nil
}

func (g *Gateway) waitReady(ctx context.Context) error {
	for attempt := 0; attempt < g.pollLimit; attempt++ {
		if g.ready.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ErrChannelNotReady
		case <-g.stop:
			return ErrChannelNotReady
		case <-time.After(g.pollInterval):
		}
	}
	if g.ready.Load() {
		return nil
	}
	return ErrChannelNotReady
}

func (g *Gateway) markDown() {
	if !g.ready.CompareAndSwap(true, false) {
		return
	}
	select {
	case g.down <- struct{}{}:
	default:
	}
}

func (g *Gateway) run() {
	defer close(g.done)
	defer g.ready.Store(false)

	for {
		if !g.connectWithBackoff() {
			return
		}

		g.ready.Store(true)
		log.Println("[NOTIFY] [INFO] messaging channel ready")

		select {
		case <-g.down:
			log.Println("[NOTIFY] [WARN] messaging channel disconnected, re-activating")
		case <-g.stop:
			return
		}
	}
}

func (g *Gateway) connectWithBackoff() bool {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := g.transport.Connect(ctx)
		cancel()
		if err == nil {
			return true
		}

		log.Println("[NOTIFY] [WARN] channel activation failed:", err)
		select {
		case <-g.stop:
			return false
		case <-time.After(g.backoff):
		}
	}
}
