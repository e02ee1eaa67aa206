package notifier

import (
	"context"
	"log"
	"sync"
	"time"
)

// sendTimeout covers the gateway's 30x1s ready wait plus the transport call.
const sendTimeout = 35 * time.Second

type outbound struct {
	address string
	message string
}

// Dispatcher decouples notification delivery from the request path. Enqueue
// never blocks; messages are delivered by a single worker and failures are
// logged only, so the enclosing business operation has already succeeded by
// the time a send runs.
type Dispatcher struct {
	sender Sender
	queue  chan outbound

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewDispatcher(sender Sender, queueSize int) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan outbound, queueSize),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// Enqueue schedules a message for delivery. When the queue is full the
// message is dropped with an operator-visible log line; notification is
// best-effort by contract.
func (d *Dispatcher) Enqueue(address, message string) {
	if address == "" {
		log.Println("[NOTIFY] [WARN] no address on file, skipping notification")
		return
	}
	select {
	case d.queue <- outbound{address: address, message: message}:
	default:
		log.Println("[NOTIFY] [ERROR] outbound queue full, dropping notification for", address)
	}
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for job := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		id, err := d.sender.Send(ctx, job.address, job.message)
		cancel()

		if err != nil {
			log.Printf("[NOTIFY] [ERROR] send to %s failed: %v", job.address, err)
			continue
		}
		log.Printf("[NOTIFY] [INFO] message %s sent to %s", id, job.address)
	}
}
