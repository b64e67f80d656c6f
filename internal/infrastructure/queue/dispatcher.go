package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/api/metrics"
	"github.com/gigboard/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher delivers messages on a fixed set of workers, sharding on the
// conversation id so messages within one conversation keep their send order.
type Dispatcher struct {
	workers []chan ports.SendMessageInput
	service ports.MessageService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.MessageService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.SendMessageInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SendMessageInput, channelBuffer)
	}
	return d
}

// Run processes messages until ctx is cancelled and every worker has returned.
func (d *Dispatcher) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i, ch := range d.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
	wg.Wait()
	return nil
}

// Enqueue hands a message to the worker owning its conversation. It blocks
// only when that worker's buffer is full.
func (d *Dispatcher) Enqueue(msg ports.SendMessageInput) {
	idx := d.shardIndex(msg.ConversationID)
	d.workers[idx] <- msg
	metrics.MessagesQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a conversation id deterministically to a worker index.
func (d *Dispatcher) shardIndex(conversationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(conversationID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SendMessageInput) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			metrics.MessagesQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			if _, err := d.service.Deliver(ctx, msg); err != nil {
				metrics.MessagesFailedTotal.Inc()
				d.log.Error().Err(err).
					Str("conversation_id", msg.ConversationID).
					Int("worker_id", id).
					Msg("message delivery failed")
				continue
			}
			metrics.MessagesDeliveredTotal.Inc()
			metrics.MessageDeliveryDuration.Observe(time.Since(start).Seconds())
		}
	}
}
