package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/vantagepointcrm/crm-api/internal/api/metrics"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes send-docs jobs to a fixed set of workers using consistent
// hashing on the lead ID, guaranteeing per-lead job ordering.
type Dispatcher struct {
	workers []chan ports.SendDocsJob
	service ports.DocsService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.DocsService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.SendDocsJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SendDocsJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its lead.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.SendDocsJob) {
	idx := d.shardIndex(job.LeadID)
	d.workers[idx] <- job
	metrics.DocsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a lead ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(leadID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(leadID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SendDocsJob) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			if err := d.service.Process(ctx, job); err != nil {
				metrics.DocsSendTotal.WithLabelValues("failed").Inc()
				metrics.DocsSendDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
				d.log.Error().Err(err).
					Int64("lead_id", job.LeadID).
					Int("worker_id", id).
					Msg("docs job failed")
			} else {
				metrics.DocsSendTotal.WithLabelValues("sent").Inc()
				metrics.DocsSendDuration.WithLabelValues("sent").Observe(time.Since(start).Seconds())
			}
			metrics.DocsQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}
