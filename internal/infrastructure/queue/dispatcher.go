package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/careerconnect/jobboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher delivers application notices on a fixed set of workers. Notices
// are sharded by job id so notices for the same job arrive in order.
type Dispatcher struct {
	workers []chan ports.ApplicationNotice
	service ports.NoticeService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NoticeService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ApplicationNotice, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ApplicationNotice, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a notice to the worker responsible for its job. It never
// blocks the request path: when the worker's buffer is full the notice is
// dropped and logged.
func (d *Dispatcher) Enqueue(notice ports.ApplicationNotice) {
	select {
	case d.workers[d.shardIndex(notice.JobID)] <- notice:
	default:
		d.log.Warn().
			Str("job_id", notice.JobID).
			Str("applicant_id", notice.ApplicantID).
			Msg("notice queue full, dropping application notice")
	}
}

// shardIndex maps a job id deterministically to a worker index.
func (d *Dispatcher) shardIndex(jobID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(jobID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ApplicationNotice) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case notice, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Deliver(ctx, notice); err != nil {
				d.log.Error().Err(err).
					Str("job_id", notice.JobID).
					Int("worker_id", id).
					Msg("notice delivery failed")
			}
		}
	}
}
