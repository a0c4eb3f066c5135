package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"estoquecestas/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReciboPDF = "jobs:recibo_pdf"

	jobReciboPDF  = "recibo_pdf"
	maxTentativas = 3
	brpopTimeout  = 5 * time.Second
)

// esperaAposFalha is the pause after a BRPOP that failed for a reason other
// than an empty queue, so an unreachable Redis is not polled in a tight loop.
var esperaAposFalha = time.Second

// Job is the generic envelope for all async tasks.
type Job struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Tentativas int             `json:"tentativas"`
}

// ReciboJobPayload identifies the basket whose PDF receipt is rendered.
type ReciboJobPayload struct {
	CestaID uint `json:"cesta_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
	cb  *infra.CircuitBreaker
}

func NewDispatcher(rdb *redis.Client, cb *infra.CircuitBreaker) *Dispatcher {
	return &Dispatcher{rdb: rdb, cb: cb}
}

// EnqueueReciboPDF pushes a PDF receipt job. While Redis keeps failing the
// breaker opens and calls return infra.ErrCircuitOpen without a round trip.
func (d *Dispatcher) EnqueueReciboPDF(ctx context.Context, cestaID uint) error {
	payload, err := json.Marshal(ReciboJobPayload{CestaID: cestaID})
	if err != nil {
		return err
	}
	return d.cb.Execute(func() error {
		return d.push(ctx, QueueReciboPDF, Job{Type: jobReciboPDF, Payload: payload})
	})
}

func (d *Dispatcher) push(ctx context.Context, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers routes each job type to its processor.
type WorkerHandlers struct {
	Recibo *ReciboWorker
}

// RunWorkerPool runs numWorkers goroutines consuming the job queues and blocks
// until ctx is cancelled and every worker has returned.
// Each goroutine blocks on BRPOP, so idle workers cost no CPU.
func RunWorkerPool(ctx context.Context, d *Dispatcher, handlers *WorkerHandlers, numWorkers int) {
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, d, handlers, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	wg.Wait()
}

func runWorker(ctx context.Context, d *Dispatcher, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop; waits up to brpopTimeout then loops to check ctx
			result, err := d.rdb.BRPop(ctx, brpopTimeout, QueueReciboPDF).Result()
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue // timeout or context cancelled
			}
			if err != nil {
				log.Warn().Err(err).Int("worker", id).Msg("brpop failed")
				aguardar(ctx, esperaAposFalha)
				continue
			}
			if len(result) < 2 {
				continue
			}
			d.processJob(ctx, handlers, result[0], result[1])
		}
	}
}

// aguardar sleeps for d or until ctx is done, whichever comes first.
func aguardar(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (d *Dispatcher) processJob(ctx context.Context, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	job.Tentativas++

	var err error
	switch job.Type {
	case jobReciboPDF:
		err = handlers.Recibo.Process(ctx, job.Payload)
	default:
		err = fmt.Errorf("tipo de job desconhecido %q", job.Type)
		job.Tentativas = maxTentativas
	}
	if err == nil {
		return
	}

	if job.Tentativas >= maxTentativas {
		SendToDLQ(ctx, d.rdb, queue, job, err.Error())
		return
	}
	log.Warn().Err(err).Str("type", job.Type).Int("tentativa", job.Tentativas).Msg("job falhou, reenfileirando")
	if pushErr := d.push(ctx, queue, job); pushErr != nil {
		log.Error().Err(pushErr).Str("queue", queue).Msg("falha ao reenfileirar job")
	}
}
