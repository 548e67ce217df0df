package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueNotificaciones = "jobs:notificaciones"

	JobNotificacion = "notificacion"

	// MaxIntentos is the number of attempts before a job goes to the DLQ.
	MaxIntentos = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Intentos int             `json:"intentos"`
}

// Dispatcher enqueues async jobs into Redis lists. A nil Dispatcher (or one
// without Redis) silently drops jobs: notifications never affect a request.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) Habilitado() bool { return d != nil && d.rdb != nil }

// EncolarNotificacion pushes a mail notification to Redis.
func (d *Dispatcher) EncolarNotificacion(ctx context.Context, n Notificacion) error {
	if !d.Habilitado() || n.Para == "" {
		return nil
	}
	return encolar(ctx, d.rdb, QueueNotificaciones, JobNotificacion, n)
}

func encolar(ctx context.Context, rdb *redis.Client, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// Procesador handles one job payload; a returned error schedules a retry.
type Procesador interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// StartWorkerPool launches numWorkers goroutines consuming the notification
// queue. Each goroutine blocks on BRPOP, zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, proc Procesador, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, proc, i)
	}
	log.Info().Msgf("worker pool iniciado con %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, proc Procesador, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d detenido", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueNotificaciones).Result()
			if err != nil || len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, proc, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, proc Procesador, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("job ilegible")
		return
	}

	err := proc.Process(ctx, job.Payload)
	if err == nil {
		return
	}

	job.Intentos++
	if job.Intentos >= MaxIntentos {
		EnviarADLQ(ctx, rdb, queue, job, err.Error())
		return
	}
	if perr := programarReintento(ctx, rdb, queue, job, time.Now()); perr != nil {
		log.Error().Err(perr).Str("queue", queue).Msg("no se pudo programar el reintento")
	}
}
