package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Jobs that exhaust MaxIntentos land in dlq:<queue> for manual inspection.
const DLQPrefix = "dlq:"

type EntradaDLQ struct {
	Queue    string          `json:"queue"`
	Tipo     string          `json:"tipo"`
	Payload  json.RawMessage `json:"payload"`
	Motivo   string          `json:"motivo"`
	FalloEn  string          `json:"fallo_en"` // RFC 3339
	Intentos int             `json:"intentos"`
}

func EnviarADLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, motivo string) {
	data, err := json.Marshal(EntradaDLQ{
		Queue:    queue,
		Tipo:     job.Type,
		Payload:  job.Payload,
		Motivo:   motivo,
		FalloEn:  time.Now().UTC().Format(time.RFC3339),
		Intentos: job.Intentos,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo serializar")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: LPUSH fallo")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("tipo", job.Type).
		Str("motivo", motivo).
		Int("intentos", job.Intentos).
		Msg("dlq: job descartado")
}

// LargoDLQ is exposed for the health endpoint.
func LargoDLQ(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
