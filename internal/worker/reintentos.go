package worker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Failed jobs wait in a sorted set scored by the unix time of their next
// attempt; a ticker moves the due ones back to their queue.
const (
	reintentosSufijo  = ":reintentos"
	reintentosTick    = 30 * time.Second
	reintentosPorTick = 50
)

// esperaReintento is an exponential backoff: 1m, 2m, 4m...
func esperaReintento(intentos int) time.Duration {
	if intentos < 1 {
		intentos = 1
	}
	return time.Minute << (intentos - 1)
}

func programarReintento(ctx context.Context, rdb *redis.Client, queue string, job Job, ahora time.Time) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	cuando := ahora.Add(esperaReintento(job.Intentos))
	return rdb.ZAdd(ctx, queue+reintentosSufijo, redis.Z{Score: float64(cuando.Unix()), Member: data}).Err()
}

// StartReintentos re-queues due retries every 30s. While the SMTP circuit is
// open nothing is re-queued.
func StartReintentos(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	go func() {
		ticker := time.NewTicker(reintentosTick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reintentos: detenido")
				return
			case ahora := <-ticker.C:
				if cb != nil && cb.Estado() == infra.CircuitoAbierto {
					log.Debug().Msg("reintentos: circuito abierto, se omite el tick")
					continue
				}
				moverVencidos(ctx, rdb, QueueNotificaciones, ahora)
			}
		}
	}()
}

func moverVencidos(ctx context.Context, rdb *redis.Client, queue string, ahora time.Time) {
	key := queue + reintentosSufijo
	vencidos, err := rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   formatScore(ahora),
		Count: reintentosPorTick,
	}).Result()
	if err != nil {
		log.Error().Err(err).Msg("reintentos: ZRANGEBYSCORE fallo")
		return
	}
	for _, raw := range vencidos {
		// ZREM first so two instances never re-queue the same job
		if n, err := rdb.ZRem(ctx, key, raw).Result(); err != nil || n == 0 {
			continue
		}
		if err := rdb.LPush(ctx, queue, raw).Err(); err != nil {
			log.Error().Err(err).Msg("reintentos: LPUSH fallo")
		}
	}
	if len(vencidos) > 0 {
		log.Info().Int("n", len(vencidos)).Str("queue", queue).Msg("reintentos: jobs reencolados")
	}
}

func formatScore(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
