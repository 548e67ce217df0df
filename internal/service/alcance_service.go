package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlcanceService resolves the set of branches a user may act on. Every scoped
// query receives this set; resources outside it are reported as not found.
type AlcanceService interface {
	Sucursales(ctx context.Context, usuarioID string) ([]int64, error)
	TieneAcceso(ctx context.Context, usuarioID string, sucursalID int64) (bool, error)
	Invalidar(ctx context.Context, usuarioID string)
}

type alcanceService struct {
	repo repository.SucursalRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewAlcanceService builds the resolver. With a nil Redis client every call
// goes to the database.
func NewAlcanceService(repo repository.SucursalRepository, rdb *redis.Client, ttl time.Duration) AlcanceService {
	return &alcanceService{repo: repo, rdb: rdb, ttl: ttl}
}

func claveAlcance(usuarioID string) string { return "alcance:" + usuarioID }

func (s *alcanceService) Sucursales(ctx context.Context, usuarioID string) ([]int64, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, claveAlcance(usuarioID)).Bytes(); err == nil {
			var ids []int64
			if json.Unmarshal(raw, &ids) == nil {
				return ids, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("alcance: cache no disponible")
		}
	}

	ids, err := s.repo.IDsDeUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}

	if s.rdb != nil && s.ttl > 0 {
		if data, err := json.Marshal(ids); err == nil {
			if err := s.rdb.Set(ctx, claveAlcance(usuarioID), data, s.ttl).Err(); err != nil {
				log.Warn().Err(err).Msg("alcance: no se pudo cachear")
			}
		}
	}
	return ids, nil
}

func (s *alcanceService) TieneAcceso(ctx context.Context, usuarioID string, sucursalID int64) (bool, error) {
	ids, err := s.Sucursales(ctx, usuarioID)
	if err != nil {
		return false, err
	}
	return contiene(ids, sucursalID), nil
}

func (s *alcanceService) Invalidar(ctx context.Context, usuarioID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, claveAlcance(usuarioID)).Err(); err != nil {
		log.Warn().Err(err).Str("usuario", usuarioID).Msg("alcance: no se pudo invalidar")
	}
}
