package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// HeldOrderStore carritos en espera: una clave por carrito con TTL y un set índice por empresa.
// Los miembros del índice cuya clave ya venció se purgan al listar.
type HeldOrderStore struct {
	client *goredis.Client
	prefix string
	log    zerolog.Logger
}

// NewHeldOrderStore construye el almacén sobre un cliente existente.
func NewHeldOrderStore(client *goredis.Client, log zerolog.Logger) *HeldOrderStore {
	return &HeldOrderStore{
		client: client,
		prefix: "pos:held",
		log:    log.With().Str("component", "redis").Logger(),
	}
}

func (s *HeldOrderStore) orderKey(companyID, id string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, companyID, id)
}

func (s *HeldOrderStore) indexKey(companyID string) string {
	return fmt.Sprintf("%s:%s:index", s.prefix, companyID)
}

func (s *HeldOrderStore) Save(ctx context.Context, order *entity.HeldOrder, ttl time.Duration) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("held order marshal: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, s.orderKey(order.CompanyID, order.ID), payload, ttl)
		p.SAdd(ctx, s.indexKey(order.CompanyID), order.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("held order save: %w", err)
	}
	return nil
}

func (s *HeldOrderStore) Get(ctx context.Context, companyID, id string) (*entity.HeldOrder, error) {
	val, err := s.client.Get(ctx, s.orderKey(companyID, id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("held order get: %w", err)
	}
	var order entity.HeldOrder
	if err := json.Unmarshal(val, &order); err != nil {
		return nil, fmt.Errorf("held order decode: %w", err)
	}
	return &order, nil
}

// List carritos vigentes, más antiguo primero.
func (s *HeldOrderStore) List(ctx context.Context, companyID string) ([]*entity.HeldOrder, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey(companyID)).Result()
	if err != nil {
		return nil, fmt.Errorf("held order index: %w", err)
	}
	out := make([]*entity.HeldOrder, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.orderKey(companyID, id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("held order mget: %w", err)
	}

	var expired []any
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var order entity.HeldOrder
		if err := json.Unmarshal([]byte(raw), &order); err != nil {
			return nil, fmt.Errorf("held order decode: %w", err)
		}
		out = append(out, &order)
	}
	if len(expired) > 0 {
		// La purga es oportunista: si falla, el próximo List lo reintenta.
		if err := s.client.SRem(ctx, s.indexKey(companyID), expired...).Err(); err != nil {
			s.log.Warn().Err(err).Str("company_id", companyID).Int("expired", len(expired)).Msg("no se pudo purgar el índice de carritos")
		}
	}
	slices.SortFunc(out, func(a, b *entity.HeldOrder) int { return a.HeldAt.Compare(b.HeldAt) })
	return out, nil
}

func (s *HeldOrderStore) Delete(ctx context.Context, companyID, id string) error {
	_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, s.orderKey(companyID, id))
		p.SRem(ctx, s.indexKey(companyID), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("held order delete: %w", err)
	}
	return nil
}
