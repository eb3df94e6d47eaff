package service

import (
	"context"
	"log"

	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/repository"
)

type ChannelService struct {
	repo  *repository.ChannelRepo
	cache *CacheService
}

func NewChannelService(repo *repository.ChannelRepo, cache *CacheService) *ChannelService {
	return &ChannelService{repo: repo, cache: cache}
}

// NormalizeQuery applies the listing defaults: empty filter and country mean
// "all".
func NormalizeQuery(q model.ChannelQuery) model.ChannelQuery {
	if q.Filter == "" {
		q.Filter = "all"
	}
	if q.Country == "" {
		q.Country = "all"
	}
	return q
}

// List returns channels for a query tuple, cache-aside: Redis first, store
// on miss, then populate. The boolean reports whether the listing came from
// the cache. Cache errors are logged and ignored so a Redis outage never
// breaks listings.
func (s *ChannelService) List(ctx context.Context, q model.ChannelQuery) ([]model.Channel, bool, error) {
	q = NormalizeQuery(q)

	if s.cache != nil {
		cached, err := s.cache.GetList(ctx, q)
		if err != nil {
			log.Printf("cache: list get error: %v", err)
		} else if cached != nil {
			return cached, true, nil
		}
	}

	channels, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, q, channels); err != nil {
			log.Printf("cache: list set error: %v", err)
		}
	}
	return channels, false, nil
}

// Get returns a single channel by internal ID.
func (s *ChannelService) Get(ctx context.Context, id int64) (*model.Channel, error) {
	return s.repo.FindByID(ctx, id)
}

// GlobalStats aggregates platform-wide numbers.
func (s *ChannelService) GlobalStats(ctx context.Context) (*model.GlobalStats, error) {
	return s.repo.GlobalStats(ctx)
}
