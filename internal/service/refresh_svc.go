package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/repository"
	"github.com/ranki5/ranki5-go/internal/youtube"
	"github.com/ranki5/ranki5-go/pkg/youtubeurl"
)

const refreshBatchSize = 50 // Data API batch limit

// RefreshService re-fetches channel metrics from the YouTube Data API, one
// channel at a time or in bulk. Bulk runs tolerate partial failure and
// report per-channel errors instead of aborting.
type RefreshService struct {
	repo  *repository.ChannelRepo
	yt    *youtube.Client
	cache *CacheService
}

func NewRefreshService(repo *repository.ChannelRepo, yt *youtube.Client, cache *CacheService) *RefreshService {
	return &RefreshService{repo: repo, yt: yt, cache: cache}
}

// RefreshOne updates a single channel's stats.
func (s *RefreshService) RefreshOne(ctx context.Context, channelID int64) error {
	ch, err := s.repo.FindByID(ctx, channelID)
	if err != nil {
		return err
	}

	info, err := s.lookup(ctx, ch.YoutubeID, ch.Nom)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStats(ctx, ch.ID, info); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// RefreshAll updates every channel. Canonical UC… identifiers are fetched in
// API batches; handles and placeholders are resolved one by one. Failures
// are collected, never fatal.
func (s *RefreshService) RefreshAll(ctx context.Context) (*model.RefreshResult, error) {
	refs, err := s.repo.AllRefs(ctx)
	if err != nil {
		return nil, err
	}

	result := &model.RefreshResult{Success: true, Total: len(refs)}

	var batch []repository.ChannelRef
	for _, ref := range refs {
		if youtubeurl.IsChannelID(ref.YoutubeID) {
			batch = append(batch, ref)
			if len(batch) == refreshBatchSize {
				s.refreshBatch(ctx, batch, result)
				batch = batch[:0]
			}
			continue
		}
		s.refreshSingle(ctx, ref, result)
	}
	if len(batch) > 0 {
		s.refreshBatch(ctx, batch, result)
	}

	s.invalidate(ctx)
	result.Message = fmt.Sprintf("%d/%d chaînes mises à jour", result.Updated, result.Total)
	return result, nil
}

func (s *RefreshService) refreshBatch(ctx context.Context, refs []repository.ChannelRef, result *model.RefreshResult) {
	ids := make([]string, len(refs))
	byID := make(map[string]repository.ChannelRef, len(refs))
	for i, ref := range refs {
		ids[i] = ref.YoutubeID
		byID[ref.YoutubeID] = ref
	}

	infos, err := s.yt.ChannelsByIDs(ctx, ids)
	if err != nil {
		for _, ref := range refs {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ref.Nom, err))
		}
		return
	}

	seen := make(map[string]bool, len(infos))
	for i := range infos {
		info := &infos[i]
		ref, ok := byID[info.ID]
		if !ok {
			continue
		}
		seen[info.ID] = true
		if err := s.repo.UpdateStats(ctx, ref.ID, info); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ref.Nom, err))
			continue
		}
		result.Updated++
	}
	for _, ref := range refs {
		if !seen[ref.YoutubeID] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: chaîne introuvable", ref.Nom))
		}
	}
}

func (s *RefreshService) refreshSingle(ctx context.Context, ref repository.ChannelRef, result *model.RefreshResult) {
	info, err := s.lookup(ctx, ref.YoutubeID, ref.Nom)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ref.Nom, err))
		return
	}
	if err := s.repo.UpdateStats(ctx, ref.ID, info); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ref.Nom, err))
		return
	}
	result.Updated++
}

// lookup resolves an identifier of any flavor. Placeholder temp_ records
// fall back to the stored display name as a handle guess.
func (s *RefreshService) lookup(ctx context.Context, youtubeID, nom string) (*youtube.ChannelInfo, error) {
	switch {
	case youtubeurl.IsChannelID(youtubeID):
		return s.yt.ChannelByID(ctx, youtubeID)
	case strings.HasPrefix(youtubeID, "temp_"):
		return s.yt.ChannelByHandle(ctx, nom)
	default:
		return s.yt.ChannelByHandle(ctx, youtubeID)
	}
}

// ImportTop100 fetches the curated top-100 seed set and upserts the results.
func (s *RefreshService) ImportTop100(ctx context.Context) (*model.ImportResult, error) {
	result := &model.ImportResult{Success: true}

	for start := 0; start < len(top100Seed); start += refreshBatchSize {
		end := min(start+refreshBatchSize, len(top100Seed))

		infos, err := s.yt.ChannelsByIDs(ctx, top100Seed[start:end])
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		for i := range infos {
			inserted, err := s.repo.UpsertTop100(ctx, &infos[i])
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", infos[i].Title, err))
				continue
			}
			if inserted {
				result.Imported++
			} else {
				result.Updated++
			}
		}
	}

	s.invalidate(ctx)
	result.Message = fmt.Sprintf("%d importées, %d mises à jour", result.Imported, result.Updated)
	return result, nil
}

func (s *RefreshService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLists(ctx); err != nil {
		log.Printf("cache: invalidate error: %v", err)
	}
}
