package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/repository"
)

var ErrUnknownTheme = errors.New("unknown theme")

type VoteService struct {
	repo        *repository.VoteRepo
	channelRepo *repository.ChannelRepo
	cache       *CacheService
}

func NewVoteService(repo *repository.VoteRepo, channelRepo *repository.ChannelRepo, cache *CacheService) *VoteService {
	return &VoteService{repo: repo, channelRepo: channelRepo, cache: cache}
}

// Submit records userID's theme vote for a channel. The channel's displayed
// theme may change as a result, so cached listings are dropped.
func (s *VoteService) Submit(ctx context.Context, req model.VoteThemeRequest, userID int64) (*model.VoteThemeResponse, error) {
	if !repository.ValidThemes[req.Theme] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, req.Theme)
	}

	// Surfaces pgx.ErrNoRows for unknown channels before writing a vote.
	if _, err := s.channelRepo.FindByID(ctx, req.ChannelID); err != nil {
		return nil, err
	}

	if err := s.repo.SubmitVote(ctx, req.ChannelID, userID, req.Theme); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateLists(ctx); err != nil {
			log.Printf("cache: invalidate error: %v", err)
		}
	}

	return &model.VoteThemeResponse{Success: true, Message: "Vote enregistré", Theme: req.Theme}, nil
}

// Votes returns the tally for a channel plus the requesting user's vote.
// userID <= 0 means no session; UserVote stays nil.
func (s *VoteService) Votes(ctx context.Context, chaineID, userID int64) (*model.ChannelVotes, error) {
	tally, err := s.repo.Tally(ctx, chaineID)
	if err != nil {
		return nil, err
	}

	votes := &model.ChannelVotes{Votes: tally}
	if userID > 0 {
		userVote, err := s.repo.UserVote(ctx, chaineID, userID)
		if err != nil {
			return nil, err
		}
		votes.UserVote = userVote
	}
	return votes, nil
}
