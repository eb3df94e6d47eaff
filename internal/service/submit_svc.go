package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/repository"
	"github.com/ranki5/ranki5-go/internal/youtube"
	"github.com/ranki5/ranki5-go/pkg/youtubeurl"
)

var (
	ErrInvalidURL       = errors.New("invalid URL")
	ErrDuplicateChannel = errors.New("channel already proposed")
)

// SubmitService turns a user-pasted YouTube URL into an unverified channel
// record, resolving real metrics against the Data API when possible.
type SubmitService struct {
	repo  *repository.ChannelRepo
	yt    *youtube.Client
	cache *CacheService
}

func NewSubmitService(repo *repository.ChannelRepo, yt *youtube.Client, cache *CacheService) *SubmitService {
	return &SubmitService{repo: repo, yt: yt, cache: cache}
}

// Submit validates, resolves and stores a channel proposal for userID.
func (s *SubmitService) Submit(ctx context.Context, req model.SubmitChannelRequest, userID int64) (*model.SubmitChannelResponse, error) {
	identifier := req.YoutubeID
	if identifier == "" {
		identifier = youtubeurl.ParseIdentifier(req.URL)
	}
	if identifier == "" {
		return nil, ErrInvalidURL
	}

	nom := req.Nom
	if nom == "" {
		nom = youtubeurl.ExtractDisplayName(req.URL)
	}

	ch := model.Channel{
		YoutubeID: identifier,
		Nom:       nom,
		Source:    model.SourceCommunity,
		SoumisPar: &userID,
	}
	if req.URL != "" {
		u := req.URL
		ch.YoutubeURL = &u
	}

	note := ""
	info, err := s.resolve(ctx, identifier)
	switch {
	case err == nil:
		ch.YoutubeID = info.ID
		ch.Nom = info.Title
		ch.Abonnes = info.SubscriberCount
		if info.ViewCount > 0 {
			v := info.ViewCount
			ch.Vues = &v
		}
		if info.VideoCount > 0 {
			v := info.VideoCount
			ch.Videos = &v
		}
		if info.ThumbnailURL != "" {
			img := info.ThumbnailURL
			ch.Image = &img
		}
		if info.Country != "" {
			pays := info.Country
			ch.Pays = &pays
		}
		if info.CustomURL != "" {
			cu := info.CustomURL
			ch.CustomURL = &cu
		}
		ch.IsTop100 = ch.EffectiveTop100()
		if ch.IsTop100 {
			ch.Source = model.SourceTop100
		}
	case errors.Is(err, youtube.ErrNotFound):
		return nil, ErrInvalidURL
	default:
		// Data API unreachable or unconfigured: store a placeholder
		// identifier; an admin refresh resolves it later.
		log.Printf("submit: resolution failed for %q, storing placeholder: %v", identifier, err)
		if !youtubeurl.IsChannelID(identifier) {
			ch.YoutubeID = placeholderID()
		}
		note = "Statistiques en attente de vérification"
	}

	if existing, err := s.repo.FindByYoutubeID(ctx, ch.YoutubeID); err == nil && existing != nil {
		return nil, ErrDuplicateChannel
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	id, err := s.repo.Create(ctx, &ch)
	if err != nil {
		// A concurrent submission of the same channel can slip past the
		// lookup above and land on the youtube_id UNIQUE constraint.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateChannel
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateLists(ctx); err != nil {
			log.Printf("cache: invalidate error: %v", err)
		}
	}

	return &model.SubmitChannelResponse{
		Success: true,
		Message: "Chaîne proposée avec succès ! Elle sera vérifiée prochainement.",
		ID:      id,
		ChannelInfo: &model.ChannelInfo{
			YoutubeID: ch.YoutubeID,
			Nom:       ch.Nom,
			Abonnes:   ch.Abonnes,
			Note:      note,
		},
	}, nil
}

func (s *SubmitService) resolve(ctx context.Context, identifier string) (*youtube.ChannelInfo, error) {
	if youtubeurl.IsChannelID(identifier) {
		return s.yt.ChannelByID(ctx, identifier)
	}
	return s.yt.ChannelByHandle(ctx, identifier)
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// placeholderID generates a temp_ identifier for records the Data API could
// not resolve at submission time.
func placeholderID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("temp_%d", time.Now().UnixNano())
	}
	return "temp_" + hex.EncodeToString(buf[:])
}
