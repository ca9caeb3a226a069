package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"northpole/wishhub/internal/model"
	"northpole/wishhub/internal/repository"
)

type WishlistService interface {
	// Bootstrap stores the settings singleton. It is a one-time operation;
	// a second call fails with ErrAlreadyBootstrapped.
	Bootstrap(ctx context.Context, admin string, deadline int64, denylist []string) error
	// SetDeadline overwrites the cutover deadline. Admin only.
	SetDeadline(ctx context.Context, deadline int64) error
	// AddWish appends a wish to the caller's own list and returns its ID.
	AddWish(ctx context.Context, user, text string) (uint32, error)
	// MarkFulfilled flips a wish to fulfilled. Admin only.
	MarkFulfilled(ctx context.Context, user string, wishID uint32) error
	// GetList returns a user's wishes in insertion order. Public.
	GetList(ctx context.Context, user string) ([]model.Wish, error)
}

type wishlistService struct {
	repo     repository.WishlistRepository
	auth     Authorizer
	clock    Clock
	seq      Sequencer
	notifier Notifier
	logger   *zap.Logger
}

func NewWishlistService(
	repo repository.WishlistRepository,
	auth Authorizer,
	clock Clock,
	seq Sequencer,
	notifier Notifier,
	logger *zap.Logger,
) WishlistService {
	return &wishlistService{
		repo:     repo,
		auth:     auth,
		clock:    clock,
		seq:      seq,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *wishlistService) Bootstrap(ctx context.Context, admin string, deadline int64, denylist []string) error {
	existing, err := s.repo.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if existing != nil {
		return ErrAlreadyBootstrapped
	}
	return s.repo.SaveSettings(ctx, &model.Settings{
		Admin:    admin,
		Deadline: deadline,
		Denylist: denylist,
	})
}

func (s *wishlistService) SetDeadline(ctx context.Context, deadline int64) error {
	settings, err := s.settings(ctx)
	if err != nil {
		return err
	}
	if err := s.auth.Authorize(ctx, settings.Admin); err != nil {
		return ErrUnauthorized
	}

	settings.Deadline = deadline
	return s.repo.SaveSettings(ctx, settings)
}

func (s *wishlistService) AddWish(ctx context.Context, user, text string) (uint32, error) {
	settings, err := s.settings(ctx)
	if err != nil {
		return 0, err
	}

	// 1. Hard cutover: at or past the deadline nothing may change.
	deadline := settings.Deadline
	if deadline == 0 {
		deadline = model.DefaultDeadline
	}
	if s.clock.Now().Unix() >= deadline {
		return 0, ErrDeadlineExceeded
	}

	// 2. Only the user may extend their own list.
	if err := s.auth.Authorize(ctx, user); err != nil {
		return 0, ErrUnauthorized
	}

	// 3. Check it twice.
	if settings.Denylisted(user) {
		return 0, ErrForbidden
	}

	// 4. Allocate the ID and persist the advanced counter. The counter
	// moves forward unconditionally; from here on only storage writes
	// may fail.
	id, err := s.repo.NextID(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("allocate id: %w", err)
	}
	if err := s.repo.SaveNextID(ctx, user, id+1); err != nil {
		return 0, fmt.Errorf("advance id counter: %w", err)
	}

	wishes, err := s.repo.Wishes(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("load wishes: %w", err)
	}

	marker, err := s.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("sequence marker: %w", err)
	}

	wishes = append(wishes, model.Wish{
		ID:        id,
		Text:      text,
		CreatedAt: marker,
		Fulfilled: false,
	})
	if err := s.repo.SaveWishes(ctx, user, wishes); err != nil {
		return 0, fmt.Errorf("save wishes: %w", err)
	}

	if err := s.notifier.WishAdded(ctx, user, id); err != nil {
		s.logger.Warn("wish added notification failed",
			zap.String("user", user), zap.Uint32("wish_id", id), zap.Error(err))
	}
	return id, nil
}

func (s *wishlistService) MarkFulfilled(ctx context.Context, user string, wishID uint32) error {
	settings, err := s.settings(ctx)
	if err != nil {
		return err
	}
	if err := s.auth.Authorize(ctx, settings.Admin); err != nil {
		return ErrUnauthorized
	}

	wishes, err := s.repo.Wishes(ctx, user)
	if err != nil {
		return fmt.Errorf("load wishes: %w", err)
	}

	// IDs are unique per user, so first match is the match.
	found := false
	for i := range wishes {
		if wishes[i].ID == wishID {
			wishes[i].Fulfilled = true
			found = true
			break
		}
	}
	if !found {
		return ErrWishNotFound
	}

	if err := s.repo.SaveWishes(ctx, user, wishes); err != nil {
		return fmt.Errorf("save wishes: %w", err)
	}

	if err := s.notifier.WishFulfilled(ctx, user, wishID); err != nil {
		s.logger.Warn("wish fulfilled notification failed",
			zap.String("user", user), zap.Uint32("wish_id", wishID), zap.Error(err))
	}
	return nil
}

func (s *wishlistService) GetList(ctx context.Context, user string) ([]model.Wish, error) {
	wishes, err := s.repo.Wishes(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("load wishes: %w", err)
	}
	return wishes, nil
}

// settings loads the singleton, mapping its absence to ErrNotBootstrapped.
func (s *wishlistService) settings(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings == nil {
		return nil, ErrNotBootstrapped
	}
	return settings, nil
}

// ensure wishlistService implements WishlistService
var _ WishlistService = (*wishlistService)(nil)
