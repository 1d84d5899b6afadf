package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/adapter"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/policy"
	"github.com/MKhiriev/go-site-keeper/internal/settings"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/internal/validators"
	"github.com/MKhiriev/go-site-keeper/models"
)

const (
	keyFriendApplyEnable = "friend_apply_enable"
	keyWebhookURL        = "webhook.url"
	keyWebhookSecret     = "webhook.secret"
)

// Values stored in models.Friend.Health by CheckHealth.
const (
	HealthOK          = ""
	HealthTimeout     = "timeout"
	HealthUnreachable = "unreachable"
)

const (
	notifyTimeout = 10 * time.Second
	probeTimeout  = 10 * time.Second
)

type friendService struct {
	friends   store.FriendRepository
	settings  *settings.Stores
	fetcher   adapter.RemoteFetcher
	notifier  adapter.Notifier
	validator validators.Validator

	now func() time.Time

	logger *logger.Logger
}

func NewFriendService(
	friends store.FriendRepository,
	stores *settings.Stores,
	fetcher adapter.RemoteFetcher,
	notifier adapter.Notifier,
	validator validators.Validator,
	logger *logger.Logger,
) FriendService {
	return &friendService{
		friends:   friends,
		settings:  stores,
		fetcher:   fetcher,
		notifier:  notifier,
		validator: validator,
		now:       time.Now,
		logger:    logger,
	}
}

// List returns the friends visible to id: everything for admins, accepted
// entries plus the caller's own applications for users, accepted entries
// only for anonymous callers.
func (s *friendService) List(ctx context.Context, id *models.Identity) ([]models.Friend, error) {
	var filter models.FriendFilter
	switch {
	case id.Admin():
	case id != nil:
		filter = models.FriendFilter{AcceptedOnly: true, IncludeOwner: id.UserID}
	default:
		filter = models.FriendFilter{AcceptedOnly: true}
	}

	friends, err := s.friends.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*friendService.List").Msg("error listing friends")
		return nil, classify(err)
	}

	return friends, nil
}

// Create adds a friend entry. Non-admin callers file an application: it is
// allowed only while applications are open and only once per user, and it
// always starts unaccepted.
func (s *friendService) Create(ctx context.Context, id *models.Identity, req models.FriendRequest) (models.Friend, error) {
	log := logger.FromContext(ctx)

	if err := policy.RequireAuthenticated(id); err != nil {
		return models.Friend{}, err
	}
	if err := s.validateRequest(ctx, req); err != nil {
		return models.Friend{}, err
	}
	if req.Name == nil || req.URL == nil {
		return models.Friend{}, fmt.Errorf("%w: %w: name and url are required", ErrInvalidArgument, validators.ErrInvalidRequest)
	}

	friend := models.Friend{OwnerUserID: id.UserID}
	applyRequest(&friend, req)

	if err := checkAdminFields(id, friend, req); err != nil {
		return models.Friend{}, err
	}

	if id.Admin() {
		applyAdminFields(&friend, req)
	} else if err := s.checkCanApply(ctx, id); err != nil {
		return models.Friend{}, err
	}

	created, err := s.friends.Create(ctx, friend)
	if err != nil {
		log.Err(err).Int64("user_id", id.UserID).Str("func", "*friendService.Create").Msg("error creating friend")
		return models.Friend{}, classify(err)
	}

	if !id.Admin() {
		s.notifyApplied(ctx, created)
	}

	return created, nil
}

// Update changes a friend entry owned by id. An update made by the owner
// withdraws acceptance so the admin reviews the new content.
func (s *friendService) Update(ctx context.Context, id *models.Identity, friendID int64, req models.FriendRequest) (models.Friend, error) {
	log := logger.FromContext(ctx)

	if err := policy.RequireAuthenticated(id); err != nil {
		return models.Friend{}, err
	}

	friend, err := s.friends.Get(ctx, friendID)
	if err != nil {
		log.Err(err).Int64("friend_id", friendID).Str("func", "*friendService.Update").Msg("error loading friend")
		return models.Friend{}, classify(err)
	}
	if err = policy.RequireOwnerOrAdmin(id, friend.OwnerUserID); err != nil {
		return models.Friend{}, err
	}
	if err = s.validateRequest(ctx, req); err != nil {
		return models.Friend{}, err
	}
	if err = checkAdminFields(id, friend, req); err != nil {
		return models.Friend{}, err
	}

	applyRequest(&friend, req)
	if id.Admin() {
		applyAdminFields(&friend, req)
	} else {
		friend.Accepted = false
	}

	updated, err := s.friends.Update(ctx, friend)
	if err != nil {
		log.Err(err).Int64("friend_id", friendID).Str("func", "*friendService.Update").Msg("error updating friend")
		return models.Friend{}, classify(err)
	}

	return updated, nil
}

// Delete removes a friend entry owned by id.
func (s *friendService) Delete(ctx context.Context, id *models.Identity, friendID int64) error {
	log := logger.FromContext(ctx)

	if err := policy.RequireAuthenticated(id); err != nil {
		return err
	}

	friend, err := s.friends.Get(ctx, friendID)
	if err != nil {
		log.Err(err).Int64("friend_id", friendID).Str("func", "*friendService.Delete").Msg("error loading friend")
		return classify(err)
	}
	if err = policy.RequireOwnerOrAdmin(id, friend.OwnerUserID); err != nil {
		return err
	}

	if err = s.friends.Delete(ctx, friendID); err != nil {
		log.Err(err).Int64("friend_id", friendID).Str("func", "*friendService.Delete").Msg("error deleting friend")
		return classify(err)
	}

	return nil
}

// CheckHealth probes the URL of every accepted friend and stores the result.
// A failing probe is recorded, not returned; only repository failures abort
// the run.
func (s *friendService) CheckHealth(ctx context.Context) error {
	log := logger.FromContext(ctx)

	friends, err := s.friends.List(ctx, models.FriendFilter{AcceptedOnly: true})
	if err != nil {
		log.Err(err).Str("func", "*friendService.CheckHealth").Msg("error listing friends")
		return classify(err)
	}

	for _, friend := range friends {
		if err = ctx.Err(); err != nil {
			return err
		}

		health := s.probe(ctx, friend.URL)
		if health == friend.Health {
			continue
		}

		if err = s.friends.UpdateHealth(ctx, friend.ID, health); err != nil && !errors.Is(err, store.ErrFriendNotFound) {
			log.Err(err).Int64("friend_id", friend.ID).Str("func", "*friendService.CheckHealth").Msg("error storing friend health")
			return classify(err)
		}
		log.Info().Int64("friend_id", friend.ID).Str("health", health).Msg("friend health changed")
	}

	return nil
}

func (s *friendService) probe(ctx context.Context, url string) string {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	code, err := s.fetcher.Probe(ctx, url)
	return healthFromProbe(code, err)
}

// healthFromProbe classifies a probe outcome: empty for 2xx and 3xx, the
// status code for other answers, an error class when nothing answered.
func healthFromProbe(code int, err error) string {
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return HealthTimeout
		}
		return HealthUnreachable
	}
	if code >= 200 && code < 400 {
		return HealthOK
	}
	return strconv.Itoa(code)
}

func (s *friendService) validateRequest(ctx context.Context, req models.FriendRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*friendService.validateRequest").Msg("friend request rejected")
		return classify(err)
	}
	return nil
}

// checkCanApply enforces the rules for non-admin applications.
func (s *friendService) checkCanApply(ctx context.Context, id *models.Identity) error {
	log := logger.FromContext(ctx)

	enabled, err := s.settings.Client.GetOrDefault(ctx, keyFriendApplyEnable, true)
	if err != nil {
		log.Err(err).Str("func", "*friendService.checkCanApply").Msg("error reading friend_apply_enable")
		return classify(err)
	}
	if open, ok := enabled.(bool); ok && !open {
		return fmt.Errorf("%w: %w", ErrForbidden, ErrFriendApplyDisabled)
	}

	count, err := s.friends.CountByOwner(ctx, id.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", id.UserID).Str("func", "*friendService.checkCanApply").Msg("error counting applications")
		return classify(err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %w", ErrConflict, ErrFriendAlreadyApplied)
	}

	return nil
}

// notifyApplied posts a friend.applied event to the configured webhook.
// Delivery failures are logged and do not fail the application.
func (s *friendService) notifyApplied(ctx context.Context, friend models.Friend) {
	log := logger.FromContext(ctx)

	server, err := s.settings.Server.All(ctx)
	if err != nil {
		log.Err(err).Str("func", "*friendService.notifyApplied").Msg("error reading webhook settings")
		return
	}

	target := models.WebhookTarget{
		URL:    stringSetting(server, keyWebhookURL),
		Secret: stringSetting(server, keyWebhookSecret),
	}
	if target.URL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	event := models.WebhookEvent{Type: models.EventFriendApplied, Friend: &friend, OccurredAt: s.now().UTC()}
	if err = s.notifier.Notify(ctx, target, event); err != nil {
		log.Err(err).Int64("friend_id", friend.ID).Str("func", "*friendService.notifyApplied").Msg("error delivering webhook")
	}
}

// checkAdminFields rejects a non-admin request that would accept an entry or
// move it. Echoing the current values back is allowed.
func checkAdminFields(id *models.Identity, current models.Friend, req models.FriendRequest) error {
	if policy.CanSetAcceptance(id) {
		return nil
	}
	if req.Accepted != nil && *req.Accepted && !current.Accepted {
		return fmt.Errorf("%w: %w", ErrForbidden, ErrAcceptanceIsAdminOnly)
	}
	if req.SortOrder != nil && *req.SortOrder != current.SortOrder {
		return fmt.Errorf("%w: %w", ErrForbidden, ErrAcceptanceIsAdminOnly)
	}
	return nil
}

func applyRequest(friend *models.Friend, req models.FriendRequest) {
	if req.Name != nil {
		friend.Name = *req.Name
	}
	if req.Description != nil {
		friend.Description = *req.Description
	}
	if req.Avatar != nil {
		friend.Avatar = *req.Avatar
	}
	if req.URL != nil {
		friend.URL = *req.URL
	}
}

func applyAdminFields(friend *models.Friend, req models.FriendRequest) {
	if req.Accepted != nil {
		friend.Accepted = *req.Accepted
	}
	if req.SortOrder != nil {
		friend.SortOrder = *req.SortOrder
	}
}
