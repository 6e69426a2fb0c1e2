package complaints

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/logger"
	apperrors "github.com/lucas24aguirre-lang/comuna-manantial/pkg/errors"
)

// Remote is the document-database gateway the dispatcher talks to.
// Implemented by Repository; faked in tests.
type Remote interface {
	Create(ctx context.Context, c *Complaint) (string, error)
	UpdateDraft(ctx context.Context, id string, d Draft) error
	IncrementVotes(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, newStatus string) error
	AppendComment(ctx context.Context, id string, comment Comment) error
	Delete(ctx context.Context, id string) error
}

// ImageStore deletes stored evidence images. Implemented by the Cloudinary
// service.
type ImageStore interface {
	Delete(ctx context.Context, publicID string) error
}

// Streamer is the realtime snapshot source feeding the store. Implemented
// by Repository.
type Streamer interface {
	Listen(ctx context.Context, push func([]Complaint)) error
}

// Service validates input, calls the gateways, and keeps the client-side
// state (drafts, vote guard) coherent. Every failed remote call leaves
// prior state unchanged so the caller can retry.
type Service struct {
	remote Remote
	images ImageStore
	store  *Store
	drafts *DraftStore
	guard  *VoteGuard

	listenBackoff time.Duration
}

func NewService(remote Remote, images ImageStore, store *Store) *Service {
	return &Service{
		remote:        remote,
		images:        images,
		store:         store,
		drafts:        NewDraftStore(),
		guard:         NewVoteGuard(),
		listenBackoff: time.Second,
	}
}

// Drafts exposes the per-session draft store to the HTTP layer.
func (s *Service) Drafts() *DraftStore {
	return s.drafts
}

// Store exposes the realtime complaint store to the HTTP layer.
func (s *Service) Store() *Store {
	return s.store
}

// SaveResult reports what Save did.
type SaveResult struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}

// Save submits the client's draft. Validation failures return before any
// remote call. New complaints start Abierto with zero votes and no comments;
// existing ones get their editable fields overwritten. The draft resets on
// success.
func (s *Service) Save(ctx context.Context, clientKey string) (*SaveResult, error) {
	draft := s.drafts.Get(clientKey)

	if err := ValidateDraft(&draft); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	result := &SaveResult{ID: draft.ID}

	if draft.ID != "" {
		if err := s.remote.UpdateDraft(ctx, draft.ID, draft); err != nil {
			return nil, err
		}
	} else {
		c := &Complaint{
			Title:       draft.Title,
			Category:    draft.Category,
			Location:    draft.Location,
			Description: draft.Description,
			Anonymous:   draft.Anonymous,
			Status:      StatusOpen,
			Votes:       0,
			Comments:    []Comment{},
			ImageURL:    draft.ImageURL,
			ImagePath:   draft.ImagePath,
		}

		id, err := s.remote.Create(ctx, c)
		if err != nil {
			return nil, err
		}
		result.ID = id
		result.Created = true
	}

	s.drafts.Dispatch(clientKey, Action{Type: ActionReset})
	return result, nil
}

// Vote bumps the complaint's counter once per client per cooldown window.
// A denied vote performs no remote call.
func (s *Service) Vote(ctx context.Context, clientKey, id string) error {
	if !s.guard.CanVote(clientKey, id) {
		wait := s.guard.Remaining(clientKey, id).Round(time.Second)
		return fmt.Errorf("%w: wait %s before voting again", apperrors.ErrVoteCooldown, wait)
	}

	if err := s.remote.IncrementVotes(ctx, id); err != nil {
		return err
	}

	s.guard.RecordVote(clientKey, id)
	return nil
}

// ToggleStatus advances the status cycle and returns the new status. When
// the caller does not supply the current status it is read from the store.
func (s *Service) ToggleStatus(ctx context.Context, id, currentStatus string) (string, error) {
	if currentStatus == "" {
		if c, ok := s.store.Get(id); ok {
			currentStatus = c.Status
		}
	}

	next := NextStatus(currentStatus)
	if err := s.remote.SetStatus(ctx, id, next); err != nil {
		return "", err
	}
	return next, nil
}

// AddComment appends a comment with a generated ID and the current time.
func (s *Service) AddComment(ctx context.Context, id, text string, author CommentAuthor) (*Comment, error) {
	if err := ValidateCommentText(text); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	comment := Comment{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
		Author:    author,
	}

	if err := s.remote.AppendComment(ctx, id, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes the complaint. A stored evidence image is deleted first;
// if that fails the record deletion still proceeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if c, ok := s.store.Get(id); ok && c.HasImage() && s.images != nil {
		if err := s.images.Delete(ctx, c.ImagePath); err != nil {
			logger.Warn("Failed to delete image %s for complaint %s: %v", c.ImagePath, id, err)
		}
	}

	return s.remote.Delete(ctx, id)
}

// listenRetryMax caps the resubscribe backoff.
const listenRetryMax = time.Minute

// Listen feeds realtime snapshots into the store until ctx is cancelled.
// Stream failures resubscribe with doubling backoff so a transient outage
// does not leave the store frozen on stale data.
func (s *Service) Listen(ctx context.Context, stream Streamer) {
	backoff := s.listenBackoff

	for {
		err := stream.Listen(ctx, s.store.Replace)
		if err == nil || ctx.Err() != nil {
			return
		}

		logger.Error("Complaints subscription failed, retrying in %s: %v", backoff, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > listenRetryMax {
			backoff = listenRetryMax
		}
	}
}
