package services

import (
	"context"
	"strings"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/repository"
	"github.com/LovationAdmin/pcease-api/utils"
)

const (
	DefaultThreadLimit = 50
	MaxThreadLimit     = 200
)

// EventPublisher fans forum events out to live subscribers.
type EventPublisher interface {
	Publish(event models.ForumEvent)
}

type ForumService struct {
	threads   repository.ThreadRepository
	publisher EventPublisher
}

func NewForumService(threads repository.ThreadRepository, publisher EventPublisher) *ForumService {
	return &ForumService{threads: threads, publisher: publisher}
}

func (s *ForumService) publish(e models.ForumEvent) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}

func (s *ForumService) List(ctx context.Context, filter models.ThreadFilter) ([]models.Thread, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultThreadLimit
	}
	if filter.Limit > MaxThreadLimit {
		filter.Limit = MaxThreadLimit
	}
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.threads.List(ctx, filter)
}

func (s *ForumService) Get(ctx context.Context, id string) (*models.Thread, error) {
	return s.threads.Get(ctx, id)
}

func (s *ForumService) Create(ctx context.Context, username string, req models.CreateThreadRequest) (*models.Thread, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, ErrMissingThread
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.DefaultThreadCategory
	}
	t := &models.Thread{User: username, Title: title, Category: category, Content: content}
	if err := s.threads.Create(ctx, t); err != nil {
		return nil, err
	}
	utils.SafeInfo("[Forum] thread %s created by %s", t.ID, utils.MaskUsername(username))
	s.publish(models.ForumEvent{Type: models.EventThreadCreated, ThreadID: t.ID, User: username, Title: title})
	return t, nil
}

// Delete removes a thread. Only its author may do so.
func (s *ForumService) Delete(ctx context.Context, id, username string) error {
	t, err := s.threads.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.User != username {
		return ErrForbidden
	}
	if err := s.threads.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(models.ForumEvent{Type: models.EventThreadDeleted, ThreadID: id, User: username, Title: t.Title})
	return nil
}

func (s *ForumService) Reply(ctx context.Context, threadID, username string, req models.CreateReplyRequest) (*models.Reply, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyReply
	}
	r := &models.Reply{ThreadID: threadID, User: username, Content: content}
	if err := s.threads.AddReply(ctx, r); err != nil {
		return nil, err
	}
	s.publish(models.ForumEvent{Type: models.EventReplyAdded, ThreadID: threadID, User: username, ReplyID: r.ID})
	return r, nil
}
