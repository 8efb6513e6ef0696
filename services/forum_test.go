package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ForumEvent
}

func (p *recordingPublisher) Publish(e models.ForumEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []string{}
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func TestForumThreadLifecycle(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewForumService(repository.NewMemoryThreads(), pub)
	ctx := context.Background()

	thread, err := svc.Create(ctx, "alice", models.CreateThreadRequest{Title: " Best GPU under 40k? ", Content: "Looking at 4060 Ti vs 7700 XT"})
	require.NoError(t, err)
	assert.Equal(t, "Best GPU under 40k?", thread.Title)
	assert.Equal(t, models.DefaultThreadCategory, thread.Category)

	reply, err := svc.Reply(ctx, thread.ID, "bob", models.CreateReplyRequest{Content: "  7700 XT for raster  "})
	require.NoError(t, err)
	assert.Equal(t, "7700 XT for raster", reply.Content)

	got, err := svc.Get(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, got.Replies, 1)
	assert.Equal(t, 1, got.ReplyCount)

	list, err := svc.List(ctx, models.ThreadFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ReplyCount)

	assert.True(t, errors.Is(svc.Delete(ctx, thread.ID, "bob"), ErrForbidden))
	require.NoError(t, svc.Delete(ctx, thread.ID, "alice"))

	_, err = svc.Get(ctx, thread.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	assert.Equal(t, []string{models.EventThreadCreated, models.EventReplyAdded, models.EventThreadDeleted}, pub.types())
}

func TestForumValidation(t *testing.T) {
	svc := NewForumService(repository.NewMemoryThreads(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", models.CreateThreadRequest{Title: "  ", Content: "body"})
	assert.True(t, errors.Is(err, ErrMissingThread))
	_, err = svc.Create(ctx, "alice", models.CreateThreadRequest{Title: "t", Content: ""})
	assert.True(t, errors.Is(err, ErrMissingThread))

	thread, err := svc.Create(ctx, "alice", models.CreateThreadRequest{Title: "t", Category: "Builds", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, "Builds", thread.Category)

	_, err = svc.Reply(ctx, thread.ID, "bob", models.CreateReplyRequest{Content: " \n "})
	assert.True(t, errors.Is(err, ErrEmptyReply))

	_, err = svc.Reply(ctx, "missing", "bob", models.CreateReplyRequest{Content: "hi"})
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	assert.True(t, errors.Is(svc.Delete(ctx, "missing", "alice"), repository.ErrNotFound))
}

func TestForumListFiltersAndLimits(t *testing.T) {
	svc := NewForumService(repository.NewMemoryThreads(), nil)
	ctx := context.Background()

	for _, req := range []models.CreateThreadRequest{
		{Title: "PSU advice", Category: "Power", Content: "650W enough?"},
		{Title: "First build", Category: "Builds", Content: "Ryzen 5 7600 + 4060"},
		{Title: "Case airflow", Category: "Builds", Content: "H5 Flow fans"},
	} {
		_, err := svc.Create(ctx, "alice", req)
		require.NoError(t, err)
	}

	builds, err := svc.List(ctx, models.ThreadFilter{Category: "builds"})
	require.NoError(t, err)
	require.Len(t, builds, 2)
	assert.Equal(t, "Case airflow", builds[0].Title, "newest first")

	found, err := svc.List(ctx, models.ThreadFilter{Search: "ryzen"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "First build", found[0].Title)

	page, err := svc.List(ctx, models.ThreadFilter{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "First build", page[0].Title)
}
