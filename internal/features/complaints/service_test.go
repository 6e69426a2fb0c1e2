package complaints

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/lucas24aguirre-lang/comuna-manantial/pkg/errors"
)

type fakeRemote struct {
	created    []*Complaint
	updates    map[string]Draft
	increments int
	statuses   map[string]string
	comments   map[string][]Comment
	deleted    []string
	failWith   error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		updates:  make(map[string]Draft),
		statuses: make(map[string]string),
		comments: make(map[string][]Comment),
	}
}

func (f *fakeRemote) Create(_ context.Context, c *Complaint) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	f.created = append(f.created, c)
	return "new-id", nil
}

func (f *fakeRemote) UpdateDraft(_ context.Context, id string, d Draft) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.updates[id] = d
	return nil
}

func (f *fakeRemote) IncrementVotes(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.increments++
	return nil
}

func (f *fakeRemote) SetStatus(_ context.Context, id, newStatus string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.statuses[id] = newStatus
	return nil
}

func (f *fakeRemote) AppendComment(_ context.Context, id string, comment Comment) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.comments[id] = append(f.comments[id], comment)
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeImages struct {
	deleted  []string
	failWith error
}

func (f *fakeImages) Delete(_ context.Context, publicID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.deleted = append(f.deleted, publicID)
	return nil
}

func newTestService() (*Service, *fakeRemote, *fakeImages) {
	remote := newFakeRemote()
	images := &fakeImages{}
	svc := NewService(remote, images, NewStore())
	return svc, remote, images
}

func stageDraft(svc *Service, clientKey string, fields map[string]interface{}) {
	for field, value := range fields {
		svc.Drafts().Dispatch(clientKey, Action{Type: ActionSetField, Field: field, Value: value})
	}
}

func TestSave_ValidationFailuresMakeNoRemoteCall(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
	}{
		{"empty title", "", "descripción válida"},
		{"title too long", strings.Repeat("a", 101), "descripción válida"},
		{"empty description", "Título válido", ""},
		{"description too long", "Título válido", strings.Repeat("d", 1001)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, remote, _ := newTestService()
			stageDraft(svc, "k", map[string]interface{}{
				"title":       tc.title,
				"description": tc.description,
			})

			_, err := svc.Save(context.Background(), "k")
			require.ErrorIs(t, err, apperrors.ErrValidation)
			require.Empty(t, remote.created)
			require.Empty(t, remote.updates)

			// draft survives a failed submission
			require.Equal(t, tc.title, svc.Drafts().Get("k").Title)
		})
	}
}

func TestSave_CreatesNewComplaint(t *testing.T) {
	svc, remote, _ := newTestService()
	stageDraft(svc, "k", map[string]interface{}{
		"title":       "Bache en calle Falsa",
		"description": "Pozo profundo",
		"category":    "Baches",
	})

	result, err := svc.Save(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, result.Created)
	require.Equal(t, "new-id", result.ID)

	require.Len(t, remote.created, 1)
	created := remote.created[0]
	require.Equal(t, "Bache en calle Falsa", created.Title)
	require.Equal(t, StatusOpen, created.Status)
	require.Zero(t, created.Votes)
	require.NotNil(t, created.Comments)
	require.Empty(t, created.Comments)

	// draft resets on success
	require.Equal(t, EmptyDraft(), svc.Drafts().Get("k"))
}

func TestSave_UpdatesExistingComplaint(t *testing.T) {
	svc, remote, _ := newTestService()
	svc.Store().Replace([]Complaint{{ID: "c9", Title: "Viejo", Description: "texto", Category: "Agua"}})

	existing, _ := svc.Store().Get("c9")
	svc.Drafts().Dispatch("k", Action{Type: ActionSetForm, Complaint: &existing})
	stageDraft(svc, "k", map[string]interface{}{"title": "Título corregido"})

	result, err := svc.Save(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, result.Created)
	require.Equal(t, "c9", result.ID)
	require.Equal(t, "Título corregido", remote.updates["c9"].Title)
	require.Empty(t, remote.created)
}

func TestSave_RemoteFailureKeepsDraft(t *testing.T) {
	svc, remote, _ := newTestService()
	remote.failWith = errors.New("network down")
	stageDraft(svc, "k", map[string]interface{}{
		"title":       "Título",
		"description": "Descripción",
	})

	_, err := svc.Save(context.Background(), "k")
	require.Error(t, err)
	require.Equal(t, "Título", svc.Drafts().Get("k").Title)
}

func TestVote_DebounceAllowsExactlyOneIncrement(t *testing.T) {
	svc, remote, _ := newTestService()

	now := time.Unix(5000, 0)
	svc.guard.now = func() time.Time { return now }

	require.NoError(t, svc.Vote(context.Background(), "k", "c1"))

	err := svc.Vote(context.Background(), "k", "c1")
	require.ErrorIs(t, err, apperrors.ErrVoteCooldown)
	require.Equal(t, 1, remote.increments)

	now = now.Add(VoteCooldown)
	require.NoError(t, svc.Vote(context.Background(), "k", "c1"))
	require.Equal(t, 2, remote.increments)
}

func TestVote_FailedIncrementLeavesGuardClear(t *testing.T) {
	svc, remote, _ := newTestService()
	remote.failWith = errors.New("permission denied")

	require.Error(t, svc.Vote(context.Background(), "k", "c1"))

	// the failed vote was not recorded, so a retry is allowed immediately
	remote.failWith = nil
	require.NoError(t, svc.Vote(context.Background(), "k", "c1"))
}

func TestToggleStatus_AdvancesCycle(t *testing.T) {
	svc, remote, _ := newTestService()

	next, err := svc.ToggleStatus(context.Background(), "c1", StatusOpen)
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, next)

	next, err = svc.ToggleStatus(context.Background(), "c1", next)
	require.NoError(t, err)
	require.Equal(t, StatusResolved, next)

	next, err = svc.ToggleStatus(context.Background(), "c1", next)
	require.NoError(t, err)
	require.Equal(t, StatusOpen, next)

	require.Equal(t, StatusOpen, remote.statuses["c1"])
}

func TestToggleStatus_FallsBackToStoreState(t *testing.T) {
	svc, remote, _ := newTestService()
	svc.Store().Replace([]Complaint{{ID: "c1", Status: StatusInProgress}})

	next, err := svc.ToggleStatus(context.Background(), "c1", "")
	require.NoError(t, err)
	require.Equal(t, StatusResolved, next)
	require.Equal(t, StatusResolved, remote.statuses["c1"])
}

func TestAddComment_BlankTextIsRejected(t *testing.T) {
	svc, remote, _ := newTestService()

	_, err := svc.AddComment(context.Background(), "c1", "   ", CommentAuthor{})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Empty(t, remote.comments)
}

func TestAddComment_AppendsWithGeneratedID(t *testing.T) {
	svc, remote, _ := newTestService()
	author := CommentAuthor{UID: "u1", DisplayName: "Vecina", Admin: false}

	comment, err := svc.AddComment(context.Background(), "c1", "Sigue igual", author)
	require.NoError(t, err)
	require.NotEmpty(t, comment.ID)
	require.False(t, comment.CreatedAt.IsZero())
	require.Equal(t, author, comment.Author)

	require.Len(t, remote.comments["c1"], 1)

	other, err := svc.AddComment(context.Background(), "c1", "Otro", author)
	require.NoError(t, err)
	require.NotEqual(t, comment.ID, other.ID)
}

func TestDelete_RemovesImageFirst(t *testing.T) {
	svc, remote, images := newTestService()
	svc.Store().Replace([]Complaint{{ID: "c1", ImagePath: "reclamos/c1/foto", ImageURL: "https://x/foto"}})

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	require.Equal(t, []string{"reclamos/c1/foto"}, images.deleted)
	require.Equal(t, []string{"c1"}, remote.deleted)
}

func TestDelete_ImageFailureIsNotFatal(t *testing.T) {
	svc, remote, images := newTestService()
	images.failWith = errors.New("storage unavailable")
	svc.Store().Replace([]Complaint{{ID: "c1", ImagePath: "reclamos/c1/foto"}})

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	require.Equal(t, []string{"c1"}, remote.deleted)
}

type flakyStream struct {
	calls    int
	failures int
}

func (f *flakyStream) Listen(_ context.Context, push func([]Complaint)) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("stream broken")
	}
	push([]Complaint{{ID: "c1", Status: StatusOpen}})
	return nil
}

func TestListen_ResubscribesAfterStreamFailure(t *testing.T) {
	svc, _, _ := newTestService()
	svc.listenBackoff = time.Millisecond

	stream := &flakyStream{failures: 2}
	svc.Listen(context.Background(), stream)

	require.Equal(t, 3, stream.calls)
	require.True(t, svc.Store().Loaded())
	_, ok := svc.Store().Get("c1")
	require.True(t, ok)
}

func TestListen_StopsOnContextCancel(t *testing.T) {
	svc, _, _ := newTestService()
	svc.listenBackoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := &flakyStream{failures: 1000}
	svc.Listen(ctx, stream)

	require.Equal(t, 1, stream.calls)
}

func TestDelete_NoImageSkipsStorage(t *testing.T) {
	svc, remote, images := newTestService()
	svc.Store().Replace([]Complaint{{ID: "c1"}})

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	require.Empty(t, images.deleted)
	require.Equal(t, []string{"c1"}, remote.deleted)
}
