package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

type messagingFixture struct {
	svc      *MessageService
	messages *stubMessageRepo
	alice    domain.Identity
	bob      domain.Identity
	carol    domain.Identity
}

func newMessagingFixture(t *testing.T) *messagingFixture {
	t.Helper()
	users := newStubUserRepo()
	messages := newStubMessageRepo()

	mk := func(email string) domain.Identity {
		u, err := users.Create(context.Background(), &domain.User{Email: email, Role: domain.RoleJobSeeker})
		require.NoError(t, err)
		return u.Identity()
	}

	svc := NewMessageService(messages, users, discardLogger)
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	return &messagingFixture{
		svc:      svc,
		messages: messages,
		alice:    mk("alice@example.com"),
		bob:      mk("bob@example.com"),
		carol:    mk("carol@example.com"),
	}
}

func TestMessageService_Send_Validation(t *testing.T) {
	f := newMessagingFixture(t)
	ctx := context.Background()

	var ve *domain.ValidationError
	_, err := f.svc.Send(ctx, f.alice, f.bob.ID, "   ")
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.Send(ctx, f.alice, f.alice.ID, "hi me")
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.Send(ctx, f.alice, f.bob.ID, strings.Repeat("x", 5001))
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.Send(ctx, f.alice, "nobody", "hello")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMessageService_ConversationOrdering(t *testing.T) {
	f := newMessagingFixture(t)
	ctx := context.Background()

	first, err := f.svc.Send(ctx, f.alice, f.bob.ID, " hello bob ")
	require.NoError(t, err)
	assert.Equal(t, "hello bob", first.Content)
	_, err = f.svc.Send(ctx, f.carol, f.alice.ID, "hi alice")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, f.bob, f.alice.ID, "hey alice")
	require.NoError(t, err)

	conv, err := f.svc.Conversation(ctx, f.alice, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, conv, 2)
	assert.Equal(t, "hello bob", conv[0].Content)
	assert.Equal(t, "hey alice", conv[1].Content)

	convs, err := f.svc.Conversations(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, f.bob.ID, convs[0].UserID, "newest conversation first")
	assert.Equal(t, 1, convs[0].UnreadCount)
	assert.Equal(t, f.carol.ID, convs[1].UserID)

	n, err := f.svc.UnreadCount(ctx, f.alice)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestMessageService_MarkRead_OnlyReceiver(t *testing.T) {
	f := newMessagingFixture(t)
	ctx := context.Background()
	msg, err := f.svc.Send(ctx, f.alice, f.bob.ID, "ping")
	require.NoError(t, err)

	_, err = f.svc.MarkRead(ctx, f.alice, msg.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	read, err := f.svc.MarkRead(ctx, f.bob, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	_, err = f.svc.MarkRead(ctx, f.bob, "missing")
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestMessageService_Delete_OnlySender(t *testing.T) {
	f := newMessagingFixture(t)
	ctx := context.Background()
	msg, err := f.svc.Send(ctx, f.alice, f.bob.ID, "ping")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.bob, msg.ID), domain.ErrNotOwner)
	require.NoError(t, f.svc.Delete(ctx, f.alice, msg.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, f.alice, msg.ID), domain.ErrMessageNotFound)
}

func TestNoticeService_Deliver(t *testing.T) {
	messages := newStubMessageRepo()
	svc := NewNoticeService(messages, discardLogger)

	err := svc.Deliver(context.Background(), ports.ApplicationNotice{
		JobID: "j1", JobTitle: "Backend Engineer", OwnerID: "emp", ApplicantID: "seek", Applicant: "Sam Seeker",
	})
	require.NoError(t, err)

	msgs, _ := messages.ListBetween(context.Background(), "emp", "seek")
	require.Len(t, msgs, 1)
	assert.Equal(t, "seek", msgs[0].SenderID)
	assert.Equal(t, "emp", msgs[0].ReceiverID)
	assert.Contains(t, msgs[0].Content, `"Backend Engineer"`)

	assert.Error(t, svc.Deliver(context.Background(), ports.ApplicationNotice{JobID: "j1", OwnerID: "x", ApplicantID: "x"}))

	messages.createErr = errors.New("boom")
	assert.Error(t, svc.Deliver(context.Background(), ports.ApplicationNotice{JobID: "j1", OwnerID: "a", ApplicantID: "b"}))
}
