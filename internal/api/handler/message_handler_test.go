package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

func TestMessageHandler_Send(t *testing.T) {
	stub := &stubMessageService{}
	h := NewMessageHandler(stub)
	ident := jobSeeker

	c, rec := newContext(http.MethodPost, "/api/messages", strings.NewReader(`{"receiver_id":"emp1","content":"Hello"}`), &ident)
	require.NoError(t, h.Send(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, stub.sent, 1)
	assert.Equal(t, jobSeeker.ID, stub.sent[0].SenderID)
	assert.Equal(t, "emp1", stub.sent[0].ReceiverID)
}

func TestMessageHandler_Send_Validation(t *testing.T) {
	h := NewMessageHandler(&stubMessageService{})
	ident := jobSeeker

	c, _ := newContext(http.MethodPost, "/api/messages", strings.NewReader(`{"receiver_id":"","content":""}`), &ident)
	var ve *domain.ValidationError
	require.ErrorAs(t, h.Send(c), &ve)
	assert.Contains(t, ve.Fields, "receiver_id")
	assert.Contains(t, ve.Fields, "content")
}

func TestMessageHandler_Send_UnknownReceiver(t *testing.T) {
	h := NewMessageHandler(&stubMessageService{sendErr: domain.ErrInvalidID})
	ident := jobSeeker

	c, _ := newContext(http.MethodPost, "/api/messages", strings.NewReader(`{"receiver_id":"nope","content":"Hi"}`), &ident)
	assert.ErrorIs(t, h.Send(c), domain.ErrUserNotFound)
}

func TestMessageHandler_Conversation(t *testing.T) {
	stub := &stubMessageService{}
	h := NewMessageHandler(stub)
	ident := jobSeeker

	c, rec := newContext(http.MethodGet, "/api/messages/user/emp1", nil, &ident)
	withParam(c, "userId", "emp1")
	require.NoError(t, h.Conversation(c))
	assert.Equal(t, "emp1", stub.lastPeer)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMessageHandler_MarkRead(t *testing.T) {
	ident := jobSeeker

	h := NewMessageHandler(&stubMessageService{})
	c, rec := newContext(http.MethodPatch, "/api/messages/m1/read", nil, &ident)
	withParam(c, "id", "m1")
	require.NoError(t, h.MarkRead(c))
	assert.Contains(t, rec.Body.String(), `"read":true`)

	h = NewMessageHandler(&stubMessageService{markErr: domain.ErrForbidden})
	c, _ = newContext(http.MethodPatch, "/api/messages/m1/read", nil, &ident)
	withParam(c, "id", "m1")
	assert.ErrorIs(t, h.MarkRead(c), domain.ErrForbidden)
}

func TestMessageHandler_ConversationsAndUnread(t *testing.T) {
	stub := &stubMessageService{unread: 3}
	h := NewMessageHandler(stub)
	ident := jobSeeker

	c, rec := newContext(http.MethodGet, "/api/messages/conversations", nil, &ident)
	require.NoError(t, h.Conversations(c))
	assert.JSONEq(t, `[]`, rec.Body.String())

	c, rec = newContext(http.MethodGet, "/api/messages/unread", nil, &ident)
	require.NoError(t, h.Unread(c))
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}

func TestMessageHandler_Delete(t *testing.T) {
	h := NewMessageHandler(&stubMessageService{})
	ident := jobSeeker

	c, rec := newContext(http.MethodDelete, "/api/messages/m1", nil, &ident)
	withParam(c, "id", "m1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
