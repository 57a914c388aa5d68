// Package chat holds the negotiation state machine for two-party
// conversations: request, accept or reject, then a single message that
// closes the conversation slot.
package chat

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var (
	ErrRequestNotFound  = errors.New("chat request not found")
	ErrNotPending       = errors.New("chat request is not pending")
	ErrWrongRecipient   = errors.New("only the recipient may respond to a chat request")
	ErrConversationOpen = errors.New("a conversation is already open between these agents")
)

type Request struct {
	ID          string    `json:"request_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Message     string    `json:"message"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Board tracks every open request. It enforces at most one non-rejected
// request per ordered agent pair, which is what keeps conversations to one
// at a time.
type Board struct {
	requests map[string]*Request
	Now      func() time.Time
}

func NewBoard() *Board {
	return &Board{requests: map[string]*Request{}, Now: time.Now}
}

func (b *Board) CreateRequest(senderID, recipientID, message string) (*Request, error) {
	for _, req := range b.requests {
		if req.SenderID == senderID && req.RecipientID == recipientID && req.Status != StatusRejected {
			return nil, ErrConversationOpen
		}
	}
	req := &Request{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     message,
		Status:      StatusPending,
		CreatedAt:   b.Now(),
	}
	b.requests[req.ID] = req
	return req, nil
}

func (b *Board) Request(id string) (*Request, bool) {
	req, ok := b.requests[id]
	return req, ok
}

// PendingFor returns the pending requests addressed to the given agent.
func (b *Board) PendingFor(recipientID string) []*Request {
	out := []*Request{}
	for _, req := range b.requests {
		if req.RecipientID == recipientID && req.Status == StatusPending {
			out = append(out, req)
		}
	}
	return out
}

// Respond transitions a pending request. Only the named recipient may
// respond; anything else is a protocol violation reported as an error.
func (b *Board) Respond(requestID, responderID string, accept bool) (*Request, error) {
	req, ok := b.requests[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if req.RecipientID != responderID {
		return nil, ErrWrongRecipient
	}
	if req.Status != StatusPending {
		return nil, ErrNotPending
	}
	if accept {
		req.Status = StatusAccepted
	} else {
		req.Status = StatusRejected
	}
	return req, nil
}

// AcceptedBetween finds the accepted request linking the two agents in
// either direction.
func (b *Board) AcceptedBetween(a, c string) (*Request, bool) {
	for _, req := range b.requests {
		if req.Status != StatusAccepted {
			continue
		}
		if (req.SenderID == a && req.RecipientID == c) || (req.SenderID == c && req.RecipientID == a) {
			return req, true
		}
	}
	return nil, false
}

// CloseConversation consumes an accepted request after its single message
// exchange. A new negotiation is required for the next message.
func (b *Board) CloseConversation(requestID string) {
	delete(b.requests, requestID)
}

func (b *Board) Reset() {
	b.requests = map[string]*Request{}
}
