package action

import (
	"fmt"
	"regexp"
	"strings"

	"hearthverse/internal/domain/chat"
)

var (
	chatRequestPattern  = regexp.MustCompile(`^(?:chat_request|request chat with) (\S+) (.+)$`)
	chatResponsePattern = regexp.MustCompile(`^chat_response (\S+) (accept|reject)$`)
	chatAcceptPattern   = regexp.MustCompile(`^(accept|reject) chat (\S+)$`)
	chatPattern         = regexp.MustCompile(`^(?:chat|say to) (\S+) (.+)$`)
)

// ChatRequest opens a negotiation with a co-located agent. It ends the
// sender's turn; the recipient answers during their own slot.
type ChatRequest struct {
	base
	board         *chat.Board
	recipientName string
	message       string
}

func NewChatRequest(b Binding, raw string) Action {
	a := &ChatRequest{
		base:  base{kind: KindChatRequest, endsTurn: true, actor: b.Actor},
		board: b.Chat,
	}
	if m := chatRequestPattern.FindStringSubmatch(raw); m != nil {
		a.recipientName, a.message = m[1], m[2]
	}
	return a
}

func (a *ChatRequest) CheckPreconditions() bool {
	if a.board == nil {
		return a.fail("There is nobody to chat with.")
	}
	if a.recipientName == "" || a.message == "" {
		return a.fail("Request a chat with whom, about what?")
	}
	if a.actor == nil || a.actor.Location() == nil {
		return a.fail("You are nowhere.")
	}
	if a.recipientName == a.actor.Name() {
		return a.fail("You cannot chat with yourself.")
	}
	if _, here := a.actor.Location().Character(a.recipientName); !here {
		return a.fail("%s is not here.", a.recipientName)
	}
	return true
}

func (a *ChatRequest) ApplyEffects() (string, Result) {
	req, err := a.board.CreateRequest(a.actor.Name(), a.recipientName, a.message)
	if err != nil {
		return a.failed(err)
	}
	narration := fmt.Sprintf("You ask %s to chat: %q", a.recipientName, a.message)
	return a.ok(narration, Result{
		Recipient: a.recipientName,
		Metadata:  map[string]any{"request_id": req.ID, "message": a.message, "status": string(req.Status)},
	})
}

// ChatResponse accepts or rejects a pending request. Only the named
// recipient may respond, and responding does not end the turn so the
// responder can chat back immediately.
type ChatResponse struct {
	base
	board     *chat.Board
	requestID string
	accept    bool
	parsed    bool
}

func NewChatResponse(b Binding, raw string) Action {
	a := &ChatResponse{
		base:  base{kind: KindChatResponse, endsTurn: false, actor: b.Actor},
		board: b.Chat,
	}
	if m := chatResponsePattern.FindStringSubmatch(raw); m != nil {
		a.requestID, a.accept, a.parsed = m[1], m[2] == "accept", true
	} else if m := chatAcceptPattern.FindStringSubmatch(raw); m != nil {
		a.requestID, a.accept, a.parsed = m[2], m[1] == "accept", true
	}
	return a
}

func (a *ChatResponse) CheckPreconditions() bool {
	if a.board == nil || !a.parsed {
		return a.fail("Respond to which chat request?")
	}
	req, ok := a.board.Request(a.requestID)
	if !ok {
		return a.fail("There is no chat request %s.", a.requestID)
	}
	if a.actor == nil || req.RecipientID != a.actor.Name() {
		return a.fail("That chat request is not addressed to you.")
	}
	if req.Status != chat.StatusPending {
		return a.fail("That chat request was already answered.")
	}
	return true
}

func (a *ChatResponse) ApplyEffects() (string, Result) {
	req, err := a.board.Respond(a.requestID, a.actor.Name(), a.accept)
	if err != nil {
		return a.failed(err)
	}
	verb := "reject"
	if a.accept {
		verb = "accept"
	}
	narration := fmt.Sprintf("You %s the chat request from %s.", verb, req.SenderID)
	return a.ok(narration, Result{
		Recipient: req.SenderID,
		Metadata:  map[string]any{"request_id": req.ID, "status": string(req.Status)},
	})
}

// Chat delivers one message over an accepted request and closes the
// conversation slot; the next message needs a fresh negotiation.
type Chat struct {
	base
	board       *chat.Board
	partnerName string
	message     string
}

func NewChat(b Binding, raw string) Action {
	a := &Chat{
		base:  base{kind: KindChat, endsTurn: true, actor: b.Actor},
		board: b.Chat,
	}
	if m := chatPattern.FindStringSubmatch(raw); m != nil {
		a.partnerName, a.message = m[1], strings.TrimSpace(m[2])
	}
	return a
}

func (a *Chat) CheckPreconditions() bool {
	if a.board == nil {
		return a.fail("There is nobody to chat with.")
	}
	if a.partnerName == "" || a.message == "" {
		return a.fail("Chat with whom, about what?")
	}
	if a.actor == nil {
		return a.fail("Nobody is acting.")
	}
	req, ok := a.board.AcceptedBetween(a.actor.Name(), a.partnerName)
	if !ok {
		return a.fail("You have no accepted chat with %s.", a.partnerName)
	}
	if req.SenderID != a.partnerName && req.RecipientID != a.partnerName {
		return a.fail("Your open conversation is not with %s.", a.partnerName)
	}
	return true
}

func (a *Chat) ApplyEffects() (string, Result) {
	req, ok := a.board.AcceptedBetween(a.actor.Name(), a.partnerName)
	if !ok {
		return a.failed(fmt.Errorf("you have no accepted chat with %s", a.partnerName))
	}
	a.board.CloseConversation(req.ID)
	narration := fmt.Sprintf("You say to %s: %q", a.partnerName, a.message)
	return a.ok(narration, Result{
		Recipient: a.partnerName,
		Metadata:  map[string]any{"request_id": req.ID, "message": a.message},
	})
}
