package action

// Spec declares one generic action for the resolver: the command patterns
// that select it and the constructor that binds it to an actor. Patterns
// use {placeholder} tokens; literal tokens must match the input
// positionally and placeholders absorb one or more tokens.
type Spec struct {
	Kind     Kind
	Patterns []string
	EndsTurn bool
	New      func(b Binding, raw string) Action
}

// Registry lists every generic action. It is data, not a package-level
// mutable singleton; the resolver compiles it once at construction.
func Registry() []Spec {
	return []Spec{
		{Kind: KindMove, EndsTurn: true, New: NewMove, Patterns: []string{
			"go {direction}", "walk {direction}", "move {direction}",
		}},
		{Kind: KindLook, EndsTurn: false, New: NewLook, Patterns: []string{
			"look", "look around",
		}},
		{Kind: KindWait, EndsTurn: true, New: NewWait, Patterns: []string{
			"wait",
		}},
		{Kind: KindExamine, EndsTurn: false, New: NewExamine, Patterns: []string{
			"examine {target}", "inspect {target}", "look at {target}",
		}},
		{Kind: KindOpen, EndsTurn: true, New: NewOpen, Patterns: []string{
			"open {target}",
		}},
		{Kind: KindClose, EndsTurn: true, New: NewClose, Patterns: []string{
			"close {target}", "shut {target}",
		}},
		{Kind: KindLock, EndsTurn: true, New: NewLock, Patterns: []string{
			"lock {target}",
		}},
		{Kind: KindUnlock, EndsTurn: true, New: NewUnlock, Patterns: []string{
			"unlock {target}",
		}},
		{Kind: KindActivate, EndsTurn: true, New: NewActivate, Patterns: []string{
			"turn on {target}", "switch on {target}", "activate {target}",
		}},
		{Kind: KindDeactivate, EndsTurn: true, New: NewDeactivate, Patterns: []string{
			"turn off {target}", "switch off {target}", "deactivate {target}",
		}},
		{Kind: KindUse, EndsTurn: true, New: NewUse, Patterns: []string{
			"use {target}", "start using {target}",
		}},
		{Kind: KindStopUsing, EndsTurn: true, New: NewStopUsing, Patterns: []string{
			"stop using {target}",
		}},
		{Kind: KindTake, EndsTurn: true, New: NewTake, Patterns: []string{
			"take {target}", "get {target}", "pick up {target}", "grab {target}",
		}},
		{Kind: KindDrop, EndsTurn: true, New: NewDrop, Patterns: []string{
			"drop {target}", "put down {target}",
		}},
		{Kind: KindPlace, EndsTurn: true, New: NewPlace, Patterns: []string{
			"put {target} in {recipient}", "put {target} into {recipient}",
			"put {target} on {recipient}", "place {target} in {recipient}",
		}},
		{Kind: KindGive, EndsTurn: true, New: NewGive, Patterns: []string{
			"give {target} to {recipient}", "hand {target} to {recipient}",
		}},
		{Kind: KindConsume, EndsTurn: true, New: NewConsume, Patterns: []string{
			"eat {target}", "drink {target}", "consume {target}",
		}},
		{Kind: KindChatRequest, EndsTurn: true, New: NewChatRequest, Patterns: []string{
			"chat_request {recipient} {message}", "request chat with {recipient} {message}",
		}},
		{Kind: KindChatResponse, EndsTurn: false, New: NewChatResponse, Patterns: []string{
			"chat_response {request_id} {decision}",
			"accept chat {request_id}", "reject chat {request_id}",
		}},
		{Kind: KindChat, EndsTurn: true, New: NewChat, Patterns: []string{
			"chat {recipient} {message}", "say to {recipient} {message}",
		}},
	}
}
