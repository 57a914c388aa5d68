// Package command turns raw command text into bound Action instances. It
// recognizes, in order: comma-separated sequences, bare direction intents
// against the actor's exits, and the declarative pattern table exposed by
// the action registry.
package command

import (
	"strings"

	"hearthverse/internal/domain/action"
	"hearthverse/internal/domain/chat"
	"hearthverse/internal/domain/world"
)

// Resolution is the outcome of resolving one command string. A failed
// resolution carries a user-facing message and no actions; the caller is
// responsible for turning that into a no-op result rather than an error.
type Resolution struct {
	Actions []action.Action
	Failed  bool
	Message string
}

type patternToken struct {
	literal     string
	placeholder bool
}

type compiledPattern struct {
	tokens []patternToken
	spec   action.Spec
}

type Resolver struct {
	world    *world.World
	chat     *chat.Board
	patterns []compiledPattern
	aliases  map[string]string
}

// NewResolver compiles the registry's pattern table once; matching at
// resolve time is plain token comparison, no per-call regex.
func NewResolver(w *world.World, board *chat.Board) *Resolver {
	r := &Resolver{
		world: w,
		chat:  board,
		aliases: map[string]string{
			"n": "north", "s": "south", "e": "east", "w": "west",
			"u": "up", "d": "down",
			"north": "north", "south": "south", "east": "east", "west": "west",
			"up": "up", "down": "down",
		},
	}
	for _, spec := range action.Registry() {
		for _, raw := range spec.Patterns {
			fields := strings.Fields(raw)
			tokens := make([]patternToken, len(fields))
			for i, f := range fields {
				if strings.HasPrefix(f, "{") && strings.HasSuffix(f, "}") {
					tokens[i] = patternToken{placeholder: true}
				} else {
					tokens[i] = patternToken{literal: f}
				}
			}
			r.patterns = append(r.patterns, compiledPattern{tokens: tokens, spec: spec})
		}
	}
	return r
}

// Resolve maps one raw command to actions for the given actor. Sequence
// commands ("open fridge, take apple") resolve each segment independently
// and return them in order; a failing segment fails the whole resolution.
func (r *Resolver) Resolve(raw string, actor *world.Character) Resolution {
	normalized := normalize(raw)
	if normalized == "" {
		return Resolution{Failed: true, Message: "I didn't catch that."}
	}

	if strings.Contains(normalized, ",") {
		out := Resolution{}
		for _, segment := range strings.Split(normalized, ",") {
			seg := r.resolveSingle(strings.TrimSpace(segment), actor)
			if seg.Failed {
				return seg
			}
			out.Actions = append(out.Actions, seg.Actions...)
		}
		if len(out.Actions) == 0 {
			return Resolution{Failed: true, Message: "I didn't catch that."}
		}
		return out
	}
	return r.resolveSingle(normalized, actor)
}

func (r *Resolver) resolveSingle(cmd string, actor *world.Character) Resolution {
	if cmd == "" {
		return Resolution{Failed: true, Message: "I didn't catch that."}
	}
	binding := action.Binding{Actor: actor, World: r.world, Chat: r.chat}

	if direction, ok := r.directionIntent(cmd, actor); ok {
		return Resolution{Actions: []action.Action{action.NewMoveDirection(binding, direction)}}
	}

	tokens := strings.Fields(cmd)
	for _, p := range r.patterns {
		if matchTokens(p.tokens, tokens) {
			return Resolution{Actions: []action.Action{p.spec.New(binding, cmd)}}
		}
	}
	return Resolution{Failed: true, Message: "No action found for: " + cmd}
}

// directionIntent accepts movement aliases and full exit names, but only
// when the actor's current location actually has that exit.
func (r *Resolver) directionIntent(cmd string, actor *world.Character) (string, bool) {
	if actor == nil || actor.Location() == nil {
		return "", false
	}
	direction := cmd
	if full, ok := r.aliases[cmd]; ok {
		direction = full
	}
	if _, ok := actor.Location().Connections()[direction]; ok {
		return direction, true
	}
	return "", false
}

// matchTokens aligns pattern tokens against input tokens: literals must
// match positionally, placeholders absorb one or more tokens.
func matchTokens(pattern []patternToken, input []string) bool {
	if len(pattern) == 0 {
		return len(input) == 0
	}
	head := pattern[0]
	if !head.placeholder {
		if len(input) == 0 || input[0] != head.literal {
			return false
		}
		return matchTokens(pattern[1:], input[1:])
	}
	for take := 1; take <= len(input); take++ {
		if matchTokens(pattern[1:], input[take:]) {
			return true
		}
	}
	return false
}

// normalize lowercases and collapses whitespace; the command surface is
// plain ASCII.
func normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(raw))), " ")
}
