package ports

import "context"

// AgentStrategy is the external collaborator that turns the previous
// action's narration into the agent's next command. Callers must tolerate
// failures and substitute a safe default command.
type AgentStrategy interface {
	SelectAction(ctx context.Context, previousNarration string) (string, error)
}
