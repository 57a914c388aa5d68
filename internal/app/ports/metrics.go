package ports

// TurnMetrics counts action outcomes for the ops surface.
type TurnMetrics interface {
	RecordAction(actionType string, success bool)
	RecordErrorTurn()
	RecordAdvance()
}
