package inmemory

import "sync"

type Snapshot struct {
	ActionTotal   uint64            `json:"action_total"`
	ActionSuccess uint64            `json:"action_success"`
	ActionFailure uint64            `json:"action_failure"`
	ErrorTurns    uint64            `json:"error_turns"`
	TurnAdvances  uint64            `json:"turn_advances"`
	ByActionType  map[string]uint64 `json:"by_action_type"`
}

type Recorder struct {
	mu         sync.Mutex
	success    uint64
	failure    uint64
	errorTurns uint64
	advances   uint64
	byType     map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{byType: map[string]uint64{}}
}

func (r *Recorder) RecordAction(actionType string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.success++
	} else {
		r.failure++
	}
	r.byType[actionType]++
}

func (r *Recorder) RecordErrorTurn() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorTurns++
}

func (r *Recorder) RecordAdvance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advances++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess: r.success,
		ActionFailure: r.failure,
		ActionTotal:   r.success + r.failure,
		ErrorTurns:    r.errorTurns,
		TurnAdvances:  r.advances,
		ByActionType:  make(map[string]uint64, len(r.byType)),
	}
	for k, v := range r.byType {
		out.ByActionType[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
