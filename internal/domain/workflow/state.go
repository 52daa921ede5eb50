// Package workflow implements the task creation coordinator.
//
// The coordinator is a pure stage machine. Decide validates a driving command
// against the current State and returns the next State together with the
// downstream commands and workflow events the transition produces. Observe
// folds the entity events the coordinator subscribes to into its progress
// markers. Persisting the state and dispatching the commands is left to the
// application layer.
package workflow

import (
	"time"
)

// Stage is the position of a workflow in the creation process.
type Stage string

const (
	StageDefining  Stage = "DEFINING"
	StageLabeling  Stage = "LABELING"
	StageCompleted Stage = "COMPLETED"
	StageCanceled  Stage = "CANCELED"
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition leaves s.
func (s Stage) IsTerminal() bool {
	return s == StageCompleted || s == StageCanceled
}

// State is the persisted state of one workflow instance.
type State struct {
	ProcessID      string `json:"process_id"`
	SubjectID      string `json:"subject_id"`
	Stage          Stage  `json:"stage"`
	DescriptionSet bool   `json:"description_set"`
	Archived       bool   `json:"archived"`

	// LabelsCreated counts the new labels requested so far; it seeds the
	// ids of labels created by later AddLabels commands.
	LabelsCreated int `json:"labels_created"`

	// Progress markers, written only by Observe.
	DraftCreated   bool `json:"draft_created"`
	Finalized      bool `json:"finalized"`
	SubjectDeleted bool `json:"subject_deleted"`

	Version   uint64    `json:"version"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the workflow still accepts detail and label
// commands.
func (s *State) Active() bool {
	return !s.Archived && (s.Stage == StageDefining || s.Stage == StageLabeling)
}
