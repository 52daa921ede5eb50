package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
)

// labelNamespace scopes the name-based ids of labels created by workflows.
var labelNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:taskflow:label"))

// Decision is the outcome of an accepted driving command.
type Decision struct {
	State    State
	Commands []command.Downstream
	Events   []event.Payload
}

// Decide validates cmd against state and computes the transition. state is
// nil when no workflow exists for the command's process id. A rejected
// command returns an error and no Decision; the caller's state is never
// modified.
func Decide(state *State, cmd command.Driving, now time.Time) (Decision, error) {
	if err := cmd.Validate(); err != nil {
		return Decision{}, err
	}

	if c, ok := cmd.(command.StartCreation); ok {
		return start(state, c, now)
	}

	if state == nil {
		return Decision{}, fmt.Errorf("workflow %s: %w", cmd.Process(), domain.ErrNotFound)
	}
	if state.Archived {
		return Decision{}, reject(state, cmd, domain.ErrInvalidTransition)
	}

	var (
		d   Decision
		err error
	)
	switch c := cmd.(type) {
	case command.UpdateDetails:
		d, err = updateDetails(*state, c)
	case command.AddLabels:
		d, err = addLabels(*state, c)
	case command.SkipLabels:
		d, err = skipLabels(*state)
	case command.CompleteCreation:
		d, err = complete(*state)
	case command.CancelCreation:
		d, err = cancel(*state)
	default:
		return Decision{}, fmt.Errorf("workflow does not handle %s: %w", cmd.Kind(), domain.ErrValidation)
	}
	if err != nil {
		return Decision{}, reject(state, cmd, err)
	}

	d.State.Version++
	d.State.UpdatedAt = now
	return d, nil
}

func start(state *State, c command.StartCreation, now time.Time) (Decision, error) {
	if state != nil {
		return Decision{}, reject(state, c, domain.ErrAlreadyStarted)
	}
	return Decision{
		State: State{
			ProcessID: c.ProcessID,
			SubjectID: c.SubjectID,
			Stage:     StageDefining,
			Version:   1,
			StartedAt: now,
			UpdatedAt: now,
		},
		Commands: []command.Downstream{command.CreateDraft{TaskID: c.SubjectID}},
		Events:   []event.Payload{event.CreationStarted{ProcessID: c.ProcessID, SubjectID: c.SubjectID}},
	}, nil
}

func updateDetails(s State, c command.UpdateDetails) (Decision, error) {
	if !s.Active() {
		return Decision{}, domain.ErrInvalidTransition
	}
	if c.Description == nil && c.Priority == nil && c.DueDate == nil {
		return Decision{}, domain.ErrEmptyChange
	}

	var cmds []command.Downstream
	if c.Description != nil {
		if strings.TrimSpace(*c.Description) == "" {
			return Decision{}, &domain.ValidationError{
				Fields: map[string]string{"description": domain.MsgMustNotEmpty},
			}
		}
		cmds = append(cmds, command.UpdateDescription{TaskID: s.SubjectID, Description: *c.Description})
		s.DescriptionSet = true
	}
	if c.Priority != nil {
		cmds = append(cmds, command.UpdatePriority{TaskID: s.SubjectID, Priority: *c.Priority})
	}
	if c.DueDate != nil {
		due := *c.DueDate
		cmds = append(cmds, command.UpdateDueDate{TaskID: s.SubjectID, DueDate: &due})
	}
	return Decision{State: s, Commands: cmds}, nil
}

func addLabels(s State, c command.AddLabels) (Decision, error) {
	if !s.Active() {
		return Decision{}, domain.ErrInvalidTransition
	}
	if len(c.ExistingLabelIDs) == 0 && len(c.NewLabels) == 0 {
		return Decision{}, domain.ErrEmptyLabels
	}

	cmds := make([]command.Downstream, 0, len(c.ExistingLabelIDs)+3*len(c.NewLabels))
	for _, id := range c.ExistingLabelIDs {
		cmds = append(cmds, command.AssignLabel{TaskID: s.SubjectID, LabelID: id})
	}
	for _, nl := range c.NewLabels {
		id := LabelID(s.ProcessID, s.LabelsCreated)
		s.LabelsCreated++

		cmds = append(cmds, command.CreateLabel{LabelID: id})
		if !label.IsDefault(nl.Title, nl.Color) {
			cmds = append(cmds, labelDetails(id, nl))
		}
		cmds = append(cmds, command.AssignLabel{TaskID: s.SubjectID, LabelID: id})
	}

	s.Stage = StageLabeling
	return Decision{State: s, Commands: cmds}, nil
}

func labelDetails(id string, nl command.NewLabel) command.UpdateLabelDetails {
	upd := command.UpdateLabelDetails{LabelID: id}
	if nl.Title != label.DefaultTitle {
		title := nl.Title
		upd.Title = &title
	}
	if nl.Color != "" && nl.Color != label.DefaultColor {
		color := nl.Color
		upd.Color = &color
	}
	return upd
}

func skipLabels(s State) (Decision, error) {
	if !s.Active() {
		return Decision{}, domain.ErrInvalidTransition
	}
	s.Stage = StageLabeling
	return Decision{
		State:  s,
		Events: []event.Payload{event.LabelsSkipped{ProcessID: s.ProcessID, SubjectID: s.SubjectID}},
	}, nil
}

func complete(s State) (Decision, error) {
	if !s.Active() {
		return Decision{}, domain.ErrInvalidTransition
	}
	if !s.DescriptionSet {
		return Decision{}, domain.ErrDescriptionMissing
	}
	s.Stage = StageCompleted
	s.Archived = true
	return Decision{
		State:    s,
		Commands: []command.Downstream{command.FinalizeDraft{TaskID: s.SubjectID}},
		Events:   []event.Payload{event.CreationCompleted{ProcessID: s.ProcessID, SubjectID: s.SubjectID}},
	}, nil
}

func cancel(s State) (Decision, error) {
	if s.Stage.IsTerminal() {
		return Decision{}, domain.ErrInvalidTransition
	}
	s.Stage = StageCanceled
	s.Archived = true
	return Decision{
		State:  s,
		Events: []event.Payload{event.CreationCanceled{ProcessID: s.ProcessID, SubjectID: s.SubjectID}},
	}, nil
}

func reject(s *State, cmd command.Driving, reason error) *domain.RejectionError {
	return domain.Reject(s.ProcessID, cmd.Kind().String(), s.Stage.String(), reason)
}

// LabelID returns the id of the n-th label created by the workflow
// processID. Ids are name-based so that deciding stays deterministic.
func LabelID(processID string, n int) string {
	return uuid.NewSHA1(labelNamespace, []byte(processID+":"+strconv.Itoa(n))).String()
}
