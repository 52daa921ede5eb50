package command

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/jsamuelsen11/taskflow/internal/domain"
)

var decoders = map[Kind]func([]byte) (Command, error){
	KindStartCreation:      decodeCommand[StartCreation],
	KindUpdateDetails:      decodeCommand[UpdateDetails],
	KindAddLabels:          decodeCommand[AddLabels],
	KindSkipLabels:         decodeCommand[SkipLabels],
	KindCompleteCreation:   decodeCommand[CompleteCreation],
	KindCancelCreation:     decodeCommand[CancelCreation],
	KindCreateDraft:        decodeCommand[CreateDraft],
	KindUpdateDescription:  decodeCommand[UpdateDescription],
	KindUpdatePriority:     decodeCommand[UpdatePriority],
	KindUpdateDueDate:      decodeCommand[UpdateDueDate],
	KindFinalizeDraft:      decodeCommand[FinalizeDraft],
	KindCompleteTask:       decodeCommand[CompleteTask],
	KindReopenTask:         decodeCommand[ReopenTask],
	KindDeleteTask:         decodeCommand[DeleteTask],
	KindRestoreTask:        decodeCommand[RestoreTask],
	KindAssignLabel:        decodeCommand[AssignLabel],
	KindUnassignLabel:      decodeCommand[UnassignLabel],
	KindCreateLabel:        decodeCommand[CreateLabel],
	KindUpdateLabelDetails: decodeCommand[UpdateLabelDetails],
}

func decodeCommand[T Command](data []byte) (Command, error) {
	var c T
	if err := sonic.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// Envelope is the wire form of a downstream command submission.
type Envelope struct {
	Kind     Kind                   `json:"kind"`
	Metadata Metadata               `json:"metadata"`
	Data     sonic.NoCopyRawMessage `json:"data"`
}

// Encode wraps cmd and its metadata for transport.
func Encode(cmd Command, meta Metadata) (Envelope, error) {
	data, err := sonic.Marshal(cmd)
	if err != nil {
		return Envelope{}, fmt.Errorf("encoding %s: %w", cmd.Kind(), err)
	}
	return Envelope{Kind: cmd.Kind(), Metadata: meta, Data: data}, nil
}

// Decode rebuilds and validates a command from its kind and JSON body.
// Unknown kinds, malformed bodies and invalid fields are validation errors.
func Decode(kind Kind, data []byte) (Command, error) {
	decode, ok := decoders[kind]
	if !ok {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"kind": fmt.Sprintf("unknown command kind %q", kind)},
		}
	}
	if len(data) == 0 {
		data = []byte("{}")
	}

	cmd, err := decode(data)
	if err != nil {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"data": "invalid JSON for " + string(kind)},
		}
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return cmd, nil
}
