package event

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/jsamuelsen11/taskflow/internal/domain"
)

// decoders is the closed kind table. A kind is known to the system if and
// only if it appears here.
var decoders = map[Kind]func([]byte) (Payload, error){
	KindDraftCreated:        decodePayload[DraftCreated],
	KindDescriptionUpdated:  decodePayload[DescriptionUpdated],
	KindPriorityUpdated:     decodePayload[PriorityUpdated],
	KindDueDateUpdated:      decodePayload[DueDateUpdated],
	KindDraftFinalized:      decodePayload[DraftFinalized],
	KindTaskCompleted:       decodePayload[TaskCompleted],
	KindTaskReopened:        decodePayload[TaskReopened],
	KindTaskDeleted:         decodePayload[TaskDeleted],
	KindTaskRestored:        decodePayload[TaskRestored],
	KindLabelAssigned:       decodePayload[LabelAssigned],
	KindLabelRemoved:        decodePayload[LabelRemoved],
	KindLabelCreated:        decodePayload[LabelCreated],
	KindLabelDetailsUpdated: decodePayload[LabelDetailsUpdated],
	KindCreationStarted:     decodePayload[CreationStarted],
	KindLabelsSkipped:       decodePayload[LabelsSkipped],
	KindCreationCompleted:   decodePayload[CreationCompleted],
	KindCreationCanceled:    decodePayload[CreationCanceled],
}

func decodePayload[T Payload](data []byte) (Payload, error) {
	var p T
	if err := sonic.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// wireEnvelope is the JSON form of an Envelope.
type wireEnvelope struct {
	ID         string                 `json:"id"`
	Kind       Kind                   `json:"kind"`
	EntityID   string                 `json:"entity_id"`
	ProcessID  string                 `json:"process_id,omitempty"`
	Sequence   uint64                 `json:"sequence"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       sonic.NoCopyRawMessage `json:"data"`
}

// Marshal encodes the envelope as JSON.
func Marshal(env Envelope) ([]byte, error) {
	if env.Payload == nil {
		return nil, fmt.Errorf("encoding event %s: nil payload", env.ID)
	}
	data, err := sonic.Marshal(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", env.Kind, err)
	}
	return sonic.Marshal(wireEnvelope{
		ID:         env.ID,
		Kind:       env.Payload.Kind(),
		EntityID:   env.EntityID,
		ProcessID:  env.ProcessID,
		Sequence:   env.Sequence,
		OccurredAt: env.OccurredAt,
		Data:       data,
	})
}

// Unmarshal decodes an envelope produced by Marshal. An unknown kind is
// reported as a validation error.
func Unmarshal(data []byte) (Envelope, error) {
	var w wireEnvelope
	if err := sonic.Unmarshal(data, &w); err != nil {
		return Envelope{}, fmt.Errorf("decoding event envelope: %w", err)
	}

	decode, ok := decoders[w.Kind]
	if !ok {
		return Envelope{}, &domain.ValidationError{
			Fields: map[string]string{"kind": fmt.Sprintf("unknown event kind %q", w.Kind)},
		}
	}

	payload, err := decode(w.Data)
	if err != nil {
		return Envelope{}, fmt.Errorf("decoding %s payload: %w", w.Kind, err)
	}

	return Envelope{
		ID:         w.ID,
		Kind:       w.Kind,
		EntityID:   w.EntityID,
		ProcessID:  w.ProcessID,
		Sequence:   w.Sequence,
		OccurredAt: w.OccurredAt,
		Payload:    payload,
	}, nil
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return Marshal(e)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	decoded, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}
