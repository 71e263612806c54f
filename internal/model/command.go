package model

import (
	"encoding/json"
	"fmt"
)

// BehaviourOnError declares what an execution engine should do when a
// command in a batch fails. The tag is carried unchanged through every
// translation in this module and interpreted only downstream.
type BehaviourOnError int

// Behaviour-on-error policies.
const (
	// Stop aborts the batch at the failing command.
	Stop BehaviourOnError = iota + 1
	// Ignore continues the batch past the failing command.
	Ignore
	// RollBack undoes the already-applied commands of the batch.
	RollBack
)

// String returns the wire name of the behaviour.
func (b BehaviourOnError) String() string {
	switch b {
	case Stop:
		return "stop"
	case Ignore:
		return "ignore"
	case RollBack:
		return "roll_back"
	default:
		return fmt.Sprintf("behaviour(%d)", int(b))
	}
}

// ParseBehaviourOnError converts a wire name to a BehaviourOnError.
func ParseBehaviourOnError(s string) (BehaviourOnError, error) {
	switch s {
	case "stop":
		return Stop, nil
	case "ignore":
		return Ignore, nil
	case "roll_back":
		return RollBack, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBehaviour, s)
	}
}

// MarshalJSON encodes the behaviour as its wire name.
func (b BehaviourOnError) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes the behaviour from its wire name.
func (b *BehaviourOnError) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBehaviourOnError(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ReadCommand addresses what to read, independent of space: ID is a
// lattice element name or a device name depending on which side of the
// rewriter it sits. It is comparable and serves as the delta backend's
// reference-cache key.
type ReadCommand struct {
	ID       string `json:"id"`
	Property string `json:"property"`
}

func (rc ReadCommand) String() string {
	return fmt.Sprintf("ReadCommand(%s/%s)", rc.ID, rc.Property)
}

// Command is a mutating operation addressed to a lattice element or a
// device, depending on which space it currently lives in.
type Command struct {
	ID       string
	Property string
	Value    Value
	OnError  BehaviourOnError
}

// Read returns the read command addressing the same target.
func (c Command) Read() ReadCommand {
	return ReadCommand{ID: c.ID, Property: c.Property}
}

func (c Command) String() string {
	return fmt.Sprintf("Command(%s/%s = %v, on_error=%s)", c.ID, c.Property, c.Value, c.OnError)
}

// commandJSON is the wire shape of a Command.
type commandJSON struct {
	ID       string           `json:"id"`
	Property string           `json:"property"`
	Value    json.RawMessage  `json:"value"`
	OnError  BehaviourOnError `json:"behaviour_on_error"`
}

// MarshalJSON implements json.Marshaler.
func (c Command) MarshalJSON() ([]byte, error) {
	raw, err := MarshalValue(c.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(commandJSON{
		ID:       c.ID,
		Property: c.Property,
		Value:    raw,
		OnError:  c.OnError,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Command) UnmarshalJSON(data []byte) error {
	var wire commandJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	value, err := UnmarshalValue(wire.Value)
	if err != nil {
		return err
	}
	c.ID = wire.ID
	c.Property = wire.Property
	c.Value = value
	c.OnError = wire.OnError
	return nil
}

// Transaction groups commands that must be applied together: the machine
// state is only meaningful after all of them have been executed.
type Transaction struct {
	Commands []Command `json:"transaction"`
}

// CommandSequence holds transactions expected to be executed one by one.
type CommandSequence struct {
	Transactions []Transaction `json:"commands"`
}
