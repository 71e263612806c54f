package rewriter

import (
	"github.com/openaccel/accml-core/internal/conversion"
	"github.com/openaccel/accml-core/internal/model"
)

// LiaisonManager resolves identifiers between the two spaces.
// Implemented by *liaison.Manager.
type LiaisonManager interface {
	Forward(id model.LatticeElementPropertyID) (model.DevicePropertyID, error)
	Inverse(id model.DevicePropertyID) ([]model.LatticeElementPropertyID, error)
}

// TranslatorService resolves the conversion for an identifier pair.
// Implemented by *translator.Service.
type TranslatorService interface {
	Get(id model.ConversionID) (conversion.Conversion, error)
}

// Rewriter translates commands between the lattice and device spaces.
type Rewriter struct {
	liaison    LiaisonManager
	translator TranslatorService
}

// New creates a Rewriter over the given collaborators.
func New(liaison LiaisonManager, translator TranslatorService) *Rewriter {
	return &Rewriter{liaison: liaison, translator: translator}
}

// Forward rewrites a lattice-space command into its device-space
// equivalent: the target is resolved through the liaison manager, the
// value converted forward, and the behaviour-on-error tag copied
// unchanged.
func (r *Rewriter) Forward(cmd model.Command) (model.Command, error) {
	latID := model.LatticeElementPropertyID{ElementName: cmd.ID, Property: cmd.Property}

	devID, err := r.liaison.Forward(latID)
	if err != nil {
		return model.Command{}, err
	}

	conv, err := r.translator.Get(model.ConversionID{Lattice: latID, Device: devID})
	if err != nil {
		return model.Command{}, err
	}

	value, err := conv.Forward(cmd.Value)
	if err != nil {
		return model.Command{}, err
	}

	return model.Command{
		ID:       devID.DeviceName,
		Property: devID.Property,
		Value:    value,
		OnError:  cmd.OnError,
	}, nil
}

// Inverse rewrites a device-space command back into the lattice space.
// One device may drive several lattice elements, so the result holds one
// command per matched target, each with the matching conversion's inverse
// applied.
func (r *Rewriter) Inverse(cmd model.Command) ([]model.Command, error) {
	devID := model.DevicePropertyID{DeviceName: cmd.ID, Property: cmd.Property}

	latIDs, err := r.liaison.Inverse(devID)
	if err != nil {
		return nil, err
	}

	commands := make([]model.Command, 0, len(latIDs))
	for _, latID := range latIDs {
		conv, err := r.translator.Get(model.ConversionID{Lattice: latID, Device: devID})
		if err != nil {
			return nil, err
		}
		value, err := conv.Inverse(cmd.Value)
		if err != nil {
			return nil, err
		}
		commands = append(commands, model.Command{
			ID:       latID.ElementName,
			Property: latID.Property,
			Value:    value,
			OnError:  cmd.OnError,
		})
	}
	return commands, nil
}

// ForwardRead rewrites a lattice-space read target into the device space.
// Pure address rewriting: no conversion is fetched because no value
// exists yet.
func (r *Rewriter) ForwardRead(rc model.ReadCommand) (model.ReadCommand, error) {
	devID, err := r.liaison.Forward(model.LatticeElementPropertyID{ElementName: rc.ID, Property: rc.Property})
	if err != nil {
		return model.ReadCommand{}, err
	}
	return model.ReadCommand{ID: devID.DeviceName, Property: devID.Property}, nil
}

// ForwardValue converts a value read in the lattice space into device
// units, using the conversion registered for the pair of read targets.
func (r *Rewriter) ForwardValue(lat, dev model.ReadCommand, value model.Value) (model.Value, error) {
	id := model.ConversionID{
		Lattice: model.LatticeElementPropertyID{ElementName: lat.ID, Property: lat.Property},
		Device:  model.DevicePropertyID{DeviceName: dev.ID, Property: dev.Property},
	}
	conv, err := r.translator.Get(id)
	if err != nil {
		return nil, err
	}
	return conv.Forward(value)
}

// InverseValue converts a value read in the device space back into
// lattice units, using the conversion registered for the pair of read
// targets. It completes a ForwardRead once the backend has produced the
// raw value.
func (r *Rewriter) InverseValue(lat, dev model.ReadCommand, value model.Value) (model.Value, error) {
	id := model.ConversionID{
		Lattice: model.LatticeElementPropertyID{ElementName: lat.ID, Property: lat.Property},
		Device:  model.DevicePropertyID{DeviceName: dev.ID, Property: dev.Property},
	}
	conv, err := r.translator.Get(id)
	if err != nil {
		return nil, err
	}
	return conv.Inverse(value)
}

// InverseRead rewrites a device-space read target into the lattice space,
// one read command per lattice target the device drives.
func (r *Rewriter) InverseRead(rc model.ReadCommand) ([]model.ReadCommand, error) {
	latIDs, err := r.liaison.Inverse(model.DevicePropertyID{DeviceName: rc.ID, Property: rc.Property})
	if err != nil {
		return nil, err
	}
	reads := make([]model.ReadCommand, 0, len(latIDs))
	for _, latID := range latIDs {
		reads = append(reads, model.ReadCommand{ID: latID.ElementName, Property: latID.Property})
	}
	return reads, nil
}
