package gov

import (
	"sync"
	"time"

	"github.com/govboard-network/govboard/lib"
)

/*
	This file implements proposal drafts: the mutable working state a user builds up
	field by field before asking for a governance message. A draft only stores raw
	input, validation happens on read, so a schema change never strands stale typed
	values inside a saved draft.
*/

// ProposalDraft is the in-progress parameter edit session for one module
type ProposalDraft struct {
	Module    ModuleName          `json:"module"`    // the module being edited
	Fields    map[string]RawValue `json:"fields"`    // raw input keyed by parameter key
	UpdatedAt time.Time           `json:"updatedAt"` // time of the last field edit
}

// NewProposalDraft() creates an empty draft for a module
func NewProposalDraft(module ModuleName) (*ProposalDraft, lib.ErrorI) {
	if err := module.Check(); err != nil {
		return nil, err
	}
	return &ProposalDraft{Module: module, Fields: make(map[string]RawValue)}, nil
}

// SetField() records raw input for a parameter key
// an unknown key is rejected up front rather than surfacing at build time
func (d *ProposalDraft) SetField(key string, raw RawValue) lib.ErrorI {
	set, err := ParamSetFor(d.Module)
	if err != nil {
		return err
	}
	if !set.Contains(key) {
		return ErrUnknownParamKey(d.Module, key)
	}
	if d.Fields == nil {
		d.Fields = make(map[string]RawValue)
	}
	d.Fields[key] = raw
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// ClearField() removes raw input for a parameter key, reverting it to the default
func (d *ProposalDraft) ClearField(key string) lib.ErrorI {
	set, err := ParamSetFor(d.Module)
	if err != nil {
		return err
	}
	if !set.Contains(key) {
		return ErrUnknownParamKey(d.Module, key)
	}
	delete(d.Fields, key)
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// IsEmpty() reports whether the draft holds no edits
func (d *ProposalDraft) IsEmpty() bool { return len(d.Fields) == 0 }

// copy() returns a detached snapshot of the draft
func (d *ProposalDraft) copy() *ProposalDraft {
	fields := make(map[string]RawValue, len(d.Fields))
	for key, raw := range d.Fields {
		fields[key] = raw
	}
	return &ProposalDraft{Module: d.Module, Fields: fields, UpdatedAt: d.UpdatedAt}
}

// FieldState is the per-parameter view of a draft used by the form layer
type FieldState struct {
	Key        string     `json:"key"`             // the parameter key
	Kind       ParamKind  `json:"kind"`            // the value shape of the parameter
	Edited     bool       `json:"edited"`          // whether the draft carries input for this key
	Raw        RawValue   `json:"raw,omitempty"`   // the raw input when edited
	Value      any        `json:"value"`           // the validated value, or the default when untouched
	Error      *lib.Error `json:"error,omitempty"` // the validation failure when the input is bad
	Govern     bool       `json:"governanceOnly"`  // whether a change requires a governance proposal
	Descriptor string     `json:"description"`     // human text for the form layer
}

// FieldStates() validates every edited field and returns the full form view
// in the module's canonical key order
func (d *ProposalDraft) FieldStates() ([]FieldState, lib.ErrorI) {
	set, err := ParamSetFor(d.Module)
	if err != nil {
		return nil, err
	}
	states := make([]FieldState, 0, len(set.Keys()))
	for _, key := range set.Keys() {
		descriptor, e := set.Get(key)
		if e != nil {
			return nil, e
		}
		state := FieldState{
			Key:        key,
			Kind:       descriptor.Kind,
			Value:      descriptor.Default,
			Govern:     descriptor.GovernanceOnly,
			Descriptor: descriptor.Description,
		}
		if raw, edited := d.Fields[key]; edited {
			state.Edited, state.Raw = true, raw
			value, vErr := ValidateField(descriptor, raw)
			if vErr != nil {
				state.Value, state.Error = nil, toError(vErr)
			} else {
				state.Value = value
			}
		}
		states = append(states, state)
	}
	return states, nil
}

// toError() narrows an ErrorI to its concrete form for json serialization
func toError(err lib.ErrorI) *lib.Error {
	if concrete, ok := err.(*lib.Error); ok {
		return concrete
	}
	return lib.NewError(err.Code(), err.Module(), err.Error())
}

// DRAFT STORE CODE BELOW

// Drafts is the persistent collection of proposal drafts, at most one per module
type Drafts struct {
	sync.RWMutex `json:"-"`
	ByModule     map[ModuleName]*ProposalDraft `json:"byModule"`
}

// NewDrafts() creates an empty draft collection
func NewDrafts() *Drafts {
	return &Drafts{ByModule: make(map[ModuleName]*ProposalDraft)}
}

// NewDraftsFromFile() loads the draft collection from the data directory,
// starting empty when no file exists yet
func NewDraftsFromFile(dataDirPath string) (*Drafts, lib.ErrorI) {
	drafts := NewDrafts()
	if err := lib.NewJSONFromFile(drafts, dataDirPath, lib.DraftsFilePath); err != nil {
		return NewDrafts(), nil
	}
	if drafts.ByModule == nil {
		drafts.ByModule = make(map[ModuleName]*ProposalDraft)
	}
	return drafts, nil
}

// SaveToFile() persists the draft collection to the data directory
func (d *Drafts) SaveToFile(dataDirPath string) lib.ErrorI {
	d.RLock()
	defer d.RUnlock()
	return lib.SaveJSONToFile(d, dataDirPath, lib.DraftsFilePath)
}

// GetOrCreate() returns a snapshot of the module draft, creating an empty one
// when absent; edits go through SetField and ClearField so the stored draft is
// only ever mutated under the collection lock
func (d *Drafts) GetOrCreate(module ModuleName) (*ProposalDraft, lib.ErrorI) {
	d.Lock()
	defer d.Unlock()
	draft, err := d.getOrCreate(module)
	if err != nil {
		return nil, err
	}
	return draft.copy(), nil
}

// getOrCreate() resolves or inserts the stored draft, caller must hold the write lock
func (d *Drafts) getOrCreate(module ModuleName) (*ProposalDraft, lib.ErrorI) {
	if err := module.Check(); err != nil {
		return nil, err
	}
	if draft, found := d.ByModule[module]; found {
		return draft, nil
	}
	draft, err := NewProposalDraft(module)
	if err != nil {
		return nil, err
	}
	d.ByModule[module] = draft
	return draft, nil
}

// SetField() records raw input for one parameter of the module draft, creating
// the draft when absent
func (d *Drafts) SetField(module ModuleName, key string, raw RawValue) lib.ErrorI {
	d.Lock()
	defer d.Unlock()
	draft, err := d.getOrCreate(module)
	if err != nil {
		return err
	}
	return draft.SetField(key, raw)
}

// ClearField() removes raw input for one parameter of the module draft
func (d *Drafts) ClearField(module ModuleName, key string) lib.ErrorI {
	if err := module.Check(); err != nil {
		return err
	}
	d.Lock()
	defer d.Unlock()
	draft, found := d.ByModule[module]
	if !found {
		return ErrUnknownDraft(module)
	}
	return draft.ClearField(key)
}

// Get() returns a snapshot of the module draft or fails when none exists
func (d *Drafts) Get(module ModuleName) (*ProposalDraft, lib.ErrorI) {
	if err := module.Check(); err != nil {
		return nil, err
	}
	d.RLock()
	defer d.RUnlock()
	draft, found := d.ByModule[module]
	if !found {
		return nil, ErrUnknownDraft(module)
	}
	return draft.copy(), nil
}

// Delete() discards the draft for a module
func (d *Drafts) Delete(module ModuleName) lib.ErrorI {
	if err := module.Check(); err != nil {
		return err
	}
	d.Lock()
	defer d.Unlock()
	if _, found := d.ByModule[module]; !found {
		return ErrUnknownDraft(module)
	}
	delete(d.ByModule, module)
	return nil
}
