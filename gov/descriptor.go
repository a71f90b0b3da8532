package gov

import (
	"bytes"
	"encoding/json"

	"github.com/govboard-network/govboard/lib"
)

/*
	This file defines the declarative schema each chain module publishes for its governance
	parameters. The registry built from these descriptors is the single source of truth for
	parameter shape: the validator, the message builder and any rendering layer all read it,
	and none of them may hardcode a parameter's type or bounds.
*/

// ParamKind enumerates the value shapes a chain parameter may have
type ParamKind uint8

const (
	KindString ParamKind = iota + 1 // a single string value (denoms, decimal strings)
	KindBool                        // a single boolean flag
	KindNumber                      // a whole number
	KindStringList                  // an ordered list of strings (addresses, channels)
	KindNumberList                  // an ordered list of whole numbers (EIP numbers)
	KindObject                      // a nested structure (access control)
)

// String() returns the human name of the kind
func (k ParamKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindStringList:
		return "array-of-string"
	case KindNumberList:
		return "array-of-number"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// ValidateFunc is a pure predicate over an already coerced parameter value
type ValidateFunc func(value any) lib.ErrorI

// ParamDescriptor describes a single configurable chain parameter
type ParamDescriptor struct {
	Key            string       `json:"key"`            // unique name within the owning module
	Kind           ParamKind    `json:"kind"`           // the value shape of the parameter
	Default        any          `json:"default"`        // the developer set default, must re-validate
	Description    string       `json:"description"`    // human text rendered by the form layer
	GovernanceOnly bool         `json:"governanceOnly"` // whether a change requires a governance proposal
	Required       bool         `json:"required"`       // whether empty input is a validation failure
	Validate       ValidateFunc `json:"-"`              // value rule, nil means any well-typed value is accepted
	NewObject      func() any   `json:"-"`              // allocates the unmarshal target for object kinds
}

// ModuleParamSet is a named, ordered, immutable mapping from parameter key to descriptor
type ModuleParamSet struct {
	module ModuleName
	keys   []string                    // canonical key order
	byKey  map[string]*ParamDescriptor // key lookup
}

// newModuleParamSet() builds a ModuleParamSet at process start
// a duplicate key or a default that fails its own validation is a programming error
func newModuleParamSet(module ModuleName, descriptors ...*ParamDescriptor) *ModuleParamSet {
	set := &ModuleParamSet{
		module: module,
		keys:   make([]string, 0, len(descriptors)),
		byKey:  make(map[string]*ParamDescriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, found := set.byKey[d.Key]; found {
			panic(ErrDuplicateParamKey(module, d.Key))
		}
		if d.Validate != nil {
			if err := d.Validate(d.Default); err != nil {
				panic(ErrInvalidDefault(module, d.Key, err))
			}
		}
		set.keys = append(set.keys, d.Key)
		set.byKey[d.Key] = d
	}
	return set
}

// Module() returns the owning module name
func (s *ModuleParamSet) Module() ModuleName { return s.module }

// Keys() returns a copy of the canonical key order
func (s *ModuleParamSet) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Contains() returns whether a parameter key exists in the set
func (s *ModuleParamSet) Contains(key string) bool {
	_, found := s.byKey[key]
	return found
}

// Get() returns the descriptor for a parameter key
func (s *ModuleParamSet) Get(key string) (*ParamDescriptor, lib.ErrorI) {
	d, found := s.byKey[key]
	if !found {
		return nil, ErrUnknownParamKey(s.module, key)
	}
	return d, nil
}

// CheckDefaults() re-validates every descriptor default in the set
func (s *ModuleParamSet) CheckDefaults() lib.ErrorI {
	for _, key := range s.keys {
		d := s.byKey[key]
		if d.Validate == nil {
			continue
		}
		if err := d.Validate(d.Default); err != nil {
			return ErrInvalidDefault(s.module, key, err)
		}
	}
	return nil
}

// RAW VALUE CODE BELOW

// RawKind enumerates the shapes a form control may deliver a value in
type RawKind uint8

const (
	RawStringKind   RawKind = iota + 1 // a text input
	RawBoolKind                        // a toggle
	RawNumberKind                      // a numeric input, literal preserved
	RawSequenceKind                    // a repeated input
	RawObjectKind                      // a structured input
)

// RawValue is the explicit sum type for untyped form input
// exactly one variant is populated, identified by the kind tag
type RawValue struct {
	kind RawKind
	str  string
	b    bool
	num  string // the numeric literal as written, precision preserved
	seq  []RawValue
	obj  json.RawMessage
}

// RawString() wraps a text input
func RawString(s string) RawValue { return RawValue{kind: RawStringKind, str: s} }

// RawBool() wraps a toggle input
func RawBool(b bool) RawValue { return RawValue{kind: RawBoolKind, b: b} }

// RawNumber() wraps a numeric literal without re-serializing it
func RawNumber(literal string) RawValue { return RawValue{kind: RawNumberKind, num: literal} }

// RawSequence() wraps a repeated input
func RawSequence(elements ...RawValue) RawValue {
	return RawValue{kind: RawSequenceKind, seq: elements}
}

// RawObject() wraps a structured json input
func RawObject(bz json.RawMessage) RawValue { return RawValue{kind: RawObjectKind, obj: bz} }

// Kind() returns the populated variant tag, zero when the value was never set
func (r RawValue) Kind() RawKind { return r.kind }

// IsZero() returns whether the value was never set
func (r RawValue) IsZero() bool { return r.kind == 0 }

// MarshalJSON() writes the natural json form of the populated variant
func (r RawValue) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RawStringKind:
		return json.Marshal(r.str)
	case RawBoolKind:
		return json.Marshal(r.b)
	case RawNumberKind:
		return []byte(r.num), nil
	case RawSequenceKind:
		return json.Marshal(r.seq)
	case RawObjectKind:
		return r.obj, nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON() sniffs the json token shape and populates the matching variant
func (r *RawValue) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = RawValue{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = RawString(s)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*r = RawBool(v)
	case '[':
		var seq []RawValue
		if err := json.Unmarshal(trimmed, &seq); err != nil {
			return err
		}
		*r = RawSequence(seq...)
	case '{':
		*r = RawObject(append(json.RawMessage{}, trimmed...))
	default:
		// validate the literal is a json number before keeping it verbatim
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*r = RawNumber(n.String())
	}
	return nil
}
