package gov

import (
	"bytes"
	"encoding/json"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/govboard-network/govboard/lib"
)

/*
	This file implements field validation: the coercion of raw form input into the
	descriptor's value shape, followed by the descriptor's own value rule. Coercion is
	exhaustive over the raw kinds so an unhandled combination is an explicit error
	rather than a silent pass-through.
*/

// ValidateField() coerces a raw form value against a descriptor and runs the
// descriptor's value rule; on success the returned value has the descriptor's shape
func ValidateField(d *ParamDescriptor, raw RawValue) (value any, err lib.ErrorI) {
	// empty input short-circuits: a required field fails, anything else falls
	// back to the descriptor default which was validated at registration
	if isEmptyInput(raw) {
		if d.Required {
			return nil, ErrMissingRequired()
		}
		return d.Default, nil
	}
	switch d.Kind {
	case KindString:
		value, err = coerceString(raw)
	case KindBool:
		value, err = coerceBool(raw)
	case KindNumber:
		value, err = coerceNumber(raw)
	case KindStringList:
		value, err = coerceStringList(raw)
	case KindNumberList:
		value, err = coerceNumberList(raw)
	case KindObject:
		value, err = coerceObject(d, raw)
	default:
		return nil, ErrUnknownParamKind(d.Kind)
	}
	if err != nil {
		return nil, err
	}
	if d.Validate != nil {
		if err = d.Validate(value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// isEmptyInput() reports whether the raw value carries no usable input
func isEmptyInput(raw RawValue) bool {
	if raw.IsZero() {
		return true
	}
	switch raw.Kind() {
	case RawStringKind:
		return strings.TrimSpace(raw.str) == ""
	case RawSequenceKind:
		return len(raw.seq) == 0
	case RawObjectKind:
		trimmed := bytes.TrimSpace(raw.obj)
		return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
	case RawBoolKind, RawNumberKind:
		return false
	default:
		return true
	}
}

// coerceString() accepts text input and numeric literals, which cover the
// decimal-string parameters entered through a numeric control
func coerceString(raw RawValue) (any, lib.ErrorI) {
	switch raw.Kind() {
	case RawStringKind:
		return strings.TrimSpace(raw.str), nil
	case RawNumberKind:
		return raw.num, nil
	default:
		return nil, ErrWrongValueShape(KindString)
	}
}

// coerceBool() accepts only a toggle; text like "true" is rejected rather than guessed at
func coerceBool(raw RawValue) (any, lib.ErrorI) {
	if raw.Kind() != RawBoolKind {
		return nil, ErrWrongValueShape(KindBool)
	}
	return raw.b, nil
}

// coerceNumber() accepts a numeric literal or its text form and parses a whole number
func coerceNumber(raw RawValue) (any, lib.ErrorI) {
	switch raw.Kind() {
	case RawNumberKind:
		return parseWhole(raw.num)
	case RawStringKind:
		return parseWhole(strings.TrimSpace(raw.str))
	default:
		return nil, ErrWrongValueShape(KindNumber)
	}
}

// coerceStringList() accepts a repeated input of strings or a single delimited text blob
func coerceStringList(raw RawValue) (any, lib.ErrorI) {
	switch raw.Kind() {
	case RawStringKind:
		return splitList(raw.str), nil
	case RawSequenceKind:
		out := make([]string, 0, len(raw.seq))
		for _, el := range raw.seq {
			s, err := coerceString(el)
			if err != nil {
				return nil, err
			}
			out = append(out, s.(string))
		}
		return out, nil
	default:
		return nil, ErrWrongValueShape(KindStringList)
	}
}

// coerceNumberList() accepts a repeated numeric input or a single delimited text blob
func coerceNumberList(raw RawValue) (any, lib.ErrorI) {
	switch raw.Kind() {
	case RawStringKind:
		parts := splitList(raw.str)
		out := make([]int64, 0, len(parts))
		for _, p := range parts {
			n, err := parseWhole(p)
			if err != nil {
				return nil, err
			}
			out = append(out, n.(int64))
		}
		return out, nil
	case RawSequenceKind:
		out := make([]int64, 0, len(raw.seq))
		for _, el := range raw.seq {
			n, err := coerceNumber(el)
			if err != nil {
				return nil, err
			}
			out = append(out, n.(int64))
		}
		return out, nil
	default:
		return nil, ErrWrongValueShape(KindNumberList)
	}
}

// coerceObject() unmarshals structured input into the descriptor's object target
func coerceObject(d *ParamDescriptor, raw RawValue) (any, lib.ErrorI) {
	if raw.Kind() != RawObjectKind || d.NewObject == nil {
		return nil, ErrWrongValueShape(KindObject)
	}
	target := d.NewObject()
	if err := json.Unmarshal(raw.obj, target); err != nil {
		return nil, ErrWrongValueShape(KindObject)
	}
	return target, nil
}

// parseWhole() parses a base 10 whole number
func parseWhole(literal string) (any, lib.ErrorI) {
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return nil, ErrNotWholeNumber(literal)
	}
	return n, nil
}

// splitList() splits a text blob on commas and newlines, trimming and dropping empties
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// VALUE RULE CODE BELOW

var (
	// denomPattern follows the cosmos-sdk coin denomination grammar
	denomPattern = regexp.MustCompile(`^[a-z][a-z0-9/:._-]{2,127}$`)
	// addressPattern matches a 20 byte hex EVM address in either case
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	// channelPattern matches an IBC channel identifier
	channelPattern = regexp.MustCompile(`^channel-[0-9]+$`)
	// decimalPattern matches a plain decimal literal without exponent notation
	decimalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// validateDenom() enforces the coin denomination grammar
func validateDenom(value any) lib.ErrorI {
	s, ok := value.(string)
	if !ok {
		return ErrWrongValueShape(KindString)
	}
	if !denomPattern.MatchString(s) {
		return ErrInvalidDenom(s)
	}
	return nil
}

// minNumber() builds a lower bound rule for whole number parameters
func minNumber(min int64) ValidateFunc {
	return func(value any) lib.ErrorI {
		n, ok := value.(int64)
		if !ok {
			return ErrWrongValueShape(KindNumber)
		}
		if n < min {
			return ErrBelowMinimum(min)
		}
		return nil
	}
}

// nonNegativeDecimal() enforces a decimal string with no sign
func nonNegativeDecimal(value any) lib.ErrorI {
	s, ok := value.(string)
	if !ok {
		return ErrWrongValueShape(KindString)
	}
	if !decimalPattern.MatchString(s) {
		return ErrNotDecimal(s)
	}
	if strings.HasPrefix(s, "-") {
		return ErrNegativeDecimal(s)
	}
	return nil
}

// decimalZeroToOne() enforces a decimal string within the closed unit interval
func decimalZeroToOne(value any) lib.ErrorI {
	s, ok := value.(string)
	if !ok {
		return ErrWrongValueShape(KindString)
	}
	if !decimalPattern.MatchString(s) {
		return ErrNotDecimal(s)
	}
	// exact rational comparison avoids float rounding at the interval edges
	r, _ := new(big.Rat).SetString(s)
	if r.Sign() < 0 || r.Cmp(big.NewRat(1, 1)) > 0 {
		return ErrNotBetweenZeroAndOne(s)
	}
	return nil
}

// checkAddressList() enforces the canonical address list form: well formed hex
// addresses, no duplicates after lowercasing, sorted ascending after lowercasing
func checkAddressList(addresses []string) lib.ErrorI {
	deDuplicator, previous := lib.NewDeDuplicator[string](), ""
	for i, address := range addresses {
		if !addressPattern.MatchString(address) {
			return ErrInvalidAddress(address)
		}
		lower := strings.ToLower(address)
		if deDuplicator.Found(lower) {
			return ErrDuplicateEntry(lower)
		}
		if i != 0 && lower < previous {
			return ErrUnsortedEntries()
		}
		previous = lower
	}
	return nil
}

// validateAddressList() adapts checkAddressList to the descriptor rule signature
func validateAddressList(value any) lib.ErrorI {
	list, ok := value.([]string)
	if !ok {
		return ErrWrongValueShape(KindStringList)
	}
	return checkAddressList(list)
}

// validateEIPList() enforces positive, unique EIP numbers
func validateEIPList(value any) lib.ErrorI {
	list, ok := value.([]int64)
	if !ok {
		return ErrWrongValueShape(KindNumberList)
	}
	deDuplicator := lib.NewDeDuplicator[int64]()
	for _, eip := range list {
		if eip <= 0 {
			return ErrBelowMinimum(1)
		}
		if deDuplicator.Found(eip) {
			return ErrDuplicateEntry(strconv.FormatInt(eip, 10))
		}
	}
	return nil
}

// validateChannelList() enforces well formed, unique IBC channel identifiers
func validateChannelList(value any) lib.ErrorI {
	list, ok := value.([]string)
	if !ok {
		return ErrWrongValueShape(KindStringList)
	}
	deDuplicator := lib.NewDeDuplicator[string]()
	for _, channel := range list {
		if !channelPattern.MatchString(channel) {
			return ErrInvalidChannel(channel)
		}
		if deDuplicator.Found(channel) {
			return ErrDuplicateEntry(channel)
		}
	}
	return nil
}

// validateAccessControl() enforces both access control branches; the address list
// is checked regardless of access type so a later type flip cannot expose bad data
func validateAccessControl(value any) lib.ErrorI {
	ac, ok := value.(*AccessControl)
	if !ok {
		return ErrWrongValueShape(KindObject)
	}
	if err := ac.Create.check(); err != nil {
		return err
	}
	return ac.Call.check()
}
