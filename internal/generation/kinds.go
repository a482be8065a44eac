package generation

import (
	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

// Kind classifies why an attempt failed
type Kind string

// Failure kinds
const (
	KindProvider          Kind = "provider"
	KindMalformedToolCall Kind = "malformed_tool_call"
	KindValidation        Kind = "validation"
	KindNoData            Kind = "no_data"
)

// MetaKind is the error metadata key holding the Kind
const MetaKind = "kind"

var kindCodes = map[Kind]errors.Code{
	KindProvider:          errors.CodeUnavailable,
	KindMalformedToolCall: errors.CodeInvalidArgument,
	KindValidation:        errors.CodeInvalidArgument,
	KindNoData:            errors.CodeInternal,
}

func tag(kind Kind, err error, message string) *errors.Error {
	if err == nil {
		return errors.New(kindCodes[kind], message).WithMeta(MetaKind, string(kind))
	}
	return errors.WrapWithCode(err, kindCodes[kind], message).WithMeta(MetaKind, string(kind))
}

// KindOf returns the failure kind recorded on err, or "" when there is none
func KindOf(err error) Kind {
	meta := errors.GetMeta(err)
	if meta == nil {
		return ""
	}
	kind, _ := meta[MetaKind].(string)
	return Kind(kind)
}
