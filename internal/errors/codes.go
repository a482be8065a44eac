package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code classifies an error for transports
type Code string

// Error codes produced by this service
const (
	CodeOK               Code = "OK"
	CodeCanceled         Code = "CANCELED"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeInternal         Code = "INTERNAL"
	CodeUnavailable      Code = "UNAVAILABLE"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
)

type transportCodes struct {
	http int
	grpc codes.Code
}

var codeTable = map[Code]transportCodes{
	CodeOK:               {http.StatusOK, codes.OK},
	CodeCanceled:         {http.StatusRequestTimeout, codes.Canceled},
	CodeInvalidArgument:  {http.StatusBadRequest, codes.InvalidArgument},
	CodeDeadlineExceeded: {http.StatusGatewayTimeout, codes.DeadlineExceeded},
	CodeNotFound:         {http.StatusNotFound, codes.NotFound},
	CodeInternal:         {http.StatusInternalServerError, codes.Internal},
	CodeUnavailable:      {http.StatusServiceUnavailable, codes.Unavailable},
	CodeUnauthenticated:  {http.StatusUnauthorized, codes.Unauthenticated},
}

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the response status for the code; unknown codes are 500
func (c Code) HTTPStatus() int {
	if t, ok := codeTable[c]; ok {
		return t.http
	}
	return http.StatusInternalServerError
}

// GRPCCode returns the gRPC status code; unknown codes map to Unknown
func (c Code) GRPCCode() codes.Code {
	if t, ok := codeTable[c]; ok {
		return t.grpc
	}
	return codes.Unknown
}
