package errorx

import "net/http"

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010
	Validation       Code = 100011

	// OAuth2 relay codes
	UnknownTool         Code = 200001
	MissingCode         Code = 200002
	Unconfigured        Code = 200003
	ProviderExchange    Code = 200004
	AuthorizationFailed Code = 200005

	// Downstream codes
	DownstreamProxy Code = 300001
)

// HTTPStatus returns the status code written to the client when a request
// fails with this code.
func (c Code) HTTPStatus() int {
	switch c {
	case BadRequest, Validation, UnknownTool, MissingCode, Unconfigured, AuthorizationFailed:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case AlreadyExists:
		return http.StatusConflict
	case TooManyRequests:
		return http.StatusTooManyRequests
	case NotImplemented:
		return http.StatusNotImplemented
	case Unavailable, DownstreamProxy:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
