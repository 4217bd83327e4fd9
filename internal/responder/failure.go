package responder

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
)

// FailureKind classifies why a remote generation failed.
type FailureKind string

const (
	KindNetwork  FailureKind = "network"
	KindAuth     FailureKind = "auth"
	KindQuota    FailureKind = "quota"
	KindTimeout  FailureKind = "timeout"
	KindFormat   FailureKind = "format"
	KindProvider FailureKind = "provider"
	KindUnknown  FailureKind = "unknown"
)

// Failure is the error returned by Completer implementations. Its message is
// the underlying error's description, so callers see the provider's own text.
type Failure struct {
	Kind       FailureKind
	StatusCode int // upstream HTTP status, 0 when there was none
	Err        error
}

// NewFailure wraps err with kind.
func NewFailure(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

func (f *Failure) Error() string {
	if f == nil || f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

// AsFailure returns the *Failure in err's chain, or classifies err from its
// transport characteristics when the completer did not tag it.
func AsFailure(err error) *Failure {
	if err == nil {
		return NewFailure(KindUnknown, errors.New("unknown error"))
	}
	var f *Failure
	if errors.As(err, &f) {
		if f == nil {
			return NewFailure(KindUnknown, errors.New("completer returned a nil failure"))
		}
		return f
	}
	return NewFailure(ClassifyError(err), err)
}

// ClassifyError inspects an untagged error for deadline, network and
// response decoding causes.
func ClassifyError(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindFormat
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}
	return KindUnknown
}

// ClassifyStatus maps an upstream HTTP status code to a failure kind.
func ClassifyStatus(code int) FailureKind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusTooManyRequests:
		return KindQuota
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return KindTimeout
	case code >= 400:
		return KindProvider
	default:
		return KindUnknown
	}
}

// HTTPStatus is the status code used for this failure when strict status
// codes are enabled.
func (k FailureKind) HTTPStatus() int {
	switch k {
	case KindAuth, KindNetwork, KindFormat, KindProvider:
		return http.StatusBadGateway
	case KindQuota:
		return http.StatusServiceUnavailable
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
