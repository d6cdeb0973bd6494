// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrValidation indicates input that failed a local check before any network call.
var ErrValidation = errors.New("validation")

// ErrUnauthenticated indicates the caller has no usable session.
var ErrUnauthenticated = errors.New("unauthenticated")
