package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the screens can choose how to show it.
type Kind int

const (
	KindUnknown Kind = iota
	// PasswordTooShort and the next two are local restore validation failures.
	PasswordTooShort
	PasswordMismatch
	InvalidPhraseLength
	// PasscodeNotConfigured means the device has no passcode to guard the
	// stored credential.
	PasscodeNotConfigured
	EngineFailureOther
	RPCInvalidURL
	RPCInsecureScheme
)

var kindMessages = map[Kind]string{
	PasswordTooShort:      "Password must have at least 8 characters",
	PasswordMismatch:      "Passwords don't match",
	InvalidPhraseLength:   "Seed words should have 12 words",
	PasscodeNotConfigured: "In order to proceed, you need to turn Passcode on or any biometrics authentication method supported in your device (FaceID, TouchID or Fingerprint)",
	EngineFailureOther:    "Restore failed",
	RPCInvalidURL:         "Invalid RPC URL",
	RPCInsecureScheme:     "URLs require the appropriate HTTPS prefix",
}

func (k Kind) String() string {
	switch k {
	case PasswordTooShort:
		return "PasswordTooShort"
	case PasswordMismatch:
		return "PasswordMismatch"
	case InvalidPhraseLength:
		return "InvalidPhraseLength"
	case PasscodeNotConfigured:
		return "PasscodeNotConfigured"
	case EngineFailureOther:
		return "EngineFailureOther"
	case RPCInvalidURL:
		return "RpcInvalidUrl"
	case RPCInsecureScheme:
		return "RpcInsecureScheme"
	}
	return "Unknown"
}

// Message is the user-facing text for the kind.
func (k Kind) Message() string {
	return kindMessages[k]
}

// IsValidation reports whether the kind is raised before any collaborator
// is called.
func (k Kind) IsValidation() bool {
	return k == PasswordTooShort || k == PasswordMismatch || k == InvalidPhraseLength
}

// Error is returned by every operation in this package.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Kind == EngineFailureOther {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Kind.Message(), e.Err)
	}
	return e.Kind.Message()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(k Kind, err error) *Error { return &Error{Kind: k, Err: err} }

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
