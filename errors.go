// SPDX-License-Identifier: Apache-2.0

package secblob

import (
	"errors"
	"fmt"
)

// Stage identifies the step of security blob decoding that produced an error.
type Stage int

const (
	StageLocate    Stage = iota + 1 // GSS-API wrapper and SPNEGO OID check
	StageUnwrap                     // context-specific negotiation token wrapper
	StageNegotiate                  // negotiation token SEQUENCE
	StageKerberos                   // Kerberos credential payload
	StageNTLMSSP                    // NTLMSSP message
)

func (s Stage) String() string {
	switch s {
	case StageLocate:
		return "locate"
	case StageUnwrap:
		return "unwrap"
	case StageNegotiate:
		return "negotiate"
	case StageKerberos:
		return "kerberos"
	case StageNTLMSSP:
		return "ntlmssp"
	}

	return fmt.Sprintf("stage(%d)", int(s))
}

// Stage failure variables.  These implement the error interface and are returned wrapped in
// a StageError, so use errors.Is to test for them.

var ErrBadMech = errors.New("an unsupported mechanism was requested")
var ErrMalformedTag = errors.New("outer tag does not hold a nested value")
var ErrMissingOid = errors.New("no mechanism OID follows the outer tag")
var ErrNotSpnego = errors.New("mechanism is not SPNEGO")
var ErrMalformedWrapper = errors.New("negotiation token wrapper does not hold a nested value")
var ErrMalformedSequence = errors.New("negotiation token is not a SEQUENCE")
var ErrKerberosToken = errors.New("mechanism token is not a Kerberos AP-REQ")
var ErrNtlmsspMessage = errors.New("no decodable NTLMSSP message")

// StageError reports the failure of one decoding stage.  Err is one of the package's
// sentinel errors and Cause, if not nil, is the error returned by the underlying decoder.
type StageError struct {
	Stage Stage
	Err   error
	Cause error
}

func (e *StageError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("secblob: %s: %s", e.Stage, e.Err)
	}

	return fmt.Sprintf("secblob: %s: %s: %s", e.Stage, e.Err, e.Cause)
}

// Unwrap exposes both the sentinel and the decoder error to errors.Is and errors.As.
func (e *StageError) Unwrap() []error {
	errs := []error{e.Err}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

func stageError(stage Stage, err, cause error) error {
	return &StageError{Stage: stage, Err: err, Cause: cause}
}
