package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/prefs"
	"github.com/jask/jaskwallet/internal/secrets"
)

const (
	MinPasswordLength = 8
	PhraseWordCount   = 12

	// CredentialAccount is the account name the unlock password is stored under.
	CredentialAccount = "jaskwallet-user"
)

// RestoreRequest is one submission of the seed import form.
type RestoreRequest struct {
	Phrase             string
	Password           string
	Confirmation       string
	UseBiometricUnlock bool
	// BiometryKind is the sensor probed at activation; empty when none.
	BiometryKind string
}

// NormalizePhrase lower-cases the phrase and collapses runs of whitespace.
func NormalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// Validate checks the request in order and returns the first failure.
func (r RestoreRequest) Validate() error {
	switch {
	case utf8.RuneCountInString(r.Password) < MinPasswordLength:
		return newError(PasswordTooShort, nil)
	case r.Password != r.Confirmation:
		return newError(PasswordMismatch, nil)
	case len(strings.Fields(r.Phrase)) != PhraseWordCount:
		return newError(InvalidPhraseLength, nil)
	}
	return nil
}

func (r RestoreRequest) policy() secrets.AccessPolicy {
	if r.useBiometry() {
		return secrets.PolicyBiometryOrPasscode
	}
	return secrets.PolicyPasscodeOnly
}

func (r RestoreRequest) useBiometry() bool {
	return r.UseBiometricUnlock && r.BiometryKind != ""
}

// Outcome reports what Submit did.
type Outcome int

const (
	// OutcomeIgnored means another submission was already in flight.
	OutcomeIgnored Outcome = iota
	OutcomeRestored
	OutcomeFailed
)

// BiometryProbe is the result of checking the device sensor.
type BiometryProbe struct {
	Kind      string
	Supported bool
}

// DefaultChoice is the initial state of the biometric unlock toggle.
func (b BiometryProbe) DefaultChoice() bool { return b.Supported }

// RestoreService runs the seed import flow.
type RestoreService struct {
	Vault       VaultRestorer
	Credentials CredentialStore
	Flags       FlagStore
	Nav         nav.Navigator

	inFlight atomic.Bool
}

// ProbeBiometry is called once when the import screen is shown.
func (s *RestoreService) ProbeBiometry() BiometryProbe {
	kind, ok := s.Credentials.SupportedBiometryType()
	if !ok {
		return BiometryProbe{}
	}
	return BiometryProbe{Kind: kind, Supported: true}
}

// Submit validates req, restores the vault and stores the unlock
// credential. A call made while another is outstanding returns
// OutcomeIgnored and no error.
func (s *RestoreService) Submit(ctx context.Context, req RestoreRequest) (Outcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Debugf("Restore already in flight, ignoring submission")
		return OutcomeIgnored, nil
	}
	defer s.inFlight.Store(false)

	req.Phrase = NormalizePhrase(req.Phrase)
	if err := req.Validate(); err != nil {
		return OutcomeFailed, err
	}

	if err := s.restore(ctx, req); err != nil {
		if errors.Is(err, secrets.ErrPasscodeNotSet) {
			log.Warnf("Restore aborted: %v", err)
			return OutcomeFailed, newError(PasscodeNotConfigured, err)
		}
		log.Errorf("Restore failed: %v", err)
		return OutcomeFailed, newError(EngineFailureOther, err)
	}

	log.Infof("Wallet restored from recovery phrase")
	s.Nav.Navigate(nav.HomeNav, nil)
	return OutcomeRestored, nil
}

// InFlight reports whether a submission is outstanding.
func (s *RestoreService) InFlight() bool { return s.inFlight.Load() }

func (s *RestoreService) restore(ctx context.Context, req RestoreRequest) error {
	if err := s.Vault.CreateNewVaultAndRestore(ctx, req.Password, req.Phrase); err != nil {
		return err
	}
	if err := s.Credentials.StoreCredential(CredentialAccount, req.Password, req.policy()); err != nil {
		return err
	}
	if req.useBiometry() {
		if err := s.Flags.SetFlag(prefs.BiometryChoiceKey, req.BiometryKind); err != nil {
			return err
		}
	} else if err := s.Flags.RemoveFlag(prefs.BiometryChoiceKey); err != nil {
		return err
	}
	return s.Flags.SetFlag(prefs.ExistingUserKey, "true")
}

// RestorePhase is the seed import screen's submission state.
type RestorePhase int

const (
	PhaseIdle RestorePhase = iota
	PhaseSubmitting
	PhaseDone
)

// RestoreState is the immutable state of one import screen visit.
type RestoreState struct {
	Phase RestorePhase
	// Alert is shown in a blocking dialog.
	AlertTitle string
	Alert      string
	// Inline is shown under the form.
	Inline string
}

// Begin moves Idle to Submitting. ok is false when a submission is
// already outstanding.
func (s RestoreState) Begin() (next RestoreState, ok bool) {
	if s.Phase != PhaseIdle {
		return s, false
	}
	return RestoreState{Phase: PhaseSubmitting}, true
}

// Finish applies the result of Submit.
func (s RestoreState) Finish(outcome Outcome, err error) RestoreState {
	if outcome == OutcomeIgnored {
		return s
	}
	if err == nil {
		return RestoreState{Phase: PhaseDone}
	}
	switch k := KindOf(err); {
	case k.IsValidation():
		return RestoreState{Phase: PhaseIdle, AlertTitle: "Error", Alert: k.Message()}
	case k == PasscodeNotConfigured:
		return RestoreState{Phase: PhaseIdle, AlertTitle: "Security Alert", Alert: k.Message()}
	default:
		return RestoreState{Phase: PhaseIdle, Inline: err.Error()}
	}
}

// DismissAlert clears a blocking dialog.
func (s RestoreState) DismissAlert() RestoreState {
	s.AlertTitle, s.Alert = "", ""
	return s
}
