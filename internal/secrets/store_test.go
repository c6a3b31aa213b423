package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixed(s string) func() string { return func() string { return s } }

func TestStoreRequiresPasscode(t *testing.T) {
	s := New(t.TempDir(), fixed(""), "TouchID")
	err := s.StoreCredential("jaskwallet-user", "hunter22", PolicyBiometryOrPasscode)
	require.ErrorIs(t, err, ErrPasscodeNotSet)

	_, err = s.FetchCredential("jaskwallet-user")
	require.ErrorIs(t, err, ErrPasscodeNotSet)
}

func TestStoreFetchClear(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, fixed("1234"), "FaceID")

	kind, ok := s.SupportedBiometryType()
	require.True(t, ok)
	require.Equal(t, "FaceID", kind)

	require.NoError(t, s.StoreCredential("JaskWallet-User", "correct horse", PolicyBiometryOrPasscode))

	info, err := os.Stat(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cred, err := s.FetchCredential("jaskwallet-user")
	require.NoError(t, err)
	require.Equal(t, "correct horse", cred.Secret)
	require.Equal(t, PolicyBiometryOrPasscode, cred.Policy)

	wrong := New(dir, fixed("9999"), "FaceID")
	_, err = wrong.FetchCredential("jaskwallet-user")
	require.Error(t, err)

	require.NoError(t, s.ClearCredential())
	require.NoError(t, s.ClearCredential())
	_, err = s.FetchCredential("jaskwallet-user")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBiometricPolicyFallsBackWithoutSensor(t *testing.T) {
	s := New(t.TempDir(), fixed("1234"), "")
	_, ok := s.SupportedBiometryType()
	require.False(t, ok)

	require.NoError(t, s.StoreCredential("user", "pw", PolicyBiometryOrPasscode))
	cred, err := s.FetchCredential("user")
	require.NoError(t, err)
	require.Equal(t, PolicyPasscodeOnly, cred.Policy)
}
