package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hushwire/hushwire/hushwire"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func keygen(t *testing.T) (private, public string) {
	t.Helper()
	out, err := run(t, "", "keygen")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		switch fields[0] {
		case "private:":
			private = fields[1]
		case "public:":
			public = fields[1]
		}
	}
	require.NotEmpty(t, private)
	require.NotEmpty(t, public)
	return private, public
}

func TestCLIRoundTrip(t *testing.T) {
	alicePriv, alicePub := keygen(t)
	bobPriv, bobPub := keygen(t)

	sAB, err := run(t, "", "derive", "--private", alicePriv, "--peer", bobPub)
	require.NoError(t, err)
	sBA, err := run(t, "", "derive", "--private", bobPriv, "--peer", alicePub)
	require.NoError(t, err)
	require.Equal(t, sAB, sBA)
	secret := strings.TrimSpace(sAB)

	token, err := run(t, "", "encrypt", "--secret", secret, "--chat", "c1", "--sender", "A", "hello")
	require.NoError(t, err)

	plaintext, err := run(t, token, "decrypt", "--secret", secret, "--chat", "c1", "--sender", "A")
	require.NoError(t, err)
	assert.Equal(t, "hello", plaintext)

	_, err = run(t, "", "decrypt", "--secret", secret, "--chat", "c2", "--sender", "A", strings.TrimSpace(token))
	require.Error(t, err)
	assert.Equal(t, int(hushwire.CodeDecryptionFailure), exitCode(err))
}

func TestCLIInvalidPeer(t *testing.T) {
	priv, _ := keygen(t)
	_, err := run(t, "", "derive", "--private", priv, "--peer", "AAAA")
	require.Error(t, err)
	assert.Equal(t, int(hushwire.CodeInvalidPeerKey), exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, int(hushwire.CodeUnknown), exitCode(errors.New("usage")))
	assert.Equal(t, int(hushwire.CodeMalformedEnvelope),
		exitCode(errors.Wrap(hushwire.ErrMalformedEnvelope, "cli")))
}
