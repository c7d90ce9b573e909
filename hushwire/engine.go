package hushwire

import (
	"context"
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/hushwire/hushwire/hushwire/agreement"
	"github.com/hushwire/hushwire/hushwire/cipher"
	"github.com/hushwire/hushwire/hushwire/envelope"
	"github.com/hushwire/hushwire/hushwire/keys"
)

// EncodedKeyPair is a key pair rendered for storage and publication. The
// two fields carry distinct kind tags and cannot be swapped silently.
type EncodedKeyPair struct {
	PrivateKey string
	PublicKey  string
}

// Engine runs the boundary operations under one Config. It holds no keys,
// so a single Engine may serve any number of identities and goroutines.
type Engine struct {
	cfg    Config
	rand   io.Reader
	cipher *cipher.Cipher
}

// NewEngine validates cfg and returns an Engine bound to it.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := cfg.Rand
	if r == nil {
		r = rand.Reader
	}
	return &Engine{
		cfg:    cfg,
		rand:   r,
		cipher: cipher.New(cfg.cipherOptions()),
	}, nil
}

// Config returns the configuration the Engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// GenerateKeyPair creates a new identity.
func (e *Engine) GenerateKeyPair() (EncodedKeyPair, error) {
	kp, err := keys.GenerateKeyPairFrom(e.rand)
	if err != nil {
		return EncodedKeyPair{}, err
	}
	defer kp.Destroy()

	jww.TRACE.Printf("[HUSHWIRE] generated identity %s", kp.Public.Fingerprint().Short())
	return EncodedKeyPair{
		PrivateKey: keys.EncodePrivateKey(kp.Private),
		PublicKey:  keys.EncodePublicKey(kp.Public),
	}, nil
}

// DeriveSharedSecret computes the secret shared with the owner of
// peerPublicKey. Both parties obtain the same token.
func (e *Engine) DeriveSharedSecret(myPrivateKey, peerPublicKey string) (string, error) {
	peer, err := keys.ParsePublicKey(peerPublicKey)
	if err != nil {
		return "", errors.WithMessage(ErrInvalidPeerKey, err.Error())
	}
	my, err := keys.ParsePrivateKey(myPrivateKey)
	if err != nil {
		return "", errors.WithMessage(ErrKeyAgreementFailure, err.Error())
	}
	defer my.Destroy()

	secret, err := agreement.DeriveSharedSecret(my, peer)
	if err != nil {
		return "", err
	}
	return agreement.EncodeSharedSecret(secret), nil
}

// EncryptMessage seals plaintext for (chatID, senderID) and returns the
// envelope token.
func (e *Engine) EncryptMessage(sharedSecret, chatID, senderID, plaintext string) (string, error) {
	secret, err := agreement.ParseSharedSecret(sharedSecret)
	if err != nil {
		return "", errors.WithMessage(ErrEncryptionFailure, err.Error())
	}
	defer secret.Destroy()

	env, err := e.cipher.Encrypt(secret, cipher.Context{ChatID: chatID, SenderID: senderID}, plaintext)
	if err != nil {
		return "", err
	}
	token, err := envelope.Encode(env)
	if err != nil {
		return "", errors.WithMessage(ErrEncryptionFailure, err.Error())
	}
	return token, nil
}

// DecryptMessage opens an envelope token sealed for (chatID, senderID).
// The token is parsed before the secret, so a malformed or unknown-version
// envelope is reported as such regardless of the secret.
func (e *Engine) DecryptMessage(sharedSecret, chatID, senderID, token string) (string, error) {
	env, err := envelope.Decode(token)
	if err != nil {
		return "", err
	}
	secret, err := agreement.ParseSharedSecret(sharedSecret)
	if err != nil {
		jww.DEBUG.Printf("[HUSHWIRE] decrypt for chat %q: %v", chatID, err)
		return "", ErrDecryptionFailure
	}
	defer secret.Destroy()

	return e.cipher.Decrypt(secret, cipher.Context{ChatID: chatID, SenderID: senderID}, env)
}

// BatchMessage is one plaintext or envelope token in a batch call.
type BatchMessage struct {
	SenderID string
	Text     string
}

// BatchResult is the outcome of one BatchMessage.
type BatchResult struct {
	Text string
	Err  error
}

// EncryptAll seals msgs for chatID using up to workers goroutines. Results
// are in input order and carry their own errors.
func (e *Engine) EncryptAll(ctx context.Context, sharedSecret, chatID string, msgs []BatchMessage, workers int) ([]BatchResult, error) {
	secret, err := agreement.ParseSharedSecret(sharedSecret)
	if err != nil {
		return nil, errors.WithMessage(ErrEncryptionFailure, err.Error())
	}
	defer secret.Destroy()

	reqs := make([]cipher.SealRequest, len(msgs))
	for i, m := range msgs {
		reqs[i] = cipher.SealRequest{
			Context:   cipher.Context{ChatID: chatID, SenderID: m.SenderID},
			Plaintext: m.Text,
		}
	}
	sealed, err := e.cipher.EncryptAll(ctx, secret, reqs, workers)
	if err != nil {
		return nil, err
	}

	out := make([]BatchResult, len(sealed))
	for i, s := range sealed {
		if s.Err != nil {
			out[i].Err = s.Err
			continue
		}
		out[i].Text, out[i].Err = envelope.Encode(s.Envelope)
	}
	return out, nil
}

// DecryptAll opens envelope tokens for chatID using up to workers
// goroutines, e.g. when loading a stored conversation.
func (e *Engine) DecryptAll(ctx context.Context, sharedSecret, chatID string, msgs []BatchMessage, workers int) ([]BatchResult, error) {
	out := make([]BatchResult, len(msgs))
	reqs := make([]cipher.OpenRequest, 0, len(msgs))
	index := make([]int, 0, len(msgs))
	for i, m := range msgs {
		env, err := envelope.Decode(m.Text)
		if err != nil {
			out[i].Err = err
			continue
		}
		reqs = append(reqs, cipher.OpenRequest{
			Context:  cipher.Context{ChatID: chatID, SenderID: m.SenderID},
			Envelope: env,
		})
		index = append(index, i)
	}

	secret, err := agreement.ParseSharedSecret(sharedSecret)
	if err != nil {
		jww.DEBUG.Printf("[HUSHWIRE] batch decrypt for chat %q: %v", chatID, err)
		for _, i := range index {
			out[i].Err = ErrDecryptionFailure
		}
		return out, nil
	}
	defer secret.Destroy()

	opened, err := e.cipher.DecryptAll(ctx, secret, reqs, workers)
	if err != nil {
		return nil, err
	}
	for j, o := range opened {
		out[index[j]] = BatchResult{Text: o.Plaintext, Err: o.Err}
	}
	return out, nil
}
