package hushwire

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/hushwire/hushwire/hushwire/agreement"
	"github.com/hushwire/hushwire/hushwire/cipher"
	"github.com/hushwire/hushwire/hushwire/envelope"
)

// Conversation binds a shared secret to one chat and to the local sender.
// It is a convenience over EncryptMessage and DecryptMessage that parses
// the secret once. Safe for concurrent use.
type Conversation struct {
	mu          sync.RWMutex
	destroyed   bool
	secret      agreement.SharedSecret
	chatID      string
	localSender string
	cipher      *cipher.Cipher
}

// NewConversation opens a conversation with the default configuration.
func NewConversation(sharedSecret, chatID, localSender string) (*Conversation, error) {
	return defaultEngine.NewConversation(sharedSecret, chatID, localSender)
}

// NewConversation opens a conversation on e. The secret token is parsed
// here; a malformed token fails with ErrKeyAgreementFailure.
func (e *Engine) NewConversation(sharedSecret, chatID, localSender string) (*Conversation, error) {
	secret, err := agreement.ParseSharedSecret(sharedSecret)
	if err != nil {
		return nil, errors.WithMessage(ErrKeyAgreementFailure, err.Error())
	}
	return &Conversation{
		secret:      secret,
		chatID:      chatID,
		localSender: localSender,
		cipher:      e.cipher,
	}, nil
}

func (c *Conversation) ChatID() string { return c.chatID }

func (c *Conversation) LocalSender() string { return c.localSender }

// Seal encrypts plaintext as sent by the local sender.
func (c *Conversation) Seal(plaintext string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.destroyed {
		return "", errors.WithMessage(ErrEncryptionFailure, "conversation destroyed")
	}
	env, err := c.cipher.Encrypt(c.secret, cipher.Context{ChatID: c.chatID, SenderID: c.localSender}, plaintext)
	if err != nil {
		return "", err
	}
	token, err := envelope.Encode(env)
	if err != nil {
		return "", errors.WithMessage(ErrEncryptionFailure, err.Error())
	}
	return token, nil
}

// Open decrypts an envelope claimed to come from senderID.
func (c *Conversation) Open(token, senderID string) (string, error) {
	env, err := envelope.Decode(token)
	if err != nil {
		return "", err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.destroyed {
		return "", ErrDecryptionFailure
	}
	return c.cipher.Decrypt(c.secret, cipher.Context{ChatID: c.chatID, SenderID: senderID}, env)
}

// Destroy zeroes the secret. Later calls to Seal and Open fail.
func (c *Conversation) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secret.Destroy()
	c.destroyed = true
}
