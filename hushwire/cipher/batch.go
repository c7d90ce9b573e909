package cipher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hushwire/hushwire/hushwire/agreement"
	"github.com/hushwire/hushwire/hushwire/envelope"
)

// DefaultWorkers is used when a batch call is given workers <= 0.
const DefaultWorkers = 4

// SealRequest is one message to encrypt in a batch.
type SealRequest struct {
	Context   Context
	Plaintext string
}

// Sealed is the outcome of one SealRequest.
type Sealed struct {
	Envelope envelope.Envelope
	Err      error
}

// OpenRequest is one message to decrypt in a batch.
type OpenRequest struct {
	Context  Context
	Envelope envelope.Envelope
}

// Opened is the outcome of one OpenRequest.
type Opened struct {
	Plaintext string
	Err      error
}

// EncryptAll seals every request under secret using up to workers
// goroutines. Results are in request order and carry their own errors; the
// returned error is non-nil only if ctx was cancelled before all requests
// were processed.
func (c *Cipher) EncryptAll(ctx context.Context, secret agreement.SharedSecret, reqs []SealRequest, workers int) ([]Sealed, error) {
	defer secret.Destroy()

	out := make([]Sealed, len(reqs))
	err := forEach(ctx, len(reqs), workers, func(i int) {
		env, err := c.Encrypt(secret, reqs[i].Context, reqs[i].Plaintext)
		out[i] = Sealed{Envelope: env, Err: err}
	})
	return out, err
}

// DecryptAll opens every request under secret using up to workers
// goroutines, e.g. when loading a stored conversation. Results are in
// request order and carry their own errors.
func (c *Cipher) DecryptAll(ctx context.Context, secret agreement.SharedSecret, reqs []OpenRequest, workers int) ([]Opened, error) {
	defer secret.Destroy()

	out := make([]Opened, len(reqs))
	err := forEach(ctx, len(reqs), workers, func(i int) {
		pt, err := c.Decrypt(secret, reqs[i].Context, reqs[i].Envelope)
		out[i] = Opened{Plaintext: pt, Err: err}
	})
	return out, err
}

// forEach runs fn for 0..n-1 on a bounded pool. Items are not interrupted;
// cancellation stops scheduling new ones.
func forEach(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
