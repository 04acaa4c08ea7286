package ratecard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/friendsofgo/errors"

	"github.com/adspaceng/ratecard-wallet/internal/logger"
	"github.com/adspaceng/ratecard-wallet/internal/metrics"
	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
)

// TemplateFiles are the images added to every pass, resolved in the template directory
var TemplateFiles = []string{"icon.png", "icon@2x.png", "logo.png"}

// Signer creates a signed pass archive
type Signer interface {
	CreateSignedArchive(ctx context.Context, req pkpass.SignRequest) ([]byte, error)
}

// SigningMaterial locates the signing key, trust chain and template images
type SigningMaterial struct {
	SigningKeyPath     string
	SigningKeyPassword string
	TrustChainPath     string
	TemplateDir        string
}

// GeneratedPass is a signed archive ready to be sent to the client
type GeneratedPass struct {
	SerialNumber string
	Filename     string
	Archive      []byte
}

// Generator builds and signs passes
type Generator struct {
	signer   Signer
	issuer   Issuer
	material SigningMaterial
	timeout  time.Duration
	metrics  *metrics.Metrics

	now    func() time.Time
	random io.Reader
}

// Option configures a Generator
type Option func(*Generator)

// WithMetrics records generation outcomes and signing durations
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// WithClock sets the clock used for the issue time
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRandom sets the source of authentication tokens
func WithRandom(r io.Reader) Option {
	return func(g *Generator) { g.random = r }
}

// NewGenerator creates a Generator. A timeout <= 0 disables the signing deadline.
func NewGenerator(signer Signer, issuer Issuer, material SigningMaterial, timeout time.Duration, opts ...Option) *Generator {
	g := &Generator{
		signer:   signer,
		issuer:   issuer,
		material: material,
		timeout:  timeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates the request and returns the signed pass.
//
// Validation failures wrap ErrMissingFields and never reach the signer.
// Other errors carry a stack trace (github.com/friendsofgo/errors).
func (g *Generator) Generate(ctx context.Context, req PassRequest) (*GeneratedPass, error) {
	if err := req.Validate(); err != nil {
		g.recordPass(metrics.OutcomeInvalidRequest)
		return nil, err
	}

	issuedAt := g.now()
	serial := SerialNumber(req.ProfileID, issuedAt)

	logger.ContextWithLogAttrs(ctx,
		slog.String("profile_id", req.ProfileID),
		slog.String("serial_number", serial),
	)

	token, err := NewAuthenticationToken(g.random)
	if err != nil {
		g.recordPass(metrics.OutcomeFailed)
		return nil, errors.Wrap(err, "failed to create pass descriptor")
	}

	descriptor := BuildDescriptor(req, g.issuer, issuedAt, token)

	archive, outcome, err := g.sign(ctx, descriptor)
	g.recordPass(outcome)
	if err != nil {
		return nil, err
	}

	return &GeneratedPass{
		SerialNumber: serial,
		Filename:     PassFilename(req.ProfileID, issuedAt),
		Archive:      archive,
	}, nil
}

type signResult struct {
	archive []byte
	err     error

	// panic is set when the signer panicked
	panic *SignerPanic
}

// SignerPanic carries a panic raised by the signer goroutine back to the request goroutine,
// where it is re-raised so the server's panic recovery handles it.
type SignerPanic struct {
	Value any
	Stack []byte
}

func (p *SignerPanic) Error() string {
	if err, ok := p.Value.(error); ok {
		return "signer panic: " + err.Error()
	}
	return fmt.Sprintf("signer panic: %v", p.Value)
}

func (p *SignerPanic) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// sign runs the signer under the signing timeout and reports the metrics outcome.
// When the deadline passes first the signer goroutine is left to finish and its result is discarded.
// A signer panic is re-raised on the calling goroutine as a *SignerPanic.
func (g *Generator) sign(ctx context.Context, descriptor *pkpass.Pass) ([]byte, string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	files := make([]string, 0, len(TemplateFiles))
	for _, name := range TemplateFiles {
		files = append(files, filepath.Join(g.material.TemplateDir, name))
	}

	req := pkpass.SignRequest{
		SigningKeyPath:     g.material.SigningKeyPath,
		SigningKeyPassword: g.material.SigningKeyPassword,
		TrustChainPath:     g.material.TrustChainPath,
		Pass:               descriptor,
		Files:              files,
	}

	start := time.Now()
	done := make(chan signResult, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- signResult{panic: &SignerPanic{Value: rec, Stack: debug.Stack()}}
			}
		}()
		archive, err := g.signer.CreateSignedArchive(ctx, req)
		done <- signResult{archive: archive, err: err}
	}()

	select {
	case res := <-done:
		if res.panic != nil {
			g.recordPass(metrics.OutcomeFailed)
			logger.ContextRequestLogger(ctx).Error("Pass signer panicked",
				slog.String("error", res.panic.Error()),
				slog.String("signer_stack", string(res.panic.Stack)),
			)
			panic(res.panic)
		}
		if res.err != nil {
			return nil, metrics.OutcomeFailed, errors.Wrap(res.err, "failed to sign pass")
		}
		if g.metrics != nil {
			g.metrics.RecordSigning(time.Since(start), len(res.archive))
		}
		return res.archive, metrics.OutcomeSuccess, nil
	case <-ctx.Done():
		outcome := metrics.OutcomeFailed
		if ctx.Err() == context.DeadlineExceeded {
			outcome = metrics.OutcomeTimeout
		}
		return nil, outcome, errors.Wrap(ctx.Err(), "pass signing did not complete")
	}
}

func (g *Generator) recordPass(outcome string) {
	if g.metrics != nil {
		g.metrics.RecordPass(outcome)
	}
}
