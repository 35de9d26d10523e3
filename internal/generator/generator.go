package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/acolita/genpass/internal/entropy"
	"github.com/acolita/genpass/internal/security"
)

var (
	// ErrInfeasibleConstraints means the remaining slots could not be placed.
	// Validate rules this out; seeing it indicates a validation gap.
	ErrInfeasibleConstraints = errors.New("infeasible constraints")

	// ErrNotValidated is returned when Generate receives a zero Validated.
	ErrNotValidated = errors.New("constraints not validated")
)

// Generator produces passwords from validated constraints.
type Generator struct {
	src     *entropy.Source
	workers int
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets how many passwords GenerateN builds concurrently.
// Values below 1 mean sequential generation.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// New creates a Generator drawing from src.
func New(src *entropy.Source, opts ...Option) *Generator {
	g := &Generator{src: src, workers: 1}
	for _, opt := range opts {
		opt(g)
	}
	if g.workers < 1 {
		g.workers = 1
	}
	return g
}

// plan is the per-password allocation: a length and a count per class
// summing to it.
type plan struct {
	length int
	counts [numClasses]int
}

// Generate returns one password satisfying v.
func (g *Generator) Generate(v Validated) (string, error) {
	if !v.ok {
		return "", ErrNotValidated
	}
	c := &v.c

	p, err := g.plan(c)
	if err != nil {
		return "", err
	}

	alphabets := resolveAlphabets(c)
	buf := security.NewRunes(p.length)
	defer buf.Wipe()

	for _, cl := range allClasses {
		n := p.counts[cl]
		if n == 0 {
			continue
		}
		alpha := alphabets[cl]
		if len(alpha) == 0 {
			return "", constraintErr(ErrEmptyAlphabet, "%s", emptyAlphabetDetail(c, cl))
		}
		for range n {
			r, err := entropy.Pick(g.src, alpha)
			if err != nil {
				return "", fmt.Errorf("pick %s character: %w", cl, err)
			}
			buf.Append(r)
		}
	}

	if err := entropy.ShuffleSlice(g.src, buf.Data()); err != nil {
		return "", fmt.Errorf("shuffle password: %w", err)
	}

	slog.Debug("password generated",
		slog.Int("length", p.length),
		slog.Int("numeric", p.counts[Numeric]),
		slog.Int("lower", p.counts[Lower]),
		slog.Int("upper", p.counts[Upper]),
		slog.Int("symbol", p.counts[Symbol]),
	)

	return buf.String(), nil
}

// plan picks a length and distributes it over the classes: every class gets
// its minimum, then the remaining slots go one at a time to a class chosen
// uniformly among those still below their maximum.
func (g *Generator) plan(c *Constraints) (plan, error) {
	var p plan

	length, err := g.src.UniformRange(c.MinLength, c.MaxLength)
	if err != nil {
		return p, fmt.Errorf("choose length: %w", err)
	}
	p.length = length

	remaining := length
	for _, cl := range allClasses {
		p.counts[cl] = c.Bounds(cl).MinOrZero()
		remaining -= p.counts[cl]
	}
	if remaining < 0 {
		return p, fmt.Errorf("%w: minimums need %d characters, length is %d",
			ErrInfeasibleConstraints, length-remaining, length)
	}

	var capacity [numClasses]int
	for _, cl := range allClasses {
		if limit := c.Bounds(cl).Max; limit != nil {
			capacity[cl] = *limit - p.counts[cl]
		} else {
			capacity[cl] = remaining
		}
	}

	eligible := make([]Class, 0, numClasses)
	for remaining > 0 {
		eligible = eligible[:0]
		for _, cl := range allClasses {
			if capacity[cl] > 0 {
				eligible = append(eligible, cl)
			}
		}
		if len(eligible) == 0 {
			return p, fmt.Errorf("%w: %d characters left but every class is at its maximum",
				ErrInfeasibleConstraints, remaining)
		}

		cl, err := entropy.Pick(g.src, eligible)
		if err != nil {
			return p, fmt.Errorf("distribute characters: %w", err)
		}
		p.counts[cl]++
		capacity[cl]--
		remaining--
	}

	return p, nil
}

// GenerateN returns n independent passwords satisfying v. With more than one
// worker the passwords are generated concurrently; each generation runs its
// own entropy call sequence. ctx only stops scheduling further passwords.
func (g *Generator) GenerateN(ctx context.Context, v Validated, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid password count %d", n)
	}
	out := make([]string, n)

	if g.workers == 1 || n < 2 {
		for i := range out {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			pw, err := g.Generate(v)
			if err != nil {
				return nil, err
			}
			out[i] = pw
		}
		return out, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i := range out {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pw, err := g.Generate(v)
			if err != nil {
				return err
			}
			out[i] = pw
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
