package discovery

import (
	"context"

	"go.uber.org/zap"
)

// BaselineCategories are the two categories every backend ships with. They
// are the manual-fallback seed and the unconditional result when the whole
// chain is exhausted: a run never proceeds with zero categories.
var BaselineCategories = []string{"post", "page"}

// Strategy attempts to produce a raw category listing. ok is false when the
// channel failed or the output is unusable; the chain then moves on to the
// next strategy.
type Strategy interface {
	// Name identifies the strategy in warnings.
	Name() string
	// Discover returns the raw, unvalidated category tokens.
	Discover(ctx context.Context) ([]string, bool)
}

// Chain tries an ordered list of strategies until one yields a non-empty
// validated category list.
type Chain struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewChain creates a discovery chain over the given strategies, attempted in
// order.
func NewChain(l *zap.Logger, strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies, logger: l}
}

// Discover runs the chain and returns the validated category list. A strategy
// counts as failed when it reports failure itself or when validation leaves
// nothing. On exhaustion the baseline categories are returned unconditionally.
func (c *Chain) Discover(ctx context.Context) []string {
	for _, s := range c.strategies {
		raw, ok := s.Discover(ctx)
		if !ok {
			c.logger.Warn("category discovery strategy failed",
				zap.String("stage", "discovery"),
				zap.String("strategy", s.Name()),
			)
			continue
		}

		cats := Validate(raw)
		if len(cats) == 0 {
			c.logger.Warn("category discovery strategy returned no usable categories",
				zap.String("stage", "discovery"),
				zap.String("strategy", s.Name()),
			)
			continue
		}

		c.logger.Info("categories discovered",
			zap.String("strategy", s.Name()),
			zap.Int("count", len(cats)),
		)
		return cats
	}

	c.logger.Warn("category discovery exhausted, using baseline categories",
		zap.String("stage", "discovery"),
		zap.Strings("baseline", BaselineCategories),
	)
	return append([]string{}, BaselineCategories...)
}
