package transaction

import (
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// Registry maps order sides to primary strategies and secondary actions to
// secondary strategies. Dispatch is plain map lookup on the enum value.
type Registry struct {
	primary   map[types.OrderSide]PrimaryStrategy
	secondary map[types.SecondaryAction]SecondaryStrategy
}

func NewRegistry() *Registry {
	return &Registry{
		primary:   make(map[types.OrderSide]PrimaryStrategy),
		secondary: make(map[types.SecondaryAction]SecondaryStrategy),
	}
}

// RegisterPrimary binds a strategy to an order side.
func (r *Registry) RegisterPrimary(side types.OrderSide, strategy PrimaryStrategy) {
	r.primary[side] = strategy
}

// RegisterSecondary binds a strategy to a secondary action.
func (r *Registry) RegisterSecondary(action types.SecondaryAction, strategy SecondaryStrategy) {
	r.secondary[action] = strategy
}

// Primary returns the strategy registered for the side.
func (r *Registry) Primary(side types.OrderSide) (PrimaryStrategy, error) {
	strategy, found := r.primary[side]
	if !found {
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy,
			"no strategy registered for side %s", side)
	}

	return strategy, nil
}

// Secondary returns the strategy registered for the action.
func (r *Registry) Secondary(action types.SecondaryAction) (SecondaryStrategy, error) {
	strategy, found := r.secondary[action]
	if !found {
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy,
			"no strategy registered for action %s", action)
	}

	return strategy, nil
}
