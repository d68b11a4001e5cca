package provider

import (
	"context"
	"errors"

	"github.com/aquasecurity/polaris-lens/pkg/refresh"
)

// ErrNoProvider is returned when audit data is requested from a context
// that no Provider has been attached to.
var ErrNoProvider = errors.New("polaris data must be accessed within a Provider")

// Consumer is the read side of a Provider.
type Consumer interface {
	State() refresh.State
	Refresh()
	Subscribe(fn func(refresh.State)) func()
}

type consumerKey struct{}

// NewContext returns a copy of ctx carrying consumer.
func NewContext(ctx context.Context, consumer Consumer) context.Context {
	return context.WithValue(ctx, consumerKey{}, consumer)
}

// FromContext returns the Consumer attached to ctx by the nearest
// NewContext call.
func FromContext(ctx context.Context) (Consumer, error) {
	consumer, ok := ctx.Value(consumerKey{}).(Consumer)
	if !ok || consumer == nil {
		return nil, ErrNoProvider
	}
	return consumer, nil
}

// MustFromContext is like FromContext but panics if there is no Consumer.
func MustFromContext(ctx context.Context) Consumer {
	consumer, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return consumer
}
