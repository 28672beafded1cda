package di

import "fmt"

// Token names a service of type T.
type Token[T any] struct {
	name string
}

// NewToken creates a token. Names are conventionally "<module>.<Service>" for
// services other modules may use and "<module>:<dep>" for private ones.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

func (t Token[T]) Name() string { return t.name }

// RegisterToken registers a lazily built service under t.
func RegisterToken[T any](c Container, t Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(t.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves t, panicking if it is missing or holds another type.
func GetToken[T any](sr ServiceRegistry, t Token[T]) T {
	s := sr.Get(t.name)
	v, ok := s.(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q is %T, not the token's type", t.name, s))
	}
	return v
}
