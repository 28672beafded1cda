package di_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/pairquote/internal/di"
)

type greeter struct{ name string }

var (
	nameTok    = di.NewToken[string]("test:name")
	greeterTok = di.NewToken[*greeter]("test.Greeter")
)

func TestContainer_RegisterAndGet(t *testing.T) {
	c := di.NewContainer()
	c.Register("config", 42)

	assert.Equal(t, 42, c.Get("config"))

	_, ok := c.Lookup("missing")
	assert.False(t, ok)
	assert.Panics(t, func() { c.Get("missing") })
}

func TestRegisterToken_LazySingleton(t *testing.T) {
	c := di.NewContainer()
	calls := 0

	di.RegisterToken(c, nameTok, func(di.ServiceRegistry) string { return "pairquote" })
	di.RegisterToken(c, greeterTok, func(sr di.ServiceRegistry) *greeter {
		calls++
		return &greeter{name: di.GetToken(sr, nameTok)}
	})
	assert.Zero(t, calls, "factories must not run at registration")

	first := di.GetToken(c, greeterTok)
	second := di.GetToken(c, greeterTok)

	require.Equal(t, 1, calls)
	assert.Same(t, first, second)
	assert.Equal(t, "pairquote", first.name)
	assert.Equal(t, []string{"test:name", "test.Greeter"}, c.Names())
}

func TestGetToken_WrongType(t *testing.T) {
	c := di.NewContainer()
	c.Register(nameTok.Name(), 7)

	assert.Panics(t, func() { di.GetToken(c, nameTok) })
}

func TestContainer_Cycle(t *testing.T) {
	c := di.NewContainer()
	c.RegisterFactory("a", func(sr di.ServiceRegistry) any { return sr.Get("b") })
	c.RegisterFactory("b", func(sr di.ServiceRegistry) any { return sr.Get("a") })

	assert.Panics(t, func() { c.Get("a") })
}
