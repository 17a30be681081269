package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeModule struct {
	name     string
	priority int
	err      error
	order    *[]string
}

func (m *fakeModule) Name() string  { return m.name }
func (m *fakeModule) Priority() int { return m.priority }

func (m *fakeModule) Init(*ModuleContext) error {
	*m.order = append(*m.order, m.name)
	return m.err
}

func withRegistry(t *testing.T) {
	t.Helper()
	saved := moduleRegistry
	moduleRegistry = make(map[string]Module)
	t.Cleanup(func() { moduleRegistry = saved })
}

func TestInitModulesOrder(t *testing.T) {
	withRegistry(t)

	var order []string
	Register(&fakeModule{name: "discussion", priority: 10, order: &order})
	Register(&fakeModule{name: "user", priority: 1, order: &order})
	Register(&fakeModule{name: "admin", priority: 10, order: &order})

	assert.NoError(t, InitModules(&ModuleContext{}))
	assert.Equal(t, []string{"user", "admin", "discussion"}, order)
}

func TestInitModulesStopsOnError(t *testing.T) {
	withRegistry(t)

	var order []string
	Register(&fakeModule{name: "first", priority: 1, err: errors.New("boom"), order: &order})
	Register(&fakeModule{name: "second", priority: 2, order: &order})

	err := InitModules(&ModuleContext{})
	assert.EqualError(t, err, "init module first: boom")
	assert.Equal(t, []string{"first"}, order)
}
