package projectile

import "context"

// Module exposes Simulate to the simulation registry.
type Module struct{}

func (Module) Name() string        { return "projectile-launch" }
func (Module) DisplayName() string { return "Lançamento Oblíquo" }
func (Module) Category() string    { return "Física" }
func (Module) Domain() string      { return "physics" }

func (Module) Description() string {
	return "Analise a trajetória de um projétil em lançamento oblíquo."
}

// Run parses params and solves the launch.
func (Module) Run(_ context.Context, params map[string]any) (any, error) {
	p, err := ParseParams(params)
	if err != nil {
		return nil, err
	}
	result, err := Simulate(p)
	if err != nil {
		return nil, err
	}
	return result, nil
}
