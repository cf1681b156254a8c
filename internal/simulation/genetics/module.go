package genetics

import "context"

// Module exposes the resolver to the simulation registry.
type Module struct{}

func (Module) Name() string        { return "mendelian-genetics" }
func (Module) DisplayName() string { return "Genética Mendeliana" }
func (Module) Category() string    { return "Biologia" }
func (Module) Domain() string      { return "biology" }

func (Module) Description() string {
	return "Simula cruzamentos genéticos Mendelianos e calcula proporções genotípicas e fenotípicas."
}

// Run parses params and resolves the cross.
func (Module) Run(_ context.Context, params map[string]any) (any, error) {
	p, err := ParseParams(params)
	if err != nil {
		return nil, err
	}
	result, err := Cross(p)
	if err != nil {
		return nil, err
	}
	return result, nil
}
