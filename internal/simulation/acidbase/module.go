package acidbase

import "context"

// Module exposes Calculate to the simulation registry.
type Module struct{}

func (Module) Name() string        { return "acid-base" }
func (Module) DisplayName() string { return "Reação Ácido-Base" }
func (Module) Category() string    { return "Química" }
func (Module) Domain() string      { return "chemistry" }

func (Module) Description() string {
	return "Simula a reação entre um ácido e uma base, calculando o pH final e a cor do indicador."
}

// Run parses params and computes the mixture.
func (Module) Run(_ context.Context, params map[string]any) (any, error) {
	p, err := ParseParams(params)
	if err != nil {
		return nil, err
	}
	result, err := Calculate(p)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TitrationModule exposes Curve to the simulation registry.
type TitrationModule struct{}

func (TitrationModule) Name() string        { return "acid-base-titration" }
func (TitrationModule) DisplayName() string { return "Curva de Titulação Ácido-Base" }
func (TitrationModule) Category() string    { return "Química" }
func (TitrationModule) Domain() string      { return "chemistry" }

func (TitrationModule) Description() string {
	return "Simula uma curva de titulação ácido-base, mostrando a variação do pH com a adição de um titulante."
}

// Run parses params and computes the curve.
func (TitrationModule) Run(_ context.Context, params map[string]any) (any, error) {
	p, err := ParseCurveParams(params)
	if err != nil {
		return nil, err
	}
	result, err := Curve(p)
	if err != nil {
		return nil, err
	}
	return result, nil
}
