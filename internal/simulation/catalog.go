package simulation

import (
	"strings"

	"github.com/Estagiarius/simulajuls/internal/simulation/acidbase"
)

// placeholderImage is the image shown for experiments without artwork.
const placeholderImage = "images/placeholder.png"

// Experiment is one entry of the public experiment catalog.
//
// Simulation is set when a registered module backs the experiment and holds
// the path that starts it.
type Experiment struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	Simulation  string `json:"simulation,omitempty"`
}

// Catalog is an ordered experiment listing.
type Catalog []Experiment

var experiments = Catalog{
	{ID: 1, Name: "Reação Ácido-Base", Category: "Química", Description: "Observe a neutralização de um ácido por uma base.", ImageURL: placeholderImage},
	{ID: 2, Name: "Eletrólise da Água", Category: "Química", Description: "Decomponha a água em oxigênio e hidrogênio.", ImageURL: placeholderImage},
	{ID: 3, Name: "Titulação", Category: "Química", Description: "Determine a concentração de uma solução.", ImageURL: placeholderImage},
	{ID: 4, Name: "Lançamento Oblíquo", Category: "Física", Description: "Analise a trajetória de um projétil.", ImageURL: placeholderImage},
	{ID: 5, Name: "Plano Inclinado", Category: "Física", Description: "Estude as forças em um corpo em um plano inclinado.", ImageURL: placeholderImage},
	{ID: 6, Name: "Queda Livre", Category: "Física", Description: "Observe o movimento de um corpo sob a ação da gravidade.", ImageURL: placeholderImage},
	{ID: 7, Name: "Fotossíntese", Category: "Biologia", Description: "Veja como as plantas produzem energia.", ImageURL: placeholderImage},
	{ID: 8, Name: "Ciclo Celular", Category: "Biologia", Description: "Explore as fases da divisão celular.", ImageURL: placeholderImage},
	{ID: 9, Name: "Genética Mendeliana", Category: "Biologia", Description: "Entenda as leis da hereditariedade.", ImageURL: placeholderImage},
}

// backing maps catalog names whose display name differs from the module's.
var backing = map[string]Key{
	"Titulação": {Domain: acidbase.TitrationModule{}.Domain(), Experiment: acidbase.TitrationModule{}.Name()},
}

// Catalog returns the experiment listing, linking entries to the modules of r.
func (r *Registry) Catalog() Catalog {
	byName := make(map[string]Key)
	for _, m := range r.Modules() {
		byName[m.DisplayName()] = keyOf(m)
	}

	out := make(Catalog, len(experiments))
	copy(out, experiments)
	for i, exp := range out {
		key, ok := backing[exp.Name]
		if ok {
			_, ok = r.Lookup(key.Domain, key.Experiment)
		} else {
			key, ok = byName[exp.Name]
		}
		if ok {
			out[i].Simulation = SimulationPath(key)
		}
	}
	return out
}

// Filter returns the experiments in category, matched case-insensitively.
// An empty category returns c unchanged.
func (c Catalog) Filter(category string) Catalog {
	category = strings.TrimSpace(category)
	if category == "" {
		return c
	}
	out := Catalog{}
	for _, exp := range c {
		if strings.EqualFold(exp.Category, category) {
			out = append(out, exp)
		}
	}
	return out
}
