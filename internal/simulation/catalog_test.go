package simulation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalogLinksModules(t *testing.T) {
	catalog := Default().Catalog()
	if len(catalog) != 9 {
		t.Fatalf("experiments = %d, want 9", len(catalog))
	}

	got := map[string]string{}
	for _, exp := range catalog {
		if exp.Simulation != "" {
			got[exp.Name] = exp.Simulation
		}
	}
	want := map[string]string{
		"Reação Ácido-Base":   "/api/simulation/chemistry/acid-base/start",
		"Titulação":           "/api/simulation/chemistry/acid-base-titration/start",
		"Lançamento Oblíquo":  "/api/simulation/physics/projectile-launch/start",
		"Genética Mendeliana": "/api/simulation/biology/mendelian-genetics/start",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("simulation links mismatch (-want +got):\n%s", diff)
	}

	if experiments[0].Simulation != "" {
		t.Fatal("Catalog mutated the shared listing")
	}
}

func TestCatalogWithoutModules(t *testing.T) {
	for _, exp := range NewRegistry().Catalog() {
		if exp.Simulation != "" {
			t.Fatalf("%s links %q without a registered module", exp.Name, exp.Simulation)
		}
	}
}

func TestCatalogFilter(t *testing.T) {
	catalog := Default().Catalog()

	var ids []int
	for _, exp := range catalog.Filter("física") {
		ids = append(ids, exp.ID)
	}
	if diff := cmp.Diff([]int{4, 5, 6}, ids); diff != "" {
		t.Fatalf("filtered ids mismatch (-want +got):\n%s", diff)
	}

	if got := catalog.Filter(""); len(got) != len(catalog) {
		t.Fatalf("empty filter returned %d entries", len(got))
	}
	if got := catalog.Filter("Astronomia"); got == nil || len(got) != 0 {
		t.Fatalf("unknown category = %v, want empty non-nil", got)
	}
}
