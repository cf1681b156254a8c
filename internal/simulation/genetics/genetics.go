// Package genetics resolves single-locus Mendelian crosses.
//
// A cross takes two parent genotypes over one dominant and one recessive
// allele, enumerates the 2x2 Punnett square and aggregates offspring into
// genotype and phenotype frequencies. Results are fully deterministic: the
// same parameters always yield the same square, the same entry order and the
// same fractions.
package genetics

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Estagiarius/simulajuls/internal/core/numeric"
	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
)

// Offspring is the number of cells in a mono-hybrid Punnett square.
const Offspring = 4

// Defaults applied when the request omits a field.
const (
	DefaultDominantAllele     = "A"
	DefaultRecessiveAllele    = "a"
	DefaultDominantPhenotype  = "Fenótipo Dominante"
	DefaultRecessivePhenotype = "Fenótipo Recessivo"
)

const (
	parent1GenotypeField      = "parent1_genotype"
	parent2GenotypeField      = "parent2_genotype"
	dominantAlleleField       = "dominant_allele"
	recessiveAlleleField      = "recessive_allele"
	dominantDescriptionField  = "dominant_phenotype_description"
	recessiveDescriptionField = "recessive_phenotype_description"
)

// Params describes a cross.
type Params struct {
	Parent1Genotype               string `json:"parent1_genotype"`
	Parent2Genotype               string `json:"parent2_genotype"`
	DominantAllele                string `json:"dominant_allele"`
	RecessiveAllele               string `json:"recessive_allele"`
	DominantPhenotypeDescription  string `json:"dominant_phenotype_description"`
	RecessivePhenotypeDescription string `json:"recessive_phenotype_description"`
}

// PunnettSquare holds cell [i][j] = parent-1 allele i crossed with parent-2
// allele j, canonicalized.
type PunnettSquare [2][2]string

// GenotypeFrequency aggregates identical offspring genotypes.
type GenotypeFrequency struct {
	Genotype        string  `json:"genotype"`
	Count           int     `json:"count"`
	Fraction        string  `json:"fraction"`
	ReducedFraction string  `json:"reduced_fraction"`
	Percentage      float64 `json:"percentage"`
}

// PhenotypeFrequency aggregates the genotypes expressing one phenotype.
type PhenotypeFrequency struct {
	PhenotypeDescription string   `json:"phenotype_description"`
	Count                int      `json:"count"`
	Fraction             string   `json:"fraction"`
	ReducedFraction      string   `json:"reduced_fraction"`
	Percentage           float64  `json:"percentage"`
	AssociatedGenotypes  []string `json:"associated_genotypes"`
}

// Result is the outcome of a cross.
type Result struct {
	Parent1Alleles      [2]string            `json:"parent1_alleles"`
	Parent2Alleles      [2]string            `json:"parent2_alleles"`
	PunnettSquare       PunnettSquare        `json:"punnett_square"`
	OffspringGenotypes  []GenotypeFrequency  `json:"offspring_genotypes"`
	OffspringPhenotypes []PhenotypeFrequency `json:"offspring_phenotypes"`
	ParametersUsed      Params               `json:"parameters_used"`
}

// ParseParams reads a cross from loosely typed request fields. Allele
// symbols and phenotype descriptions fall back to their defaults when absent.
func ParseParams(raw map[string]any) (Params, error) {
	var p Params
	var err error
	if p.DominantAllele, err = numeric.CoerceOptionalString(raw[dominantAlleleField], dominantAlleleField, DefaultDominantAllele); err != nil {
		return Params{}, err
	}
	if p.RecessiveAllele, err = numeric.CoerceOptionalString(raw[recessiveAlleleField], recessiveAlleleField, DefaultRecessiveAllele); err != nil {
		return Params{}, err
	}
	if p.Parent1Genotype, err = numeric.CoerceString(raw[parent1GenotypeField], parent1GenotypeField); err != nil {
		return Params{}, err
	}
	if p.Parent2Genotype, err = numeric.CoerceString(raw[parent2GenotypeField], parent2GenotypeField); err != nil {
		return Params{}, err
	}
	if p.DominantPhenotypeDescription, err = numeric.CoerceOptionalString(raw[dominantDescriptionField], dominantDescriptionField, ""); err != nil {
		return Params{}, err
	}
	if p.RecessivePhenotypeDescription, err = numeric.CoerceOptionalString(raw[recessiveDescriptionField], recessiveDescriptionField, ""); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Normalize fills unset allele symbols, trims them and fills blank phenotype
// descriptions. Genotypes are kept as given; case is significant.
func (p Params) Normalize() Params {
	if p.DominantAllele == "" {
		p.DominantAllele = DefaultDominantAllele
	}
	if p.RecessiveAllele == "" {
		p.RecessiveAllele = DefaultRecessiveAllele
	}
	p.DominantAllele = strings.TrimSpace(p.DominantAllele)
	p.RecessiveAllele = strings.TrimSpace(p.RecessiveAllele)
	if strings.TrimSpace(p.DominantPhenotypeDescription) == "" {
		p.DominantPhenotypeDescription = DefaultDominantPhenotype
	}
	if strings.TrimSpace(p.RecessivePhenotypeDescription) == "" {
		p.RecessivePhenotypeDescription = DefaultRecessivePhenotype
	}
	return p
}

// Validate checks a normalized cross. Allele symbols are checked before the
// genotypes that reference them.
func (p Params) Validate() error {
	if err := validateAllele(p.DominantAllele, dominantAlleleField); err != nil {
		return err
	}
	if err := validateAllele(p.RecessiveAllele, recessiveAlleleField); err != nil {
		return err
	}
	if p.DominantAllele == p.RecessiveAllele {
		return apperrors.InvalidParameter(recessiveAlleleField, apperrors.RuleDistinct, map[string]string{
			apperrors.MetaValue: p.RecessiveAllele,
		})
	}
	if err := validateGenotype(p.Parent1Genotype, p.DominantAllele, p.RecessiveAllele); err != nil {
		return err
	}
	return validateGenotype(p.Parent2Genotype, p.DominantAllele, p.RecessiveAllele)
}

func validateAllele(allele, field string) error {
	if utf8.RuneCountInString(allele) != 1 {
		return apperrors.InvalidParameter(field, apperrors.RuleSingleChar, map[string]string{
			apperrors.MetaValue: allele,
		})
	}
	return nil
}

func validateGenotype(genotype, dominant, recessive string) error {
	if utf8.RuneCountInString(genotype) != 2 {
		return apperrors.WithMetadata(apperrors.CodeInvalidGenotype,
			fmt.Sprintf("genotype %q must have exactly 2 alleles", genotype),
			map[string]string{
				apperrors.MetaRule:     apperrors.RuleLength,
				apperrors.MetaGenotype: genotype,
			})
	}
	for _, r := range genotype {
		if s := string(r); s != dominant && s != recessive {
			return apperrors.WithMetadata(apperrors.CodeInvalidGenotype,
				fmt.Sprintf("genotype %q uses allele %q outside {%s, %s}", genotype, s, dominant, recessive),
				map[string]string{
					apperrors.MetaRule:     apperrors.RuleAlleles,
					apperrors.MetaGenotype: genotype,
					apperrors.MetaAllowed:  dominant + ", " + recessive,
				})
		}
	}
	return nil
}

// Canonical joins two alleles with the dominant one first when present.
func Canonical(a, b, dominant string) string {
	if b == dominant && a != dominant {
		return b + a
	}
	return a + b
}

// Alleles splits a validated genotype into its two allele symbols.
func Alleles(genotype string) [2]string {
	var out [2]string
	i := 0
	for _, r := range genotype {
		if i == 2 {
			break
		}
		out[i] = string(r)
		i++
	}
	return out
}

// Square enumerates the Cartesian product of the parents' alleles.
func Square(parent1, parent2 [2]string, dominant string) PunnettSquare {
	var square PunnettSquare
	for i, a := range parent1 {
		for j, b := range parent2 {
			square[i][j] = Canonical(a, b, dominant)
		}
	}
	return square
}

// Cross validates p and resolves the cross.
func Cross(p Params) (Result, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	parent1 := Alleles(p.Parent1Genotype)
	parent2 := Alleles(p.Parent2Genotype)
	square := Square(parent1, parent2, p.DominantAllele)

	genotypes, err := genotypeFrequencies(square)
	if err != nil {
		return Result{}, err
	}
	phenotypes, err := phenotypeFrequencies(genotypes, p)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Parent1Alleles:      parent1,
		Parent2Alleles:      parent2,
		PunnettSquare:       square,
		OffspringGenotypes:  genotypes,
		OffspringPhenotypes: phenotypes,
		ParametersUsed:      p,
	}, nil
}

// genotypeFrequencies counts canonical genotypes, most frequent first and
// byte order among ties.
func genotypeFrequencies(square PunnettSquare) ([]GenotypeFrequency, error) {
	counts := map[string]int{}
	for _, row := range square {
		for _, cell := range row {
			counts[cell]++
		}
	}

	out := make([]GenotypeFrequency, 0, len(counts))
	for genotype, count := range counts {
		entry, err := frequency(count)
		if err != nil {
			return nil, err
		}
		out = append(out, GenotypeFrequency{
			Genotype:        genotype,
			Count:           count,
			Fraction:        entry.fraction,
			ReducedFraction: entry.reduced,
			Percentage:      entry.percentage,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genotype < out[j].Genotype
	})
	return out, nil
}

// phenotypeFrequencies partitions genotypes into exactly two groups,
// dominant first. A group absent from the cross reports a zero count.
func phenotypeFrequencies(genotypes []GenotypeFrequency, p Params) ([]PhenotypeFrequency, error) {
	groups := [2]PhenotypeFrequency{
		{PhenotypeDescription: p.DominantPhenotypeDescription, AssociatedGenotypes: []string{}},
		{PhenotypeDescription: p.RecessivePhenotypeDescription, AssociatedGenotypes: []string{}},
	}
	for _, g := range genotypes {
		idx := 1
		if strings.Contains(g.Genotype, p.DominantAllele) {
			idx = 0
		}
		groups[idx].Count += g.Count
		groups[idx].AssociatedGenotypes = append(groups[idx].AssociatedGenotypes, g.Genotype)
	}

	out := make([]PhenotypeFrequency, 0, len(groups))
	for _, group := range groups {
		entry, err := frequency(group.Count)
		if err != nil {
			return nil, err
		}
		sort.Strings(group.AssociatedGenotypes)
		group.Fraction = entry.fraction
		group.ReducedFraction = entry.reduced
		group.Percentage = entry.percentage
		out = append(out, group)
	}
	return out, nil
}

type share struct {
	fraction   string
	reduced    string
	percentage float64
}

func frequency(count int) (share, error) {
	fraction, err := numeric.Fraction(count, Offspring)
	if err != nil {
		return share{}, err
	}
	reduced, err := numeric.ReduceFraction(count, Offspring)
	if err != nil {
		return share{}, err
	}
	return share{
		fraction:   fraction,
		reduced:    reduced,
		percentage: numeric.RoundPercentage(float64(count) / Offspring),
	}, nil
}
