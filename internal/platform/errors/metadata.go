package errors

import "fmt"

// Metadata keys shared by error templates.
const (
	MetaRule       = "Rule"
	MetaField      = "Field"
	MetaValue      = "Value"
	MetaMin        = "Min"
	MetaMax        = "Max"
	MetaAllowed    = "Allowed"
	MetaGenotype   = "Genotype"
	MetaExperiment = "Experiment"
	MetaDetail     = "Detail"
)

// Rules select a more specific message template for a code.
const (
	RuleMissing     = "missing"
	RuleNotNumber   = "not_number"
	RuleNotFinite   = "not_finite"
	RuleMin         = "min"
	RuleRange       = "range"
	RulePositive    = "positive"
	RuleInteger     = "integer"
	RuleUnit        = "unit"
	RuleText        = "text"
	RuleSingleChar  = "single_char"
	RuleDistinct    = "distinct"
	RuleLength      = "length"
	RuleAlleles     = "alleles"
	RuleTotalVolume = "total_volume"
	RuleBody        = "body"
	RuleMaxPoints   = "max_points"
	RuleBoolean     = "boolean"
	RuleObject      = "object"
	RuleOverflow    = "overflow"
)

// InvalidParameter builds an INVALID_PARAMETER error for field violating rule.
// extra is merged into the metadata and may be nil.
func InvalidParameter(field, rule string, extra map[string]string) *Error {
	metadata := map[string]string{
		MetaField: field,
		MetaRule:  rule,
	}
	for key, value := range extra {
		metadata[key] = value
	}
	return WithMetadata(CodeInvalidParameter, fmt.Sprintf("invalid parameter %q: %s", field, rule), metadata)
}

// Rule returns the rule recorded on a domain error, if any.
func Rule(err error) string {
	if e, ok := As(err); ok {
		return e.Rule()
	}
	return ""
}

// Field returns the request field named by a domain error, if any.
func Field(err error) string {
	if e, ok := As(err); ok {
		return e.Field()
	}
	return ""
}
