package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Estagiarius/simulajuls/internal/services/simulation/runner"
	"github.com/Estagiarius/simulajuls/internal/simulation"
	"github.com/Estagiarius/simulajuls/internal/simulation/acidbase"
	"github.com/Estagiarius/simulajuls/internal/simulation/genetics"
	"github.com/Estagiarius/simulajuls/internal/simulation/projectile"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// localeField is stripped from tool inputs before they become parameters.
const localeField = "locale"

// MendelianCrossInput represents the MCP tool input for a monohybrid cross.
type MendelianCrossInput struct {
	Parent1Genotype               string  `json:"parent1_genotype" jsonschema:"genotype of the first parent, such as Aa"`
	Parent2Genotype               string  `json:"parent2_genotype" jsonschema:"genotype of the second parent, such as aa"`
	DominantAllele                *string `json:"dominant_allele,omitempty" jsonschema:"dominant allele symbol, defaults to A"`
	RecessiveAllele               *string `json:"recessive_allele,omitempty" jsonschema:"recessive allele symbol, defaults to a"`
	DominantPhenotypeDescription  *string `json:"dominant_phenotype_description,omitempty" jsonschema:"label for the dominant phenotype"`
	RecessivePhenotypeDescription *string `json:"recessive_phenotype_description,omitempty" jsonschema:"label for the recessive phenotype"`
	Locale                        string  `json:"locale,omitempty" jsonschema:"locale for error messages, pt-BR or en-US"`
}

// AcidBaseReactionInput represents the MCP tool input for mixing an acid and a base.
type AcidBaseReactionInput struct {
	AcidConcentration float64 `json:"acid_concentration" jsonschema:"acid concentration in mol/L"`
	AcidVolume        float64 `json:"acid_volume" jsonschema:"acid volume in mL"`
	BaseConcentration float64 `json:"base_concentration" jsonschema:"base concentration in mol/L"`
	BaseVolume        float64 `json:"base_volume" jsonschema:"base volume in mL"`
	IndicatorName     *string `json:"indicator_name,omitempty" jsonschema:"pH indicator such as Fenolftaleína or Azul de Bromotimol"`
	AcidName          *string `json:"acid_name,omitempty" jsonschema:"acid label echoed in the result"`
	BaseName          *string `json:"base_name,omitempty" jsonschema:"base label echoed in the result"`
	Locale            string  `json:"locale,omitempty" jsonschema:"locale for error messages, pt-BR or en-US"`
}

// AcidBaseTitrationInput represents the MCP tool input for a titration curve.
type AcidBaseTitrationInput struct {
	TitrantIsAcid          *bool    `json:"titrant_is_acid,omitempty" jsonschema:"true when an acid titrates a base; defaults to false"`
	AcidConcentration      *float64 `json:"acid_concentration,omitempty" jsonschema:"acid concentration in mol/L, required when the acid is the analyte"`
	AcidVolume             *float64 `json:"acid_volume,omitempty" jsonschema:"acid volume in mL, required when the acid is the analyte"`
	BaseConcentration      *float64 `json:"base_concentration,omitempty" jsonschema:"base concentration in mol/L, required when the base is the analyte"`
	BaseVolume             *float64 `json:"base_volume,omitempty" jsonschema:"base volume in mL, required when the base is the analyte"`
	TitrantConcentration   float64  `json:"titrant_concentration" jsonschema:"titrant concentration in mol/L"`
	InitialTitrantVolumeML *float64 `json:"initial_titrant_volume_ml,omitempty" jsonschema:"first titrant volume in mL, defaults to 0"`
	FinalTitrantVolumeML   float64  `json:"final_titrant_volume_ml" jsonschema:"last titrant volume in mL"`
	VolumeIncrementML      float64  `json:"volume_increment_ml" jsonschema:"titrant added between points in mL"`
	AcidName               *string  `json:"acid_name,omitempty" jsonschema:"acid label echoed in the result"`
	BaseName               *string  `json:"base_name,omitempty" jsonschema:"base label echoed in the result"`
	TitrantName            *string  `json:"titrant_name,omitempty" jsonschema:"titrant label echoed in the result"`
	Locale                 string   `json:"locale,omitempty" jsonschema:"locale for error messages, pt-BR or en-US"`
}

// OutputUnitsInput selects the units of a projectile result.
type OutputUnitsInput struct {
	VelocityUnit *string `json:"velocity_unit,omitempty" jsonschema:"m/s, km/h or ft/s"`
	TimeUnit     *string `json:"time_unit,omitempty" jsonschema:"s, min or h"`
	RangeUnit    *string `json:"range_unit,omitempty" jsonschema:"m, km or ft"`
	HeightUnit   *string `json:"height_unit,omitempty" jsonschema:"m, km or ft"`
}

// ProjectileLaunchInput represents the MCP tool input for an oblique launch.
type ProjectileLaunchInput struct {
	InitialVelocity     float64           `json:"initial_velocity" jsonschema:"launch speed"`
	InitialVelocityUnit *string           `json:"initial_velocity_unit,omitempty" jsonschema:"unit of initial_velocity: m/s, km/h or ft/s"`
	LaunchAngle         float64           `json:"launch_angle" jsonschema:"launch angle in degrees, 0 to 90"`
	InitialHeight       *float64          `json:"initial_height,omitempty" jsonschema:"launch height, defaults to 0"`
	InitialHeightUnit   *string           `json:"initial_height_unit,omitempty" jsonschema:"unit of initial_height: m, km or ft"`
	Gravity             *float64          `json:"gravity,omitempty" jsonschema:"gravitational acceleration in m/s², defaults to 9.81"`
	Resolution          *int              `json:"resolution,omitempty" jsonschema:"number of trajectory intervals, 1 to 2000"`
	OutputUnits         *OutputUnitsInput `json:"output_units,omitempty" jsonschema:"units of the reported results"`
	Locale              string            `json:"locale,omitempty" jsonschema:"locale for error messages, pt-BR or en-US"`
}

// ListExperimentsInput represents the MCP tool input for the catalog.
type ListExperimentsInput struct {
	Category string `json:"category,omitempty" jsonschema:"category filter such as Química, Física or Biologia"`
}

type localized interface {
	requestLocale() string
}

func (in MendelianCrossInput) requestLocale() string    { return in.Locale }
func (in AcidBaseReactionInput) requestLocale() string  { return in.Locale }
func (in AcidBaseTitrationInput) requestLocale() string { return in.Locale }
func (in ProjectileLaunchInput) requestLocale() string  { return in.Locale }

// MendelianCrossTool defines the MCP tool schema for a monohybrid cross.
func MendelianCrossTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "mendelian_cross",
		Description: "Crosses two parents for one gene and reports the Punnett square with genotype and phenotype ratios",
	}
}

// AcidBaseReactionTool defines the MCP tool schema for a neutralization.
func AcidBaseReactionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "acid_base_reaction",
		Description: "Mixes a strong acid with a strong base and reports the final pH, pOH and indicator color",
	}
}

// AcidBaseTitrationTool defines the MCP tool schema for a titration curve.
func AcidBaseTitrationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "acid_base_titration",
		Description: "Computes the pH curve of a strong acid and strong base titration",
	}
}

// ProjectileLaunchTool defines the MCP tool schema for an oblique launch.
func ProjectileLaunchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "projectile_launch",
		Description: "Solves an oblique launch without air resistance and samples its trajectory",
	}
}

// ListExperimentsTool defines the MCP tool schema for the experiment catalog.
func ListExperimentsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_experiments",
		Description: "Lists the experiment catalog and the simulations that can be run",
	}
}

// MendelianCrossHandler runs a cross through sim.
func MendelianCrossHandler(sim runner.Simulator, defaultLocale string) mcp.ToolHandlerFor[MendelianCrossInput, genetics.Result] {
	return experimentHandler[MendelianCrossInput, genetics.Result](sim, keyFor(genetics.Module{}), defaultLocale)
}

// AcidBaseReactionHandler runs a neutralization through sim.
func AcidBaseReactionHandler(sim runner.Simulator, defaultLocale string) mcp.ToolHandlerFor[AcidBaseReactionInput, acidbase.Result] {
	return experimentHandler[AcidBaseReactionInput, acidbase.Result](sim, keyFor(acidbase.Module{}), defaultLocale)
}

// AcidBaseTitrationHandler runs a titration through sim.
func AcidBaseTitrationHandler(sim runner.Simulator, defaultLocale string) mcp.ToolHandlerFor[AcidBaseTitrationInput, acidbase.CurveResult] {
	return experimentHandler[AcidBaseTitrationInput, acidbase.CurveResult](sim, keyFor(acidbase.TitrationModule{}), defaultLocale)
}

// ProjectileLaunchHandler runs a launch through sim.
func ProjectileLaunchHandler(sim runner.Simulator, defaultLocale string) mcp.ToolHandlerFor[ProjectileLaunchInput, projectile.Result] {
	return experimentHandler[ProjectileLaunchInput, projectile.Result](sim, keyFor(projectile.Module{}), defaultLocale)
}

// ListExperimentsHandler returns the catalog from sim.
func ListExperimentsHandler(sim runner.Simulator) mcp.ToolHandlerFor[ListExperimentsInput, runner.Listing] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListExperimentsInput) (*mcp.CallToolResult, runner.Listing, error) {
		listing, err := sim.ListExperiments(ctx, strings.TrimSpace(input.Category))
		if err != nil {
			return nil, runner.Listing{}, fmt.Errorf("list experiments: %w", err)
		}
		return nil, listing, nil
	}
}

func keyFor(m simulation.Module) simulation.Key {
	return simulation.Key{Domain: m.Domain(), Experiment: m.Name()}
}

// experimentHandler runs key with the tool input as parameters. Results from
// a remote simulator arrive as JSON objects and are decoded into Out.
func experimentHandler[In localized, Out any](sim runner.Simulator, key simulation.Key, defaultLocale string) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input In) (*mcp.CallToolResult, Out, error) {
		var out Out
		locale := strings.TrimSpace(input.requestLocale())
		if locale == "" {
			locale = defaultLocale
		}

		params, err := paramsOf(input)
		if err != nil {
			return nil, out, fmt.Errorf("encode %s parameters: %w", key, err)
		}
		result, err := sim.Run(ctx, key.Domain, key.Experiment, params, locale)
		if err != nil {
			return nil, out, toolError(err, locale)
		}
		if typed, ok := result.(Out); ok {
			return nil, typed, nil
		}
		if err := runner.Decode(result, &out); err != nil {
			return nil, out, fmt.Errorf("decode %s result: %w", key, err)
		}
		return nil, out, nil
	}
}

// paramsOf converts a tool input into simulation parameters.
func paramsOf(input any) (map[string]any, error) {
	params := map[string]any{}
	if err := runner.Decode(input, &params); err != nil {
		return nil, err
	}
	delete(params, localeField)
	return params, nil
}
