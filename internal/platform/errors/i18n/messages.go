package i18n

// ptBRCatalog is the base catalog.
var ptBRCatalog = NewCatalog("pt-BR", map[Code]string{
	"INTERNAL": "Ocorreu um erro inesperado.",

	"INVALID_PARAMETER":             "Parâmetro inválido: {{.Field}}.",
	"INVALID_PARAMETER.missing":     "O parâmetro '{{.Field}}' é obrigatório.",
	"INVALID_PARAMETER.not_number":  "O parâmetro '{{.Field}}' deve ser numérico (recebido: {{.Value}}).",
	"INVALID_PARAMETER.not_finite":  "O parâmetro '{{.Field}}' deve ser um número finito.",
	"INVALID_PARAMETER.min":         "O parâmetro '{{.Field}}' deve ser maior ou igual a {{.Min}} (recebido: {{.Value}}).",
	"INVALID_PARAMETER.range":       "O parâmetro '{{.Field}}' deve estar entre {{.Min}} e {{.Max}} (recebido: {{.Value}}).",
	"INVALID_PARAMETER.positive":    "O parâmetro '{{.Field}}' deve ser maior que zero (recebido: {{.Value}}).",
	"INVALID_PARAMETER.integer":     "O parâmetro '{{.Field}}' deve ser um número inteiro (recebido: {{.Value}}).",
	"INVALID_PARAMETER.unit":        "Unidade '{{.Value}}' não suportada em '{{.Field}}'. Use: {{.Allowed}}.",
	"INVALID_PARAMETER.text":        "O parâmetro '{{.Field}}' deve ser um texto.",
	"INVALID_PARAMETER.single_char": "O parâmetro '{{.Field}}' deve conter exatamente um caractere (recebido: '{{.Value}}').",
	"INVALID_PARAMETER.distinct":    "Os alelos dominante e recessivo devem ser diferentes.",
	"INVALID_PARAMETER.max_points":  "A curva excede o limite de {{.Max}} pontos.",
	"INVALID_PARAMETER.boolean":     "O parâmetro '{{.Field}}' deve ser verdadeiro ou falso (recebido: {{.Value}}).",
	"INVALID_PARAMETER.object":      "O parâmetro '{{.Field}}' deve ser um objeto.",
	"INVALID_PARAMETER.overflow":    "O parâmetro '{{.Field}}' leva a valores grandes demais para calcular.",

	"INVALID_GENOTYPE":         "Genótipo '{{.Genotype}}' inválido.",
	"INVALID_GENOTYPE.length":  "Genótipo '{{.Genotype}}' inválido: deve conter exatamente 2 caracteres.",
	"INVALID_GENOTYPE.alleles": "Genótipo '{{.Genotype}}' inválido: use apenas os alelos {{.Allowed}}.",

	"DIVISION_BY_ZERO":              "Divisão por zero.",
	"DIVISION_BY_ZERO.total_volume": "O volume total da solução não pode ser zero.",

	"UNKNOWN_EXPERIMENT": "Experimento '{{.Experiment}}' não encontrado.",

	"INVALID_REQUEST":      "Requisição inválida.",
	"INVALID_REQUEST.body": "O corpo da requisição deve ser um objeto JSON.",
})

var enUSCatalog = NewCatalog("en-US", map[Code]string{
	"INTERNAL": "An unexpected error occurred.",

	"INVALID_PARAMETER":             "Invalid parameter: {{.Field}}.",
	"INVALID_PARAMETER.missing":     "Parameter '{{.Field}}' is required.",
	"INVALID_PARAMETER.not_number":  "Parameter '{{.Field}}' must be numeric (got: {{.Value}}).",
	"INVALID_PARAMETER.not_finite":  "Parameter '{{.Field}}' must be a finite number.",
	"INVALID_PARAMETER.min":         "Parameter '{{.Field}}' must be at least {{.Min}} (got: {{.Value}}).",
	"INVALID_PARAMETER.range":       "Parameter '{{.Field}}' must be between {{.Min}} and {{.Max}} (got: {{.Value}}).",
	"INVALID_PARAMETER.positive":    "Parameter '{{.Field}}' must be greater than zero (got: {{.Value}}).",
	"INVALID_PARAMETER.integer":     "Parameter '{{.Field}}' must be an integer (got: {{.Value}}).",
	"INVALID_PARAMETER.unit":        "Unsupported unit '{{.Value}}' for '{{.Field}}'. Use: {{.Allowed}}.",
	"INVALID_PARAMETER.text":        "Parameter '{{.Field}}' must be text.",
	"INVALID_PARAMETER.single_char": "Parameter '{{.Field}}' must be exactly one character (got: '{{.Value}}').",
	"INVALID_PARAMETER.distinct":    "Dominant and recessive alleles must differ.",
	"INVALID_PARAMETER.max_points":  "The curve exceeds the limit of {{.Max}} points.",
	"INVALID_PARAMETER.boolean":     "Parameter '{{.Field}}' must be true or false (got: {{.Value}}).",
	"INVALID_PARAMETER.object":      "Parameter '{{.Field}}' must be an object.",
	"INVALID_PARAMETER.overflow":    "Parameter '{{.Field}}' leads to values too large to compute.",

	"INVALID_GENOTYPE":         "Invalid genotype '{{.Genotype}}'.",
	"INVALID_GENOTYPE.length":  "Invalid genotype '{{.Genotype}}': must be exactly 2 characters.",
	"INVALID_GENOTYPE.alleles": "Invalid genotype '{{.Genotype}}': use only alleles {{.Allowed}}.",

	"DIVISION_BY_ZERO":              "Division by zero.",
	"DIVISION_BY_ZERO.total_volume": "Total solution volume cannot be zero.",

	"UNKNOWN_EXPERIMENT": "Experiment '{{.Experiment}}' not found.",

	"INVALID_REQUEST":      "Invalid request.",
	"INVALID_REQUEST.body": "Request body must be a JSON object.",
})
