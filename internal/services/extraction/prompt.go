package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ternarybob/brfanalys/internal/models"
)

const systemPrompt = `Du är en expert på att analysera svenska bostadsrättsföreningars årsredovisningar.

Din uppgift är att extrahera följande information från årsredovisningen:

EKONOMISKA NYCKELTAL:
- Föreningens namn
- Räkenskapsår
- Totala skulder (lån)
- Total bostadsarea (kvm)
- Beräkna lån per kvm
- Årsavgifter totalt
- Beräkna avgift per kvm/år
- Avsättning till underhållsfond per år
- Beräkna sparande per kvm/år
- Soliditet (eget kapital / totala tillgångar)
- Resultat efter finansiella poster
- Räntekostnader

TEKNISKT UNDERHÅLL (leta efter information om):
- Tak (senaste renovering, planerad åtgärd)
- Fasad (typ, senaste renovering)
- Stammar/rör (senaste stambyte eller planerat)
- Fönster (typ, ålder)
- Hissar (senaste renovering)
- Ventilation (typ, senaste åtgärd)
- El-system
- Värmesystem
- Grund/dränering
- Tvättstuga och garage
- Övriga planerade underhållsåtgärder

AVGIFTEN INKLUDERAR:
- Vilka tjänster som ingår i månadsavgiften (värme, vatten, el, bredband, parkering, försäkring, sophantering)
- Uppskattad månadskostnad per tjänst om det går att bedöma

BYGGNADSINFORMATION:
- Byggnadsår
- Antal lägenheter
- Adress

BEDÖMNING:
- Ge varje tekniskt område status good, warning eller critical
- Ge en samlad bedömning: excellent, good, normal, strained eller critical, med en kort motivering

Var noggrann och extrahera bara information som faktiskt finns i dokumentet. Utelämna fält som saknas i stället för att gissa.`

const userInstruction = "Analysera denna årsredovisning och extrahera all relevant information för BRF-analys."

func enumStrings[T ~string](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func numberField(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func stringField(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

// analysisSchema describes models.AnalysisResult as a JSON schema. Gemini
// receives it as a response schema; Claude receives it in the prompt.
func analysisSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"association": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name":       stringField("Föreningens namn"),
					"address":    stringField("Adress"),
					"buildYear":  map[string]interface{}{"type": "integer", "description": "Byggnadsår"},
					"apartments": map[string]interface{}{"type": "integer", "description": "Antal lägenheter"},
					"totalArea":  numberField("Total bostadsarea i kvm"),
					"fiscalYear": stringField("Räkenskapsår"),
				},
				"required": []interface{}{"name"},
			},
			"financial": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"totalLoans":         numberField("Totala lån i kr"),
					"loanPerSqm":         numberField("Lån per kvm"),
					"totalFees":          numberField("Totala årsavgifter"),
					"feePerSqmYear":      numberField("Avgift per kvm/år"),
					"maintenanceSavings": numberField("Avsättning underhållsfond per år"),
					"savingsPerSqmYear":  numberField("Sparande per kvm/år"),
					"solidarity":         numberField("Soliditet i procent"),
					"result":             numberField("Resultat efter finansiella poster"),
					"interestCosts":      numberField("Räntekostnader"),
					"equity":             numberField("Eget kapital"),
					"totalAssets":        numberField("Totala tillgångar"),
				},
			},
			"technical": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"category": map[string]interface{}{
							"type": "string",
							"enum": enumStrings(models.AllTechnicalCategories()),
						},
						"name":           stringField("Beskrivande namn"),
						"lastMaintained": map[string]interface{}{"type": "integer", "description": "År för senaste underhåll/renovering"},
						"plannedYear":    map[string]interface{}{"type": "integer", "description": "Planerat år för nästa åtgärd"},
						"materialType":   stringField("Materialtyp om relevant"),
						"notes":          stringField("Övriga noteringar"),
						"status": map[string]interface{}{
							"type": "string",
							"enum": enumStrings(models.AllComponentStatuses()),
						},
					},
					"required": []interface{}{"category", "name"},
				},
			},
			"feeIncludes": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"item": map[string]interface{}{
							"type": "string",
							"enum": enumStrings(models.AllFeeItemTypes()),
						},
						"name":                 stringField("Namn på tjänsten"),
						"estimatedMonthlyCost": numberField("Uppskattad kostnad per månad i kr"),
						"notes":                stringField("Övriga noteringar"),
					},
					"required": []interface{}{"item", "name"},
				},
			},
			"feeAnalysis": stringField("Kort analys av avgiftsnivån"),
			"overallAssessment": map[string]interface{}{
				"type": "string",
				"enum": enumStrings(models.AllAssessments()),
			},
			"assessmentReason": stringField("Motivering till bedömningen"),
			"risks": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Identifierade risker och varningar",
			},
			"positives": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Positiva aspekter",
			},
			"summary": stringField("Kort sammanfattning av föreningens status"),
		},
		"required": []interface{}{"association", "financial", "technical", "summary"},
	}
}

// jsonInstruction is appended to the prompt for providers without native
// structured output.
func jsonInstruction() (string, error) {
	schema, err := json.MarshalIndent(analysisSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis schema: %w", err)
	}
	return "Svara ENDAST med ett JSON-objekt som följer detta schema, utan annan text:\n\n" + string(schema), nil
}

// convertToGenaiSchema converts a map representation of a JSON schema to a
// genai.Schema.
func convertToGenaiSchema(schemaMap map[string]interface{}) (*genai.Schema, error) {
	if len(schemaMap) == 0 {
		return nil, nil
	}

	schema := &genai.Schema{}

	if typeStr, ok := schemaMap["type"].(string); ok {
		switch strings.ToLower(typeStr) {
		case "object":
			schema.Type = genai.TypeObject
		case "array":
			schema.Type = genai.TypeArray
		case "string":
			schema.Type = genai.TypeString
		case "number":
			schema.Type = genai.TypeNumber
		case "integer":
			schema.Type = genai.TypeInteger
		case "boolean":
			schema.Type = genai.TypeBoolean
		default:
			return nil, fmt.Errorf("unsupported schema type %q", typeStr)
		}
	}

	if desc, ok := schemaMap["description"].(string); ok {
		schema.Description = desc
	}

	if enumVals, ok := schemaMap["enum"].([]interface{}); ok {
		for _, v := range enumVals {
			if s, ok := v.(string); ok {
				schema.Enum = append(schema.Enum, s)
			}
		}
	}

	if reqVals, ok := schemaMap["required"].([]interface{}); ok {
		for _, v := range reqVals {
			if s, ok := v.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}

	if itemsMap, ok := schemaMap["items"].(map[string]interface{}); ok {
		itemSchema, err := convertToGenaiSchema(itemsMap)
		if err != nil {
			return nil, fmt.Errorf("failed to convert items schema: %w", err)
		}
		schema.Items = itemSchema
	}

	if propsMap, ok := schemaMap["properties"].(map[string]interface{}); ok {
		schema.Properties = make(map[string]*genai.Schema, len(propsMap))
		for name, raw := range propsMap {
			propMap, ok := raw.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("property %s is not an object", name)
			}
			propSchema, err := convertToGenaiSchema(propMap)
			if err != nil {
				return nil, fmt.Errorf("failed to convert property %s: %w", name, err)
			}
			schema.Properties[name] = propSchema
		}
	}

	return schema, nil
}
