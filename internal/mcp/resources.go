package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/liftcalc/internal/body"
	"github.com/claude/liftcalc/internal/nutrition"
	"github.com/mark3labs/mcp-go/mcp"
)

func referenceTablesJSON() ([]byte, error) {
	tables := map[string]any{
		"activity_multipliers": body.ActivityMultipliers(),
		"protein_g_per_lb":     body.ProteinCoefficients(),
		"kcal_per_gram": map[string]float64{
			"protein": nutrition.KcalPerGramProtein,
			"carbs":   nutrition.KcalPerGramCarbs,
			"fat":     nutrition.KcalPerGramFat,
			"alcohol": nutrition.KcalPerGramAlcohol,
		},
	}
	return json.Marshal(tables)
}

func (h *handlers) referenceTables(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := referenceTablesJSON()
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
