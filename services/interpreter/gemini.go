package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tablemate/models"
	"tablemate/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const geminiCallTimeout = 6 * time.Second

// GeminiInterpreter implements Interpreter on top of the Gemini API.
// Prompts request strict JSON; anything that fails to arrive, parse or
// clear the confidence bar falls through to the keyword engine, so turns
// degrade in accuracy but never hang or error out.
type GeminiInterpreter struct {
	model    *genai.GenerativeModel
	fallback *KeywordInterpreter
}

// NewGeminiInterpreter creates a Gemini-backed interpreter.
func NewGeminiInterpreter(apiKey string) (*GeminiInterpreter, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	model.ResponseMIMEType = "application/json"
	return &GeminiInterpreter{
		model:    model,
		fallback: NewKeywordInterpreter(),
	}, nil
}

// generate runs one prompt and returns the concatenated text parts.
func (g *GeminiInterpreter) generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, geminiCallTimeout)
	defer cancel()

	resp, err := g.model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// decodeJSON strips markdown fences and unmarshals into out.
func decodeJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return json.Unmarshal([]byte(strings.TrimSpace(cleaned)), out)
}

func (g *GeminiInterpreter) ClassifyAndExtract(ctx context.Context, text string) (*Classification, error) {
	// the greeting guard never reaches the LLM
	if IsGreeting(text) {
		return &Classification{Intent: IntentGreetingOrOffTopic}, nil
	}

	prompt := fmt.Sprintf(`You classify one message sent to a restaurant concierge.
Reply with JSON only:
{"intent":"greeting_or_offtopic|restaurant_request|slot_answer|refinement|other",
 "extracted":{"area":"","cuisines":[],"budget":{"range":0,"label":""},
  "partySize":0,"mealTime":"","vibe":"","dietary":[],"date":"","time":"","notes":"",
  "confidence":{"area":0.0,"cuisine":0.0,"budget":0.0,"partySize":0.0,"mealTime":0.0,"vibe":0.0}}}
Only fill fields the message explicitly states. budget.range is 1-4
(1 cheap, 2 mid, 3 high, 4 luxury). mealTime is one of breakfast, lunch,
dinner, coffee, drinks, late-night. vibe is one of romantic, lively, quiet,
outdoor, family, business. Dates are YYYY-MM-DD, times HH:MM.

Message: %q`, text)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("gemini classify failed, using keyword fallback", zap.Error(err))
		return g.fallback.ClassifyAndExtract(ctx, text)
	}
	var out Classification
	if err := decodeJSON(raw, &out); err != nil {
		utils.GetLogger().Warn("gemini classify returned bad JSON, using keyword fallback", zap.Error(err))
		return g.fallback.ClassifyAndExtract(ctx, text)
	}
	if out.Extracted.Budget != nil && out.Extracted.Budget.Range == 0 {
		out.Extracted.Budget = nil
	}
	return &out, nil
}

func (g *GeminiInterpreter) ValidateSlot(ctx context.Context, slot models.SlotType, reply string, choices []string) (*SlotValidation, error) {
	choiceNote := ""
	if len(choices) > 0 {
		choiceNote = fmt.Sprintf("\nSupported values: %s", strings.Join(choices, ", "))
	}
	prompt := fmt.Sprintf(`The user was asked for their %s and replied %q.%s
Reply with JSON only: {"value":"","normalized":"","range":0,"confidence":0.0}.
normalized must be empty and confidence at most 0.3 when the reply does not
answer the question. For budget, range is 1-4 (lexical wording, a bare
numeral 1-4, or a dollar range like 50-100 which is range 1). Dates
normalize to YYYY-MM-DD, times to HH:MM.`, slot, reply, choiceNote)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("gemini validate failed, using keyword fallback",
			zap.String("slot", string(slot)), zap.Error(err))
		return g.fallback.ValidateSlot(ctx, slot, reply, choices)
	}
	var out SlotValidation
	if err := decodeJSON(raw, &out); err != nil {
		return g.fallback.ValidateSlot(ctx, slot, reply, choices)
	}
	out.Value = reply
	return &out, nil
}

func (g *GeminiInterpreter) NormalizeToCatalog(ctx context.Context, rawArea, rawCuisine string, areas, cuisines []string) (*CatalogResolution, error) {
	prompt := fmt.Sprintf(`Match the user's wording to known catalog values.
User area: %q. User cuisine: %q.
Known areas: %s.
Known cuisines: %s.
Reply with JSON only:
{"areaMatch":{"input":"","matched":"","confidence":0.0},
 "cuisineMatch":{"input":"","matched":"","confidence":0.0},
 "areaUnavailable":false,"cuisineUnavailable":false}
matched must be one of the known values or empty; set the unavailable flag
when the user named something with no close match.`,
		rawArea, rawCuisine, strings.Join(areas, ", "), strings.Join(cuisines, ", "))

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("gemini normalize failed, using keyword fallback", zap.Error(err))
		return g.fallback.NormalizeToCatalog(ctx, rawArea, rawCuisine, areas, cuisines)
	}
	var out CatalogResolution
	if err := decodeJSON(raw, &out); err != nil {
		return g.fallback.NormalizeToCatalog(ctx, rawArea, rawCuisine, areas, cuisines)
	}
	// never accept hallucinated values outside the known lists
	if out.Area.Matched != "" {
		if matched, _ := MatchChoice(out.Area.Matched, areas); matched == "" {
			out.Area.Matched = ""
			out.AreaUnavailable = rawArea != ""
		}
	}
	if out.Cuisine.Matched != "" {
		if matched, _ := MatchChoice(out.Cuisine.Matched, cuisines); matched == "" {
			out.Cuisine.Matched = ""
			out.CuisineUnavailable = rawCuisine != ""
		}
	}
	return &out, nil
}

func (g *GeminiInterpreter) AnalyzeAnswer(ctx context.Context, question, answer string, slot models.SlotType, choices []string) (*AnswerAnalysis, error) {
	choiceNote := ""
	if len(choices) > 0 {
		choiceNote = fmt.Sprintf("\nAvailable values: %s", strings.Join(choices, ", "))
	}
	prompt := fmt.Sprintf(`The assistant asked %q (slot type %s) and the user
answered %q.%s
Reply with JSON only:
{"interpretation":"","confidence":0.0,"isOffTopic":false,
 "offTopicConfidence":0.0,"message":""}`, question, slot, answer, choiceNote)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("gemini analyze failed, using keyword fallback", zap.Error(err))
		return g.fallback.AnalyzeAnswer(ctx, question, answer, slot, choices)
	}
	var out AnswerAnalysis
	if err := decodeJSON(raw, &out); err != nil {
		return g.fallback.AnalyzeAnswer(ctx, question, answer, slot, choices)
	}
	return &out, nil
}
