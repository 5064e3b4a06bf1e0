package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/carblens/backend/internal/types"
)

const estimatorModel = "gemini-2.5-flash"

// rawExcerptLen bounds how much of an unparseable response is surfaced.
const rawExcerptLen = 50

// Image is one photo submitted for analysis. MIME type is inferred from the
// filename extension: .png maps to image/png, anything else to image/jpeg.
type Image struct {
	Filename string
	Data     []byte
}

// MIMEType returns the inferred content type for the image.
func (img Image) MIMEType() string {
	if strings.HasSuffix(strings.ToLower(img.Filename), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

// EstimatorService turns meal photos into food items by prompting the Gemini
// vision model and defensively parsing its answer. It holds no state and has
// no side effects beyond the outbound call.
type EstimatorService struct {
	model string

	// analyzeFn performs one per-image model call; swapped out in tests.
	analyzeFn func(ctx context.Context, img Image, description, apiKey string) ([]types.FoodItem, error)
}

// NewEstimatorService creates an EstimatorService for the given model name,
// falling back to the default when empty.
func NewEstimatorService(model string) *EstimatorService {
	if model == "" {
		model = estimatorModel
	}
	s := &EstimatorService{model: model}
	s.analyzeFn = s.callModel
	return s
}

// AnalyzeImage sends one image plus the user's free-text context to the
// model and returns the decoded food items. Decoded values are passed
// through exactly as the model returned them; no range validation is done.
func (s *EstimatorService) AnalyzeImage(ctx context.Context, img Image, description, apiKey string) ([]types.FoodItem, error) {
	return s.analyzeFn(ctx, img, description, apiKey)
}

func (s *EstimatorService) callModel(ctx context.Context, img Image, description, apiKey string) ([]types.FoodItem, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer client.Close()

	model := client.GenerativeModel(s.model)

	resp, err := model.GenerateContent(ctx,
		genai.Text(buildPrompt(description)),
		genai.Blob{MIMEType: img.MIMEType(), Data: img.Data},
	)
	if err != nil {
		return nil, classifyModelError(err)
	}

	text := firstText(resp)
	return ParseFoodItems(text)
}

// AnalyzeImages analyzes every image concurrently, one independent model
// call each, and concatenates the results preserving image submission order
// and per-image item order. If any call fails the whole operation fails and
// completed sibling results are discarded. In-flight siblings are not
// cancelled; they run to completion and their results are dropped.
func (s *EstimatorService) AnalyzeImages(ctx context.Context, imgs []Image, description, apiKey string) ([]types.FoodItem, error) {
	results := make([][]types.FoodItem, len(imgs))

	var g errgroup.Group
	for i, img := range imgs {
		i, img := i, img
		g.Go(func() error {
			items, err := s.AnalyzeImage(ctx, img, description, apiKey)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []types.FoodItem
	for _, items := range results {
		all = append(all, items...)
	}
	return all, nil
}

// ParseFoodItems decodes the model's textual response into food items:
// first strip Markdown code fences, then decode as a JSON array. The two
// steps are separate so fence handling and JSON decoding stay individually
// testable.
func ParseFoodItems(text string) ([]types.FoodItem, error) {
	cleaned := StripCodeFences(text)

	var items []types.FoodItem
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, &ParseError{Excerpt: truncateExcerpt(text), Err: err}
	}
	return items, nil
}

// truncateExcerpt bounds the raw response carried in a ParseError, backing
// off to a rune boundary so a multi-byte character is never split.
func truncateExcerpt(s string) string {
	if len(s) <= rawExcerptLen {
		return s
	}
	cut := rawExcerptLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// StripCodeFences removes ```json / ``` delimiters and surrounding
// whitespace from a model response that wrapped its JSON in a fence.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// classifyModelError maps a model-call failure onto the error taxonomy. A
// 403 indicator in the provider's message means the key was rejected.
func classifyModelError(err error) error {
	if strings.Contains(err.Error(), "403") {
		return &CredentialError{Err: err}
	}
	return &UpstreamError{Err: err}
}

func buildPrompt(description string) string {
	return fmt.Sprintf(`
Analyze this image of food (which may be a plate or a menu).
Identify all distinct food items present.

IMPORTANT: If the image shows a single plate or meal composed of multiple components (e.g. a main dish with sides like steak and fries), group them as a SINGLE item (e.g. "Steak with Fries") and list the components in the ingredients breakdown. Only return multiple items if there are clearly distinct separate meals or dishes (e.g. multiple plates, or a menu with different options).

For each item, estimate:
1. The carbohydrate content in grams per standard serving.
2. The estimated calories (kcal) per standard serving.
3. The Glycemic Index (GI).
4. A confidence score (0.0 to 1.0) for your identification.
5. A breakdown of ingredients with their individual carb and calorie values (if applicable).

Context provided by user: %q

Return ONLY a valid JSON array with objects containing these fields:
- name (string)
- carbs (number) - total carbs for the item
- calories (number) - total calories for the item
- gi (number)
- confidence (number)
- ingredients (optional array of objects with "name", "carbs", and "calories" fields) - breakdown of ingredients

Example format:
[
  {
    "name": "Burger",
    "carbs": 45,
    "calories": 550,
    "gi": 60,
    "confidence": 0.95,
    "ingredients": [
      { "name": "Bun", "carbs": 30, "calories": 150 },
      { "name": "Patty", "carbs": 0, "calories": 250 },
      { "name": "Cheese", "carbs": 2, "calories": 100 },
      { "name": "Sauce", "carbs": 8, "calories": 40 },
      { "name": "Vegetables", "carbs": 5, "calories": 10 }
    ]
  }
]
`, description)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
