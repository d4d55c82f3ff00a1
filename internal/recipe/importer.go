package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"madfood/internal/llm"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoRecipeFound is returned when a page carries no recipe metadata and no
// LLM fallback is available.
var ErrNoRecipeFound = errors.New("no recipe metadata found on this page")

// ErrInvalidURL is returned for non-http(s) or unparsable import URLs.
var ErrInvalidURL = errors.New("only http/https URLs are allowed")

// Imported is the result of scraping one recipe page. Prep and cook times
// are minutes; nil when the page doesn't state them.
type Imported struct {
	Title           string       `json:"title"`
	Notes           string       `json:"notes,omitempty"`
	ImageURL        string       `json:"image_url,omitempty"`
	PrepTimeMinutes *int         `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int         `json:"cook_time_minutes,omitempty"`
	Ingredients     []Ingredient `json:"ingredients"`
}

// Importer fetches a recipe page and extracts structured recipe data,
// preferring schema.org JSON-LD and optionally falling back to an LLM.
type Importer struct {
	httpClient *http.Client
	textGen    llm.TextGenerator // nil disables the fallback
}

// NewImporter creates an Importer. textGen may be nil.
func NewImporter(textGen llm.TextGenerator) *Importer {
	return &Importer{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		textGen:    textGen,
	}
}

// ingredientLine splits "2 cups flour" into quantity, unit, and name.
var ingredientLine = regexp.MustCompile(`^([\d./]+)?\s*([a-zA-Z]+)?\s*(.*)$`)

// isoDuration matches the subset of ISO-8601 durations recipe sites emit.
var isoDuration = regexp.MustCompile(`(?i)^P(?:T(?:(\d+)H)?(?:(\d+)M)?)$`)

// Import fetches the URL and extracts a recipe. JSON-LD wins; when none is
// present and a text generator is configured, the cleaned page text goes
// through the model instead.
func (im *Importer) Import(ctx context.Context, rawURL string) (*Imported, error) {
	target := strings.TrimSpace(rawURL)
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "MadFoodRecipeImporter/1.0")

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch recipe page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe page: %w", err)
	}

	if imported := extractFromJSONLD(doc); imported != nil {
		if imported.Title == "" {
			return nil, fmt.Errorf("recipe title not found")
		}
		return imported, nil
	}

	if im.textGen != nil {
		return im.extractWithLLM(ctx, doc)
	}
	return nil, ErrNoRecipeFound
}

// extractFromJSONLD scans ld+json scripts for a schema.org Recipe object.
func extractFromJSONLD(doc *goquery.Document) *Imported {
	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return true
		}
		var parsed any
		if err := json.Unmarshal([]byte(body), &parsed); err != nil {
			return true
		}
		for _, entry := range flattenJSONLD(parsed) {
			obj, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if isRecipeType(obj["@type"]) {
				found = obj
				return false
			}
		}
		return true
	})
	if found == nil {
		return nil
	}

	imported := &Imported{
		Title:           strings.TrimSpace(stringValue(found["name"])),
		Notes:           strings.TrimSpace(stringValue(found["description"])),
		ImageURL:        normalizeImageURL(found["image"]),
		PrepTimeMinutes: parseDurationMinutes(found["prepTime"]),
		CookTimeMinutes: parseDurationMinutes(found["cookTime"]),
	}

	if lines, ok := found["recipeIngredient"].([]any); ok {
		for _, line := range lines {
			if ing := ParseIngredientLine(stringValue(line)); ing != nil {
				imported.Ingredients = append(imported.Ingredients, *ing)
			}
		}
	}
	return imported
}

// flattenJSONLD unwraps arrays and @graph containers into a flat entry list.
func flattenJSONLD(entry any) []any {
	switch v := entry.(type) {
	case []any:
		var out []any
		for _, e := range v {
			out = append(out, flattenJSONLD(e)...)
		}
		return out
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			return flattenJSONLD(graph)
		}
	}
	return []any{entry}
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.Contains(strings.ToLower(v), "recipe")
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && strings.Contains(strings.ToLower(s), "recipe") {
				return true
			}
		}
	}
	return false
}

// ParseIngredientLine splits one free-text ingredient line into quantity,
// unit, and name. Lines that don't match the pattern keep the whole text as
// the name; blank lines return nil.
func ParseIngredientLine(value string) *Ingredient {
	line := strings.TrimSpace(value)
	if line == "" {
		return nil
	}

	match := ingredientLine.FindStringSubmatch(line)
	if match == nil {
		return &Ingredient{Name: line}
	}

	quantity := strings.TrimSpace(match[1])
	unit := strings.TrimSpace(match[2])
	name := strings.TrimSpace(match[3])
	if name == "" {
		name = line
	}
	return &Ingredient{Name: name, Quantity: quantity, Unit: unit}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// normalizeImageURL accepts the string, array, and ImageObject forms the
// schema allows.
func normalizeImageURL(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case []any:
		if len(img) > 0 {
			if s, ok := img[0].(string); ok {
				return s
			}
		}
	case map[string]any:
		if s, ok := img["url"].(string); ok {
			return s
		}
	}
	return ""
}

// parseDurationMinutes converts "PT1H30M" (or a bare number of minutes) to
// minutes; nil when absent or unparsable.
func parseDurationMinutes(v any) *int {
	text := strings.TrimSpace(stringValue(v))
	if text == "" {
		return nil
	}

	if m := isoDuration.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		total := hours*60 + minutes
		return &total
	}

	if n, err := strconv.Atoi(text); err == nil && n >= 0 {
		return &n
	}
	return nil
}

// extractWithLLM strips the page down to text and asks the model for the
// same structure the JSON-LD path produces.
func (im *Importer) extractWithLLM(ctx context.Context, doc *goquery.Document) (*Imported, error) {
	doc.Find("script, style, nav, footer, iframe, .ads, #ads").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
	content := strings.TrimSpace(doc.Find("body").Text())

	prompt := fmt.Sprintf(`You are a recipe extraction expert. Extract the recipe from the following page text.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "notes": "Short description",
  "ingredients": [{"name": "flour", "quantity": "2", "unit": "cups"}, ...],
  "prep_time_minutes": 30,
  "cook_time_minutes": 20
}
Return ONLY the raw JSON string. Do not wrap the response in markdown code blocks.

Page text:
%s`, content)

	response, err := im.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm extraction failed: %w", err)
	}

	var imported Imported
	if err := json.Unmarshal([]byte(response), &imported); err != nil {
		return nil, fmt.Errorf("failed to parse llm response: %w", err)
	}
	if strings.TrimSpace(imported.Title) == "" {
		return nil, ErrNoRecipeFound
	}
	return &imported, nil
}
