// Package recommend asks an LLM for a restaurant and a short menu for a
// cuisine and parses the reply.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/i474232898/weather-assistant/internal/llm"
)

var (
	// ErrIncompleteResponse is returned when the reply lacks a name or three dishes.
	ErrIncompleteResponse = errors.New("The response format is incorrect or incomplete.")

	// ErrUnknownCuisine is returned for a cuisine outside Cuisines.
	ErrUnknownCuisine = errors.New("unknown cuisine")
)

// Cuisines lists the supported cuisine types.
var Cuisines = []string{"Italian", "Chinese", "Mexican", "Indian", "French", "Japanese"}

const minDishes = 3

const promptTemplate = `
You are a restaurant recommendation assistant. Based on the given cuisine type, suggest a restaurant name and a sample menu.

Cuisine: %s

Response:
Restaurant Name: {restaurant_name}
Menu:
- Dish 1: {dish1}
- Dish 2: {dish2}
- Dish 3: {dish3}
`

// Recommendation is a parsed LLM reply.
type Recommendation struct {
	Cuisine    string   `json:"cuisine"`
	Restaurant string   `json:"restaurant"`
	Menu       []string `json:"menu"`
	Raw        string   `json:"raw"`
}

// Recommender generates recommendations through a Completer.
type Recommender struct {
	llm llm.Completer
}

// New creates a Recommender.
func New(c llm.Completer) *Recommender {
	return &Recommender{llm: c}
}

// Prompt renders the prompt sent for cuisine.
func Prompt(cuisine string) string {
	return fmt.Sprintf(promptTemplate, cuisine)
}

// Recommend asks the model for a restaurant serving cuisine.
func (r *Recommender) Recommend(ctx context.Context, cuisine string) (Recommendation, error) {
	if !slices.Contains(Cuisines, cuisine) {
		return Recommendation{}, fmt.Errorf("%w: %q", ErrUnknownCuisine, cuisine)
	}

	reply, err := r.llm.Complete(ctx, Prompt(cuisine))
	if err != nil {
		return Recommendation{}, err
	}
	log.Printf("DEBUG: raw recommendation from %s: %q", r.llm.Model(), reply)

	rec, err := Parse(reply)
	if err != nil {
		return Recommendation{}, err
	}
	rec.Cuisine = cuisine
	return rec, nil
}

// Parse extracts the restaurant name and the distinct dishes from a reply.
// A field value is the text between the first and the second colon of its line.
func Parse(text string) (Recommendation, error) {
	rec := Recommendation{Raw: text}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "-"))

		switch {
		case strings.HasPrefix(line, "Restaurant Name:"):
			rec.Restaurant = fieldValue(line)
		case strings.HasPrefix(line, "Dish"):
			dish := fieldValue(line)
			if dish != "" && !slices.Contains(rec.Menu, dish) {
				rec.Menu = append(rec.Menu, dish)
			}
		}
	}

	if rec.Restaurant == "" || len(rec.Menu) < minDishes {
		return Recommendation{}, ErrIncompleteResponse
	}
	return rec, nil
}

func fieldValue(line string) string {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ErrorText renders a failure the way the user sees it.
func ErrorText(err error) string {
	return fmt.Sprintf("Error generating recommendation: %v", err)
}
