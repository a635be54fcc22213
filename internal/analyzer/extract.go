package analyzer

import (
	"errors"
	"math"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/nutrisync/macrolens/apimodels"
)

// ErrNoJSON means no strategy recovered a JSON object from the reply.
var ErrNoJSON = errors.New("model did not return parseable JSON")

// embeddedObject is greedy: it spans from the first '{' to the last '}'.
// Prose containing its own braces around the payload will be over-captured
// and the parse fails.
var embeddedObject = regexp.MustCompile(`\{[\s\S]*\}`)

type strategy struct {
	name  string
	parse func(text string) (gjson.Result, bool)
}

// strategies are tried in order; the first success wins.
var strategies = []strategy{
	{name: "whole", parse: parseWhole},
	{name: "embedded", parse: parseEmbedded},
}

// ExtractJSON recovers a JSON object from free-form model text.
func ExtractJSON(text string) (gjson.Result, error) {
	for _, s := range strategies {
		if obj, ok := s.parse(text); ok {
			return obj, nil
		}
	}
	return gjson.Result{}, ErrNoJSON
}

func parseWhole(text string) (gjson.Result, bool) {
	return parseObject(text)
}

func parseEmbedded(text string) (gjson.Result, bool) {
	match := embeddedObject.FindString(text)
	if match == "" {
		return gjson.Result{}, false
	}
	return parseObject(match)
}

func parseObject(text string) (gjson.Result, bool) {
	if !gjson.Valid(text) {
		return gjson.Result{}, false
	}
	res := gjson.Parse(text)
	if !res.IsObject() {
		return gjson.Result{}, false
	}
	return res, true
}

func decodeEstimate(obj gjson.Result) Estimate {
	est := Estimate{
		Food:     UnknownFood,
		Calories: number(obj.Get("calories")),
		Protein:  number(obj.Get("protein")),
		Carbs:    number(obj.Get("carbs")),
		Fat:      number(obj.Get("fat")),
	}
	if food := obj.Get("food"); food.Type == gjson.String {
		est.Food = food.Str
	}
	if c := obj.Get("confidence"); c.Type == gjson.String {
		est.Confidence = apimodels.ConfidenceLevel(c.Str)
	}
	if d := obj.Get("details"); d.Type == gjson.String {
		est.Details = d.Str
	}
	return est
}

// number coerces JSON numbers and numeric strings; anything else is zero.
func number(r gjson.Result) float64 {
	switch r.Type {
	case gjson.Number, gjson.String:
		f := r.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}
