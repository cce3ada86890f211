package catalog

import "grocery-assistant/internal/models"

// RuleSet bundles the substitution and frequently-bought-together tables.
type RuleSet struct {
	Substitutes models.Rules
	Complements models.Rules
}

// DefaultRules returns fresh copies of the built-in tables.
func DefaultRules() RuleSet {
	return RuleSet{
		Substitutes: models.Rules{
			"milk":  {"almond milk"},
			"bread": {"atta"},
			"eggs":  {"paneer"},
		},
		Complements: models.Rules{
			"bread":    {"butter", "jam"},
			"milk":     {"biscuits"},
			"biscuits": {"milk", "tea"},
		},
	}
}
