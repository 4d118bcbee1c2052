package location

// NormalizeResult reports the canonical form of a location name.
type NormalizeResult struct {
	OriginalLocation   string `json:"original_location"`
	NormalizedLocation string `json:"normalized_location"`
	AliasesUsed        bool   `json:"aliases_used"`
}

// Normalize maps a name to its canonical form through the alias table.
// Names without an alias normalize to their lowercased, trimmed form.
func (g *Gazetteer) Normalize(name string) NormalizeResult {
	key := clean(name)
	canonical, ok := g.aliases[key]
	if !ok {
		canonical = key
	}
	return NormalizeResult{
		OriginalLocation:   name,
		NormalizedLocation: canonical,
		AliasesUsed:        ok,
	}
}
