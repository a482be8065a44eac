package external

// SpellData is the SRD description of a spell
type SpellData struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Level         int    `json:"level"`
	School        string `json:"school"`
	CastingTime   string `json:"castingTime"`
	Range         string `json:"range"`
	Duration      string `json:"duration"`
	Ritual        bool   `json:"ritual"`
	Concentration bool   `json:"concentration"`
	DamageType    string `json:"damageType,omitempty"`
	Save          string `json:"save,omitempty"`
	Description   string `json:"description"`
}

// LookupSpellsInput lists the spell names to resolve
type LookupSpellsInput struct {
	Names []string
}

// LookupSpellsOutput splits the requested names into resolved spells and
// names the SRD does not know. Both keep the order of first appearance.
type LookupSpellsOutput struct {
	Spells     []*SpellData `json:"spells"`
	Unresolved []string     `json:"unresolved"`
}
