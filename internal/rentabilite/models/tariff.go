package models

// InversionMode selects how a target margin is turned into a new price.
type InversionMode string

const (
	// InversionProportional rescales the price by (100-target)/(100-rem-cost),
	// holding the remuneration and cost percentages fixed.
	InversionProportional InversionMode = "proportional"
	// InversionFixedCost holds the absolute remuneration and cost per unit
	// fixed and solves for the price that leaves the target margin.
	InversionFixedCost InversionMode = "fixed_cost"
)

// TariffSuggestion is the proposed price for one procedure.
type TariffSuggestion struct {
	ProcedureID        int     `json:"acte_id,omitempty"`
	Acte               string  `json:"acte"`
	CurrentUnitPrice   float64 `json:"prix_actuel"`
	SuggestedUnitPrice float64 `json:"tarif_suggere"`
	VariationPct       float64 `json:"variation_pct"`
	CurrentMarginPct   float64 `json:"marge_actuelle_pct"`
	TargetMarginPct    float64 `json:"marge_cible_pct"`
	CurrentRevenue     float64 `json:"ca_actuel"`
	ProjectedRevenue   float64 `json:"ca_projete"`
}

// SuggestionSummary aggregates a suggestion batch for the simulator header.
type SuggestionSummary struct {
	ToIncrease       int     `json:"actes_augmenter"`
	ToDecrease       int     `json:"actes_diminuer"`
	Unchanged        int     `json:"actes_inchanges"`
	AvgVariationPct  float64 `json:"variation_moyenne"`
	CurrentRevenue   float64 `json:"ca_actuel_total"`
	ProjectedRevenue float64 `json:"ca_projete_total"`
}

// SuggestionResponse is the tariff-suggestion endpoint payload.
type SuggestionResponse struct {
	Parametres  Parametres         `json:"parametres"`
	Suggestions []TariffSuggestion `json:"suggestions"`
	Summary     *SuggestionSummary `json:"resume,omitempty"`
}
