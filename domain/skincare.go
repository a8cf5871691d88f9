package domain

// SkincareStep is one product-type entry of the routine catalog.
type SkincareStep struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	HowToUse    string `json:"howToUse,omitempty"`
	PhotoURL    string `json:"photoUrl"`
}

// SkincareListItem is the compact list representation of a step.
type SkincareListItem struct {
	Title    string `json:"title"`
	PhotoURL string `json:"photoUrl"`
}

type SkincareUseCase interface {
	List(time string) []SkincareListItem
	Detail(skinType, time string) (map[string]SkincareStep, error)
	DetailByName(skinType, time, name string) (*SkincareStep, error)
}
