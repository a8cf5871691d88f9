package service

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/CeKulit/cekulit-backend/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed skincare-data.json
var skincareData []byte

type skincareService struct {
	catalog      map[string]map[string]domain.SkincareStep
	assetBaseURL string
	titleCaser   cases.Caser
}

// NewSkincareService parses the embedded routine catalog. The catalog is
// static: one step map per skin type.
func NewSkincareService(assetBaseURL string) (domain.SkincareUseCase, error) {
	var catalog map[string]map[string]domain.SkincareStep
	if err := json.Unmarshal(skincareData, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse skincare catalog: %w", err)
	}

	return &skincareService{
		catalog:      catalog,
		assetBaseURL: assetBaseURL,
		titleCaser:   cases.Title(language.English),
	}, nil
}

func (s *skincareService) photoURL(step string) string {
	return fmt.Sprintf("%s/skincare/%s.png", s.assetBaseURL, step)
}

// stepsFor returns a copy of the skin type's steps with the time-of-day
// filter applied: no sunscreen at night, no cleanser during the day.
func (s *skincareService) stepsFor(skinType, timeOfDay string) (map[string]domain.SkincareStep, bool) {
	source, ok := s.catalog[skinType]
	if !ok {
		return nil, false
	}

	steps := make(map[string]domain.SkincareStep, len(source))
	for name, step := range source {
		steps[name] = step
	}

	switch timeOfDay {
	case "night":
		delete(steps, "Sunscreen")
	case "day":
		delete(steps, "Cleanser")
	}
	return steps, true
}

func (s *skincareService) List(timeOfDay string) []domain.SkincareListItem {
	steps, _ := s.stepsFor("normal", timeOfDay)

	items := make([]domain.SkincareListItem, 0, len(steps))
	for name := range steps {
		items = append(items, domain.SkincareListItem{
			Title:    s.titleCaser.String(name),
			PhotoURL: s.photoURL(name),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return items
}

func (s *skincareService) Detail(skinType, timeOfDay string) (map[string]domain.SkincareStep, error) {
	steps, ok := s.stepsFor(skinType, timeOfDay)
	if !ok {
		return nil, domain.ErrSkinTypeUnknown
	}

	for name, step := range steps {
		step.Title = s.titleCaser.String(name)
		step.PhotoURL = s.photoURL(name)
		steps[name] = step
	}
	return steps, nil
}

func (s *skincareService) DetailByName(skinType, timeOfDay, name string) (*domain.SkincareStep, error) {
	steps, ok := s.stepsFor(skinType, timeOfDay)
	if !ok {
		return nil, domain.ErrSkinTypeUnknown
	}

	step, ok := steps[name]
	if !ok {
		return nil, domain.ErrSkincareStepUnknown
	}

	step.Title = s.titleCaser.String(name)
	step.PhotoURL = s.photoURL(name)
	return &step, nil
}
