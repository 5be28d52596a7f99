// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package options

// Find returns the entry with the given id, if present.
func Find[T ~string](opts []Option[T], id T) (Option[T], bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return Option[T]{}, false
}

// FindDescribed is Find for described registries (tones, styles).
func FindDescribed[T ~string](opts []DescribedOption[T], id T) (DescribedOption[T], bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return DescribedOption[T]{}, false
}

// Has reports whether id is a member of the registry.
func Has[T ~string](opts []Option[T], id T) bool {
	_, ok := Find(opts, id)
	return ok
}

// HasDescribed reports whether id is a member of a described registry.
func HasDescribed[T ~string](opts []DescribedOption[T], id T) bool {
	_, ok := FindDescribed(opts, id)
	return ok
}

// IDs returns the registry ids in display order.
func IDs[T ~string](opts []Option[T]) []T {
	ids := make([]T, len(opts))
	for i, o := range opts {
		ids[i] = o.ID
	}
	return ids
}

// DescribedIDs returns the ids of a described registry in display order.
func DescribedIDs[T ~string](opts []DescribedOption[T]) []T {
	ids := make([]T, len(opts))
	for i, o := range opts {
		ids[i] = o.ID
	}
	return ids
}

// CategoriesFor returns the category set valid for a project type.
// An unset or unknown project type has no valid categories.
func CategoriesFor(pt ProjectType) []Option[Category] {
	switch pt {
	case ProjectTypeApp:
		return AppCategories
	case ProjectTypeGame:
		return GameCategories
	default:
		return nil
	}
}

// FindFeature returns the standard feature with the given key.
func FindFeature(key FeatureKey) (Feature, bool) {
	for _, f := range StandardFeatures {
		if f.ID == key {
			return f, true
		}
	}
	return Feature{}, false
}

// FeatureKeys returns all standard feature keys in registry order.
func FeatureKeys() []FeatureKey {
	keys := make([]FeatureKey, len(StandardFeatures))
	for i, f := range StandardFeatures {
		keys[i] = f.ID
	}
	return keys
}

// ProjectTypeLabel returns the display label for a project type, or "" if
// the type is unset or unknown.
func ProjectTypeLabel(pt ProjectType) string {
	if o, ok := Find(ProjectTypes, pt); ok {
		return o.Label
	}
	return ""
}

// Catalog is the full set of registries, serialised by the options endpoint.
type Catalog struct {
	ProjectTypes     []Option[ProjectType]    `json:"projectTypes"`
	AppCategories    []Option[Category]       `json:"appCategories"`
	GameCategories   []Option[Category]       `json:"gameCategories"`
	Languages        []Option[Language]       `json:"languages"`
	Frameworks       []Option[Framework]      `json:"frameworks"`
	Platforms        []Option[Platform]       `json:"platforms"`
	Tones            []DescribedOption[Tone]  `json:"tones"`
	Styles           []DescribedOption[Style] `json:"styles"`
	StandardFeatures []Feature                `json:"standardFeatures"`
}

// All returns every registry.
func All() Catalog {
	return Catalog{
		ProjectTypes:     ProjectTypes,
		AppCategories:    AppCategories,
		GameCategories:   GameCategories,
		Languages:        Languages,
		Frameworks:       Frameworks,
		Platforms:        Platforms,
		Tones:            Tones,
		Styles:           Styles,
		StandardFeatures: StandardFeatures,
	}
}
