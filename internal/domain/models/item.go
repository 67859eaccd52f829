package models

// Category is a tagged item category with the capability set that decides
// which optional field groups apply to items of that category. Capabilities
// are resolved once here, at construction, rather than by comparing category
// strings at every use site.
type Category struct {
	Name          string
	HasGemFields  bool
	HasMapFields  bool
	HasBaseFields bool
	HasInfluences bool
}

// NewCategory resolves the capability set for a category name.
func NewCategory(name string) Category {
	c := Category{Name: name}
	switch name {
	case "gem":
		c.HasGemFields = true
	case "map":
		c.HasMapFields = true
	case "base":
		c.HasBaseFields = true
		c.HasInfluences = true
	}
	return c
}

// ItemDetail holds the static description of a tracked item. Optional fields
// are pointers: nil means the attribute does not apply to this item and the
// serializer omits it entirely.
type ItemDetail struct {
	ID       int64
	Name     string
	Type     *string
	Category Category
	Group    *string
	Frame    int

	MapSeries *int
	MapTier   *int

	Influences    []string
	BaseIsShaper  *bool
	BaseIsElder   *bool
	BaseItemLevel *int

	GemLevel       *int
	GemQuality     *int
	GemIsCorrupted *bool

	EnchantMin *float64
	EnchantMax *float64

	StackSize *int
	LinkCount *int

	Variation *string
	Icon      string
}
