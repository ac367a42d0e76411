package models

// Category groups items in the catalog.
// Names are unique; the case-insensitive variant of that rule is enforced by the
// category service, the index below only rejects exact duplicates.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

func (c *Category) TableName() string {
	return "categories"
}

// URL returns the path of the category detail page.
func (c Category) URL() string {
	return "/inventory/category/" + formatID(c.ID)
}
