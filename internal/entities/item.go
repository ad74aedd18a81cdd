package entities

// Item is a locally stored catalog entry. IDs are assigned by the store and
// are never the remote catalog's identifiers.
type Item struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"type:text;index" json:"title"`
	Author   string `gorm:"type:text" json:"author"`
	Summary  string `gorm:"type:text" json:"summary"`
	Language string `gorm:"type:text" json:"language"`
}

// Annotation is a user-authored comment attached to exactly one Item.
// Deleting the Item removes its annotations through the foreign key.
type Annotation struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ItemID uint   `gorm:"not null;index" json:"item_id"`
	Text   string `gorm:"type:text" json:"text"`

	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Item) TableName() string {
	return "items"
}

func (Annotation) TableName() string {
	return "annotations"
}
