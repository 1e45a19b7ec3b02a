package models

type AssetClass struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:150;not null" json:"name"`
	Audited
}

func (c AssetClass) String() string {
	return c.Name
}
