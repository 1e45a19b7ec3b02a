package models

type Company struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:150;not null" json:"name"`
	Audited
}

func (c Company) String() string {
	return c.Name
}
