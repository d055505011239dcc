package entity

// Department groups doctors; informational only, not part of booking logic.
type Department struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(500)" json:"description,omitempty"`

	// Relationships
	Doctors []User `gorm:"foreignKey:DepartmentID" json:"doctors,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
