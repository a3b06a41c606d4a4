package employee

import "time"

// Employee is the read side of the employees table. Leave requests reference
// it; this service never writes it.
type Employee struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Matricule string `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_matricule"`
	Nom       string `gorm:"type:varchar(100);not null"`
	Prenom    string `gorm:"type:varchar(100);not null"`
	Service   string `gorm:"type:varchar(100);not null;default:''"`
	Poste     string `gorm:"type:varchar(100);not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.Prenom + " " + e.Nom
}
