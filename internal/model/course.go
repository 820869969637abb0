package model

// Course is one entry of the ordered, admin-managed course list.
// Profiles reference courses by name, so renaming one does not touch existing profiles.
type Course struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Position int    `json:"-" gorm:"not null;index"`
}

// DefaultCourses is the list installed when no course has been configured yet.
var DefaultCourses = []string{
	"Ciência da Computação",
	"Engenharia de Software",
	"Sistemas de Informação",
	"Análise e Desenvolvimento de Sistemas",
}
