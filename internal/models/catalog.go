package models

import "time"

// Faculty is the top of the academic hierarchy.
type Faculty struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Departments []Department `gorm:"constraint:OnDelete:CASCADE" json:"departments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Department belongs to exactly one faculty.
type Department struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	FacultyID  uint        `gorm:"index;not null" json:"faculty_id"`
	Name       string      `gorm:"size:255;not null" json:"name"`
	Programmes []Programme `gorm:"constraint:OnDelete:CASCADE" json:"programmes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Programme is a degree course offered by a department. Cutoff is the minimum
// qualifying admission score; MaxLevel caps the levels the programme runs to.
type Programme struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DepartmentID uint      `gorm:"index;not null" json:"department_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Cutoff       float64   `gorm:"not null;default:0" json:"cutoff"`
	MaxLevel     int       `gorm:"not null;default:400" json:"max_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AllLevels is the full ladder of study levels the institution recognises.
var AllLevels = []int{100, 200, 300, 400, 500}

// AllSemesters lists the semesters available once a level is chosen.
var AllSemesters = []string{"First", "Second"}

// LevelsFor returns the levels a programme actually offers, bounded by its
// declared maximum level.
func LevelsFor(p Programme) []int {
	max := p.MaxLevel
	if max <= 0 {
		max = AllLevels[len(AllLevels)-1]
	}
	levels := make([]int, 0, len(AllLevels))
	for _, level := range AllLevels {
		if level <= max {
			levels = append(levels, level)
		}
	}
	return levels
}

// CatalogSelection is the state of a dependent filter cascade over the
// Faculty → Department → Programme → Level → Semester hierarchy. Changing a
// parent always clears every descendant, so a selection can never show a
// value inconsistent with its ancestor.
type CatalogSelection struct {
	FacultyID    *uint   `json:"faculty_id"`
	DepartmentID *uint   `json:"department_id"`
	ProgrammeID  *uint   `json:"programme_id"`
	Level        *int    `json:"level"`
	Semester     *string `json:"semester"`
}

// SelectFaculty replaces the faculty and clears all descendants.
func (s *CatalogSelection) SelectFaculty(id *uint) {
	s.FacultyID = id
	s.DepartmentID = nil
	s.ProgrammeID = nil
	s.Level = nil
	s.Semester = nil
}

// SelectDepartment replaces the department and clears programme, level and semester.
func (s *CatalogSelection) SelectDepartment(id *uint) {
	s.DepartmentID = id
	s.ProgrammeID = nil
	s.Level = nil
	s.Semester = nil
}

// SelectProgramme replaces the programme and clears level and semester.
func (s *CatalogSelection) SelectProgramme(id *uint) {
	s.ProgrammeID = id
	s.Level = nil
	s.Semester = nil
}

// SelectLevel replaces the level and clears the semester.
func (s *CatalogSelection) SelectLevel(level *int) {
	s.Level = level
	s.Semester = nil
}

// SelectSemester replaces the semester; it has no descendants to clear.
func (s *CatalogSelection) SelectSemester(semester *string) {
	s.Semester = semester
}
