package dto

import "github.com/noah-isme/campus-go-api/internal/models"

// Cascade field names accepted by the options endpoint.
const (
	CascadeFieldFaculty    = "faculty"
	CascadeFieldDepartment = "department"
	CascadeFieldProgramme  = "programme"
	CascadeFieldLevel      = "level"
	CascadeFieldSemester   = "semester"
)

// CascadeOptionsRequest carries the current selection plus the field the
// caller just changed; descendants of the changed field are reset server-side.
type CascadeOptionsRequest struct {
	Changed   string                  `json:"changed" validate:"required,oneof=faculty department programme level semester"`
	Selection models.CatalogSelection `json:"selection"`
}

// OptionItem is one selectable entry in a dependent dropdown.
type OptionItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CascadeOptionsResponse returns the normalized selection and the option sets
// valid under it.
type CascadeOptionsResponse struct {
	Selection   models.CatalogSelection `json:"selection"`
	Departments []OptionItem            `json:"departments"`
	Programmes  []OptionItem            `json:"programmes"`
	Levels      []int                   `json:"levels"`
	Semesters   []string                `json:"semesters"`
}

// ProgrammeResponse is the serialized programme, cut-off included.
type ProgrammeResponse struct {
	ID           uint    `json:"id"`
	DepartmentID uint    `json:"department_id"`
	Name         string  `json:"name"`
	Cutoff       float64 `json:"cutoff"`
	MaxLevel     int     `json:"max_level"`
}

// FacultyTreeResponse is the full catalog tree used to seed dropdowns.
type FacultyTreeResponse struct {
	ID          uint                     `json:"id"`
	Name        string                   `json:"name"`
	Departments []DepartmentTreeResponse `json:"departments"`
}

// DepartmentTreeResponse nests programmes under a department.
type DepartmentTreeResponse struct {
	ID         uint                `json:"id"`
	Name       string              `json:"name"`
	Programmes []ProgrammeResponse `json:"programmes"`
}

// NewProgrammeResponse converts a model into a DTO.
func NewProgrammeResponse(model models.Programme) ProgrammeResponse {
	return ProgrammeResponse{
		ID:           model.ID,
		DepartmentID: model.DepartmentID,
		Name:         model.Name,
		Cutoff:       model.Cutoff,
		MaxLevel:     model.MaxLevel,
	}
}

// NewFacultyTreeResponseSlice converts preloaded faculties into the tree DTO.
func NewFacultyTreeResponseSlice(faculties []models.Faculty) []FacultyTreeResponse {
	tree := make([]FacultyTreeResponse, 0, len(faculties))
	for _, faculty := range faculties {
		departments := make([]DepartmentTreeResponse, 0, len(faculty.Departments))
		for _, department := range faculty.Departments {
			programmes := make([]ProgrammeResponse, 0, len(department.Programmes))
			for _, programme := range department.Programmes {
				programmes = append(programmes, NewProgrammeResponse(programme))
			}
			departments = append(departments, DepartmentTreeResponse{
				ID:         department.ID,
				Name:       department.Name,
				Programmes: programmes,
			})
		}
		tree = append(tree, FacultyTreeResponse{
			ID:          faculty.ID,
			Name:        faculty.Name,
			Departments: departments,
		})
	}

	return tree
}
