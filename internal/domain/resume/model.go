// Package resume holds the resume builder: the document model, the editing
// state machine, skill categorization and the live preview.
package resume

import "slices"

// Section names
const (
	SectionPersonal   = "personal"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

type Resume struct {
	Personal   Personal     `json:"personal"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
}

type Personal struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Clone returns a deep copy
func (r Resume) Clone() Resume {
	r.Experience = slices.Clone(r.Experience)
	r.Education = slices.Clone(r.Education)
	r.Skills = slices.Clone(r.Skills)
	return r
}

// items reports how many entries a list section holds, and whether
// section is a list section at all
func (r Resume) items(section string) (int, bool) {
	switch section {
	case SectionExperience:
		return len(r.Experience), true
	case SectionEducation:
		return len(r.Education), true
	}
	return 0, false
}

func knownSection(section string) bool {
	switch section {
	case SectionPersonal, SectionExperience, SectionEducation, SectionSkills:
		return true
	}
	return false
}
