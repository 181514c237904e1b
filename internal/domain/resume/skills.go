package resume

import "strings"

// OtherCategory receives skills no category lists
const OtherCategory = "Other Skills"

// SkillCategory names a group of skills shown together on the resume
type SkillCategory struct {
	Name     string
	Keywords []string
}

// SkillCategories is checked in order; the first category listing a skill wins
var SkillCategories = []SkillCategory{
	{
		Name: "Programming Languages",
		Keywords: []string{
			"javascript", "typescript", "python", "java", "go", "golang", "c", "c++", "c#",
			"ruby", "php", "swift", "kotlin", "rust", "scala", "sql", "html", "css",
		},
	},
	{
		Name: "Frameworks & Libraries",
		Keywords: []string{
			"react", "angular", "vue", "next.js", "node.js", "express", "django", "flask",
			"spring", "rails", ".net", "tailwind", "redux", "graphql",
		},
	},
	{
		Name: "Tools & Platforms",
		Keywords: []string{
			"git", "docker", "kubernetes", "aws", "azure", "gcp", "terraform", "jenkins",
			"linux", "postgresql", "mysql", "mongodb", "redis", "jira", "figma",
		},
	},
	{
		Name: "Soft Skills",
		Keywords: []string{
			"leadership", "communication", "teamwork", "problem solving", "mentoring",
			"project management", "agile", "scrum", "collaboration", "time management",
		},
	},
}

// CategorizedSkills is one rendered skill group
type CategorizedSkills struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// Categorize groups skills by SkillCategories, keeping input order within a
// group and dropping blanks. Empty groups are omitted; unknown skills go to
// OtherCategory, which is always last.
func Categorize(skills []string) []CategorizedSkills {
	index := make(map[string]int)
	for i, c := range SkillCategories {
		for _, k := range c.Keywords {
			if _, taken := index[k]; !taken {
				index[k] = i
			}
		}
	}

	groups := make([][]string, len(SkillCategories)+1)
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		i, ok := index[strings.ToLower(s)]
		if !ok {
			i = len(SkillCategories)
		}
		groups[i] = append(groups[i], s)
	}

	out := make([]CategorizedSkills, 0, len(groups))
	for i, g := range groups {
		if len(g) == 0 {
			continue
		}
		name := OtherCategory
		if i < len(SkillCategories) {
			name = SkillCategories[i].Name
		}
		out = append(out, CategorizedSkills{Category: name, Skills: g})
	}
	return out
}
