package resume

import (
	"strings"
)

// Block styles, mapped to fonts and spacing by document renderers
const (
	StyleName       = "name"
	StyleContact    = "contact"
	StyleHeading    = "heading"
	StyleSubheading = "subheading"
	StyleMeta       = "meta"
	StyleBody       = "body"
	StyleBullet     = "bullet"
)

// Block is one styled run of text in document order
type Block struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

// Preview lays the resume out as styled blocks. Empty fields and sections
// produce no blocks.
func Preview(r Resume) []Block {
	var b blocks

	b.add(StyleName, r.Personal.FullName)
	b.add(StyleContact, joinNonEmpty(" | ", r.Personal.Email, r.Personal.Phone, r.Personal.Location))
	if s := strings.TrimSpace(r.Personal.Summary); s != "" {
		b.add(StyleHeading, "Professional Summary")
		b.add(StyleBody, s)
	}

	if len(r.Experience) > 0 {
		b.add(StyleHeading, "Experience")
		for _, e := range r.Experience {
			b.add(StyleSubheading, joinNonEmpty(" at ", e.Role, e.Company))
			b.add(StyleMeta, joinNonEmpty(" | ", dateRange(e.StartDate, e.EndDate), e.Location))
			for _, line := range strings.Split(e.Description, "\n") {
				b.add(StyleBullet, strings.TrimLeft(strings.TrimSpace(line), "-*• "))
			}
		}
	}

	if len(r.Education) > 0 {
		b.add(StyleHeading, "Education")
		for _, e := range r.Education {
			b.add(StyleSubheading, joinNonEmpty(" in ", e.Degree, e.Field))
			b.add(StyleMeta, joinNonEmpty(" | ", e.School, dateRange(e.StartDate, e.EndDate)))
		}
	}

	if groups := Categorize(r.Skills); len(groups) > 0 {
		b.add(StyleHeading, "Skills")
		for _, g := range groups {
			b.add(StyleBody, g.Category+": "+strings.Join(g.Skills, ", "))
		}
	}

	return b
}

// RenderText prints blocks as plain text for the live preview
func RenderText(bs []Block) string {
	var sb strings.Builder
	for i, b := range bs {
		switch b.Style {
		case StyleHeading:
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(strings.ToUpper(b.Text))
		case StyleBullet:
			sb.WriteString("  - " + b.Text)
		case StyleMeta:
			sb.WriteString("  " + b.Text)
		default:
			sb.WriteString(b.Text)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

type blocks []Block

func (b *blocks) add(style, text string) {
	if text = strings.TrimSpace(text); text != "" {
		*b = append(*b, Block{Style: style, Text: text})
	}
}

func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" {
		return end
	}
	if end == "" {
		end = "Present"
	}
	return start + " - " + end
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
