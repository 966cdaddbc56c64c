package rendering

import (
	"github.com/jonathan/resume-formatter/internal/types"
)

// Preview section names, in display order
const (
	SectionHeader         = "header"
	SectionSummary        = "summary"
	SectionEmployment     = "employment"
	SectionEducation      = "education"
	SectionCertifications = "certifications"
	SectionSkills         = "skills"
)

// Preview is the compact on-screen view of a record. Unlike the document,
// sections with nothing to show are left empty rather than padded.
type Preview struct {
	Name              string
	Title             string
	RequisitionNumber string
	Summary           []string
	SummarySections   []PreviewSection
	Employment        []PreviewJob
	Education         []PreviewEducation
	Certifications    []types.CertificationEntry
	SkillGroups       []SkillLine
	SkillCategories   []PreviewSkillCategory
}

// PreviewSection is a titled bullet list
type PreviewSection struct {
	Title   string
	Bullets []string
}

// PreviewJob is one employment entry with blank bullets removed
type PreviewJob struct {
	CompanyName      string
	RoleName         string
	WorkPeriod       string
	Location         string
	KeyTechnologies  string
	Projects         []PreviewProject
	Responsibilities []string
	Subsections      []PreviewSection
}

// PreviewProject is one project with blank bullets removed
type PreviewProject struct {
	Title            string
	Period           string
	KeyTechnologies  string
	Responsibilities []string
}

// PreviewEducation is an education row with the award flag spelled out
type PreviewEducation struct {
	types.EducationEntry
	Awarded string
}

// SkillLine is a label with its comma-joined skills
type SkillLine struct {
	Label  string
	Skills string
}

// PreviewSkillCategory is a nested skill category and its subcategory lines
type PreviewSkillCategory struct {
	SkillLine
	SubCategories []SkillLine
}

// BuildPreview derives the preview view of a record
func BuildPreview(record types.ResumeRecord) Preview {
	p := Preview{
		Name:              record.Name,
		Title:             record.Title,
		RequisitionNumber: record.RequisitionNumber,
		Summary:           nonBlank(record.ProfessionalSummary),
		SummarySections:   previewSections(record.SummarySections),
		Certifications:    record.Certifications,
	}

	for _, job := range record.EmploymentHistory {
		pj := PreviewJob{
			CompanyName:      job.CompanyName,
			RoleName:         job.RoleName,
			WorkPeriod:       job.WorkPeriod,
			Location:         job.Location,
			KeyTechnologies:  job.KeyTechnologies,
			Responsibilities: nonBlank(job.Responsibilities),
			Subsections:      previewSections(job.Subsections),
		}
		for _, project := range job.Projects {
			title := project.ProjectName
			if !isBlank(project.ProjectLocation) {
				title += " - " + project.ProjectLocation
			}
			pj.Projects = append(pj.Projects, PreviewProject{
				Title:            title,
				Period:           project.Period,
				KeyTechnologies:  project.KeyTechnologies,
				Responsibilities: nonBlank(project.ProjectResponsibilities),
			})
		}
		p.Employment = append(p.Employment, pj)
	}

	for _, e := range record.Education {
		p.Education = append(p.Education, PreviewEducation{EducationEntry: e, Awarded: yesNo(e.WasAwarded)})
	}

	for _, group := range record.TechnicalSkills {
		p.SkillGroups = append(p.SkillGroups, SkillLine{Label: group.Category, Skills: joinSkills(group.Skills)})
	}
	for _, category := range record.SkillCategories {
		pc := PreviewSkillCategory{SkillLine: SkillLine{Label: category.CategoryName, Skills: joinSkills(category.Skills)}}
		for _, sub := range category.SubCategories {
			pc.SubCategories = append(pc.SubCategories, SkillLine{Label: sub.Name, Skills: joinSkills(sub.Skills)})
		}
		p.SkillCategories = append(p.SkillCategories, pc)
	}

	return p
}

func previewSections(sections []types.Subsection) []PreviewSection {
	var out []PreviewSection
	for _, s := range sections {
		out = append(out, PreviewSection{Title: s.Title, Bullets: nonBlank(s.Content)})
	}
	return out
}

// HasHeader reports whether any header field is set
func (p Preview) HasHeader() bool {
	return !isBlank(p.Name) || !isBlank(p.Title) || !isBlank(p.RequisitionNumber)
}

// HasSummary reports whether the summary section has content
func (p Preview) HasSummary() bool {
	return len(p.Summary) > 0 || len(p.SummarySections) > 0
}

// HasSkills reports whether either skills form has content
func (p Preview) HasSkills() bool {
	return len(p.SkillGroups) > 0 || len(p.SkillCategories) > 0
}

// Sections lists the sections the preview shows, in display order
func (p Preview) Sections() []string {
	var out []string
	if p.HasHeader() {
		out = append(out, SectionHeader)
	}
	if p.HasSummary() {
		out = append(out, SectionSummary)
	}
	if len(p.Employment) > 0 {
		out = append(out, SectionEmployment)
	}
	if len(p.Education) > 0 {
		out = append(out, SectionEducation)
	}
	if len(p.Certifications) > 0 {
		out = append(out, SectionCertifications)
	}
	if p.HasSkills() {
		out = append(out, SectionSkills)
	}
	return out
}
