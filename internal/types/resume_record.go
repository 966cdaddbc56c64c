// Package types provides type definitions for structured data used throughout the resume-formatter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeRecord is the canonical, fully-populated resume shape produced by the
// normalizer. Every collection is non-nil and every string defaults to "".
type ResumeRecord struct {
	Name                string               `json:"name"`
	Title               string               `json:"title"`
	RequisitionNumber   string               `json:"requisitionNumber"`
	ProfessionalSummary []string             `json:"professionalSummary"`
	SummarySections     []Subsection         `json:"summarySections"`
	Subsections         []Subsection         `json:"subsections"` // legacy alias of SummarySections
	EmploymentHistory   []EmploymentEntry    `json:"employmentHistory"`
	Education           []EducationEntry     `json:"education"`
	Certifications      []CertificationEntry `json:"certifications"`
	TechnicalSkills     TechnicalSkills      `json:"technicalSkills"`
	SkillCategories     []SkillCategory      `json:"skillCategories"`
}

// Subsection is a titled group of bullet points nested under the summary or a job
type Subsection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// EmploymentEntry represents one job in the employment history
type EmploymentEntry struct {
	CompanyName      string       `json:"companyName"`
	RoleName         string       `json:"roleName"`
	WorkPeriod       string       `json:"workPeriod"`
	Location         string       `json:"location"`
	KeyTechnologies  string       `json:"keyTechnologies"`
	Responsibilities []string     `json:"responsibilities"`
	Projects         []Project    `json:"projects"`
	Subsections      []Subsection `json:"subsections"`
}

// Project represents a named project performed within a job
type Project struct {
	ProjectName             string   `json:"projectName"`
	ProjectLocation         string   `json:"projectLocation"`
	KeyTechnologies         string   `json:"keyTechnologies"`
	Period                  string   `json:"period"`
	ProjectResponsibilities []string `json:"projectResponsibilities"`
}

// EducationEntry represents one degree or course of study
type EducationEntry struct {
	Degree      string `json:"degree"`
	AreaOfStudy string `json:"areaOfStudy"`
	School      string `json:"school"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	WasAwarded  bool   `json:"wasAwarded"`
}

// CertificationEntry represents a certification or professional license
type CertificationEntry struct {
	Name                string `json:"name"`
	IssuedBy            string `json:"issuedBy"`
	DateObtained        string `json:"dateObtained"`
	CertificationNumber string `json:"certificationNumber"`
	ExpirationDate      string `json:"expirationDate"`
}

// SkillCategory is one node of the nested skills taxonomy
type SkillCategory struct {
	CategoryName  string        `json:"categoryName"`
	Skills        []string      `json:"skills"`
	SubCategories []SubCategory `json:"subCategories"`
}

// SubCategory is a named skill list under a SkillCategory
type SubCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// NewResumeRecord returns the all-empty record: every string "" and every
// collection empty but non-nil.
func NewResumeRecord() ResumeRecord {
	return ResumeRecord{
		ProfessionalSummary: []string{},
		SummarySections:     []Subsection{},
		Subsections:         []Subsection{},
		EmploymentHistory:   []EmploymentEntry{},
		Education:           []EducationEntry{},
		Certifications:      []CertificationEntry{},
		TechnicalSkills:     TechnicalSkills{},
		SkillCategories:     []SkillCategory{},
	}
}

// HasSkills reports whether either skills representation carries any category.
func (r *ResumeRecord) HasSkills() bool {
	return len(r.TechnicalSkills) > 0 || len(r.SkillCategories) > 0
}

// CloneSubsections returns a deep copy so aliased fields never share backing arrays.
func CloneSubsections(in []Subsection) []Subsection {
	out := make([]Subsection, len(in))
	for i, s := range in {
		content := make([]string, len(s.Content))
		copy(content, s.Content)
		out[i] = Subsection{Title: s.Title, Content: content}
	}
	return out
}
