// Package parsing converts loosely shaped resume extraction payloads into the
// canonical types.ResumeRecord.
package parsing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

const rootPath = "(root)"

// Options controls optional cleanup applied while normalizing
type Options struct {
	// StandardizeFormats strips bullet glyphs from list items and rewrites
	// dates and locations into the house format.
	StandardizeFormats bool
}

// Normalize converts any JSON-representable value into a canonical record.
// It never fails: unusable input yields the all-empty record.
func Normalize(raw any) types.ResumeRecord {
	record, _ := NormalizeWithOptions(raw, Options{})
	return record
}

// NormalizeWithDiagnostics behaves like Normalize and also reports every
// coercion applied to the input.
func NormalizeWithDiagnostics(raw any) (types.ResumeRecord, Diagnostics) {
	return NormalizeWithOptions(raw, Options{})
}

// NormalizeJSON decodes data keeping object key order and normalizes it.
// Invalid JSON yields the all-empty record.
func NormalizeJSON(data []byte) types.ResumeRecord {
	record, _ := NormalizeJSONWithOptions(data, Options{})
	return record
}

// NormalizeJSONWithDiagnostics is the byte-level twin of NormalizeWithDiagnostics.
func NormalizeJSONWithDiagnostics(data []byte) (types.ResumeRecord, Diagnostics) {
	return NormalizeJSONWithOptions(data, Options{})
}

// NormalizeJSONWithOptions decodes data and normalizes it with opts.
func NormalizeJSONWithOptions(data []byte, opts Options) (types.ResumeRecord, Diagnostics) {
	raw, err := DecodeJSON(data)
	if err != nil {
		return types.NewResumeRecord(), Diagnostics{{Path: rootPath, Message: err.Error()}}
	}
	return NormalizeWithOptions(raw, opts)
}

// NormalizeWithOptions is the full-featured entry point. Panics raised while
// walking the input are recovered into the all-empty record.
func NormalizeWithOptions(raw any, opts Options) (record types.ResumeRecord, diags Diagnostics) {
	defer func() {
		if r := recover(); r != nil {
			record = types.NewResumeRecord()
			diags = append(diags, Diagnostic{Path: rootPath, Message: fmt.Sprintf("normalization aborted: %v", r)})
		}
	}()

	switch t := raw.(type) {
	case []byte:
		return NormalizeJSONWithOptions(t, opts)
	case json.RawMessage:
		return NormalizeJSONWithOptions(t, opts)
	case types.ResumeRecord, *types.ResumeRecord:
		data, err := json.Marshal(t)
		if err != nil {
			return types.NewResumeRecord(), Diagnostics{{Path: rootPath, Message: err.Error()}}
		}
		return NormalizeJSONWithOptions(data, opts)
	}

	n := &normalizer{opts: opts, diags: Diagnostics{}}
	record = n.record(raw)
	return record, n.diags
}

type normalizer struct {
	opts  Options
	diags Diagnostics
}

func (n *normalizer) note(path, format string, args ...any) {
	n.diags = append(n.diags, Diagnostic{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (n *normalizer) record(raw any) types.ResumeRecord {
	record := types.NewResumeRecord()

	obj, ok := asObject(raw)
	if !ok {
		n.note(rootPath, "expected object, got %s; using empty resume", kindOf(raw))
		return record
	}

	record.Name = n.str(obj, "name", "name")
	record.Title = n.str(obj, "title", "title")
	record.RequisitionNumber = n.str(obj, "requisitionNumber", "requisitionNumber")
	record.ProfessionalSummary = n.bullets(obj, "professionalSummary", "professionalSummary")

	canonical := n.subsections(obj, "summarySections", "summarySections")
	legacy := n.subsections(obj, "subsections", "subsections")
	if len(canonical) == 0 && len(legacy) > 0 {
		n.note("summarySections", "filled from legacy subsections")
		canonical = legacy
	}
	record.SummarySections = canonical
	record.Subsections = types.CloneSubsections(canonical)

	n.objects(obj, "employmentHistory", "employmentHistory", func(item *object, path string) {
		record.EmploymentHistory = append(record.EmploymentHistory, n.employment(item, path))
	})
	n.objects(obj, "education", "education", func(item *object, path string) {
		record.Education = append(record.Education, n.education(item, path))
	})
	n.objects(obj, "certifications", "certifications", func(item *object, path string) {
		record.Certifications = append(record.Certifications, n.certification(item, path))
	})

	record.TechnicalSkills = n.technicalSkills(obj)
	n.objects(obj, "skillCategories", "skillCategories", func(item *object, path string) {
		record.SkillCategories = append(record.SkillCategories, n.skillCategory(item, path))
	})

	return record
}

func (n *normalizer) employment(obj *object, path string) types.EmploymentEntry {
	entry := types.EmploymentEntry{
		CompanyName:      n.str(obj, "companyName", path+".companyName"),
		RoleName:         n.str(obj, "roleName", path+".roleName"),
		WorkPeriod:       n.period(n.str(obj, "workPeriod", path+".workPeriod")),
		Location:         n.location(n.str(obj, "location", path+".location")),
		KeyTechnologies:  n.str(obj, "keyTechnologies", path+".keyTechnologies"),
		Responsibilities: n.bullets(obj, "responsibilities", path+".responsibilities"),
		Projects:         []types.Project{},
		Subsections:      n.subsections(obj, "subsections", path+".subsections"),
	}
	n.objects(obj, "projects", path+".projects", func(item *object, itemPath string) {
		entry.Projects = append(entry.Projects, types.Project{
			ProjectName:             n.str(item, "projectName", itemPath+".projectName"),
			ProjectLocation:         n.str(item, "projectLocation", itemPath+".projectLocation"),
			KeyTechnologies:         n.str(item, "keyTechnologies", itemPath+".keyTechnologies"),
			Period:                  n.period(n.str(item, "period", itemPath+".period")),
			ProjectResponsibilities: n.bullets(item, "projectResponsibilities", itemPath+".projectResponsibilities"),
		})
	})
	return entry
}

func (n *normalizer) education(obj *object, path string) types.EducationEntry {
	return types.EducationEntry{
		Degree:      n.str(obj, "degree", path+".degree"),
		AreaOfStudy: n.str(obj, "areaOfStudy", path+".areaOfStudy"),
		School:      n.str(obj, "school", path+".school"),
		Location:    n.location(n.str(obj, "location", path+".location")),
		Date:        n.period(n.str(obj, "date", path+".date")),
		WasAwarded:  n.awarded(obj, path+".wasAwarded"),
	}
}

func (n *normalizer) certification(obj *object, path string) types.CertificationEntry {
	return types.CertificationEntry{
		Name:                n.str(obj, "name", path+".name"),
		IssuedBy:            n.str(obj, "issuedBy", path+".issuedBy"),
		DateObtained:        n.period(n.str(obj, "dateObtained", path+".dateObtained")),
		CertificationNumber: n.str(obj, "certificationNumber", path+".certificationNumber"),
		ExpirationDate:      n.period(n.str(obj, "expirationDate", path+".expirationDate")),
	}
}

func (n *normalizer) skillCategory(obj *object, path string) types.SkillCategory {
	category := types.SkillCategory{
		CategoryName:  n.str(obj, "categoryName", path+".categoryName"),
		Skills:        n.stringList(obj, "skills", path+".skills"),
		SubCategories: []types.SubCategory{},
	}
	n.objects(obj, "subCategories", path+".subCategories", func(item *object, itemPath string) {
		category.SubCategories = append(category.SubCategories, types.SubCategory{
			Name:   n.str(item, "name", itemPath+".name"),
			Skills: n.stringList(item, "skills", itemPath+".skills"),
		})
	})
	return category
}

func (n *normalizer) technicalSkills(obj *object) types.TechnicalSkills {
	skills := types.TechnicalSkills{}
	v, ok := obj.get("technicalSkills")
	if !ok || v == nil {
		return skills
	}
	mapping, ok := asObject(v)
	if !ok {
		n.note("technicalSkills", "expected object, got %s; using empty mapping", kindOf(v))
		return skills
	}
	for _, category := range mapping.keys {
		path := fmt.Sprintf("technicalSkills[%q]", category)
		skills = skills.Set(category, n.list(mapping.values[category], path))
	}
	return skills
}

func (n *normalizer) subsections(obj *object, key, path string) []types.Subsection {
	out := []types.Subsection{}
	n.objects(obj, key, path, func(item *object, itemPath string) {
		out = append(out, types.Subsection{
			Title:   n.str(item, "title", itemPath+".title"),
			Content: n.bullets(item, "content", itemPath+".content"),
		})
	})
	return out
}

// objects walks a list of nested entities. A lone object is treated as a
// one-element list; elements that are not objects are dropped.
func (n *normalizer) objects(obj *object, key, path string, fn func(item *object, itemPath string)) {
	v, ok := obj.get(key)
	if !ok || v == nil {
		return
	}

	if single, ok := asObject(v); ok {
		n.note(path, "wrapped lone object in a list")
		fn(single, path+"[0]")
		return
	}

	items, ok := asList(v)
	if !ok {
		n.note(path, "expected array, got %s; using empty list", kindOf(v))
		return
	}
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		itemObj, ok := asObject(item)
		if !ok {
			n.note(itemPath, "dropped %s element, expected object", kindOf(item))
			continue
		}
		fn(itemObj, itemPath)
	}
}

// str reads a scalar string field. Anything but a string becomes "".
func (n *normalizer) str(obj *object, key, path string) string {
	v, ok := obj.get(key)
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		n.note(path, "expected string, got %s; using empty string", kindOf(v))
		return ""
	}
	return s
}

// stringList reads a string list field.
func (n *normalizer) stringList(obj *object, key, path string) []string {
	v, ok := obj.get(key)
	if !ok {
		return []string{}
	}
	return n.list(v, path)
}

// bullets reads a string list field holding bullet text.
func (n *normalizer) bullets(obj *object, key, path string) []string {
	items := n.stringList(obj, key, path)
	if n.opts.StandardizeFormats {
		for i, item := range items {
			items[i] = StripBulletPrefix(item)
		}
	}
	return items
}

func (n *normalizer) list(v any, path string) []string {
	out := []string{}
	if v == nil {
		return out
	}

	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			n.note(path, "blank string where a list was expected; using empty list")
			return out
		}
		n.note(path, "wrapped lone string in a list")
		return append(out, s)
	}

	items, ok := asList(v)
	if !ok {
		n.note(path, "expected array, got %s; using empty list", kindOf(v))
		return out
	}
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case bool:
			n.note(itemPath, "converted boolean to text")
			out = append(out, strconv.FormatBool(t))
		default:
			if text, _, ok := numberValue(item); ok {
				n.note(itemPath, "converted number to text")
				out = append(out, text)
				continue
			}
			n.note(itemPath, "dropped %s element, expected string", kindOf(item))
		}
	}
	return out
}

// awarded reads wasAwarded, which defaults to true unless explicitly negative.
func (n *normalizer) awarded(obj *object, path string) bool {
	v, ok := obj.get("wasAwarded")
	if !ok || v == nil {
		return true
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		n.note(path, "converted string %q to boolean", t)
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "no", "n", "false", "0":
			return false
		}
		return true
	default:
		if _, nonZero, ok := numberValue(v); ok {
			n.note(path, "converted number to boolean")
			return nonZero
		}
		n.note(path, "expected boolean, got %s; using true", kindOf(v))
		return true
	}
}

func (n *normalizer) period(s string) string {
	if !n.opts.StandardizeFormats {
		return s
	}
	return NormalizeWorkPeriod(s)
}

func (n *normalizer) location(s string) string {
	if !n.opts.StandardizeFormats {
		return s
	}
	return NormalizeLocation(s)
}
