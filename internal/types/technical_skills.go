package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkillGroup is one category of the legacy flat skills mapping
type SkillGroup struct {
	Category string
	Skills   []string
}

// TechnicalSkills is the legacy mapping of category name to skills. It is kept
// as an ordered slice so category order survives a JSON round trip; it
// marshals as a JSON object.
type TechnicalSkills []SkillGroup

// Get returns the skills for a category
func (t TechnicalSkills) Get(category string) ([]string, bool) {
	for _, g := range t {
		if g.Category == category {
			return g.Skills, true
		}
	}
	return nil, false
}

// Set replaces the skills of an existing category in place, or appends a new one.
func (t TechnicalSkills) Set(category string, skills []string) TechnicalSkills {
	for i := range t {
		if t[i].Category == category {
			t[i].Skills = skills
			return t
		}
	}
	return append(t, SkillGroup{Category: category, Skills: skills})
}

// MarshalJSON encodes the groups as a JSON object in slice order.
func (t TechnicalSkills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Category)
		if err != nil {
			return nil, err
		}
		skills := g.Skills
		if skills == nil {
			skills = []string{}
		}
		value, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order. null decodes to an
// empty mapping. A repeated key keeps its first position and its last value.
func (t *TechnicalSkills) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = TechnicalSkills{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("technicalSkills: expected object, got %v", tok)
	}

	out := TechnicalSkills{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("technicalSkills: expected string key, got %v", keyTok)
		}
		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("technicalSkills[%q]: %w", key, err)
		}
		if skills == nil {
			skills = []string{}
		}
		out = out.Set(key, skills)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*t = out
	return nil
}
