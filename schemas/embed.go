// Package schemas holds the JSON Schema documents describing the records this
// system exchanges.
package schemas

import _ "embed"

// ResumeRecord is the JSON Schema of the canonical resume record
//
//go:embed resume_record.schema.json
var ResumeRecord []byte

// ResumeRecordFile is the schema's file name within this directory
const ResumeRecordFile = "resume_record.schema.json"
