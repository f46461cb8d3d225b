package services

import "encoding/json"

// marshalAuditValues renders the changed fields of an audit entry as JSON.
// A value that cannot be marshalled yields nil rather than failing the
// operation it describes.
func marshalAuditValues(v any) *string {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}
