package domain

import (
	"encoding/json"
)

// NormalizedObject is a provider record flattened into the common shape the
// backend returns from its load endpoint. Only Type, Name and
// ParentPathOrName are displayed; the remaining fields are kept so the raw
// record survives a round trip.
type NormalizedObject struct {
	ID               string   `json:"id,omitempty"`
	Type             string   `json:"type,omitempty"`
	Directory        bool     `json:"directory,omitempty"`
	ParentPathOrName string   `json:"parent_path_or_name,omitempty"`
	ParentID         string   `json:"parent_id,omitempty"`
	Name             string   `json:"name,omitempty"`
	CreationTime     string   `json:"creation_time,omitempty"`
	LastModifiedTime string   `json:"last_modified_time,omitempty"`
	URL              string   `json:"url,omitempty"`
	Children         []string `json:"children,omitempty"`
	MimeType         string   `json:"mime_type,omitempty"`
	Delta            string   `json:"delta,omitempty"`
	DriveID          string   `json:"drive_id,omitempty"`
	Visibility       *bool    `json:"visibility,omitempty"`

	// Rest holds keys outside the known field set.
	Rest map[string]json.RawMessage `json:"-"`
}

// knownItemKeys are the JSON keys decoded into named fields.
var knownItemKeys = map[string]struct{}{
	"id": {}, "type": {}, "directory": {}, "parent_path_or_name": {}, "parent_id": {},
	"name": {}, "creation_time": {}, "last_modified_time": {}, "url": {}, "children": {},
	"mime_type": {}, "delta": {}, "drive_id": {}, "visibility": {},
}

// UnmarshalJSON decodes the known fields leniently: a field whose JSON type
// does not match is moved to Rest instead of failing the whole record.
func (o *NormalizedObject) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*o = NormalizedObject{}
	for key, value := range fields {
		if _, known := knownItemKeys[key]; !known || !o.setField(key, value) {
			if o.Rest == nil {
				o.Rest = make(map[string]json.RawMessage)
			}
			o.Rest[key] = value
		}
	}
	return nil
}

// setField decodes one known key. Returns false if the value has the wrong type.
func (o *NormalizedObject) setField(key string, value json.RawMessage) bool {
	var target any
	switch key {
	case "id":
		target = &o.ID
	case "type":
		target = &o.Type
	case "directory":
		target = &o.Directory
	case "parent_path_or_name":
		target = &o.ParentPathOrName
	case "parent_id":
		target = &o.ParentID
	case "name":
		target = &o.Name
	case "creation_time":
		target = &o.CreationTime
	case "last_modified_time":
		target = &o.LastModifiedTime
	case "url":
		target = &o.URL
	case "children":
		target = &o.Children
	case "mime_type":
		target = &o.MimeType
	case "delta":
		target = &o.Delta
	case "drive_id":
		target = &o.DriveID
	case "visibility":
		target = &o.Visibility
	default:
		return false
	}
	return json.Unmarshal(value, target) == nil
}
