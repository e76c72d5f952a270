package gptrouter

import (
	"fmt"
	"maps"
)

// Recognized metadata keys.
const (
	MetaTag             = "tag"
	MetaCreatedByUserID = "created_by_user_id"
	MetaHistoryID       = "history_id"
)

// Metadata is request bookkeeping attached to generate calls. Client
// default metadata is merged under call-site metadata.
type Metadata map[string]any

// Clone returns a shallow copy of m. A nil Metadata clones to nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// WithTag returns a copy of m with the tag set.
func (m Metadata) WithTag(tag string) Metadata {
	return m.with(MetaTag, tag)
}

// WithCreatedByUserID returns a copy of m with the creating user set.
func (m Metadata) WithCreatedByUserID(id any) Metadata {
	return m.with(MetaCreatedByUserID, id)
}

// WithHistoryID returns a copy of m with the history ID set. Any value is
// accepted; it is sent as its string form.
func (m Metadata) WithHistoryID(id any) Metadata {
	return m.with(MetaHistoryID, id)
}

func (m Metadata) with(key string, value any) Metadata {
	out := make(Metadata, len(m)+1)
	maps.Copy(out, m)
	out[key] = value
	return out
}

// MergeMetadata returns a copy of payload with the merged metadata fields
// injected. Call-site keys override defaults. When either side supplies
// metadata, created_by_user_id must resolve to a non-nil value or
// ErrMissingCreatedByUserID is returned. When neither does, no metadata
// fields are added. Top-level keys with nil values are removed.
func MergeMetadata(payload map[string]any, defaults, call Metadata) (map[string]any, error) {
	out := make(map[string]any, len(payload)+4)
	maps.Copy(out, payload)

	if len(defaults) > 0 || len(call) > 0 {
		merged := make(Metadata, len(defaults)+len(call))
		maps.Copy(merged, defaults)
		maps.Copy(merged, call)

		userID := merged[MetaCreatedByUserID]
		if userID == nil {
			return nil, ErrMissingCreatedByUserID
		}

		out["metadata"] = merged
		out["tag"] = merged[MetaTag]
		out["createdByUserId"] = userID
		if historyID := merged[MetaHistoryID]; historyID != nil {
			out["historyId"] = stringify(historyID)
		}
	}

	for k, v := range out {
		if v == nil {
			delete(out, k)
		}
	}
	return out, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
