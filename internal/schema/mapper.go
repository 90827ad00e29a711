package schema

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/talentops/talentops/internal/logger"
)

// Record is a flat key-value row in either naming convention.
type Record map[string]any

// MetadataDelimiter separates free-text interview notes from the packed JSON
// metadata suffix. The storage schema has no columns for interview mode and
// interviewer lists, so they ride along inside the notes column.
const MetadataDelimiter = "__METADATA__"

var (
	snakeSegment = regexp.MustCompile(`_([a-z])`)
	upperLetter  = regexp.MustCompile(`[A-Z]`)
)

// ToApplication converts a storage-shape record (snake_case columns) into the
// application shape (camelCase keys), applying the per-table renames and the
// interview notes metadata split. A nil record is returned unchanged.
//
// Every input key yields exactly one output key, except the interviews notes
// special case, which can merge extra keys (mode, interviewers) out of the
// packed metadata.
func ToApplication(rec Record, table string) Record {
	if rec == nil {
		return nil
	}

	out := make(Record, len(rec))
	for key, val := range rec {
		if table == TableInterviews && key == "notes" {
			if notes, ok := val.(string); ok && strings.Contains(notes, MetadataDelimiter) {
				unpackNotes(out, notes)
				continue
			}
		}

		mapped := appKey(rec, key, table)
		out[mapped] = decodeJSONField(table, mapped, val)
	}
	return out
}

// ToStorage converts an application-shape record into the storage shape. On
// the interviews table a combined scheduledAt value is split into separate
// date and time columns and the combined key is dropped. A nil record is
// returned unchanged.
func ToStorage(rec Record, table string) Record {
	if rec == nil {
		return nil
	}

	out := make(Record, len(rec))
	for key, val := range rec {
		if table == TableInterviews && key == "scheduledAt" {
			out["date"] = val
			if s, ok := val.(string); ok && strings.Contains(s, "T") {
				out["time"] = strings.TrimSuffix(s[strings.Index(s, "T")+1:], "Z")
			} else {
				out["time"] = val
			}
			continue
		}

		out[storageKey(key, table)] = val
	}
	return out
}

// appKey resolves the application-shape name for a storage column.
func appKey(rec Record, key, table string) string {
	if renames, ok := toAppByTable[table]; ok {
		if renamed, ok := renames[key]; ok {
			return renamed
		}
	}
	if renamed, ok := toAppGlobal[key]; ok {
		return renamed
	}
	// Legacy rows carry skills under a requirements column.
	if key == "requirements" {
		if _, hasSkills := rec["skills"]; !hasSkills {
			return "skills"
		}
	}
	return snakeToCamel(key)
}

// storageKey resolves the storage column name for an application-shape key.
func storageKey(key, table string) string {
	if renames, ok := toStorageByTable[table]; ok {
		if renamed, ok := renames[key]; ok {
			return renamed
		}
	}
	if renamed, ok := toStorageGlobal[key]; ok {
		return renamed
	}
	return camelToSnake(key)
}

// decodeJSONField restores list/map values that live as JSON text in storage
// columns, per the table registry. Anything that fails to decode is kept
// as-is.
func decodeJSONField(table, key string, val any) any {
	s, ok := val.(string)
	if !ok || s == "" {
		return val
	}
	for _, field := range tables[table].JSONFields {
		if field != key {
			continue
		}
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return val
		}
		return decoded
	}
	return val
}

// unpackNotes splits a packed notes value into the cleaned text prefix and
// the decoded metadata keys. A malformed metadata suffix is logged and the
// raw notes value is kept instead; degraded data beats a failed read here.
func unpackNotes(out Record, notes string) {
	parts := strings.SplitN(notes, MetadataDelimiter+"\n", 2)
	if len(parts) != 2 {
		out["notes"] = notes
		return
	}

	var metadata map[string]any
	if err := json.Unmarshal([]byte(parts[1]), &metadata); err != nil {
		logger.Default().WithError(err).Warn("failed to parse metadata from interview notes")
		out["notes"] = notes
		return
	}

	out["notes"] = strings.TrimSpace(parts[0])
	for k, v := range metadata {
		out[k] = v
	}
}

// PackNotes combines free-text notes with interview metadata for storage.
// Any delimiter token already present in the body is stripped first so the
// suffix stays parseable on the way back out.
func PackNotes(notes, mode string, interviewers []string) string {
	body := strings.ReplaceAll(notes, MetadataDelimiter, "")
	metadata, _ := json.Marshal(map[string]any{
		"mode":         mode,
		"interviewers": interviewers,
	})
	return body + "\n\n" + MetadataDelimiter + "\n" + string(metadata)
}

// snakeToCamel uppercases every letter following an underscore.
func snakeToCamel(s string) string {
	return snakeSegment.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// camelToSnake lowercases every capital letter behind an underscore.
func camelToSnake(s string) string {
	return upperLetter.ReplaceAllStringFunc(s, func(m string) string {
		return "_" + strings.ToLower(m)
	})
}
