package schema

import (
	"reflect"
	"testing"
)

func TestToApplication_RenamesPerTable(t *testing.T) {
	tests := []struct {
		name  string
		table string
		in    Record
		want  Record
	}{
		{
			name:  "jobs type becomes employmentType",
			table: TableJobs,
			in:    Record{"type": "full-time", "applied_date": "2025-01-01"},
			want:  Record{"employmentType": "full-time", "appliedAt": "2025-01-01"},
		},
		{
			name:  "interviews type and date",
			table: TableInterviews,
			in:    Record{"type": "technical", "date": "2025-06-01T14:30:00Z", "candidate_id": "c1"},
			want:  Record{"panelType": "technical", "scheduledAt": "2025-06-01T14:30:00Z", "candidateId": "c1"},
		},
		{
			name:  "candidates job reference",
			table: TableCandidates,
			in:    Record{"job_id": "j1", "job_title": "SRE", "resume_url": "http://x"},
			want:  Record{"jobId": "j1", "jobTitle": "SRE", "resumeUrl": "http://x"},
		},
		{
			name:  "audit entity_type becomes entity",
			table: TableAuditLog,
			in:    Record{"entity_type": "jobs", "entity_id": "j1", "user_id": "u1"},
			want:  Record{"entity": "jobs", "entityId": "j1", "userId": "u1"},
		},
		{
			name:  "legacy requirements becomes skills",
			table: TableJobs,
			in:    Record{"requirements": []any{"Go"}},
			want:  Record{"skills": []any{"Go"}},
		},
		{
			name:  "requirements kept when skills present",
			table: TableJobs,
			in:    Record{"requirements": []any{"Go"}, "skills": []any{"SQL"}},
			want:  Record{"requirements": []any{"Go"}, "skills": []any{"SQL"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToApplication(tt.in, tt.table)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToApplication() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToApplication_NotesMetadata(t *testing.T) {
	in := Record{
		"notes": "Plain text\n\n__METADATA__\n{\"mode\":\"online\",\"interviewers\":[\"a\",\"b\"]}",
	}

	got := ToApplication(in, TableInterviews)

	if got["notes"] != "Plain text" {
		t.Errorf("notes = %q, want %q", got["notes"], "Plain text")
	}
	if got["mode"] != "online" {
		t.Errorf("mode = %v, want online", got["mode"])
	}
	if !reflect.DeepEqual(got["interviewers"], []any{"a", "b"}) {
		t.Errorf("interviewers = %v, want [a b]", got["interviewers"])
	}
}

func TestToApplication_NotesMetadataMalformed(t *testing.T) {
	raw := "Plain text\n\n__METADATA__\n{not json"
	got := ToApplication(Record{"notes": raw}, TableInterviews)

	if got["notes"] != raw {
		t.Errorf("notes = %q, want raw value kept", got["notes"])
	}
	if _, ok := got["mode"]; ok {
		t.Error("mode should not be set for malformed metadata")
	}
	if _, ok := got["interviewers"]; ok {
		t.Error("interviewers should not be set for malformed metadata")
	}
}

func TestToApplication_NotesOnOtherTablesUntouched(t *testing.T) {
	raw := "body\n\n__METADATA__\n{\"mode\":\"online\"}"
	got := ToApplication(Record{"notes": raw}, TableCandidates)
	if got["notes"] != raw {
		t.Errorf("notes = %q, want untouched", got["notes"])
	}
}

func TestToStorage_ScheduledAtSplit(t *testing.T) {
	got := ToStorage(Record{"scheduledAt": "2025-06-01T14:30:00Z", "panelType": "hr"}, TableInterviews)

	if got["date"] != "2025-06-01T14:30:00Z" {
		t.Errorf("date = %v, want full combined value", got["date"])
	}
	if got["time"] != "14:30:00" {
		t.Errorf("time = %v, want 14:30:00", got["time"])
	}
	if _, ok := got["scheduledAt"]; ok {
		t.Error("scheduledAt key must be dropped from storage shape")
	}
	if _, ok := got["scheduled_at"]; ok {
		t.Error("scheduled_at key must not appear in storage shape")
	}
	if got["type"] != "hr" {
		t.Errorf("type = %v, want hr", got["type"])
	}
}

func TestToStorage_ScheduledAtWithoutTimePart(t *testing.T) {
	got := ToStorage(Record{"scheduledAt": "2025-06-01"}, TableInterviews)
	if got["date"] != "2025-06-01" || got["time"] != "2025-06-01" {
		t.Errorf("date/time = %v/%v, want value mirrored into both", got["date"], got["time"])
	}
}

func TestMapper_NilShortCircuit(t *testing.T) {
	if ToApplication(nil, TableJobs) != nil {
		t.Error("ToApplication(nil) should return nil")
	}
	if ToStorage(nil, TableJobs) != nil {
		t.Error("ToStorage(nil) should return nil")
	}
}

func TestMapper_RoundTrip(t *testing.T) {
	tests := []struct {
		table string
		rec   Record
	}{
		{TableJobs, Record{"title": "Backend Engineer", "department": "Engineering", "employmentType": "full-time", "status": "published", "applicants": 3, "skills": []any{"Go", "PostgreSQL"}}},
		{TableCandidates, Record{"name": "Ada", "email": "ada@example.com", "jobId": "j1", "jobTitle": "Backend Engineer", "stage": "applied", "appliedAt": "2025-05-01", "resumeUrl": "http://x"}},
		{TableOffers, Record{"candidateId": "c1", "status": "sent", "salary": 120000.0}},
		{TableAuditLog, Record{"entity": "jobs", "entityId": "j1", "userId": "u1", "action": "CREATE", "details": "Created jobs: x"}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			got := ToApplication(ToStorage(tt.rec, tt.table), tt.table)
			if !reflect.DeepEqual(got, tt.rec) {
				t.Errorf("round trip = %v, want %v", got, tt.rec)
			}
		})
	}
}

func TestToApplication_DecodesJSONTextFields(t *testing.T) {
	got := ToApplication(Record{"skills": `["Go","PostgreSQL"]`, "title": "SRE"}, TableJobs)
	if !reflect.DeepEqual(got["skills"], []any{"Go", "PostgreSQL"}) {
		t.Errorf("skills = %v (%T), want decoded list", got["skills"], got["skills"])
	}
	if got["title"] != "SRE" {
		t.Errorf("title = %v, want untouched", got["title"])
	}

	got = ToApplication(Record{"ratings": `{"technical":4,"communication":5}`}, TableFeedback)
	want := map[string]any{"technical": 4.0, "communication": 5.0}
	if !reflect.DeepEqual(got["ratings"], want) {
		t.Errorf("ratings = %v (%T), want decoded map", got["ratings"], got["ratings"])
	}
}

func TestToApplication_JSONTextFieldMalformedKept(t *testing.T) {
	got := ToApplication(Record{"skills": "not json"}, TableJobs)
	if got["skills"] != "not json" {
		t.Errorf("skills = %v, want malformed value kept as-is", got["skills"])
	}

	// Fields not registered as JSON text stay untouched even when they
	// happen to contain valid JSON.
	got = ToApplication(Record{"description": `["looks","like","json"]`}, TableJobs)
	if got["description"] != `["looks","like","json"]` {
		t.Errorf("description = %v, want string kept", got["description"])
	}
}

func TestPackNotes(t *testing.T) {
	packed := PackNotes("Strong candidate", "online", []string{"a", "b"})

	got := ToApplication(Record{"notes": packed}, TableInterviews)
	if got["notes"] != "Strong candidate" {
		t.Errorf("notes = %q, want %q", got["notes"], "Strong candidate")
	}
	if got["mode"] != "online" {
		t.Errorf("mode = %v, want online", got["mode"])
	}
	if !reflect.DeepEqual(got["interviewers"], []any{"a", "b"}) {
		t.Errorf("interviewers = %v, want [a b]", got["interviewers"])
	}
}

func TestPackNotes_StripsEmbeddedDelimiter(t *testing.T) {
	packed := PackNotes("sneaky __METADATA__ body", "phone", nil)

	got := ToApplication(Record{"notes": packed}, TableInterviews)
	if got["mode"] != "phone" {
		t.Errorf("mode = %v, want phone; embedded delimiter corrupted parsing", got["mode"])
	}
	if got["notes"] != "sneaky  body" {
		t.Errorf("notes = %q, want delimiter stripped from body", got["notes"])
	}
}
