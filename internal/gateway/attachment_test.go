package gateway

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/talentops/talentops/internal/schema"
)

type fakeStore struct {
	objects   map[string][]byte
	failNext  bool
	publicURL string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, publicURL: "https://files.test"}
}

func (f *fakeStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if f.failNext {
		f.failNext = false
		return errors.New("storage unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) GetURL(key string) string { return f.publicURL + "/" + key }

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func TestUploadAttachment(t *testing.T) {
	g := newTestGateway(t)
	store := newFakeStore()
	g.store = store
	ctx := context.Background()

	created, err := g.Create(ctx, schema.TableCandidates, schema.Record{"name": "Ada"}, "u1", "org1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created["id"].(string)

	updated, err := g.UploadAttachment(ctx, schema.TableCandidates, id,
		"My Resume Final.pdf", "application/pdf",
		strings.NewReader("%PDF-1.4"), 8, "u1", "org1")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	url, _ := updated["resumeUrl"].(string)
	if !strings.HasPrefix(url, "https://files.test/resumes/"+id+"/") {
		t.Errorf("resumeUrl = %q, want key namespaced under resumes/%s/", url, id)
	}
	if strings.Contains(url, " ") {
		t.Errorf("resumeUrl = %q, want whitespace normalized", url)
	}
	if !strings.HasSuffix(url, "_My_Resume_Final.pdf") {
		t.Errorf("resumeUrl = %q, want timestamp-prefixed filename", url)
	}
	if len(store.objects) != 1 {
		t.Fatalf("store has %d objects, want 1", len(store.objects))
	}

	entries := g.AuditLog(ctx, AuditFilter{EntityID: id, Action: "UPDATE"}, "org1")
	if len(entries) != 1 {
		t.Errorf("audit log has %d UPDATE entries after upload, want 1", len(entries))
	}
}

func TestUploadAttachmentFailHard(t *testing.T) {
	g, _ := newTestGatewayDB(t)
	store := newFakeStore()
	g.store = store
	ctx := context.Background()

	created, err := g.Create(ctx, schema.TableCandidates, schema.Record{"name": "Ada"}, "u1", "org1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created["id"].(string)

	store.failNext = true
	if _, err := g.UploadAttachment(ctx, schema.TableCandidates, id,
		"resume.pdf", "application/pdf", strings.NewReader("x"), 1, "u1", "org1"); err == nil {
		t.Fatal("upload with failing store succeeded, want error")
	}

	// A record that vanished between upload and update leaves the blob
	// orphaned; no cleanup happens.
	if _, err := g.UploadAttachment(ctx, schema.TableCandidates, "missing",
		"resume.pdf", "application/pdf", strings.NewReader("x"), 1, "u1", "org1"); err == nil {
		t.Fatal("upload for missing record succeeded, want error")
	}
	if len(store.objects) != 1 {
		t.Errorf("store has %d objects, want the orphaned blob kept", len(store.objects))
	}
}

func TestUploadAttachmentRejectsTables(t *testing.T) {
	g := newTestGateway(t)
	g.store = newFakeStore()
	ctx := context.Background()

	if _, err := g.UploadAttachment(ctx, "secrets", "id1", "f.pdf", "application/pdf",
		strings.NewReader("x"), 1, "u1", "org1"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("unknown table error = %v, want ErrUnknownTable", err)
	}
	if _, err := g.UploadAttachment(ctx, schema.TableJobs, "id1", "f.pdf", "application/pdf",
		strings.NewReader("x"), 1, "u1", "org1"); !errors.Is(err, ErrNoAttachments) {
		t.Errorf("no-attachment table error = %v, want ErrNoAttachments", err)
	}
}
