package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcontent/pkg/content"
	"github.com/goliatone/go-formcontent/pkg/questions"
)

// MustQuestion builds a question from a schema record, failing the test on
// error.
func MustQuestion(t *testing.T, record map[string]any) *questions.Question {
	t.Helper()

	q, err := questions.FromRecord(record)
	if err != nil {
		t.Fatalf("build question %v: %v", record["id"], err)
	}
	return q
}

// MustSection builds a section from a manifest record.
func MustSection(t *testing.T, record map[string]any) *content.Section {
	t.Helper()

	section, err := content.NewSection(record)
	if err != nil {
		t.Fatalf("build section %v: %v", record["slug"], err)
	}
	return section
}

// MustManifest builds a numbered manifest from section records.
func MustManifest(t *testing.T, records ...map[string]any) *content.Manifest {
	t.Helper()

	manifest, err := content.NewManifest(records)
	if err != nil {
		t.Fatalf("build manifest: %v", err)
	}
	return manifest
}

// Question returns a schema record of type typ with the given extra
// properties. Later keys win.
func Question(id, typ string, props map[string]any) map[string]any {
	record := map[string]any{"id": id, "type": typ}
	for key, value := range props {
		record[key] = value
	}
	return record
}

// TextQuestions returns text question records whose slug is their id.
func TextQuestions(ids ...string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = Question(id, questions.TypeText, map[string]any{
			"question": "Question " + id,
			"slug":     id,
		})
	}
	return out
}

// ContentFS returns an in-memory content directory from path → YAML body.
func ContentFS(files map[string]string) fstest.MapFS {
	out := make(fstest.MapFS, len(files))
	for name, body := range files {
		out[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertJSONGolden compares value, encoded as indented JSON, with the golden
// file at path. With UPDATE_GOLDENS set the golden is rewritten instead.
func AssertJSONGolden(t *testing.T, path string, value any) {
	t.Helper()

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	payload = append(payload, '\n')
	if WriteMaybeGolden(t, path, payload) {
		return
	}

	want := MustReadGoldenString(t, path)
	if diff := cmp.Diff(want, string(payload)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}
