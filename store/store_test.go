package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tsawler/layoutkit/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "layoutkit.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func components() []model.Component {
	headers := []string{"Item", "Qty"}
	return []model.Component{
		{
			Type: model.ComponentText,
			Page: 1,
			BBox: model.BBox{X1: 10, Y1: 700, X2: 90, Y2: 712},
			Text: &model.TextComponent{Text: "Price list"},
		},
		{
			Type: model.ComponentTable,
			Page: 2,
			BBox: model.BBox{X1: 100, Y1: 600, X2: 300, Y2: 690},
			Table: &model.TableComponent{
				Data:     model.TableData{Mode: model.DataModeArray, Rows: []model.Row{model.NewRow(headers, []string{"Apple", "3"}, false)}},
				Headers:  headers,
				Matrix:   [][]string{headers, {"Apple", "3"}},
				Origin:   model.OriginLine,
				DataMode: model.DataModeArray,
			},
		},
	}
}

func TestStore_SaveAndComponents(t *testing.T) {
	st := openTemp(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }
	ctx := context.Background()

	id, err := st.Save(ctx, "invoice.pdf", components())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	doc, err := st.Document(ctx, id)
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Name != "invoice.pdf" || doc.ComponentCount != 2 || !doc.CreatedAt.Equal(fixed) {
		t.Errorf("Document() = %+v", doc)
	}

	recs, err := st.Components(ctx, id)
	if err != nil {
		t.Fatalf("Components() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Components() returned %d records, want 2", len(recs))
	}
	if r := recs[0]; r.Seq != 0 || r.Type != model.ComponentText || r.Text != "Price list" || r.BBox.Y2 != 712 {
		t.Errorf("recs[0] = %+v", r)
	}
	if r := recs[1]; r.Type != model.ComponentTable || r.Page != 2 || r.Text != "" {
		t.Errorf("recs[1] = %+v", r)
	}

	var payload struct {
		Type   string                   `json:"type"`
		Data   []map[string]interface{} `json:"data"`
		Params struct {
			Origin string `json:"origin"`
		} `json:"params"`
	}
	if err := json.Unmarshal(recs[1].Payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload.Type != "table" || payload.Params.Origin != "line" || payload.Data[0]["Item"] != "Apple" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestStore_Documents(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	for _, name := range []string{"a.pdf", "b.pdf", "a.pdf"} {
		if _, err := st.Save(ctx, name, nil); err != nil {
			t.Fatal(err)
		}
	}

	all, err := st.Documents(ctx, "")
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	if len(all) != 3 || all[0].ID != 3 {
		t.Errorf("Documents() = %+v, want 3 newest first", all)
	}
	named, err := st.Documents(ctx, "a.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(named) != 2 {
		t.Errorf("Documents(a.pdf) = %d, want 2", len(named))
	}
}

func TestStore_Delete(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	id, err := st.Save(ctx, "x.pdf", components())
	if err != nil {
		t.Fatal(err)
	}

	if err := st.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := st.Components(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Components() after delete error = %v, want ErrNotFound", err)
	}
	var n int
	if err := st.db.QueryRow(`SELECT COUNT(*) FROM components`).Scan(&n); err != nil || n != 0 {
		t.Errorf("components left = %d, %v, want 0", n, err)
	}
	if err := st.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Memory(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	defer st.Close()
	id, err := st.Save(context.Background(), "m.pdf", components())
	if err != nil {
		t.Fatal(err)
	}
	recs, err := st.Components(context.Background(), id)
	if err != nil || len(recs) != 2 {
		t.Errorf("Components() = %d, %v, want 2", len(recs), err)
	}
}
