package templates

import (
	"testing"
)

// --- NewRenderer ---

func TestNewRenderer_Succeeds(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	if r == nil {
		t.Fatal("NewRenderer() returned nil")
	}
}

// --- Render: ListItems ---

func TestRender_ListItems(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	got, err := r.Render(ListItems, ListData{Name: "groceries", Items: []string{"milk", "eggs"}})
	if err != nil {
		t.Fatalf("Render(ListItems) failed: %v", err)
	}

	want := "<ul><li>milk</li><li>eggs</li></ul>"
	if got != want {
		t.Errorf("Render(ListItems) = %q, want %q", got, want)
	}
}

func TestRender_ListItems_Empty(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	got, err := r.Render(ListItems, ListData{Name: "empty"})
	if err != nil {
		t.Fatalf("Render(ListItems, empty) failed: %v", err)
	}
	if got != "<ul></ul>" {
		t.Errorf("Render(ListItems, empty) = %q, want %q", got, "<ul></ul>")
	}
}

func TestRender_ListItems_EscapesMarkup(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	got, err := r.Render(ListItems, ListData{Items: []string{"<script>x</script>", "salt & pepper"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "<ul><li>&lt;script&gt;x&lt;/script&gt;</li><li>salt &amp; pepper</li></ul>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

// --- Render: Unknown template ---

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	_, err = r.Render("nonexistent.html.tmpl", nil)
	if err == nil {
		t.Fatal("Render(nonexistent) should fail")
	}
}

// --- Renderer interface compliance ---

func TestEmbedRenderer_ImplementsRenderer(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	// Compile-time interface check.
	var _ Renderer = r
}
