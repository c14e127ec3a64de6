package stream

import "testing"

func TestClassify(t *testing.T) {
	t.Run("Plain Song", func(t *testing.T) {
		line := []byte(`{"title":"Bésame Mucho","artist_names":["Consuelo Velázquez"],"id":"41"}`)

		event, err := Classify(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		plain, ok := event.(PlainSong)
		if !ok {
			t.Fatalf("expected PlainSong, got %T", event)
		}
		if plain.Song.Title != "Bésame Mucho" || plain.Song.ID != "41" {
			t.Errorf("song fields lost: %+v", plain.Song)
		}
	})

	t.Run("Add Event", func(t *testing.T) {
		line := []byte(`{"action":"add","song":{"title":"Lágrimas Negras","id":"42"}}`)

		event, err := Classify(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mut, ok := event.(Mutation)
		if !ok {
			t.Fatalf("expected Mutation, got %T", event)
		}
		if mut.Op != OpAdd {
			t.Errorf("expected add op, got %s", mut.Op)
		}
		if mut.Song.ID != "42" {
			t.Errorf("expected song id 42, got %s", mut.Song.ID)
		}
	})

	t.Run("Replace Event", func(t *testing.T) {
		line := []byte(`{"action":"replace","replace_id":"42","song":{"title":"Lágrimas Negras (Remaster)","id":"43"}}`)

		event, err := Classify(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mut, ok := event.(Mutation)
		if !ok {
			t.Fatalf("expected Mutation, got %T", event)
		}
		if mut.Op != OpReplace || mut.ReplaceID != "42" || mut.Song.ID != "43" {
			t.Errorf("replace event decoded incorrectly: %+v", mut)
		}
	})

	t.Run("Replace Without ReplaceID", func(t *testing.T) {
		line := []byte(`{"action":"replace","song":{"title":"Orphan","id":"44"}}`)

		event, err := Classify(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mut, ok := event.(Mutation)
		if !ok {
			t.Fatalf("expected Mutation, got %T", event)
		}
		if mut.ReplaceID != "" {
			t.Errorf("expected empty replace id, got %q", mut.ReplaceID)
		}
	})

	t.Run("Unknown Action Falls Back To Plain Song", func(t *testing.T) {
		line := []byte(`{"action":"shuffle","title":"Still A Song","id":"45"}`)

		event, err := Classify(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := event.(PlainSong); !ok {
			t.Fatalf("expected PlainSong, got %T", event)
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		if _, err := Classify([]byte(`{"title": "unclosed`)); err == nil {
			t.Fatal("expected error for malformed line")
		}
	})

	t.Run("Malformed Embedded Song", func(t *testing.T) {
		if _, err := Classify([]byte(`{"action":"add","song":"not-an-object"}`)); err == nil {
			t.Fatal("expected error for malformed embedded song")
		}
	})
}
