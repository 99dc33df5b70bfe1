package filter

import (
	"testing"

	"github.com/pfrederiksen/ticketwatch/internal/event"
)

func TestIsSoldOut(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"lowercase phrase", "Sala 2 · entradas agotadas", true},
		{"uppercase phrase", "ENTRADAS AGOTADAS", true},
		{"mixed case", "¡Entradas Agotadas!", true},
		{"available", "Compra tus entradas", false},
		{"partial phrase", "entradas casi agotadas", false},
		{"empty text", "", false},
		{"phrase split by whitespace", "entradas\nagotadas", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := &event.Event{Text: tt.text}
			if got := IsSoldOut(evt); got != tt.want {
				t.Errorf("IsSoldOut(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	events := []*event.Event{
		{Title: "A", Text: "Quedan entradas"},
		{Title: "B", Text: "ENTRADAS AGOTADAS"},
		{Title: "C", Text: "Último pase"},
		{Title: "D", Text: "entradas agotadas"},
	}

	got := Available(events)

	want := []string{"A", "C"}
	if len(got) != len(want) {
		t.Fatalf("Available() returned %d events, want %d", len(got), len(want))
	}
	for i, evt := range got {
		if evt.Title != want[i] {
			t.Errorf("Available()[%d].Title = %q, want %q", i, evt.Title, want[i])
		}
	}
}

func TestAvailable_Empty(t *testing.T) {
	if got := Available(nil); got == nil || len(got) != 0 {
		t.Errorf("Available(nil) = %v, want empty slice", got)
	}

	allSoldOut := []*event.Event{{Text: "Entradas agotadas"}, {Text: "entradas AGOTADAS"}}
	if got := Available(allSoldOut); len(got) != 0 {
		t.Errorf("Available() returned %d events, want 0", len(got))
	}
}
