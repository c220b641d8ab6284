package geometry

import "testing"

func TestExplorationPercent_ZeroHeight(t *testing.T) {
	if got := ExplorationPercent(0, 0); got != 100 {
		t.Errorf("ExplorationPercent(0, 0) = %d, want 100", got)
	}
	if got := ExplorationPercent(0, 500); got != 100 {
		t.Errorf("ExplorationPercent(0, 500) = %d, want 100", got)
	}
}

func TestExplorationPercent_Proportional(t *testing.T) {
	tests := []struct {
		total float64
		seen  float64
		want  int
	}{
		{1000, 250, 25},
		{1000, 1000, 100},
		{1000, 0, 0},
		{1000, 333, 33},
		{1000, 335, 34}, // rounds, not truncates
		{800, 200, 25},
	}

	for _, tt := range tests {
		got := ExplorationPercent(tt.total, tt.seen)
		if got != tt.want {
			t.Errorf("ExplorationPercent(%v, %v) = %d, want %d", tt.total, tt.seen, got, tt.want)
		}
	}
}

func TestExplorationPercent_Capped(t *testing.T) {
	// Overlapping measurements can report more seen than exists.
	if got := ExplorationPercent(500, 1000); got != 100 {
		t.Errorf("ExplorationPercent(500, 1000) = %d, want 100", got)
	}
	if got := ExplorationPercent(1000, -50); got != 0 {
		t.Errorf("ExplorationPercent(1000, -50) = %d, want 0", got)
	}
}

func TestSectionVisibility(t *testing.T) {
	// Section spanning [500, 600).
	tests := []struct {
		name           string
		viewportBottom float64
		want           float64
	}{
		{"not reached", 400, 0},
		{"at section top", 500, 0},
		{"halfway through", 550, 50},
		{"at section bottom", 600, 100},
		{"scrolled past", 700, 100},
	}

	for _, tt := range tests {
		got := SectionVisibility(500, 100, tt.viewportBottom)
		if got != tt.want {
			t.Errorf("%s: SectionVisibility(500, 100, %v) = %v, want %v",
				tt.name, tt.viewportBottom, got, tt.want)
		}
	}
}

func TestSectionVisibility_ZeroHeight(t *testing.T) {
	if got := SectionVisibility(500, 0, 700); got != 0 {
		t.Errorf("SectionVisibility(500, 0, 700) = %v, want 0", got)
	}
}
