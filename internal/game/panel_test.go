package game

import (
	"errors"
	"testing"

	"github.com/iburimskiy/galaxy-visualization/internal/config"
	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
)

type fakeDialogs struct {
	color    galaxy.Color
	text     string
	err      error
	colorHit int
	entryHit int
}

func (f *fakeDialogs) pickColor(string, galaxy.Color) (galaxy.Color, error) {
	f.colorHit++
	return f.color, f.err
}

func (f *fakeDialogs) enterValue(string, string) (string, error) {
	f.entryHit++
	return f.text, f.err
}

func rowCenter(row int) int {
	return rowY(row) + config.PanelRowHeight/2
}

func controlRow(t *testing.T, name string) int {
	t.Helper()
	for i, c := range galaxy.Controls {
		if c.Name == name {
			return i
		}
	}
	t.Fatalf("no control %q", name)
	return noRow
}

func TestPanelDragCommitsOnRelease(t *testing.T) {
	p := newPanel(&fakeDialogs{})
	current := galaxy.DefaultParameters()
	row := controlRow(t, "branches")
	y := rowCenter(row)
	_, x1 := trackBounds()

	_, commit, captured := p.update(pointer{x: x1, y: y, down: true, pressed: true}, current)
	if commit || !captured {
		t.Fatalf("Press should capture without committing, commit=%v captured=%v", commit, captured)
	}
	if p.draft.Branches != 20 {
		t.Errorf("Draft should preview max branches, got %d", p.draft.Branches)
	}

	// Dragging outside the panel still tracks the slider.
	_, commit, captured = p.update(pointer{x: x1 + 500, y: y + 300, down: true}, current)
	if commit || !captured {
		t.Fatalf("Drag should not commit, commit=%v captured=%v", commit, captured)
	}

	next, commit, _ := p.update(pointer{x: x1, y: y, released: true}, current)
	if !commit {
		t.Fatal("Release should commit")
	}
	if next.Branches != 20 {
		t.Errorf("Expected 20 branches, got %d", next.Branches)
	}
	if p.dragging != noRow {
		t.Error("Drag should end on release")
	}
}

func TestPanelReleaseWithoutChange(t *testing.T) {
	p := newPanel(&fakeDialogs{})
	current := galaxy.DefaultParameters()
	current.Count = 500000
	row := controlRow(t, "count")
	_, x1 := trackBounds()

	p.update(pointer{x: x1, y: rowCenter(row), down: true, pressed: true}, current)
	if _, commit, _ := p.update(pointer{x: x1, y: rowCenter(row), released: true}, current); commit {
		t.Error("Unchanged value should not commit")
	}
}

func TestPanelColorPick(t *testing.T) {
	d := &fakeDialogs{color: galaxy.MustParseColor("#00ff00")}
	p := newPanel(d)
	current := galaxy.DefaultParameters()
	row := len(galaxy.Controls) // insideColor

	next, commit, captured := p.update(pointer{x: config.PanelX + 20, y: rowCenter(row), down: true, pressed: true}, current)
	if !commit || !captured {
		t.Fatalf("Color pick should commit, commit=%v captured=%v", commit, captured)
	}
	if next.InsideColor.Hex() != "#00ff00" {
		t.Errorf("Expected #00ff00, got %s", next.InsideColor.Hex())
	}
	if d.colorHit != 1 {
		t.Errorf("Expected one dialog, got %d", d.colorHit)
	}
}

func TestPanelDialogErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "Canceled", err: errCanceled, wantErr: false},
		{name: "Failure", err: errors.New("no display"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPanel(&fakeDialogs{err: tt.err})
			current := galaxy.DefaultParameters()
			row := len(galaxy.Controls) + 1

			_, commit, _ := p.update(pointer{x: config.PanelX + 20, y: rowCenter(row), pressed: true, down: true}, current)
			if commit {
				t.Error("Failed dialog should not commit")
			}
			if (p.lastErr != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, p.lastErr)
			}
		})
	}
}

func TestPanelEntry(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		commit bool
		want   float64
	}{
		{name: "Exact value", text: "2.5", commit: true, want: 2.5},
		{name: "Clamped", text: "99", commit: true, want: 5},
		{name: "Garbage", text: "fast", commit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPanel(&fakeDialogs{text: tt.text})
			current := galaxy.DefaultParameters()
			row := controlRow(t, "spin")

			next, commit, _ := p.update(pointer{x: config.PanelX + 20, y: rowCenter(row), rightPressed: true}, current)
			if commit != tt.commit {
				t.Fatalf("Expected commit=%v, got %v", tt.commit, commit)
			}
			if commit && next.Spin != tt.want {
				t.Errorf("Expected spin %g, got %g", tt.want, next.Spin)
			}
			if !commit && p.lastErr == nil {
				t.Error("Parse failure should be reported")
			}
		})
	}
}

func TestPanelHeaderToggle(t *testing.T) {
	p := newPanel(&fakeDialogs{})
	current := galaxy.DefaultParameters()
	header := pointer{x: config.PanelX + 10, y: config.PanelY + 5, pressed: true, down: true}

	if _, _, captured := p.update(header, current); !captured || p.visible {
		t.Fatalf("Header click should collapse the panel, visible=%v", p.visible)
	}
	if row := p.rowAt(config.PanelX+10, rowCenter(0)); row != noRow {
		t.Errorf("Collapsed panel should have no rows, got %d", row)
	}
	if _, _, captured := p.update(pointer{x: config.PanelX + 10, y: rowCenter(2), pressed: true, down: true}, current); captured {
		t.Error("Clicks below a collapsed panel should reach the camera")
	}
	p.update(header, current)
	if !p.visible {
		t.Error("Second header click should expand the panel")
	}
}

func TestPanelIgnoresOutsideClicks(t *testing.T) {
	p := newPanel(&fakeDialogs{})
	current := galaxy.DefaultParameters()

	_, commit, captured := p.update(pointer{x: config.PanelX + config.PanelWidth + 50, y: 300, pressed: true, down: true}, current)
	if commit || captured {
		t.Errorf("Outside click should pass through, commit=%v captured=%v", commit, captured)
	}
}
