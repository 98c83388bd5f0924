package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"
)

// errCanceled is returned when the user dismisses a dialog.
var errCanceled = errors.New("dialog canceled")

// dialogs are the native pop-ups the panel opens. They block the caller.
type dialogs interface {
	pickColor(title string, current galaxy.Color) (galaxy.Color, error)
	enterValue(title, current string) (string, error)
}

type zenityDialogs struct{}

func (zenityDialogs) pickColor(title string, current galaxy.Color) (galaxy.Color, error) {
	picked, err := zenity.SelectColor(
		zenity.Title(title),
		zenity.Color(current),
		zenity.ShowPalette(),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return galaxy.Color{}, errCanceled
		}
		return galaxy.Color{}, err
	}
	c, ok := colorful.MakeColor(picked)
	if !ok {
		return galaxy.Color{}, fmt.Errorf("%s: transparent color", title)
	}
	return c, nil
}

func (zenityDialogs) enterValue(title, current string) (string, error) {
	text, err := zenity.Entry(
		"New value for "+title,
		zenity.Title(title),
		zenity.EntryText(current),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", errCanceled
		}
		return "", err
	}
	return text, nil
}

// parseControlValue parses typed input for c and snaps it into bounds.
func parseControlValue(c galaxy.Control, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.Name, err)
	}
	return c.Snap(v), nil
}

// formatControlValue prints a value with the precision of its step.
func formatControlValue(c galaxy.Control, v float64) string {
	if c.Integer {
		return strconv.Itoa(int(v))
	}
	decimals := 0
	if c.Step > 0 && c.Step < 1 {
		decimals = int(math.Ceil(-math.Log10(c.Step) - 1e-9))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
