package widget

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a widget pipeline.
type Kind string

const (
	KindMoonPhase Kind = "moon-phase"
	KindStarChart Kind = "star-chart"
)

// Observer is the location and instant the sky is computed for.
type Observer struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date"`
}

// MoonStyle holds the rendering options of the moon-phase widget.
type MoonStyle struct {
	MoonStyle       string  `json:"moonStyle"`
	BackgroundStyle string  `json:"backgroundStyle"`
	BackgroundColor string  `json:"backgroundColor"`
	HeadingColor    string  `json:"headingColor"`
	TextColor       string  `json:"textColor"`
	Width           *string `json:"width,omitempty"`
	Height          *string `json:"height,omitempty"`
}

// MoonView selects the moon-phase layout.
type MoonView struct {
	Type        string `json:"type"`
	Orientation string `json:"orientation"`
}

// MoonPhaseConfig is a fully populated moon-phase request.
type MoonPhaseConfig struct {
	Element  string    `json:"element"`
	Format   string    `json:"format"`
	Style    MoonStyle `json:"style"`
	Observer Observer  `json:"observer"`
	View     MoonView  `json:"view"`
}

// StarStyle holds the rendering options of the star-chart widget.
type StarStyle struct {
	ChartStyle string  `json:"chartStyle"`
	Width      *string `json:"width,omitempty"`
	Height     *string `json:"height,omitempty"`
}

// ViewType discriminates StarView.
type ViewType string

const (
	ViewArea          ViewType = "area"
	ViewConstellation ViewType = "constellation"
)

// Equatorial is a position in the equatorial coordinate system. Right
// ascension is measured in hours, declination in degrees.
type Equatorial struct {
	RightAscension float64 `json:"rightAscension"`
	Declination    float64 `json:"declination"`
}

// Position wraps the coordinate system used by an area view.
type Position struct {
	Equatorial Equatorial `json:"equatorial"`
}

// AreaView centres the chart on a coordinate at the given zoom level.
type AreaView struct {
	Position Position `json:"position"`
	Zoom     float64  `json:"zoom"`
}

// ConstellationView centres the chart on a named constellation.
type ConstellationView struct {
	Code string `json:"constellation"`
}

// StarView is a tagged union keyed by Type. After validation exactly one of
// Area or Constellation is set and it matches Type.
type StarView struct {
	Type          ViewType
	Area          *AreaView
	Constellation *ConstellationView
}

// MarshalJSON encodes the active variant as {"type": ..., "parameters": ...}.
func (v StarView) MarshalJSON() ([]byte, error) {
	payload := struct {
		Type       ViewType `json:"type"`
		Parameters any      `json:"parameters,omitempty"`
	}{Type: v.Type}

	switch v.Type {
	case ViewArea:
		if v.Area != nil {
			payload.Parameters = v.Area
		}
	case ViewConstellation:
		if v.Constellation != nil {
			payload.Parameters = v.Constellation
		}
	default:
		return nil, fmt.Errorf("marshal star view: unknown type %q", v.Type)
	}
	return json.Marshal(payload)
}

// StarChartConfig is a fully populated star-chart request.
type StarChartConfig struct {
	Element  string    `json:"element"`
	Style    StarStyle `json:"style"`
	Observer Observer  `json:"observer"`
	View     StarView  `json:"view"`
}

// Partial inputs. A nil pointer means "not supplied"; Merge falls back to the
// widget default for it.

// ObserverInput is a partial Observer.
type ObserverInput struct {
	Latitude  *float64 `json:"latitude,omitempty" toml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" toml:"longitude,omitempty"`
	Date      *string  `json:"date,omitempty" toml:"date,omitempty"`
}

// MoonStyleInput is a partial MoonStyle.
type MoonStyleInput struct {
	MoonStyle       *string `json:"moonStyle,omitempty" toml:"moonStyle,omitempty"`
	BackgroundStyle *string `json:"backgroundStyle,omitempty" toml:"backgroundStyle,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty" toml:"backgroundColor,omitempty"`
	HeadingColor    *string `json:"headingColor,omitempty" toml:"headingColor,omitempty"`
	TextColor       *string `json:"textColor,omitempty" toml:"textColor,omitempty"`
	Width           *string `json:"width,omitempty" toml:"width,omitempty"`
	Height          *string `json:"height,omitempty" toml:"height,omitempty"`
}

// MoonViewInput is a partial MoonView.
type MoonViewInput struct {
	Type        *string `json:"type,omitempty" toml:"type,omitempty"`
	Orientation *string `json:"orientation,omitempty" toml:"orientation,omitempty"`
}

// MoonPhaseInput is the caller-supplied subset of a MoonPhaseConfig.
type MoonPhaseInput struct {
	Element  *string         `json:"element,omitempty" toml:"element,omitempty"`
	Format   *string         `json:"format,omitempty" toml:"format,omitempty"`
	Style    *MoonStyleInput `json:"style,omitempty" toml:"style,omitempty"`
	Observer *ObserverInput  `json:"observer,omitempty" toml:"observer,omitempty"`
	View     *MoonViewInput  `json:"view,omitempty" toml:"view,omitempty"`
}

// StarStyleInput is a partial StarStyle.
type StarStyleInput struct {
	ChartStyle *string `json:"chartStyle,omitempty" toml:"chartStyle,omitempty"`
	Width      *string `json:"width,omitempty" toml:"width,omitempty"`
	Height     *string `json:"height,omitempty" toml:"height,omitempty"`
}

// EquatorialInput is a partial Equatorial.
type EquatorialInput struct {
	RightAscension *float64 `json:"rightAscension,omitempty" toml:"rightAscension,omitempty"`
	Declination    *float64 `json:"declination,omitempty" toml:"declination,omitempty"`
}

// PositionInput is a partial Position.
type PositionInput struct {
	Equatorial *EquatorialInput `json:"equatorial,omitempty" toml:"equatorial,omitempty"`
}

// ViewParametersInput carries the parameters of either view variant. Only the
// fields of the variant selected by the view type are used.
type ViewParametersInput struct {
	Position      *PositionInput `json:"position,omitempty" toml:"position,omitempty"`
	Zoom          *float64       `json:"zoom,omitempty" toml:"zoom,omitempty"`
	Constellation *string        `json:"constellation,omitempty" toml:"constellation,omitempty"`
}

// StarViewInput is a partial StarView.
type StarViewInput struct {
	Type       *string              `json:"type,omitempty" toml:"type,omitempty"`
	Parameters *ViewParametersInput `json:"parameters,omitempty" toml:"parameters,omitempty"`
}

// StarChartInput is the caller-supplied subset of a StarChartConfig.
type StarChartInput struct {
	Element  *string         `json:"element,omitempty" toml:"element,omitempty"`
	Style    *StarStyleInput `json:"style,omitempty" toml:"style,omitempty"`
	Observer *ObserverInput  `json:"observer,omitempty" toml:"observer,omitempty"`
	View     *StarViewInput  `json:"view,omitempty" toml:"view,omitempty"`
}

// String returns a pointer to s, for building inputs inline.
func String(s string) *string { return &s }

// Float returns a pointer to f, for building inputs inline.
func Float(f float64) *float64 { return &f }
