package widget

import (
	"fmt"
	"strings"
	"time"
)

// Diagnostic describes one field that failed validation and what replaced it.
type Diagnostic struct {
	Widget      Kind
	Field       string
	Value       any
	Accepted    string
	Substituted any
}

func (d Diagnostic) String() string {
	substituted := "unset"
	if d.Substituted != nil {
		substituted = fmt.Sprintf("%v", d.Substituted)
	}
	return fmt.Sprintf("%s: invalid %s %v (accepted: %s), using %s",
		d.Widget, d.Field, d.Value, d.Accepted, substituted)
}

// ValidateMoonPhase sanitizes cfg in place and returns one diagnostic per
// replaced field. now is used when the observer date is unusable.
func ValidateMoonPhase(cfg *MoonPhaseConfig, now time.Time) []Diagnostic {
	r := &rules{kind: KindMoonPhase, now: now}
	def := moonPhaseTemplate

	r.element(&cfg.Element, def.Element)
	r.enum("format", &cfg.Format, formats, def.Format)

	s := &cfg.Style
	r.enum("style.moonStyle", &s.MoonStyle, moonStyles, def.Style.MoonStyle)
	r.enum("style.backgroundStyle", &s.BackgroundStyle, backgroundStyles, def.Style.BackgroundStyle)
	r.color("style.backgroundColor", &s.BackgroundColor, def.Style.BackgroundColor)
	r.color("style.headingColor", &s.HeadingColor, def.Style.HeadingColor)
	r.color("style.textColor", &s.TextColor, def.Style.TextColor)
	r.size("style.width", &s.Width)
	r.size("style.height", &s.Height)

	r.observer(&cfg.Observer, def.Observer)

	r.enum("view.type", &cfg.View.Type, moonViewTypes, def.View.Type)
	r.enum("view.orientation", &cfg.View.Orientation, orientations, def.View.Orientation)
	return r.diags
}

// ValidateStarChart sanitizes cfg in place and returns one diagnostic per
// replaced field. Area rules apply only to area views and the constellation
// rule only to constellation views; the inactive variant is cleared.
func ValidateStarChart(cfg *StarChartConfig, now time.Time) []Diagnostic {
	r := &rules{kind: KindStarChart, now: now}
	def := starChartTemplate

	r.element(&cfg.Element, def.Element)

	s := &cfg.Style
	r.enum("style.chartStyle", &s.ChartStyle, chartStyles, def.Style.ChartStyle)
	r.size("style.width", &s.Width)
	r.size("style.height", &s.Height)

	r.observer(&cfg.Observer, def.Observer)

	viewType := string(cfg.View.Type)
	r.enum("view.type", &viewType, starViewTypes, string(def.View.Type))
	cfg.View.Type = ViewType(viewType)

	switch cfg.View.Type {
	case ViewArea:
		validateArea(r, &cfg.View, *def.View.Area)
	case ViewConstellation:
		validateConstellation(r, &cfg.View)
	}
	return r.diags
}

func validateArea(r *rules, v *StarView, def AreaView) {
	v.Constellation = nil
	if v.Area == nil {
		r.report("view.parameters", missing, "area parameters", "defaults")
		area := def
		v.Area = &area
		return
	}
	eq := &v.Area.Position.Equatorial
	r.between("view.parameters.position.equatorial.rightAscension", &eq.RightAscension, 0, 24, def.Position.Equatorial.RightAscension)
	r.between("view.parameters.position.equatorial.declination", &eq.Declination, -90, 90, def.Position.Equatorial.Declination)
	r.between("view.parameters.zoom", &v.Area.Zoom, 1, 10, def.Zoom)
}

func validateConstellation(r *rules, v *StarView) {
	v.Area = nil
	if v.Constellation == nil {
		r.report("view.parameters.constellation", missing, "3-letter constellation code", DefaultConstellation)
		v.Constellation = &ConstellationView{Code: DefaultConstellation}
		return
	}
	code := v.Constellation.Code
	if !constellationPattern.MatchString(code) {
		r.report("view.parameters.constellation", code, "3-letter constellation code", DefaultConstellation)
		v.Constellation.Code = DefaultConstellation
		return
	}
	v.Constellation.Code = strings.ToUpper(code)
}
