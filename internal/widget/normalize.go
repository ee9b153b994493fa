package widget

import "time"

// MergeMoonPhase overlays in onto the moon-phase defaults. Nested records are
// merged field by field. When in supplies no observer date, now is used.
func MergeMoonPhase(in *MoonPhaseInput, now time.Time) MoonPhaseConfig {
	cfg := DefaultMoonPhase()
	cfg.Observer.Date = FormatDate(now)
	if in == nil {
		return cfg
	}

	setString(&cfg.Element, in.Element)
	setString(&cfg.Format, in.Format)
	if s := in.Style; s != nil {
		setString(&cfg.Style.MoonStyle, s.MoonStyle)
		setString(&cfg.Style.BackgroundStyle, s.BackgroundStyle)
		setString(&cfg.Style.BackgroundColor, s.BackgroundColor)
		setString(&cfg.Style.HeadingColor, s.HeadingColor)
		setString(&cfg.Style.TextColor, s.TextColor)
		setOptional(&cfg.Style.Width, s.Width)
		setOptional(&cfg.Style.Height, s.Height)
	}
	mergeObserver(&cfg.Observer, in.Observer)
	if v := in.View; v != nil {
		setString(&cfg.View.Type, v.Type)
		setString(&cfg.View.Orientation, v.Orientation)
	}
	return cfg
}

// MergeStarChart overlays in onto the star-chart defaults. The area
// parameters always start from the template so a later switch to an area
// view finds them populated; a constellation code is only present when the
// caller supplied one.
func MergeStarChart(in *StarChartInput, now time.Time) StarChartConfig {
	cfg := DefaultStarChart()
	cfg.Observer.Date = FormatDate(now)
	if in == nil {
		return cfg
	}

	setString(&cfg.Element, in.Element)
	if s := in.Style; s != nil {
		setString(&cfg.Style.ChartStyle, s.ChartStyle)
		setOptional(&cfg.Style.Width, s.Width)
		setOptional(&cfg.Style.Height, s.Height)
	}
	mergeObserver(&cfg.Observer, in.Observer)

	v := in.View
	if v == nil {
		return cfg
	}
	if v.Type != nil {
		cfg.View.Type = ViewType(*v.Type)
	}
	p := v.Parameters
	if p == nil {
		return cfg
	}
	if p.Position != nil && p.Position.Equatorial != nil {
		eq := &cfg.View.Area.Position.Equatorial
		setFloat(&eq.RightAscension, p.Position.Equatorial.RightAscension)
		setFloat(&eq.Declination, p.Position.Equatorial.Declination)
	}
	setFloat(&cfg.View.Area.Zoom, p.Zoom)
	if p.Constellation != nil {
		cfg.View.Constellation = &ConstellationView{Code: *p.Constellation}
	}
	return cfg
}

func mergeObserver(dst *Observer, in *ObserverInput) {
	if in == nil {
		return
	}
	setFloat(&dst.Latitude, in.Latitude)
	setFloat(&dst.Longitude, in.Longitude)
	setString(&dst.Date, in.Date)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setOptional(dst **string, src *string) {
	if src != nil {
		*dst = cloneString(src)
	}
}
