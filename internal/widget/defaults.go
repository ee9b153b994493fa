package widget

import "time"

// DefaultConstellation is substituted when a constellation view names no
// valid code.
const DefaultConstellation = "ORI"

// The templates are read-only. Every merge starts from a clone.
var (
	moonPhaseTemplate = MoonPhaseConfig{
		Element: "#moon-phase",
		Format:  "png",
		Style: MoonStyle{
			MoonStyle:       "default",
			BackgroundStyle: "stars",
			BackgroundColor: "black",
			HeadingColor:    "white",
			TextColor:       "white",
		},
		Observer: Observer{Latitude: 0, Longitude: 0},
		View: MoonView{
			Type:        "portrait-simple",
			Orientation: "north-up",
		},
	}

	starChartTemplate = StarChartConfig{
		Element:  "#star-chart",
		Style:    StarStyle{ChartStyle: "default"},
		Observer: Observer{Latitude: 0, Longitude: 0},
		View: StarView{
			Type: ViewArea,
			Area: &AreaView{
				Position: Position{Equatorial: Equatorial{RightAscension: 0, Declination: 0}},
				Zoom:     3,
			},
		},
	}
)

// DefaultMoonPhase returns a fresh copy of the moon-phase defaults. The
// observer date is left empty; MergeMoonPhase fills it at call time.
func DefaultMoonPhase() MoonPhaseConfig {
	return moonPhaseTemplate.clone()
}

// DefaultStarChart returns a fresh copy of the star-chart defaults.
func DefaultStarChart() StarChartConfig {
	return starChartTemplate.clone()
}

func (c MoonPhaseConfig) clone() MoonPhaseConfig {
	out := c
	out.Style.Width = cloneString(c.Style.Width)
	out.Style.Height = cloneString(c.Style.Height)
	return out
}

func (c StarChartConfig) clone() StarChartConfig {
	out := c
	out.Style.Width = cloneString(c.Style.Width)
	out.Style.Height = cloneString(c.Style.Height)
	if c.View.Area != nil {
		area := *c.View.Area
		out.View.Area = &area
	}
	if c.View.Constellation != nil {
		constellation := *c.View.Constellation
		out.View.Constellation = &constellation
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// FormatDate renders t the way observer dates are sent to the API.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
