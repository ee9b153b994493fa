package widget

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMoon() MoonPhaseConfig {
	return MergeMoonPhase(nil, fixedNow)
}

func validStar() StarChartConfig {
	return MergeStarChart(nil, fixedNow)
}

func TestValidateMoonPhase_DefaultsAreValid(t *testing.T) {
	cfg := validMoon()
	assert.Empty(t, ValidateMoonPhase(&cfg, fixedNow))

	star := validStar()
	assert.Empty(t, ValidateStarChart(&star, fixedNow))
}

func TestValidateMoonPhase_NumericRanges(t *testing.T) {
	tests := []struct {
		name  string
		field func(*MoonPhaseConfig) *float64
		value float64
		want  float64
		diag  bool
	}{
		{"latitude low bound", func(c *MoonPhaseConfig) *float64 { return &c.Observer.Latitude }, -90, -90, false},
		{"latitude high bound", func(c *MoonPhaseConfig) *float64 { return &c.Observer.Latitude }, 90, 90, false},
		{"latitude above", func(c *MoonPhaseConfig) *float64 { return &c.Observer.Latitude }, 90.01, 0, true},
		{"latitude NaN", func(c *MoonPhaseConfig) *float64 { return &c.Observer.Latitude }, math.NaN(), 0, true},
		{"longitude low bound", func(c *MoonPhaseConfig) *float64 { return &c.Observer.Longitude }, -180, -180, false},
		{"longitude below", func(c *MoonPhaseConfig) *float64 { return &c.Observer.Longitude }, -181, 0, true},
		{"longitude inside", func(c *MoonPhaseConfig) *float64 { return &c.Observer.Longitude }, 79.88956, 79.88956, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validMoon()
			*tt.field(&cfg) = tt.value
			diags := ValidateMoonPhase(&cfg, fixedNow)
			assert.Equal(t, tt.want, *tt.field(&cfg))
			assert.Equal(t, tt.diag, len(diags) == 1, "diagnostics: %v", diags)
		})
	}
}

func TestValidateStarChart_AreaRanges(t *testing.T) {
	tests := []struct {
		name  string
		set   func(*AreaView)
		get   func(*AreaView) float64
		want  float64
		field string
	}{
		{"ra upper bound", func(a *AreaView) { a.Position.Equatorial.RightAscension = 24 }, func(a *AreaView) float64 { return a.Position.Equatorial.RightAscension }, 24, ""},
		{"ra lower bound", func(a *AreaView) { a.Position.Equatorial.RightAscension = 0 }, func(a *AreaView) float64 { return a.Position.Equatorial.RightAscension }, 0, ""},
		{"ra negative", func(a *AreaView) { a.Position.Equatorial.RightAscension = -1 }, func(a *AreaView) float64 { return a.Position.Equatorial.RightAscension }, 0, "view.parameters.position.equatorial.rightAscension"},
		{"dec upper bound", func(a *AreaView) { a.Position.Equatorial.Declination = 90 }, func(a *AreaView) float64 { return a.Position.Equatorial.Declination }, 90, ""},
		{"dec lower bound", func(a *AreaView) { a.Position.Equatorial.Declination = -90 }, func(a *AreaView) float64 { return a.Position.Equatorial.Declination }, -90, ""},
		{"dec below", func(a *AreaView) { a.Position.Equatorial.Declination = -91 }, func(a *AreaView) float64 { return a.Position.Equatorial.Declination }, 0, "view.parameters.position.equatorial.declination"},
		{"zoom lower bound", func(a *AreaView) { a.Zoom = 1 }, func(a *AreaView) float64 { return a.Zoom }, 1, ""},
		{"zoom zero", func(a *AreaView) { a.Zoom = 0 }, func(a *AreaView) float64 { return a.Zoom }, 3, "view.parameters.zoom"},
		{"zoom too large", func(a *AreaView) { a.Zoom = 11 }, func(a *AreaView) float64 { return a.Zoom }, 3, "view.parameters.zoom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStar()
			tt.set(cfg.View.Area)
			diags := ValidateStarChart(&cfg, fixedNow)
			assert.Equal(t, tt.want, tt.get(cfg.View.Area))
			if tt.field == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, tt.field, diags[0].Field)
		})
	}
}

func TestValidateMoonPhase_Enums(t *testing.T) {
	tests := []struct {
		name  string
		field func(*MoonPhaseConfig) *string
		value string
		want  string
	}{
		{"format svg", func(c *MoonPhaseConfig) *string { return &c.Format }, "svg", "svg"},
		{"format jpeg", func(c *MoonPhaseConfig) *string { return &c.Format }, "jpeg", "png"},
		{"format is case-sensitive", func(c *MoonPhaseConfig) *string { return &c.Format }, "SVG", "png"},
		{"moon style realistic", func(c *MoonPhaseConfig) *string { return &c.Style.MoonStyle }, "realistic", "realistic"},
		{"moon style unknown", func(c *MoonPhaseConfig) *string { return &c.Style.MoonStyle }, "cartoon", "default"},
		{"background transparent", func(c *MoonPhaseConfig) *string { return &c.Style.BackgroundStyle }, "transparent", "transparent"},
		{"background unknown", func(c *MoonPhaseConfig) *string { return &c.Style.BackgroundStyle }, "Solid", "stars"},
		{"view landscape", func(c *MoonPhaseConfig) *string { return &c.View.Type }, "landscape-detailed", "landscape-detailed"},
		{"view unknown", func(c *MoonPhaseConfig) *string { return &c.View.Type }, "square", "portrait-simple"},
		{"orientation south", func(c *MoonPhaseConfig) *string { return &c.View.Orientation }, "south-up", "south-up"},
		{"orientation unknown", func(c *MoonPhaseConfig) *string { return &c.View.Orientation }, "east-up", "north-up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validMoon()
			*tt.field(&cfg) = tt.value
			diags := ValidateMoonPhase(&cfg, fixedNow)
			assert.Equal(t, tt.want, *tt.field(&cfg))
			assert.Equal(t, tt.value != tt.want, len(diags) == 1)
		})
	}
}

func TestValidateStarChart_ChartStyle(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"default", "default"},
		{"inverted", "inverted"},
		{"navy", "navy"},
		{"red", "red"},
		{"sepia", "default"},
		{"Navy", "default"},
		{"", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := validStar()
			cfg.Style.ChartStyle = tt.value
			diags := ValidateStarChart(&cfg, fixedNow)
			assert.Equal(t, tt.want, cfg.Style.ChartStyle)
			if tt.value == tt.want {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, "style.chartStyle", diags[0].Field)
		})
	}
}

func TestValidateMoonPhase_Colors(t *testing.T) {
	for _, ok := range []string{"black", "RebeccaPurple", "transparent", "currentColor", "#fff", "#FFFFFF80", "rgb(10, 20, 30)", "rgba(0,0,0,0.5)", "hsl(120deg 50% 50%)", "hsla(210, 40%, 30%, .8)"} {
		cfg := validMoon()
		cfg.Style.HeadingColor = ok
		assert.Empty(t, ValidateMoonPhase(&cfg, fixedNow), ok)
		assert.Equal(t, ok, cfg.Style.HeadingColor)
	}
	for _, bad := range []string{"", "#ggg", "#12345", "red; background: url(x)", "rgb(1,2,3", "notacolor", "rgb(,,,)", "rgb(1)", "hsl(deg%)"} {
		cfg := validMoon()
		cfg.Style.TextColor = bad
		diags := ValidateMoonPhase(&cfg, fixedNow)
		require.Len(t, diags, 1, bad)
		assert.Equal(t, "white", cfg.Style.TextColor)
		assert.Equal(t, "style.textColor", diags[0].Field)
	}
}

func TestValidate_SizesAreDroppedNotDefaulted(t *testing.T) {
	cfg := validMoon()
	cfg.Style.Width = String("320px")
	cfg.Style.Height = String("tall")
	diags := ValidateMoonPhase(&cfg, fixedNow)

	require.Len(t, diags, 1)
	assert.Equal(t, "style.height", diags[0].Field)
	assert.Nil(t, diags[0].Substituted)
	assert.Nil(t, cfg.Style.Height)
	require.NotNil(t, cfg.Style.Width)
	assert.Equal(t, "320px", *cfg.Style.Width)

	star := validStar()
	star.Style.Width = String("50%")
	star.Style.Height = String("12 px")
	diags = ValidateStarChart(&star, fixedNow)
	require.Len(t, diags, 1)
	assert.Nil(t, star.Style.Height)
	assert.Equal(t, "50%", *star.Style.Width)
}

func TestValidate_Dates(t *testing.T) {
	for _, ok := range []string{"2024-02-29", "2024-02-29T10:15", "2024-02-29T10:15:30Z", "2024-02-29T10:15:30.123+05:30", "2024-02-29 10:15:30"} {
		cfg := validMoon()
		cfg.Observer.Date = ok
		assert.Empty(t, ValidateMoonPhase(&cfg, fixedNow), ok)
		assert.Equal(t, ok, cfg.Observer.Date)
	}
	for _, bad := range []string{"yesterday", "2023-02-29", "2024-13-01", "24-01-01", "2024-01-01T25:00"} {
		cfg := validMoon()
		cfg.Observer.Date = bad
		diags := ValidateMoonPhase(&cfg, fixedNow)
		require.Len(t, diags, 1, bad)
		assert.Equal(t, FormatDate(fixedNow), cfg.Observer.Date)
	}
}

func TestValidateStarChart_ConstellationWithoutCode(t *testing.T) {
	cfg := MergeStarChart(&StarChartInput{View: &StarViewInput{Type: String("constellation")}}, fixedNow)
	diags := ValidateStarChart(&cfg, fixedNow)

	require.Len(t, diags, 1)
	assert.Equal(t, "view.parameters.constellation", diags[0].Field)
	require.NotNil(t, cfg.View.Constellation)
	assert.Equal(t, "ORI", cfg.View.Constellation.Code)
	assert.Nil(t, cfg.View.Area)
}

func TestValidateStarChart_ConstellationCodeUpperCased(t *testing.T) {
	cfg := MergeStarChart(&StarChartInput{View: &StarViewInput{
		Type:       String("constellation"),
		Parameters: &ViewParametersInput{Constellation: String("tau")},
	}}, fixedNow)
	diags := ValidateStarChart(&cfg, fixedNow)

	assert.Empty(t, diags)
	assert.Equal(t, "TAU", cfg.View.Constellation.Code)
}

func TestValidateStarChart_BadConstellationCode(t *testing.T) {
	for _, bad := range []string{"orion", "o1", "", "UMa "} {
		cfg := MergeStarChart(&StarChartInput{View: &StarViewInput{
			Type:       String("constellation"),
			Parameters: &ViewParametersInput{Constellation: String(bad)},
		}}, fixedNow)
		diags := ValidateStarChart(&cfg, fixedNow)
		require.Len(t, diags, 1, bad)
		assert.Equal(t, "ORI", cfg.View.Constellation.Code)
	}
}

func TestValidateStarChart_RulesFollowViewType(t *testing.T) {
	// An invalid zoom is ignored for a constellation view.
	cfg := MergeStarChart(&StarChartInput{View: &StarViewInput{
		Type:       String("constellation"),
		Parameters: &ViewParametersInput{Constellation: String("cyg"), Zoom: Float(99)},
	}}, fixedNow)
	assert.Empty(t, ValidateStarChart(&cfg, fixedNow))
	assert.Nil(t, cfg.View.Area)

	// A constellation code is ignored for an area view.
	cfg = MergeStarChart(&StarChartInput{View: &StarViewInput{
		Parameters: &ViewParametersInput{Constellation: String("not a code")},
	}}, fixedNow)
	assert.Empty(t, ValidateStarChart(&cfg, fixedNow))
	assert.Nil(t, cfg.View.Constellation)
	assert.NotNil(t, cfg.View.Area)
}

func TestValidateStarChart_UnknownViewTypeFallsBackToArea(t *testing.T) {
	cfg := MergeStarChart(&StarChartInput{View: &StarViewInput{Type: String("Area")}}, fixedNow)
	diags := ValidateStarChart(&cfg, fixedNow)

	require.Len(t, diags, 1)
	assert.Equal(t, "view.type", diags[0].Field)
	assert.Equal(t, ViewArea, cfg.View.Type)
	require.NotNil(t, cfg.View.Area)
}

func TestValidate_Idempotent(t *testing.T) {
	moon := MergeMoonPhase(&MoonPhaseInput{
		Format:   String("gif"),
		Style:    &MoonStyleInput{Width: String("bad"), TextColor: String("#zzz")},
		Observer: &ObserverInput{Latitude: Float(200), Date: String("soon")},
	}, fixedNow)
	ValidateMoonPhase(&moon, fixedNow)
	once := moon
	assert.Empty(t, ValidateMoonPhase(&moon, fixedNow))
	assert.Equal(t, once, moon)

	star := MergeStarChart(&StarChartInput{View: &StarViewInput{
		Type:       String("constellation"),
		Parameters: &ViewParametersInput{Constellation: String("lyr")},
	}}, fixedNow)
	ValidateStarChart(&star, fixedNow)
	first, err := json.Marshal(star)
	require.NoError(t, err)
	assert.Empty(t, ValidateStarChart(&star, fixedNow))
	second, err := json.Marshal(star)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestValidate_EmptyElementFallsBack(t *testing.T) {
	cfg := validMoon()
	cfg.Element = "  "
	diags := ValidateMoonPhase(&cfg, fixedNow)
	require.Len(t, diags, 1)
	assert.Equal(t, "#moon-phase", cfg.Element)
}

func TestDiagnostic_String(t *testing.T) {
	cfg := validMoon()
	cfg.Observer.Latitude = 120
	diags := ValidateMoonPhase(&cfg, fixedNow)
	require.Len(t, diags, 1)

	text := diags[0].String()
	for _, want := range []string{"moon-phase", "observer.latitude", "120", "[-90, 90]", "using 0"} {
		assert.True(t, strings.Contains(text, want), "%q missing %q", text, want)
	}

	cfg = validMoon()
	cfg.Style.Width = String("wide")
	diags = ValidateMoonPhase(&cfg, fixedNow)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].String(), "using unset")
}

func TestStarView_MarshalJSON(t *testing.T) {
	star := validStar()
	raw, err := json.Marshal(star.View)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"area","parameters":{"position":{"equatorial":{"rightAscension":0,"declination":0}},"zoom":3}}`, string(raw))

	star.View = StarView{Type: ViewConstellation, Constellation: &ConstellationView{Code: "ORI"}}
	raw, err = json.Marshal(star.View)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"constellation","parameters":{"constellation":"ORI"}}`, string(raw))

	_, err = json.Marshal(StarView{Type: "bogus"})
	assert.Error(t, err)
}
