package widget

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	formats          = []string{"png", "svg"}
	moonStyles       = []string{"default", "sketch", "realistic"}
	backgroundStyles = []string{"stars", "solid", "transparent"}
	moonViewTypes    = []string{"portrait-simple", "portrait-detailed", "landscape-simple", "landscape-detailed"}
	orientations     = []string{"north-up", "south-up"}
	chartStyles      = []string{"default", "inverted", "navy", "red"}
	starViewTypes    = []string{string(ViewArea), string(ViewConstellation)}
)

var (
	colorPattern         = regexp.MustCompile(`^(?:#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|(?:rgba?|hsla?)\(\s*[+-]?(?:\d+\.?\d*|\.\d+)(?:deg|%)?(?:\s*[,/\s]\s*[+-]?(?:\d+\.?\d*|\.\d+)(?:deg|%)?){2,3}\s*\))$`)
	sizePattern          = regexp.MustCompile(`^(?:\d+(?:\.\d+)?(?:px|em|rem|%|vw|vh|vmin|vmax|pt|cm|mm|in)|0|auto)$`)
	datePattern          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:Z|[+-]\d{2}:?\d{2})?)?$`)
	constellationPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
}

const missing = "<missing>"

// ParseDate reports whether value is an ISO-8601 date or date-time that
// names a real instant.
func ParseDate(value string) (time.Time, bool) {
	if !datePattern.MatchString(value) {
		return time.Time{}, false
	}
	normalized := strings.Replace(value, " ", "T", 1)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rules accumulates diagnostics for one validation pass.
type rules struct {
	kind  Kind
	now   time.Time
	diags []Diagnostic
}

func (r *rules) report(field string, value any, accepted string, substituted any) {
	r.diags = append(r.diags, Diagnostic{
		Widget:      r.kind,
		Field:       field,
		Value:       value,
		Accepted:    accepted,
		Substituted: substituted,
	})
}

func (r *rules) enum(field string, value *string, allowed []string, def string) {
	for _, a := range allowed {
		if *value == a {
			return
		}
	}
	r.report(field, *value, "one of "+strings.Join(allowed, ", "), def)
	*value = def
}

func (r *rules) between(field string, value *float64, lo, hi, def float64) {
	v := *value
	if !math.IsNaN(v) && v >= lo && v <= hi {
		return
	}
	r.report(field, v, fmt.Sprintf("number in [%g, %g]", lo, hi), def)
	*value = def
}

func (r *rules) color(field string, value *string, def string) {
	if isColor(*value) {
		return
	}
	r.report(field, *value, "CSS color", def)
	*value = def
}

// size drops an invalid CSS size instead of substituting a default.
func (r *rules) size(field string, value **string) {
	if *value == nil || sizePattern.MatchString(**value) {
		return
	}
	r.report(field, **value, "CSS size", nil)
	*value = nil
}

func (r *rules) date(field string, value *string) {
	if _, ok := ParseDate(*value); ok {
		return
	}
	def := FormatDate(r.now)
	r.report(field, *value, "ISO-8601 date", def)
	*value = def
}

func (r *rules) element(value *string, def string) {
	if strings.TrimSpace(*value) != "" {
		return
	}
	r.report("element", *value, "non-empty locator", def)
	*value = def
}

func (r *rules) observer(o *Observer, def Observer) {
	r.between("observer.latitude", &o.Latitude, -90, 90, def.Latitude)
	r.between("observer.longitude", &o.Longitude, -180, 180, def.Longitude)
	r.date("observer.date", &o.Date)
}
