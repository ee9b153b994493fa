// Package widget builds the request configuration for the moon-phase and
// star-chart widgets.
//
// # Overview
//
// A widget call starts from a partial input supplied by the host (any subset
// of fields, nil meaning "not supplied") and ends with a fully populated
// configuration whose every field lies inside its accepted domain. Two steps
// get it there:
//
//   - Merge: MergeMoonPhase / MergeStarChart overlay the input onto the
//     widget defaults, record by record. The observer date defaults to the
//     instant passed in by the caller.
//   - Validate: ValidateMoonPhase / ValidateStarChart check each field and
//     replace bad values with the default, returning one Diagnostic per
//     replacement. Validation never fails.
//
// style.width and style.height are the exception: an invalid size is dropped
// rather than defaulted, so the image falls back to its natural size.
//
// # Star-chart views
//
// StarView is a tagged union. Type selects the variant; Area holds the
// equatorial position and zoom of an area view, Constellation holds the
// three-letter code of a constellation view. After validation only the
// variant named by Type is set, and MarshalJSON emits it as
//
//	{"type": "constellation", "parameters": {"constellation": "ORI"}}
//
// # Defaults
//
// The default configurations are package-level templates that are never
// written to. DefaultMoonPhase and DefaultStarChart hand out deep copies.
package widget
