// Package studio renders the moon-phase and star-chart widgets by calling the
// Astronomy API studio endpoints.
//
// # Overview
//
// A widget call goes through three steps:
//
//  1. widget.Merge* completes the caller's partial input from the defaults.
//  2. widget.Validate* replaces anything out of domain; each replacement is
//     logged as a warning and never fails the call.
//  3. The executor resolves the target element, shows a loading placeholder,
//     POSTs the configuration and renders the outcome into the element.
//
// # Client Usage
//
//	client, err := studio.NewClient(studio.Credentials{BasicToken: token})
//	if err != nil {
//		log.Fatalf("init widgets: %v", err)
//	}
//
//	page := dom.NewPage("#moon-phase")
//	resp, err := client.MoonPhase(ctx, page, &widget.MoonPhaseInput{
//		Style: &widget.MoonStyleInput{MoonStyle: widget.String("sketch")},
//	}, nil)
//
// MoonPhase and StarChart block until the request is finished. GoMoonPhase
// and GoStarChart return as soon as the placeholder is shown and deliver a
// single Result on the returned channel.
//
// # API Endpoints
//
//   - POST /api/v2/studio/moon-phase
//   - POST /api/v2/studio/star-chart
//
// Requests carry Content-Type: application/json, Authorization: Basic
// <token>, X-Client-Source, X-Request-ID and a User-Agent. A successful body
// looks like {"data": {"imageUrl": "..."}}.
//
// # Outcomes
//
// Every request ends in exactly one state, and the element shows matching
// content:
//
//   - Success: one image pointing at data.imageUrl; the callback runs.
//   - ClientError (HTTP 422): "invalid parameters"; details are logged.
//   - ServerError (any other status): the status code.
//   - Timeout: the 15 second timer fired; a late response is discarded.
//   - NetworkFailure: the transport failed for any other reason.
//   - ParseFailure: a 200 or 422 body could not be decoded.
//
// Failures are returned as typed errors (RejectedError, StatusError,
// TimeoutError, NetworkError, ParseError); Classify maps an error back to its
// OutcomeKind. The success callback is never called on failure.
//
// If the element cannot be found, the call returns ElementNotFoundError
// before any network traffic.
//
// # Design Rationale
//
//   - No retries (each call is final)
//   - No caching (every call re-renders)
//   - No ordering between calls that target the same element
package studio
