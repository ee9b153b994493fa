package studio

import (
	"errors"
	"fmt"

	"github.com/AstronomyAPI/Widgets/internal/dom"
)

// Placeholder texts rendered into the target element.
const (
	MsgLoading         = "Loading…"
	MsgInvalidParams   = "Unable to render: invalid parameters."
	MsgUnreadableError = "Unable to read the validation errors returned by the server."
	MsgUnreadableImage = "Unable to read the server response."
	MsgTimeout         = "Request timed out."
	MsgNetwork         = "Network error. Check your connection and try again."
	msgStatusFormat    = "Request failed with status %d."
)

// Placeholder returns the text shown in the element for a failed request.
func Placeholder(err error) string {
	var (
		status *StatusError
		parse  *ParseError
	)
	switch Classify(err) {
	case OutcomeClientError:
		return MsgInvalidParams
	case OutcomeServerError:
		if errors.As(err, &status) {
			return fmt.Sprintf(msgStatusFormat, status.Code)
		}
	case OutcomeTimeout:
		return MsgTimeout
	case OutcomeNetworkFailure:
		return MsgNetwork
	case OutcomeParseFailure:
		if errors.As(err, &parse) && parse.Stage == StageRejection {
			return MsgUnreadableError
		}
		return MsgUnreadableImage
	}
	return ""
}

// imageNode builds the success content, sized from the widget style when
// the caller set a width or height.
func imageNode(src, alt string, width, height *string) dom.Image {
	img := dom.Image{Src: src, Alt: alt}
	if width != nil {
		img.Width = *width
	}
	if height != nil {
		img.Height = *height
	}
	return img
}
