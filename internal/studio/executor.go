package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/AstronomyAPI/Widgets/internal/dom"
	"github.com/AstronomyAPI/Widgets/internal/logger"
	"github.com/AstronomyAPI/Widgets/internal/widget"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// request is one sanitized widget call.
type request struct {
	kind    widget.Kind
	path    string
	element string
	body    any
	alt     string
	width   *string
	height  *string
}

func (c *Client) execute(ctx context.Context, doc dom.Document, req request, onSuccess func(*ImageResponse)) (*ImageResponse, error) {
	el, log, err := c.mount(doc, req)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, el, req, log, onSuccess)
}

func (c *Client) start(ctx context.Context, doc dom.Document, req request, onSuccess func(*ImageResponse)) <-chan Result {
	out := make(chan Result, 1)
	el, log, err := c.mount(doc, req)
	if err != nil {
		out <- Result{Err: err}
		close(out)
		return out
	}
	go func() {
		defer close(out)
		resp, err := c.send(ctx, el, req, log, onSuccess)
		out <- Result{Response: resp, Err: err}
	}()
	return out
}

// mount resolves the target element and shows the loading placeholder.
func (c *Client) mount(doc dom.Document, req request) (dom.Element, logger.Logger, error) {
	log := c.log.With(
		logger.String("widget", string(req.kind)),
		logger.String("element", req.element),
	)
	if doc == nil {
		err := &ElementNotFoundError{Locator: req.element}
		log.Error("no document to render into", logger.Error(err))
		return nil, nil, err
	}
	el, ok := doc.Lookup(req.element)
	if !ok {
		err := &ElementNotFoundError{Locator: req.element}
		log.Error("target element not found, request not sent", logger.Error(err))
		return nil, nil, err
	}
	el.Replace(dom.Text{Value: MsgLoading})
	return el, log, nil
}

// send performs the request under the timer and renders the outcome.
func (c *Client) send(ctx context.Context, el dom.Element, req request, log logger.Logger, onSuccess func(*ImageResponse)) (*ImageResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := uuid.NewString()
	log = log.With(logger.String("request_id", requestID))

	started := time.Now()
	ctx, cancel := context.WithTimeoutCause(ctx, c.timeout, errTimerFired)
	defer cancel()

	resp, err := c.post(ctx, req, requestID)
	if err != nil {
		return nil, c.fail(el, log, c.transportError(ctx, err))
	}
	defer func() { _ = resp.Body.Close() }()

	log = log.With(logger.Int("status", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.fail(el, log, c.transportError(ctx, err))
	}
	// A response that lands after the timer is not processed.
	if ctx.Err() != nil {
		return nil, c.fail(el, log, c.transportError(ctx, ctx.Err()))
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var payload ImageResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, c.fail(el, log, &ParseError{Stage: StageImage, Err: err})
		}
		if payload.Data.ImageURL == "" {
			return nil, c.fail(el, log, &ParseError{Stage: StageImage, Err: errors.New("missing data.imageUrl")})
		}
		el.Replace(imageNode(payload.Data.ImageURL, req.alt, req.width, req.height))
		log.Info("widget rendered",
			logger.String("outcome", OutcomeSuccess.String()),
			logger.String("image_url", payload.Data.ImageURL),
			logger.Duration("elapsed", time.Since(started)),
		)
		if onSuccess != nil {
			onSuccess(&payload)
		}
		return &payload, nil

	case http.StatusUnprocessableEntity:
		details, err := decodeValidationDetails(body)
		if err != nil {
			return nil, c.fail(el, log, &ParseError{Stage: StageRejection, Err: err})
		}
		log.Warn("api rejected widget parameters",
			logger.String("message", details.Message),
			logger.Any("errors", details.Errors),
		)
		return nil, c.fail(el, log, &RejectedError{Details: details})

	default:
		return nil, c.fail(el, log, &StatusError{Code: resp.StatusCode})
	}
}

func (c *Client) post(ctx context.Context, req request, requestID string) (*http.Response, error) {
	payload, err := json.Marshal(req.body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", req.kind, err)
	}
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: req.path})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+c.token)
	httpReq.Header.Set("X-Client-Source", c.source)
	httpReq.Header.Set("X-Request-ID", requestID)
	httpReq.Header.Set("User-Agent", c.userAgent)
	return c.http.Do(httpReq)
}

// transportError separates the request timer from every other failure.
func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(context.Cause(ctx), errTimerFired) {
		return &TimeoutError{After: c.timeout}
	}
	return &NetworkError{Err: err}
}

// fail renders the placeholder for err, logs it and returns it.
func (c *Client) fail(el dom.Element, log logger.Logger, err error) error {
	outcome := Classify(err)
	el.Replace(dom.Text{Value: Placeholder(err)})
	log.Error("widget request failed",
		logger.String("outcome", outcome.String()),
		logger.Error(err),
	)
	return err
}
