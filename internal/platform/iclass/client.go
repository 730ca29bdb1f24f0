// Package iclass talks to the course-scheduling service. It turns transport
// failures, undecodable payloads and non-zero service statuses into the
// apperrors vocabulary so callers never see raw HTTP errors.
package iclass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"classsign/internal/platform/clock"
	apperrors "classsign/internal/platform/errors"
)

const (
	loginPath    = "/app/user/login.action"
	schedulePath = "/app/course/get_stu_course_sched.action"
	signPath     = "/app/course/stu_scan_sign.action"

	sessionHeader = "sessionId"
	dateLayout    = "20060102"
	maxBodyBytes  = 1 << 20
)

var successMarkers = []string{"成功", "SUCCESS"}

type Options struct {
	AuthBaseURL    string
	CheckinBaseURL string
	Timeout        time.Duration
	Clock          clock.Clock
	Logger         zerolog.Logger
	HTTPClient     *http.Client
}

type Client struct {
	authBase string
	signBase string
	timeout  time.Duration
	http     *http.Client
	clock    clock.Clock
	log      zerolog.Logger
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Client{
		authBase: strings.TrimRight(opts.AuthBaseURL, "/"),
		signBase: strings.TrimRight(opts.CheckinBaseURL, "/"),
		timeout:  timeout,
		http:     httpClient,
		clock:    clk,
		log:      opts.Logger,
	}
}

// Login exchanges a student identifier for the user id and session token.
func (c *Client) Login(ctx context.Context, identifier string) (userID, token string, err error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", "", fmt.Errorf("student id is required: %w", apperrors.ErrInvalidInput)
	}
	query := url.Values{}
	query.Set("password", "")
	query.Set("phone", identifier)
	query.Set("userLevel", "1")
	query.Set("verificationType", "2")
	query.Set("verificationUrl", "")

	_, body, err := c.do(ctx, "login", http.MethodGet, c.authBase+loginPath, query, nil)
	if err != nil {
		return "", "", err
	}
	env := envelope{}
	if err := json.Unmarshal(body, &env); err != nil {
		return "", "", apperrors.NewAuthError("unreadable login response: " + err.Error())
	}
	if !env.ok() {
		return "", "", apperrors.NewAuthError(env.ErrorMsg)
	}
	result := loginResult{}
	if !env.hasResult() {
		return "", "", apperrors.NewAuthError("login response has no result")
	}
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return "", "", apperrors.NewAuthError("unreadable login result: " + err.Error())
	}
	if result.ID == "" || result.SessionID == "" {
		return "", "", apperrors.NewAuthError("login response is missing id or sessionId")
	}
	return result.ID, result.SessionID, nil
}

// DaySchedule returns the courses scheduled for date. A zero status with no
// result is an empty day, not an error.
func (c *Client) DaySchedule(ctx context.Context, userID, token string, date time.Time) ([]Course, error) {
	dateStr := date.Format(dateLayout)
	query := url.Values{}
	query.Set("dateStr", dateStr)
	query.Set("id", userID)
	header := http.Header{}
	header.Set(sessionHeader, token)

	resp, body, err := c.do(ctx, "schedule "+dateStr, http.MethodGet, c.authBase+schedulePath, query, header)
	if err != nil {
		return nil, err
	}
	env := envelope{}
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("schedule %s: http %d: %w", dateStr, resp.StatusCode, apperrors.ErrNetwork)
		}
		return nil, fmt.Errorf("schedule %s: %v: %w", dateStr, err, apperrors.ErrParse)
	}
	if env.Status == nil {
		return nil, fmt.Errorf("schedule %s: response has no STATUS: %w", dateStr, apperrors.ErrParse)
	}
	if !env.ok() {
		return nil, apperrors.NewRemoteError("schedule "+dateStr, env.ErrorMsg)
	}
	if !env.hasResult() {
		return nil, nil
	}
	courses := []Course{}
	if err := json.Unmarshal(env.Result, &courses); err != nil {
		return nil, fmt.Errorf("schedule %s: decode result: %v: %w", dateStr, err, apperrors.ErrParse)
	}
	return courses, nil
}

// Sign submits one check-in. It never retries and never returns an error:
// anything short of a confirmed success is reported as ok=false with detail.
func (c *Client) Sign(ctx context.Context, userID, courseSchedID string) (ok bool, detail string) {
	query := url.Values{}
	query.Set("courseSchedId", courseSchedID)
	query.Set("timestamp", strconv.FormatInt(c.clock.Now().UnixMilli(), 10))
	query.Set("id", userID)

	resp, body, err := c.do(ctx, "sign "+courseSchedID, http.MethodPost, c.signBase+signPath, query, nil)
	if err != nil {
		return false, err.Error()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Sprintf("http %d", resp.StatusCode)
	}
	return interpretSign(body)
}

func interpretSign(body []byte) (bool, string) {
	var structured map[string]json.RawMessage
	if err := json.Unmarshal(body, &structured); err == nil {
		msg := ""
		if m, ok := structured["ERRORMSG"]; ok {
			_ = json.Unmarshal(m, &msg)
		}
		raw, present := structured["STATUS"]
		if !present {
			if msg == "" {
				msg = "response has no STATUS"
			}
			return false, msg
		}
		var st status
		if err := json.Unmarshal(raw, &st); err != nil {
			return false, "unreadable STATUS"
		}
		if string(st) == statusOK {
			return true, ""
		}
		if msg == "" {
			msg = "status " + string(st)
		}
		return false, msg
	}
	text := string(body)
	for _, marker := range successMarkers {
		if strings.Contains(text, marker) {
			return true, ""
		}
	}
	return false, "unrecognised response"
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, query url.Values, header http.Header) (*http.Response, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: build request: %v: %w", op, err, apperrors.ErrNetwork)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("op", op).Err(err).Dur("latency", time.Since(started)).Msg("request failed")
		return nil, nil, fmt.Errorf("%s: %v: %w", op, err, apperrors.ErrNetwork)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%s: read body: timeout: %w", op, apperrors.ErrNetwork)
		}
		return nil, nil, fmt.Errorf("%s: read body: %v: %w", op, err, apperrors.ErrNetwork)
	}
	c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Dur("latency", time.Since(started)).Msg("request done")
	return resp, body, nil
}
