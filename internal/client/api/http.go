package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dvelez2005/civicwatch/internal/client/models"
	"github.com/dvelez2005/civicwatch/internal/logging"
	"github.com/dvelez2005/civicwatch/internal/netx"
)

// HTTPClient is the production Client implementation over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient builds a client against baseURL (scheme://host[:port],
// trailing slash tolerated). tokens may be nil for a purely anonymous client.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

// errorResponse is the backend's error envelope.
type errorResponse struct {
	ErrorMsg string `json:"error_msg"`
}

// request performs one HTTP round trip. body (when non-nil) is serialized as
// JSON; out (when non-nil) receives the decoded 2xx payload. A 204 leaves
// out untouched. Non-2xx statuses become *StatusError; transport failures
// are wrapped into ErrConnection.
func (c *HTTPClient) request(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "endpoint", endpoint, "error", err)
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er errorResponse
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &er)
		c.log.Debug(ctx, "non-2xx response", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
		return &StatusError{
			StatusCode: resp.StatusCode,
			Kind:       kindForStatus(resp.StatusCode),
			Message:    er.ErrorMsg,
		}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func withQuery(endpoint string, q url.Values) string {
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

func (c *HTTPClient) GetReports(ctx context.Context, opts ListOptions) (*models.FeedPage, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	q := url.Values{}
	opts.encode(q)

	var page models.FeedPage
	if err := c.request(ctx, http.MethodGet, withQuery("/reports", q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	var report models.Report
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/reports/%d", id), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *HTTPClient) CreateReport(ctx context.Context, req CreateReportRequest) (*models.Report, error) {
	var report models.Report
	if err := c.request(ctx, http.MethodPost, "/reports", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *HTTPClient) UpdateReport(ctx context.Context, id int64, req UpdateReportRequest) (*models.Report, error) {
	var report models.Report
	if err := c.request(ctx, http.MethodPut, fmt.Sprintf("/reports/%d", id), req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *HTTPClient) DeleteReport(ctx context.Context, id int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/reports/%d", id), nil, nil)
}

func (c *HTTPClient) SearchReports(ctx context.Context, query string, filter FeedFilter, opts ListOptions) (*models.FeedPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidQuery)
	}
	if err := filter.validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", query)
	filter.encode(q)
	opts.encode(q)

	var page models.FeedPage
	if err := c.request(ctx, http.MethodGet, withQuery("/reports/search", q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) FilterReports(ctx context.Context, filter FeedFilter, opts ListOptions) (*models.FeedPage, error) {
	if filter.Empty() {
		return nil, fmt.Errorf("%w: at least one of status or category required", ErrInvalidQuery)
	}
	if err := filter.validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	q := url.Values{}
	filter.encode(q)
	opts.encode(q)

	var page models.FeedPage
	if err := c.request(ctx, http.MethodGet, withQuery("/reports/filter", q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) GetStatusOptions(ctx context.Context) ([]models.Status, error) {
	var out struct {
		Statuses []models.Status `json:"statuses"`
	}
	if err := c.request(ctx, http.MethodGet, "/reports/status-options", nil, &out); err != nil {
		return nil, err
	}
	return out.Statuses, nil
}

type adminActionRequest struct {
	AdminID int64 `json:"admin_id"`
}

func (c *HTTPClient) ValidateReport(ctx context.Context, id, adminID int64) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/reports/%d/validate", id), adminActionRequest{AdminID: adminID}, nil)
}

func (c *HTTPClient) ResolveReport(ctx context.Context, id, adminID int64) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/reports/%d/resolve", id), adminActionRequest{AdminID: adminID}, nil)
}

func (c *HTTPClient) UpdateReportStatus(ctx context.Context, id int64, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidQuery, status)
	}
	body := struct {
		Status models.Status `json:"status"`
	}{Status: status}
	return c.request(ctx, http.MethodPut, fmt.Sprintf("/reports/%d/status", id), body, nil)
}

func (c *HTTPClient) RateReport(ctx context.Context, id int64, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidQuery)
	}
	body := struct {
		Rating int `json:"rating"`
	}{Rating: rating}
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/reports/%d/rate", id), body, nil)
}

type pinRequest struct {
	UserID   int64 `json:"user_id"`
	ReportID int64 `json:"report_id"`
}

func (c *HTTPClient) PinReport(ctx context.Context, userID, reportID int64) error {
	return c.request(ctx, http.MethodPost, "/pinned-reports", pinRequest{UserID: userID, ReportID: reportID}, nil)
}

func (c *HTTPClient) UnpinReport(ctx context.Context, userID, reportID int64) error {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))
	return c.request(ctx, http.MethodDelete, withQuery(fmt.Sprintf("/pinned-reports/%d", reportID), q), nil, nil)
}

func (c *HTTPClient) GetPinnedReports(ctx context.Context, userID int64, opts ListOptions) (*models.FeedPage, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))
	opts.encode(q)

	var page models.FeedPage
	if err := c.request(ctx, http.MethodGet, withQuery("/pinned-reports", q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// loginResponse is the wire shape of POST /login.
type loginResponse struct {
	Success  bool        `json:"success"`
	Token    string      `json:"token"`
	User     models.User `json:"user"`
	ErrorMsg string      `json:"error_msg"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Credentials, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp loginResponse
	if err := c.request(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.ErrorMsg
		if msg == "" {
			msg = "login rejected"
		}
		return nil, &StatusError{StatusCode: http.StatusUnauthorized, Kind: KindUnauthorized, Message: msg}
	}

	return &models.Credentials{
		UserID: resp.User.ID,
		Email:  resp.User.Email,
		Token:  resp.Token,
		Admin:  resp.User.Admin,
	}, nil
}

// registrationResponse is the wire shape of POST /registration.
type registrationResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	Token string `json:"token"`
}

func (c *HTTPClient) Register(ctx context.Context, email, password string, admin bool) (*models.Credentials, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Admin    bool   `json:"admin"`
	}{Email: email, Password: password, Admin: admin}

	var resp registrationResponse
	if err := c.request(ctx, http.MethodPost, "/registration", body, &resp); err != nil {
		return nil, err
	}

	return &models.Credentials{
		UserID: resp.ID,
		Email:  resp.Email,
		Token:  resp.Token,
		Admin:  resp.Admin,
	}, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil, nil)
}

func (c *HTTPClient) GetGlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	var stats models.GlobalStats
	if err := c.request(ctx, http.MethodGet, "/stats/summary", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) UploadImage(ctx context.Context, uploadURL string, data []byte, contentType string) error {
	return netx.UploadToURL(ctx, c.http, uploadURL, data, contentType)
}
