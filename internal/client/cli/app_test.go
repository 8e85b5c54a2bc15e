package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/config"
	"github.com/dvelez2005/civicwatch/internal/client/credstore"
	"github.com/dvelez2005/civicwatch/internal/client/feed"
	"github.com/dvelez2005/civicwatch/internal/client/form"
	"github.com/dvelez2005/civicwatch/internal/client/models"
	"github.com/dvelez2005/civicwatch/internal/client/pins"
	"github.com/dvelez2005/civicwatch/internal/client/services"
	"github.com/dvelez2005/civicwatch/internal/client/session"
	"github.com/dvelez2005/civicwatch/internal/common"
	"github.com/dvelez2005/civicwatch/internal/logging"
)

type memStore struct {
	creds *models.Credentials
}

func (m *memStore) Load(ctx context.Context) (*models.Credentials, error) {
	if m.creds == nil {
		return nil, common.ErrNoCredentials
	}
	return m.creds, nil
}
func (m *memStore) Save(ctx context.Context, creds *models.Credentials) error {
	m.creds = creds
	return nil
}
func (m *memStore) Clear(ctx context.Context) error {
	m.creds = nil
	return nil
}

var _ credstore.Store = (*memStore)(nil)

type fakeClient struct {
	api.Client

	loginCreds *models.Credentials
	loginErr   error

	report  *models.Report
	getErr  error
	rated   map[int64]int
	pinned  []int64
	unpins  []int64
	pinErr  error
	page    *models.FeedPage
	feedErr error

	validated []int64
	resolved  []int64
	denied    []int64

	stats *models.GlobalStats

	statusOptions []models.Status

	deletedUser int64
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.Credentials, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginCreds, nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, userID int64) error {
	f.deletedUser = userID
	return nil
}

func (f *fakeClient) GetReports(ctx context.Context, opts api.ListOptions) (*models.FeedPage, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	if f.page != nil {
		return f.page, nil
	}
	return &models.FeedPage{TotalPages: 1, Page: 1}, nil
}

func (f *fakeClient) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.report, nil
}

func (f *fakeClient) RateReport(ctx context.Context, id int64, rating int) error {
	if f.rated == nil {
		f.rated = make(map[int64]int)
	}
	f.rated[id] = rating
	return nil
}

func (f *fakeClient) PinReport(ctx context.Context, userID, reportID int64) error {
	if f.pinErr != nil {
		return f.pinErr
	}
	f.pinned = append(f.pinned, reportID)
	return nil
}

func (f *fakeClient) UnpinReport(ctx context.Context, userID, reportID int64) error {
	f.unpins = append(f.unpins, reportID)
	return nil
}

func (f *fakeClient) GetPinnedReports(ctx context.Context, userID int64, opts api.ListOptions) (*models.FeedPage, error) {
	return &models.FeedPage{TotalPages: 1, Page: 1}, nil
}

func (f *fakeClient) ValidateReport(ctx context.Context, id, adminID int64) error {
	f.validated = append(f.validated, id)
	return nil
}

func (f *fakeClient) ResolveReport(ctx context.Context, id, adminID int64) error {
	f.resolved = append(f.resolved, id)
	return nil
}

func (f *fakeClient) UpdateReportStatus(ctx context.Context, id int64, status models.Status) error {
	if status == models.StatusDenied {
		f.denied = append(f.denied, id)
	}
	return nil
}

func (f *fakeClient) GetGlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	return f.stats, nil
}

func (f *fakeClient) GetStatusOptions(ctx context.Context) ([]models.Status, error) {
	return f.statusOptions, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestApp wires an App over the fake client and an in-memory credential
// store. creds nil means anonymous.
func newTestApp(t *testing.T, fc api.Client, creds *models.Credentials) *App {
	t.Helper()

	log := testLogger()
	sess := session.New(&memStore{}, log)
	if creds != nil {
		require.NoError(t, sess.Establish(context.Background(), creds))
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()

	return &App{
		config:  cfg,
		log:     log,
		client:  fc,
		sess:    sess,
		auth:    services.NewAuthService(fc, sess, log),
		reports: services.NewReportService(fc, sess, log),
		feed:    feed.New(fc, log, cfg.PageSize, time.Millisecond),
		pins:    pins.New(fc, sess, log),
		form:    form.New(fc, sess, log, ""),
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func userCreds() *models.Credentials {
	return &models.Credentials{UserID: 12, Email: "a@b.c", Token: "tok"}
}

func adminCreds() *models.Credentials {
	return &models.Credentials{UserID: 7, Email: "admin@b.c", Token: "tok", Admin: true}
}

func TestGetStatus(t *testing.T) {
	a := newTestApp(t, &fakeClient{}, nil)
	require.Equal(t, "", a.getStatus())
	require.False(t, a.isLoggedIn())

	a = newTestApp(t, &fakeClient{}, adminCreds())
	require.Equal(t, "(admin@b.c admin)", a.getStatus())
	require.True(t, a.isLoggedIn())
	require.True(t, a.isAdmin())
}
