package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/credstore"
	"github.com/dvelez2005/civicwatch/internal/client/models"
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

	loginCreds    *models.Credentials
	loginErr      error
	registerCreds *models.Credentials
	registerErr   error
	loginCalls    int

	report    *models.Report
	getErr    error
	deleted   []int64
	deleteErr error

	validated   []int64
	resolved    []int64
	statusSets  map[int64]models.Status
	ratings     map[int64]int
	deletedUser int64

	statusOptions []models.Status
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.Credentials, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginCreds, nil
}

func (f *fakeClient) Register(ctx context.Context, email, password string, admin bool) (*models.Credentials, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerCreds, nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, userID int64) error {
	f.deletedUser = userID
	return f.deleteErr
}

func (f *fakeClient) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.report, nil
}

func (f *fakeClient) DeleteReport(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
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
	if f.statusSets == nil {
		f.statusSets = make(map[int64]models.Status)
	}
	f.statusSets[id] = status
	return nil
}

func (f *fakeClient) GetStatusOptions(ctx context.Context) ([]models.Status, error) {
	return f.statusOptions, nil
}

func (f *fakeClient) RateReport(ctx context.Context, id int64, rating int) error {
	if f.ratings == nil {
		f.ratings = make(map[int64]int)
	}
	f.ratings[id] = rating
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sessionWith(t *testing.T, creds *models.Credentials) *session.Session {
	t.Helper()
	s := session.New(&memStore{}, testLogger())
	if creds != nil {
		require.NoError(t, s.Establish(context.Background(), creds))
	}
	return s
}

func userCreds() *models.Credentials {
	return &models.Credentials{UserID: 12, Email: "a@b.c", Token: "tok"}
}

func adminCreds() *models.Credentials {
	return &models.Credentials{UserID: 7, Email: "admin@b.c", Token: "tok", Admin: true}
}

func TestLogin_EstablishesSession(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginCreds: userCreds()}
	sess := sessionWith(t, nil)
	auth := NewAuthService(fc, sess, testLogger())

	require.NoError(t, auth.Login(ctx, "a@b.c", "pw"))

	got, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, int64(12), got.UserID)
	assert.Equal(t, "tok", sess.Token())
}

func TestLogin_FailureLeavesSessionAnonymous(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{loginErr: &api.StatusError{StatusCode: http.StatusUnauthorized, Kind: api.KindUnauthorized}}
	sess := sessionWith(t, nil)
	auth := NewAuthService(fc, sess, testLogger())

	err := auth.Login(ctx, "a@b.c", "wrong")
	assert.True(t, api.IsUnauthorized(err))
	_, ok := sess.Current()
	assert.False(t, ok)
}

func TestRegister_WithTokenSkipsLogin(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{registerCreds: userCreds()}
	sess := sessionWith(t, nil)
	auth := NewAuthService(fc, sess, testLogger())

	require.NoError(t, auth.Register(ctx, "a@b.c", "pw", false))
	assert.Zero(t, fc.loginCalls, "registration returning a token needs no login round trip")
	assert.Equal(t, "tok", sess.Token())
}

func TestRegister_WithoutTokenFallsBackToLogin(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		registerCreds: &models.Credentials{UserID: 12, Email: "a@b.c"},
		loginCreds:    userCreds(),
	}
	sess := sessionWith(t, nil)
	auth := NewAuthService(fc, sess, testLogger())

	require.NoError(t, auth.Register(ctx, "a@b.c", "pw", false))
	assert.Equal(t, 1, fc.loginCalls)
	assert.Equal(t, "tok", sess.Token())
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	sess := sessionWith(t, userCreds())
	auth := NewAuthService(fc, sess, testLogger())

	require.NoError(t, auth.DeleteAccount(ctx))
	assert.Equal(t, int64(12), fc.deletedUser)
	_, ok := sess.Current()
	assert.False(t, ok, "session must be torn down after deletion")
}

func TestDeleteAccount_FailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{deleteErr: errors.New("backend down")}
	sess := sessionWith(t, userCreds())
	auth := NewAuthService(fc, sess, testLogger())

	require.Error(t, auth.DeleteAccount(ctx))
	_, ok := sess.Current()
	assert.True(t, ok, "session must survive a failed delete")
}

func TestHandleAuthError(t *testing.T) {
	ctx := context.Background()
	sess := sessionWith(t, userCreds())
	auth := NewAuthService(&fakeClient{}, sess, testLogger())

	assert.False(t, auth.HandleAuthError(ctx, errors.New("other")))
	_, ok := sess.Current()
	assert.True(t, ok)

	unauthorized := &api.StatusError{StatusCode: http.StatusUnauthorized, Kind: api.KindUnauthorized}
	assert.True(t, auth.HandleAuthError(ctx, unauthorized))
	_, ok = sess.Current()
	assert.False(t, ok, "a 401 must clear the stored credentials")
}

func TestValidate_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	svc := NewReportService(fc, sessionWith(t, userCreds()), testLogger())

	err := svc.Validate(ctx, 7)
	assert.ErrorIs(t, err, common.ErrAdminRequired)
	assert.Empty(t, fc.validated)
}

func TestValidateResolveDeny_AsAdmin(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	svc := NewReportService(fc, sessionWith(t, adminCreds()), testLogger())

	require.NoError(t, svc.Validate(ctx, 7))
	require.NoError(t, svc.Resolve(ctx, 7))
	require.NoError(t, svc.Deny(ctx, 8))

	assert.Equal(t, []int64{7}, fc.validated)
	assert.Equal(t, []int64{7}, fc.resolved)
	assert.Equal(t, models.StatusDenied, fc.statusSets[8])
}

func TestRate_ResolvedOnly(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{report: &models.Report{ID: 7, Status: models.StatusOpen}}
	svc := NewReportService(fc, sessionWith(t, userCreds()), testLogger())

	err := svc.Rate(ctx, 7, 5)
	assert.ErrorIs(t, err, ErrNotRatable)
	assert.Empty(t, fc.ratings)

	fc.report = &models.Report{ID: 7, Status: models.StatusResolved}
	require.NoError(t, svc.Rate(ctx, 7, 4))
	assert.Equal(t, 4, fc.ratings[7])
}

func TestDelete_OwnershipGuard(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{report: &models.Report{ID: 7, CreatedBy: 99}}
	svc := NewReportService(fc, sessionWith(t, userCreds()), testLogger())

	err := svc.Delete(ctx, 7)
	assert.ErrorIs(t, err, common.ErrUserMismatch)
	assert.Empty(t, fc.deleted)

	fc.report = &models.Report{ID: 7, CreatedBy: 12}
	require.NoError(t, svc.Delete(ctx, 7))
	assert.Equal(t, []int64{7}, fc.deleted)
}

func TestDelete_AdminBypassesOwnership(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{report: &models.Report{ID: 7, CreatedBy: 99}}
	svc := NewReportService(fc, sessionWith(t, adminCreds()), testLogger())

	require.NoError(t, svc.Delete(ctx, 7))
	assert.Equal(t, []int64{7}, fc.deleted)
}

func TestStatusOptions_AvailableAnonymously(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{statusOptions: []models.Status{models.StatusOpen, models.StatusResolved}}
	svc := NewReportService(fc, sessionWith(t, nil), testLogger())

	got, err := svc.StatusOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, fc.statusOptions, got)
}

func TestReportOps_RequireSession(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(&fakeClient{}, sessionWith(t, nil), testLogger())

	assert.ErrorIs(t, svc.Validate(ctx, 7), common.ErrNotAuthenticated)
	assert.ErrorIs(t, svc.Rate(ctx, 7, 5), common.ErrNotAuthenticated)
	assert.ErrorIs(t, svc.Delete(ctx, 7), common.ErrNotAuthenticated)
}
