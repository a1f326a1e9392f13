package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mock_dashboard "github.com/RoyceAzure/lab/virtualart/internal/dashboard/mock"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/lab/virtualart/internal/session"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(role model.Role) session.Snapshot {
	return session.Snapshot{
		Status:  session.StatusResolved,
		Profile: &model.Profile{User: model.User{UserType: role}},
	}
}

func userAt(role model.Role, year int, month time.Month) model.User {
	u := model.User{ID: uuid.New(), UserType: role}
	u.CreatedAt = time.Date(year, month, 3, 0, 0, 0, 0, time.UTC)
	return u
}

func money(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestCompute(t *testing.T) {
	d := Data{
		Users: []model.User{
			userAt(model.RoleArtist, 2023, time.January),
			userAt(model.RoleUser, 2024, time.January),
			userAt(model.RoleArtist, 2024, time.March),
			userAt(model.RoleAdmin, 2024, time.May),
		},
		Artworks: []model.Artwork{
			{Status: model.ArtworkPending},
			{Status: model.ArtworkPublished},
			{Status: model.ArtworkPending},
		},
		Orders: []model.Order{
			{TotalAmount: money(1020), Amount: decimal.NewFromInt(1), OrderDate: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)},
			{Amount: decimal.NewFromInt(500), OrderDate: time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC)},
		},
		Reviews: []model.Review{{Rating: 5}},
	}

	m := Compute(d, time.Unix(0, 0))
	assert.Equal(t, 4, m.Users)
	assert.Equal(t, 2, m.Artists)
	assert.Equal(t, 3, m.Artworks)
	assert.Equal(t, 2, m.PendingArtworks)
	assert.Equal(t, 2, m.Orders)
	assert.Equal(t, 1, m.Reviews)
	assert.True(t, decimal.NewFromInt(1520).Equal(m.Revenue), m.Revenue.String())

	require.Len(t, m.UserGrowth, 12)
	assert.Equal(t, "January", m.UserGrowth[0].Month)
	// 2023 與 2024 的一月合併在同一格
	assert.Equal(t, 2, m.UserGrowth[0].Count)
	assert.Equal(t, 2, m.Sales[5].Count)
	assert.True(t, decimal.NewFromInt(1520).Equal(m.Sales[5].Amount))
}

type fixture struct {
	src     *mock_dashboard.MockDataSource
	sess    *mock_dashboard.MockSessionWatcher
	watchFn func(session.Snapshot)
	fetches atomic.Int32
}

func newFixture(t *testing.T, role model.Role) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		src:  mock_dashboard.NewMockDataSource(ctrl),
		sess: mock_dashboard.NewMockSessionWatcher(ctrl),
	}
	f.sess.EXPECT().Snapshot().Return(snapshotOf(role)).AnyTimes()
	f.sess.EXPECT().Watch(gomock.Any()).DoAndReturn(func(fn func(session.Snapshot)) func() {
		f.watchFn = fn
		return func() {}
	}).AnyTimes()
	return f
}

func (f *fixture) expectCollections() {
	f.src.EXPECT().AdminUsers(gomock.Any()).DoAndReturn(func(context.Context) ([]model.User, error) {
		f.fetches.Add(1)
		return []model.User{{UserType: model.RoleArtist}}, nil
	}).AnyTimes()
	f.src.EXPECT().AdminArtworks(gomock.Any()).Return([]model.Artwork{{Status: model.ArtworkPending}}, nil).AnyTimes()
	f.src.EXPECT().AdminOrders(gomock.Any()).Return(nil, nil).AnyTimes()
	f.src.EXPECT().AdminReviews(gomock.Any()).Return(nil, nil).AnyTimes()
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestStartRequiresAdmin(t *testing.T) {
	f := newFixture(t, model.RoleArtist)
	p := NewPoller(f.src, f.sess, time.Millisecond, nopLogger())
	assert.ErrorIs(t, p.Start(context.Background()), ErrNotAdmin)
	assert.False(t, p.Running())
}

func TestPollsUntilStopped(t *testing.T) {
	f := newFixture(t, model.RoleAdmin)
	f.expectCollections()
	p := NewPoller(f.src, f.sess, 10*time.Millisecond, nopLogger())

	require.NoError(t, p.Start(context.Background()))
	require.NoError(t, p.Start(context.Background()))
	require.Eventually(t, func() bool { return f.fetches.Load() >= 3 }, time.Second, 5*time.Millisecond)

	m, ok := p.Metrics()
	require.True(t, ok)
	assert.Equal(t, 1, m.Artists)
	assert.Equal(t, 1, m.PendingArtworks)

	p.Stop()
	assert.False(t, p.Running())
	time.Sleep(30 * time.Millisecond)
	after := f.fetches.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, f.fetches.Load())
}

func TestResultsAfterStopAreDiscarded(t *testing.T) {
	f := newFixture(t, model.RoleAdmin)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.src.EXPECT().AdminUsers(gomock.Any()).DoAndReturn(func(context.Context) ([]model.User, error) {
		once.Do(func() { close(started) })
		<-release
		return []model.User{{}}, nil
	}).AnyTimes()
	f.src.EXPECT().AdminArtworks(gomock.Any()).Return(nil, nil).AnyTimes()
	f.src.EXPECT().AdminOrders(gomock.Any()).Return(nil, nil).AnyTimes()
	f.src.EXPECT().AdminReviews(gomock.Any()).Return(nil, nil).AnyTimes()

	updates := make(chan Metrics, 4)
	p := NewPoller(f.src, f.sess, time.Hour, nopLogger(), WithOnUpdate(func(m Metrics) { updates <- m }))
	require.NoError(t, p.Start(context.Background()))

	<-started
	p.Stop()
	close(release)

	select {
	case <-updates:
		t.Fatal("metrics applied after Stop")
	case <-time.After(50 * time.Millisecond):
	}
	_, ok := p.Metrics()
	assert.False(t, ok)
}

func TestRoleChangeStopsPoller(t *testing.T) {
	f := newFixture(t, model.RoleAdmin)
	f.expectCollections()
	p := NewPoller(f.src, f.sess, time.Hour, nopLogger())
	require.NoError(t, p.Start(context.Background()))
	require.NotNil(t, f.watchFn)

	f.watchFn(snapshotOf(model.RoleAdmin))
	assert.True(t, p.Running())

	f.watchFn(session.Snapshot{Status: session.StatusResolved})
	assert.False(t, p.Running())
}

func TestApproveRefetchesAllCollections(t *testing.T) {
	f := newFixture(t, model.RoleAdmin)
	id := uuid.New().String()
	gomock.InOrder(
		f.src.EXPECT().UpdateArtworkStatus(gomock.Any(), id, model.ArtworkPublished).Return(&model.Artwork{Status: model.ArtworkPublished}, nil),
		f.src.EXPECT().AdminUsers(gomock.Any()).Return(nil, nil),
	)
	f.src.EXPECT().AdminArtworks(gomock.Any()).Return([]model.Artwork{{Status: model.ArtworkPublished}}, nil)
	f.src.EXPECT().AdminOrders(gomock.Any()).Return(nil, nil)
	f.src.EXPECT().AdminReviews(gomock.Any()).Return(nil, nil)

	p := NewPoller(f.src, f.sess, time.Hour, nopLogger())
	require.NoError(t, p.Approve(context.Background(), id))
	m, ok := p.Metrics()
	require.True(t, ok)
	assert.Equal(t, 1, m.Artworks)
	assert.Zero(t, m.PendingArtworks)
}

func TestRejectFailureSkipsRefetch(t *testing.T) {
	f := newFixture(t, model.RoleAdmin)
	f.src.EXPECT().UpdateArtworkStatus(gomock.Any(), "x", model.ArtworkRejected).Return(nil, errors.New("conflict"))

	p := NewPoller(f.src, f.sess, time.Hour, nopLogger())
	assert.Error(t, p.Reject(context.Background(), "x"))
}

func TestFetchErrorKeepsPreviousMetrics(t *testing.T) {
	f := newFixture(t, model.RoleAdmin)
	boom := errors.New("HTTP 500")
	f.src.EXPECT().AdminUsers(gomock.Any()).Return(nil, boom).AnyTimes()
	f.src.EXPECT().AdminArtworks(gomock.Any()).Return(nil, nil).AnyTimes()
	f.src.EXPECT().AdminOrders(gomock.Any()).Return(nil, nil).AnyTimes()
	f.src.EXPECT().AdminReviews(gomock.Any()).Return(nil, nil).AnyTimes()

	p := NewPoller(f.src, f.sess, time.Hour, nopLogger())
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	require.Eventually(t, func() bool { return p.LastError() != nil }, time.Second, 5*time.Millisecond)
	_, ok := p.Metrics()
	assert.False(t, ok)
}
