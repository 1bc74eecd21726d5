package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalsync/internal/auth"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
)

var (
	testSecret = []byte("test-secret")
	fixedNow   = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
)

func newTestClient(t *testing.T, mutate ...func(*Options)) *MockClient {
	t.Helper()
	opts := Options{
		TokenSecret: testSecret,
		Seed:        42,
		Now:         func() time.Time { return fixedNow },
	}
	for _, f := range mutate {
		f(&opts)
	}
	return NewMockClient(opts, nil)
}

func TestLoginUser_Demo(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	first, err := c.LoginUser(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)
	if diff := cmp.Diff(DemoUser, first.User); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}

	second, err := c.LoginUser(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token)

	want, err := DemoToken(testSecret)
	require.NoError(t, err)
	assert.Equal(t, want, first.Token)
}

func TestLoginUser_InvalidCredentials(t *testing.T) {
	c := newTestClient(t)
	cases := []struct{ email, password string }{
		{DemoEmail, "wrong"},
		{"someone@example.com", DemoPassword},
		{"DEMO@example.com", DemoPassword},
		{"", ""},
	}
	for _, tc := range cases {
		_, err := c.LoginUser(context.Background(), tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "%s/%s", tc.email, tc.password)
	}
}

func TestRegisterUser_MissingFields(t *testing.T) {
	c := newTestClient(t)
	cases := [][3]string{
		{"", "a@b.com", "x"},
		{"alice", "", "x"},
		{"alice", "a@b.com", ""},
		{"", DemoEmail, ""},
	}
	for _, tc := range cases {
		_, err := c.RegisterUser(context.Background(), tc[0], tc[1], tc[2])
		assert.ErrorIs(t, err, ErrMissingFields, "%v", tc)
	}
}

func TestRegisterUser_DemoEmailTaken(t *testing.T) {
	_, err := newTestClient(t).RegisterUser(context.Background(), "bob", DemoEmail, "pw")
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestRegisterUser_NewAccount(t *testing.T) {
	res, err := newTestClient(t).RegisterUser(context.Background(), "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(res.User.ID, "user-"))
	_, err = uuid.Parse(strings.TrimPrefix(res.User.ID, "user-"))
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, "alice", res.User.Name)
	assert.Equal(t, "alice@example.com", res.User.Email)

	claims, err := auth.ParseToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User, claims.User())
}

func TestGetAllHealthData_Shapes(t *testing.T) {
	data, err := newTestClient(t).GetAllHealthData(context.Background())
	require.NoError(t, err)
	require.Len(t, data, len(models.MetricTypes))

	cases := []struct {
		kind   models.MetricType
		prefix string
		count  int
		lo, hi float64
	}{
		{models.MetricHeartRate, "hr", 24, 60, 89},
		{models.MetricSteps, "steps", 7, 3000, 7999},
		{models.MetricSleep, "sleep", 7, 5, 7},
		{models.MetricCalories, "cal", 7, 1500, 1999},
		{models.MetricOxygen, "ox", 24, 96, 98},
	}
	for _, tc := range cases {
		got := data[tc.kind]
		require.Len(t, got, tc.count, tc.kind.String())
		for i, hm := range got {
			assert.Equal(t, fmt.Sprintf("%s-%d", tc.prefix, i), hm.ID)
			assert.Equal(t, tc.kind, hm.Type)
			assert.Equal(t, tc.kind.Unit(), hm.Unit)
			assert.GreaterOrEqual(t, hm.Value, tc.lo)
			assert.LessOrEqual(t, hm.Value, tc.hi)
			assert.False(t, hm.Timestamp.After(fixedNow))
		}
	}
	assert.Equal(t, fixedNow.Add(-23*time.Hour), data[models.MetricHeartRate][23].Timestamp)
	assert.Equal(t, fixedNow.Add(-6*24*time.Hour), data[models.MetricSteps][6].Timestamp)
}

func TestGetHealthMetrics_FiltersByPeriod(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	day, err := c.GetHealthMetrics(ctx, models.MetricSteps, models.PeriodDay)
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "steps-0", day[0].ID)

	week, err := c.GetHealthMetrics(ctx, models.MetricSteps, models.PeriodWeek)
	require.NoError(t, err)
	assert.Len(t, week, 7)

	hr, err := c.GetHealthMetrics(ctx, models.MetricHeartRate, models.PeriodDay)
	require.NoError(t, err)
	assert.Len(t, hr, 24)
}

func TestGetHealthMetrics_UnknownType(t *testing.T) {
	_, err := newTestClient(t).GetHealthMetrics(context.Background(), models.MetricType(99), models.PeriodDay)
	require.ErrorIs(t, err, models.ErrUnknownMetricType)
}

func TestDevices(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	list, err := c.GetConnectedDevices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Fitbit Charge 5", list[0].Name)
	assert.True(t, list[0].Connected)
	assert.Equal(t, 78, *list[0].BatteryLevel)
	assert.Equal(t, fixedNow.Add(-30*time.Minute), *list[0].LastSync)
	assert.Equal(t, "Apple Watch Series 7", list[1].Name)
	assert.False(t, list[1].Connected)
	assert.Equal(t, 45, *list[1].BatteryLevel)

	d, err := c.ConnectToDevice(ctx, "device-2")
	require.NoError(t, err)
	assert.True(t, d.Connected)
	assert.Equal(t, fixedNow, *d.LastSync)

	again, err := c.GetConnectedDevices(ctx)
	require.NoError(t, err)
	assert.False(t, again[1].Connected, "mock list is never mutated")

	require.NoError(t, c.DisconnectDevice(ctx, "device-1"))
}

func TestDevices_Unknown(t *testing.T) {
	c := newTestClient(t)
	_, err := c.ConnectToDevice(context.Background(), "device-9")
	require.ErrorIs(t, err, ErrDeviceNotFound)
	require.ErrorIs(t, c.DisconnectDevice(context.Background(), "device-9"), ErrDeviceNotFound)
}

func TestProfile_GetAndUpdate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	res, err := c.LoginUser(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)

	u, err := c.GetUserProfile(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, DemoUser, u)

	name := "Renamed"
	updated, err := c.UpdateUserProfile(ctx, res.Token, models.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, DemoUser.Email, updated.Email)

	u, err = c.GetUserProfile(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, updated, u)
}

func TestProfile_BadToken(t *testing.T) {
	c := newTestClient(t)
	_, err := c.GetUserProfile(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.UpdateUserProfile(context.Background(), "", models.UserPatch{})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestFailureRate_AlwaysFails(t *testing.T) {
	c := newTestClient(t, func(o *Options) { o.FailureRate = 1 })
	ctx := context.Background()

	_, err := c.GetAllHealthData(ctx)
	require.ErrorIs(t, err, ErrNetwork)
	_, err = c.GetConnectedDevices(ctx)
	require.ErrorIs(t, err, ErrNetwork)
	require.ErrorIs(t, c.LogoutUser(ctx), ErrNetwork)
}

func TestLatency_HonorsContext(t *testing.T) {
	c := newTestClient(t, func(o *Options) { o.LatencyScale = 100 })
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.GetConnectedDevices(ctx)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLatency_Applied(t *testing.T) {
	c := newTestClient(t, func(o *Options) { o.LatencyScale = 0.05 })

	start := time.Now()
	require.NoError(t, c.LogoutUser(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
