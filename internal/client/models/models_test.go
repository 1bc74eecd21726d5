package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricType_EveryKindIsDescribed(t *testing.T) {
	seen := map[string]bool{}
	for _, mt := range MetricTypes {
		require.True(t, mt.Valid())
		assert.NotEmpty(t, mt.Unit(), mt.String())
		assert.NotEmpty(t, mt.Label(), mt.String())
		assert.False(t, seen[mt.String()], "duplicate name %s", mt)
		seen[mt.String()] = true

		parsed, err := ParseMetricType(mt.String())
		require.NoError(t, err)
		assert.Equal(t, mt, parsed)
	}
	assert.Len(t, seen, 5)
}

func TestParseMetricType_Unknown(t *testing.T) {
	_, err := ParseMetricType("blood_pressure")
	require.ErrorIs(t, err, ErrUnknownMetricType)
}

func TestMetricType_TextMarshalling(t *testing.T) {
	data := HealthData{MetricOxygen: {{ID: "ox-0", Type: MetricOxygen, Value: 97, Unit: "%"}}}
	b, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"oxygen":[`)
	assert.Contains(t, string(b), `"type":"oxygen"`)

	var back HealthData
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, MetricOxygen, back[MetricOxygen][0].Type)

	_, err = MetricType(42).MarshalText()
	require.ErrorIs(t, err, ErrUnknownMetricType)
}

func TestAuthState_Phase(t *testing.T) {
	assert.Equal(t, PhaseChecking, InitialAuthState().Phase())
	assert.Equal(t, PhaseUnauthenticated, Unauthenticated().Phase())
	assert.Equal(t, PhaseAuthenticated, AuthenticatedAs(User{ID: "u"}).Phase())
	assert.Equal(t, "checking", PhaseChecking.String())
}

func TestAuthState_Invariant(t *testing.T) {
	assert.True(t, AuthenticatedAs(User{ID: "u"}).Valid())
	assert.True(t, Unauthenticated().Valid())
	assert.False(t, AuthState{IsAuthenticated: true}.Valid())
}

func TestUser_Apply(t *testing.T) {
	name := "Jane"
	u := User{ID: "user-1", Username: "demouser", Email: "demo@example.com", Name: "Demo User"}
	got := u.Apply(UserPatch{Name: &name})

	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, "demouser", got.Username)
	assert.Equal(t, "Demo User", u.Name, "receiver must not change")
	assert.Equal(t, "demouser", User{Username: "demouser"}.DisplayName())
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("week")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, p.Window())

	_, err = ParsePeriod("year")
	require.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestReplaceDevice(t *testing.T) {
	list := []Device{{ID: "device-1"}, {ID: "device-2"}}
	got := ReplaceDevice(list, Device{ID: "device-2", Connected: true})

	assert.True(t, got[1].Connected)
	assert.False(t, list[1].Connected, "input must not change")
	assert.Equal(t, 1, CountConnected(got))
}
