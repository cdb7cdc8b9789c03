package kernel

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampFormatting(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 1, 19, 30, 15, 999, time.FixedZone("CET", 3600)))
	require.Equal(t, "2024-03-01 18:30:15", ts.String())
	require.Equal(t, "", Timestamp{}.String())
	require.Nil(t, Timestamp{}.Ptr())

	data, err := json.Marshal(struct {
		At    Timestamp `json:"at"`
		Empty Timestamp `json:"empty"`
	}{At: ts})
	require.NoError(t, err)
	require.JSONEq(t, `{"at":"2024-03-01 18:30:15","empty":null}`, string(data))
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-01 18:30:15")
	require.NoError(t, err)
	require.Equal(t, 18, ts.Time().Hour())

	ts, err = ParseTimestamp("")
	require.NoError(t, err)
	require.True(t, ts.IsEmpty())

	_, err = ParseTimestamp("yesterday")
	require.ErrorIs(t, err, ErrValidation)
}

func TestMarkForUpdate(t *testing.T) {
	created := NewTraceableTime()
	require.True(t, created.UpdatedAt.IsEmpty())

	updated := created.MarkForUpdate()
	require.True(t, created.UpdatedAt.IsEmpty())
	require.False(t, updated.UpdatedAt.IsEmpty())
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-12-31")
	require.NoError(t, err)
	require.Equal(t, "2023-12-31", d.String())

	_, err = ParseDate("31/12/2023")
	require.ErrorIs(t, err, ErrValidation)
}
