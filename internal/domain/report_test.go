package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStatus_UnmarshalVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want ReportStatus
	}{
		{`0`, StatusPending},
		{`1`, StatusApproved},
		{`2`, StatusRejected},
		{`"1"`, StatusApproved},
		{`"2"`, StatusRejected},
		{`"approved"`, StatusApproved},
		{`"Rejected"`, StatusRejected},
		{`"pending"`, StatusPending},
		{`null`, StatusPending},
	}
	for _, c := range cases {
		var s ReportStatus
		require.NoError(t, json.Unmarshal([]byte(c.raw), &s), "raw=%s", c.raw)
		assert.Equal(t, c.want, s, "raw=%s", c.raw)
	}
}

func TestReport_UnmarshalLoosePayload(t *testing.T) {
	raw := `{
		"id": 42,
		"review_id": "7",
		"amount_reported": 8,
		"amount_approved": 5,
		"status": "1",
		"comment": "bien hecho",
		"category": {"id": 3, "name": "Tutoring"}
	}`
	var r Report
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "42", r.ID.String())
	assert.Equal(t, "7", r.ReviewID.String())
	assert.Equal(t, 8, r.AmountReported)
	require.NotNil(t, r.AmountApproved)
	assert.Equal(t, 5, *r.AmountApproved)
	assert.Equal(t, StatusApproved, r.Status)
	assert.Equal(t, "Tutoring", r.Label())
}

func TestReportLabel_FallbackOrder(t *testing.T) {
	withCategory := Report{
		ID:          FlexID("7"),
		Description: "Limpieza de playa",
		Category:    &Category{ID: FlexID("3"), Name: "Medio ambiente"},
	}
	assert.Equal(t, "Medio ambiente", withCategory.Label())

	withDescription := Report{ID: FlexID("7"), Description: "Limpieza de playa"}
	assert.Equal(t, "Limpieza de playa", withDescription.Label())

	bare := Report{ID: FlexID("7")}
	assert.Equal(t, "Servicio #7", bare.Label())
}

func TestProfile_RolePrecedence(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"object role", `{"id":1,"email":"a@b.c","role":{"name":"Admin"}}`, "Admin"},
		{"string role", `{"id":1,"email":"a@b.c","role":"student"}`, "student"},
		{"role_name fallback", `{"id":1,"email":"a@b.c","role_name":"admin"}`, "admin"},
		{"absent", `{"id":1,"email":"a@b.c"}`, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var p Profile
			require.NoError(t, json.Unmarshal([]byte(c.raw), &p))
			assert.Equal(t, c.want, p.Role)
			assert.Equal(t, "1", p.UserID.String())
		})
	}
}

func TestProfile_NameFallsBackToEmail(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","email":"a@b.c"}`), &p))
	assert.Equal(t, "a@b.c", p.Name)
}

func TestCommentKey_DistinctPerPair(t *testing.T) {
	k1 := CommentKey("1", "needs more detail")
	k2 := CommentKey("1", "approved, nice work")
	k3 := CommentKey("2", "needs more detail")

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Equal(t, k1, CommentKey("1", "needs more detail"))
}
