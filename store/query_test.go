package store

import (
	"testing"
	"time"

	"cleanindia-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPage_SkipAndTotalPages(t *testing.T) {
	tests := []struct {
		page, limit int
		total       int64
		skip        int64
		pages       int
	}{
		{1, 10, 0, 0, 0},
		{1, 10, 10, 0, 1},
		{2, 10, 11, 10, 2},
		{3, 7, 20, 14, 3},
		{5, 3, 4, 12, 2},
	}

	for _, tt := range tests {
		p := Page{Page: tt.page, Limit: tt.limit}
		assert.Equal(t, tt.skip, p.Skip())
		assert.Equal(t, tt.pages, p.TotalPages(tt.total))
	}
}

func TestUserQuery(t *testing.T) {
	q := userQuery(UserFilter{Roles: []models.Role{models.RoleUser}})
	assert.Equal(t, bson.M{"role": models.RoleUser}, q)

	q = userQuery(UserFilter{Roles: []models.Role{models.RoleAdmin, models.RoleModerator}, Search: "a.b"})
	assert.Equal(t, bson.M{"$in": []models.Role{models.RoleAdmin, models.RoleModerator}}, q["role"])

	or, ok := q["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, primitive.Regex{Pattern: `a\.b`, Options: "i"}, or[0]["name"])
	assert.Contains(t, or[1], "email")
}

func TestComplaintQuery(t *testing.T) {
	assert.Empty(t, complaintQuery(ComplaintFilter{}))

	status := models.StatusPending
	priority := models.PriorityHigh
	q := complaintQuery(ComplaintFilter{Status: &status, Priority: &priority, Search: "MG Road"})

	assert.Equal(t, models.StatusPending, q["status"])
	assert.Equal(t, models.PriorityHigh, q["priority"])

	or, ok := q["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Contains(t, or[0], "name")
	assert.Contains(t, or[1], "phone")
	assert.Contains(t, or[2], "address")
}

func TestSortDoc_BreaksTiesOnID(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "submittedAt", Value: -1}, {Key: "_id", Value: -1}}, sortDoc(Sort{Field: "submittedAt", Desc: true}))
	assert.Equal(t, bson.D{{Key: "priority", Value: 1}, {Key: "_id", Value: 1}}, sortDoc(Sort{Field: "priority"}))
	assert.Equal(t, bson.D{{Key: "submittedAt", Value: 1}, {Key: "_id", Value: 1}}, sortDoc(Sort{Field: "password"}))
}

func TestComplaintUpdate_EmptyPatchOnlyStampsUpdatedBy(t *testing.T) {
	admin := primitive.NewObjectID()

	update := complaintUpdate(models.ComplaintPatch{}, admin, time.Now())

	assert.Equal(t, bson.M{"$set": bson.M{"updatedBy": admin}}, update)
}

func TestComplaintUpdate_ResolvedStampsResolvedAt(t *testing.T) {
	admin := primitive.NewObjectID()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	status := models.StatusResolved
	notes := ""

	set := complaintUpdate(models.ComplaintPatch{Status: &status, AdminNotes: &notes}, admin, now)["$set"].(bson.M)

	assert.Equal(t, models.StatusResolved, set["status"])
	assert.Equal(t, now, set["resolvedAt"])
	assert.Equal(t, "", set["adminNotes"], "explicit empty notes must be written")
	assert.NotContains(t, set, "priority")
}

func TestComplaintUpdate_OtherStatusKeepsResolvedAt(t *testing.T) {
	status := models.StatusInProgress

	update := complaintUpdate(models.ComplaintPatch{Status: &status}, primitive.NewObjectID(), time.Now())

	assert.NotContains(t, update, "$unset")
	assert.NotContains(t, update["$set"].(bson.M), "resolvedAt")
}

func TestProofUpdate(t *testing.T) {
	now := time.Now()

	set := proofUpdate("https://cdn.example/v.mp4", now)["$set"].(bson.M)

	assert.Equal(t, "https://cdn.example/v.mp4", set["proofVideo"])
	assert.Equal(t, models.StatusResolved, set["status"])
	assert.Equal(t, now, set["resolvedAt"])
}
