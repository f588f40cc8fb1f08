package services

import (
	"context"
	"strings"

	"cleanindia-be/apperr"
	"cleanindia-be/models"
	"cleanindia-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// refLevel selects which user fields a populated reference carries.
type refLevel int

const (
	refID refLevel = iota
	refName
	refNameEmail
	refNameEmailPhone
)

type populateSpec struct {
	owner    refLevel
	assignee refLevel
	updater  refLevel
}

var (
	// citizen views expose only the owner
	citizenView = populateSpec{owner: refNameEmail, assignee: refID, updater: refID}
	listView    = populateSpec{owner: refNameEmail, assignee: refName, updater: refName}
	detailView  = populateSpec{owner: refNameEmailPhone, assignee: refNameEmail, updater: refName}
)

// populate joins complaints with the users they reference using one lookup.
func populate(ctx context.Context, users store.UserStore, complaints []models.Complaint, spec populateSpec) ([]models.ComplaintView, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	want := func(id *primitive.ObjectID, level refLevel) {
		if id == nil || level == refID || seen[*id] {
			return
		}
		seen[*id] = true
		ids = append(ids, *id)
	}
	for i := range complaints {
		c := &complaints[i]
		want(&c.User, spec.owner)
		want(c.AssignedTo, spec.assignee)
		want(c.UpdatedBy, spec.updater)
	}

	found := map[primitive.ObjectID]*models.User{}
	if len(ids) > 0 {
		var err error
		if found, err = users.FindByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	ref := func(id *primitive.ObjectID, level refLevel) *models.UserRef {
		if id == nil {
			return nil
		}
		u, ok := found[*id]
		if !ok || level == refID {
			return &models.UserRef{ID: *id}
		}
		return u.Ref(level >= refNameEmail, level >= refNameEmailPhone)
	}

	views := make([]models.ComplaintView, 0, len(complaints))
	for i := range complaints {
		c := complaints[i]
		views = append(views, models.ComplaintView{
			Complaint:  c,
			User:       ref(&c.User, spec.owner),
			AssignedTo: ref(c.AssignedTo, spec.assignee),
			UpdatedBy:  ref(c.UpdatedBy, spec.updater),
		})
	}
	return views, nil
}

func populateOne(ctx context.Context, users store.UserStore, complaint *models.Complaint, spec populateSpec) (*models.ComplaintView, error) {
	views, err := populate(ctx, users, []models.Complaint{*complaint}, spec)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// parseID turns a request id into an ObjectID; what names the entity in messages.
func parseID(id, what string) (primitive.ObjectID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return primitive.NilObjectID, apperr.Validation(what + " ID is required")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid " + strings.ToLower(what) + " ID")
	}
	return oid, nil
}
