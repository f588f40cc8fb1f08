package store

import (
	"regexp"
	"time"

	"cleanindia-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// containsCI matches field values containing s, ignoring case. s is a literal.
func containsCI(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func userQuery(f UserFilter) bson.M {
	filter := bson.M{}

	switch len(f.Roles) {
	case 0:
	case 1:
		filter["role"] = f.Roles[0]
	default:
		filter["role"] = bson.M{"$in": f.Roles}
	}

	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"name": containsCI(f.Search)},
			{"email": containsCI(f.Search)},
		}
	}

	return filter
}

func complaintQuery(f ComplaintFilter) bson.M {
	filter := bson.M{}

	if f.Status != nil {
		filter["status"] = *f.Status
	}
	if f.Priority != nil {
		filter["priority"] = *f.Priority
	}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"name": containsCI(f.Search)},
			{"phone": containsCI(f.Search)},
			{"address": containsCI(f.Search)},
		}
	}

	return filter
}

func sortDoc(s Sort) bson.D {
	field := s.Field
	if !SortableComplaintFields[field] {
		field = "submittedAt"
	}
	dir := 1
	if s.Desc {
		dir = -1
	}
	// _id breaks ties so skip/limit pages never overlap
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

// complaintUpdate builds a single $set so that concurrent patches touching
// different fields both survive.
func complaintUpdate(p models.ComplaintPatch, by primitive.ObjectID, now time.Time) bson.M {
	set := bson.M{"updatedBy": by}

	if p.Status != nil {
		set["status"] = *p.Status
		if *p.Status == models.StatusResolved {
			set["resolvedAt"] = now
		}
	}
	if p.AdminNotes != nil {
		set["adminNotes"] = *p.AdminNotes
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.AssignedTo != nil {
		set["assignedTo"] = *p.AssignedTo
	}

	return bson.M{"$set": set}
}

func proofUpdate(videoURL string, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"proofVideo": videoURL,
		"status":     models.StatusResolved,
		"resolvedAt": now,
	}}
}
