package store

import (
	"context"
	"errors"
	"time"

	"cleanindia-be/apperr"
	"cleanindia-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoComplaintStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewComplaintStore(db *mongo.Database, timeout time.Duration) *MongoComplaintStore {
	return &MongoComplaintStore{coll: db.Collection("complaints"), timeout: timeout}
}

func (s *MongoComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if complaint.ID.IsZero() {
		complaint.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, complaint); err != nil {
		return apperr.Store("failed to create complaint", err)
	}
	return nil
}

func (s *MongoComplaintStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindOwned answers NotFound both for a missing complaint and for one owned by
// someone else.
func (s *MongoComplaintStore) FindOwned(ctx context.Context, owner, id primitive.ObjectID) (*models.Complaint, error) {
	return s.findOne(ctx, bson.M{"_id": id, "user": owner})
}

func (s *MongoComplaintStore) findOne(ctx context.Context, filter bson.M) (*models.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var complaint models.Complaint
	if err := s.coll.FindOne(ctx, filter).Decode(&complaint); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Complaint not found")
		}
		return nil, apperr.Store("failed to retrieve complaint", err)
	}
	return &complaint, nil
}

func (s *MongoComplaintStore) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user": owner}, findOptions)
	if err != nil {
		return nil, apperr.Store("failed to retrieve complaints", err)
	}
	defer cursor.Close(ctx)

	complaints := make([]models.Complaint, 0)
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, apperr.Store("failed to decode complaints", err)
	}
	return complaints, nil
}

func (s *MongoComplaintStore) List(ctx context.Context, filter ComplaintFilter, page Page, sort Sort) ([]models.Complaint, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := complaintQuery(filter)

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperr.Store("failed to count complaints", err)
	}

	findOptions := options.Find().
		SetSort(sortDoc(sort)).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := s.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, apperr.Store("failed to retrieve complaints", err)
	}
	defer cursor.Close(ctx)

	complaints := make([]models.Complaint, 0)
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, 0, apperr.Store("failed to decode complaints", err)
	}
	return complaints, total, nil
}

func (s *MongoComplaintStore) Update(ctx context.Context, id primitive.ObjectID, patch models.ComplaintPatch, by primitive.ObjectID, now time.Time) (*models.Complaint, error) {
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, complaintUpdate(patch, by, now))
}

func (s *MongoComplaintStore) AttachProof(ctx context.Context, owner, id primitive.ObjectID, videoURL string, now time.Time) (*models.Complaint, error) {
	return s.findOneAndUpdate(ctx, bson.M{"_id": id, "user": owner}, proofUpdate(videoURL, now))
}

func (s *MongoComplaintStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var complaint models.Complaint
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&complaint); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Complaint not found")
		}
		return nil, apperr.Store("failed to update complaint", err)
	}
	return &complaint, nil
}

// Counts groups complaints by status in one aggregation and counts the ones
// submitted at or after since.
func (s *MongoComplaintStore) Counts(ctx context.Context, since time.Time) (*ComplaintCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Store("failed to aggregate complaints", err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status models.ComplaintStatus `bson:"_id"`
		Count  int64                  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, apperr.Store("failed to decode complaint counts", err)
	}

	counts := &ComplaintCounts{ByStatus: make(map[models.ComplaintStatus]int64, len(groups))}
	for _, g := range groups {
		counts.ByStatus[g.Status] = g.Count
		counts.Total += g.Count
	}

	counts.Since, err = s.coll.CountDocuments(ctx, bson.M{"submittedAt": bson.M{"$gte": since}})
	if err != nil {
		return nil, apperr.Store("failed to count recent complaints", err)
	}
	return counts, nil
}
