package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"cleanindia-be/apperr"
	"cleanindia-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userProjection strips credentials and one-time codes from listed users.
var userProjection = bson.M{
	"password":          0,
	"verifyOtp":         0,
	"verifyOtpExpireAt": 0,
	"resetOtp":          0,
	"resetOtpExpireAt":  0,
}

type MongoUserStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewUserStore(db *mongo.Database, timeout time.Duration) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection("users"), timeout: timeout}
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user.Email = normalizeEmail(user.Email)
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("User already exists")
		}
		return apperr.Store("failed to create user", err)
	}
	return nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var user models.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Store("failed to retrieve user", err)
	}
	return &user, nil
}

func (s *MongoUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetProjection(userProjection)
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, apperr.Store("failed to retrieve users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperr.Store("failed to decode users", err)
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

func (s *MongoUserStore) List(ctx context.Context, filter UserFilter, page Page) ([]models.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := userQuery(filter)

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, apperr.Store("failed to count users", err)
	}

	findOptions := options.Find().
		SetProjection(userProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if page.Limit > 0 {
		findOptions.SetSkip(page.Skip()).SetLimit(int64(page.Limit))
	}

	cursor, err := s.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, apperr.Store("failed to retrieve users", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, apperr.Store("failed to decode users", err)
	}
	return users, total, nil
}

func (s *MongoUserStore) Count(ctx context.Context, filter UserFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, userQuery(filter))
	if err != nil {
		return 0, apperr.Store("failed to count users", err)
	}
	return n, nil
}

func (s *MongoUserStore) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"isActive":  active,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return apperr.Store("failed to update user", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
