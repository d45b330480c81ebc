package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/database"
	"github.com/isdelr/linkstart-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// userDocument is the stored shape of a user. The hash field name matches
// documents written by earlier versions of the service.
type userDocument struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Username       string        `bson:"username"`
	Email          string        `bson:"email"`
	HashedPassword string        `bson:"hashed_password"`
}

func (d userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.HashedPassword,
	}
}

// MongoUserRepository stores users in the users collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(database.UsersCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	doc := userDocument{Username: user.Username, Email: user.Email, HashedPassword: user.PasswordHash}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			switch duplicateIndex(err) {
			case database.UsernameIndex:
				return common.ErrDuplicateUsername
			case database.EmailIndex:
				return common.ErrDuplicateEmail
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toModel(), nil
}

// duplicateIndex returns the name of the unique index a duplicate-key write
// error violated. The server message reads "... index: <name> dup key: {...}";
// only the first "index: " is used because the key values follow it.
func duplicateIndex(err error) string {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return ""
	}
	for _, e := range we.WriteErrors {
		if e.Code != 11000 {
			continue
		}
		_, rest, found := strings.Cut(e.Message, "index: ")
		if !found {
			continue
		}
		name, _, _ := strings.Cut(rest, " ")
		return name
	}
	return ""
}
