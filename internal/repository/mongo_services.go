package repository

import (
	"context"
	"fmt"

	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/database"
	"github.com/isdelr/linkstart-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type serviceDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Owner     string        `bson:"service_owner"`
	Name      string        `bson:"name"`
	PublicIP  string        `bson:"public_ip"`
	PrivateIP string        `bson:"private_ip"`
}

func (d serviceDocument) toModel() models.Service {
	return models.Service{
		ID:        d.ID.Hex(),
		Owner:     d.Owner,
		Name:      d.Name,
		PublicIP:  d.PublicIP,
		PrivateIP: d.PrivateIP,
	}
}

// MongoServiceRepository stores service records in the services collection.
// Identifiers are ObjectID hex strings.
type MongoServiceRepository struct {
	coll *mongo.Collection
}

// NewMongoServiceRepository creates a new MongoServiceRepository.
func NewMongoServiceRepository(db *mongo.Database) *MongoServiceRepository {
	return &MongoServiceRepository{coll: db.Collection(database.ServicesCollection)}
}

func (r *MongoServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	doc := serviceDocument{Owner: svc.Owner, Name: svc.Name, PublicIP: svc.PublicIP, PrivateIP: svc.PrivateIP}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	svc.ID = oid.Hex()
	return nil
}

func (r *MongoServiceRepository) ListByOwner(ctx context.Context, owner string) ([]models.Service, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"service_owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	var docs []serviceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}

	services := make([]models.Service, 0, len(docs))
	for _, d := range docs {
		services = append(services, d.toModel())
	}
	return services, nil
}

// DeleteByOwner matches on _id and owner in one filter, so a foreign record
// reports common.ErrNotFound exactly like a missing one.
func (r *MongoServiceRepository) DeleteByOwner(ctx context.Context, owner, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidIdentifier, id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "service_owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *MongoServiceRepository) CountByOwner(ctx context.Context, owner string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"service_owner": owner})
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}
