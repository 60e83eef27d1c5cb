package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
)

const collectionProviders = "service_providers"

// ProviderRepository persists service-provider profiles.
type ProviderRepository struct {
	col *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{col: db.Collection(collectionProviders)}
}

// Create inserts a new provider profile.
func (r *ProviderRepository) Create(ctx context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert provider: %w", err)
	}
	return p, nil
}

func (r *ProviderRepository) FindByEmail(ctx context.Context, email string) (*domain.ServiceProvider, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*domain.ServiceProvider, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProviderRepository) FindByUserID(ctx context.Context, userID string) (*domain.ServiceProvider, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ProviderRepository) findOne(ctx context.Context, filter bson.M) (*domain.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.ServiceProvider
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("find provider: %w", err)
	}
	return &p, nil
}

// Update replaces the mutable profile fields.
func (r *ProviderRepository) Update(ctx context.Context, p *domain.ServiceProvider) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":         p.Name,
		"service_type": p.ServiceType,
		"experience":   p.Experience,
		"location":     p.Location,
		"license_file": p.LicenseFile,
		"verified":     p.Verified,
		"updated_at":   p.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// AddPortfolioEntry appends an entry to the profile's portfolio array.
func (r *ProviderRepository) AddPortfolioEntry(ctx context.Context, providerID string, entry domain.PortfolioEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": providerID}, bson.M{
		"$push": bson.M{"portfolio": entry},
		"$set":  bson.M{"updated_at": entry.AddedAt},
	})
	if err != nil {
		return fmt.Errorf("add portfolio entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// List returns directory entries matching the filter, newest first.
func (r *ProviderRepository) List(ctx context.Context, filter ports.ListProvidersFilter) ([]*domain.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Query != "" {
		query["name"] = bson.M{"$regex": filter.Query, "$options": "i"}
	}
	if filter.ServiceType != "" {
		query["service_type"] = filter.ServiceType
	}
	if filter.Verified {
		query["verified"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []*domain.ServiceProvider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("decode providers: %w", err)
	}
	return providers, nil
}

// EnsureIndexes creates the unique email index and the user_id lookup index.
func (r *ProviderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_type", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
