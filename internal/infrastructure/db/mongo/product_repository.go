package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
)

const productCollection = "products"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FarmerID    string             `bson:"farmer_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	FarmName    string             `bson:"farm_name"`
	FarmType    string             `bson:"farm_type"`
	RegNumber   string             `bson:"registration_number,omitempty"`
	Stage       string             `bson:"stage"`
	UnitPrice   float64            `bson:"unit_price"`
	Unit        string             `bson:"unit"`
	Quantity    int                `bson:"quantity"`
	HarvestDate int64              `bson:"harvest_date,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func productIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "farmer_id", Value: 1}}},
		{Keys: bson.D{{Key: "stage", Value: 1}}},
	}
}

// EnsureIndexes creates the lookup indexes behind the catalog filters.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, productIndexes())
	return err
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	doc := toMongoProduct(p)
	doc.CreatedAt = now.Unix()
	doc.UpdatedAt = now.Unix()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("Product")
	}

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.NewNotFound("Product")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.NewNotFound("Product")
	}

	doc := toMongoProduct(p)
	doc.UpdatedAt = time.Now().UTC().Unix()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":         doc.Name,
		"description":  doc.Description,
		"stage":        doc.Stage,
		"unit_price":   doc.UnitPrice,
		"quantity":     doc.Quantity,
		"harvest_date": doc.HarvestDate,
		"image_url":    doc.ImageURL,
		"updated_at":   doc.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Product")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("Product")
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("Product")
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, int64, error) {
	query := bson.M{}
	if filter.FarmerID != "" {
		query["farmer_id"] = filter.FarmerID
	}
	if filter.Stage != "" {
		query["stage"] = string(filter.Stage)
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"farm_name": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Page.Offset)).
		SetLimit(int64(filter.Page.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Product
	for cursor.Next(ctx) {
		var mp mongoProduct
		if err := cursor.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode product: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}
	return out, total, nil
}

// DecrementStock subtracts qty only when enough units remain, in a single
// conditional update so concurrent reservations cannot oversell.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("Product")
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "quantity": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"quantity": -qty},
			"$set": bson.M{"updated_at": time.Now().UTC().Unix()},
		})
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the product is gone or stock is short; disambiguate.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return domain.NewOutOfStock("")
	}
	return nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("Product")
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"quantity": qty},
			"$set": bson.M{"updated_at": time.Now().UTC().Unix()},
		})
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Product")
	}
	return nil
}

func toMongoProduct(p *domain.Product) mongoProduct {
	var harvest int64
	if !p.HarvestDate.IsZero() {
		harvest = p.HarvestDate.Unix()
	}
	return mongoProduct{
		FarmerID:    p.FarmerID,
		Name:        p.Name,
		Description: p.Description,
		FarmName:    p.FarmName,
		FarmType:    string(p.FarmType),
		RegNumber:   p.RegistrationNumber,
		Stage:       string(p.Stage),
		UnitPrice:   p.UnitPrice,
		Unit:        p.Unit,
		Quantity:    p.Quantity,
		HarvestDate: harvest,
		ImageURL:    p.ImageURL,
	}
}

func (mp *mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:                 mp.ID.Hex(),
		FarmerID:           mp.FarmerID,
		Name:               mp.Name,
		Description:        mp.Description,
		FarmName:           mp.FarmName,
		FarmType:           domain.FarmType(mp.FarmType),
		RegistrationNumber: mp.RegNumber,
		Stage:              domain.PlantingStage(mp.Stage),
		UnitPrice:          mp.UnitPrice,
		Unit:               mp.Unit,
		Quantity:           mp.Quantity,
		HarvestDate:        unixToTime(mp.HarvestDate),
		ImageURL:           mp.ImageURL,
		CreatedAt:          unixToTime(mp.CreatedAt),
		UpdatedAt:          unixToTime(mp.UpdatedAt),
	}
}
