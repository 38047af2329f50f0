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

const reservationCollection = "reservations"

type ReservationRepository struct {
	coll *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{coll: db.Collection(reservationCollection)}
}

type mongoReservation struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ReferenceCode    string             `bson:"reference_code"`
	CustomerID       string             `bson:"customer_id"`
	FarmerID         string             `bson:"farmer_id"`
	ProductID        string             `bson:"product_id"`
	ProductName      string             `bson:"product_name"`
	Quantity         int                `bson:"quantity"`
	UnitPrice        float64            `bson:"unit_price"`
	TotalAmount      float64            `bson:"total_amount"`
	DepositDue       float64            `bson:"deposit_due"`
	DepositPaid      float64            `bson:"deposit_paid"`
	RemainingBalance float64            `bson:"remaining_balance"`
	Status           string             `bson:"status"`
	PaymentStatus    string             `bson:"payment_status"`
	Notes            string             `bson:"notes,omitempty"`
	CreatedAt        int64              `bson:"created_at"`
	UpdatedAt        int64              `bson:"updated_at"`
}

func reservationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reference_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "farmer_id", Value: 1}}},
	}
}

// EnsureIndexes creates the indexes the reservations collection depends on.
// The unique reference_code index backs the conflict check in Create; the
// customer and farmer indexes serve the role-scoped listings.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, reservationIndexes())
	return err
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	now := time.Now().UTC()
	doc := toMongoReservation(res)
	doc.CreatedAt = now.Unix()
	doc.UpdatedAt = now.Unix()

	inserted, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewConflict("Reference code already exists")
		}
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	created := *res
	created.ID = inserted.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("Reservation")
	}

	var mr mongoReservation
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.NewNotFound("Reservation")
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	oid, err := primitive.ObjectIDFromHex(res.ID)
	if err != nil {
		return domain.NewNotFound("Reservation")
	}

	updated, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"deposit_paid":   res.DepositPaid,
		"status":         string(res.Status),
		"payment_status": string(res.PaymentStatus),
		"notes":          res.Notes,
		"updated_at":     time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if updated.MatchedCount == 0 {
		return domain.NewNotFound("Reservation")
	}
	return nil
}

func (r *ReservationRepository) List(ctx context.Context, filter ports.ReservationFilter) ([]*domain.Reservation, int64, error) {
	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	if filter.FarmerID != "" {
		query["farmer_id"] = filter.FarmerID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Page.Offset)).
		SetLimit(int64(filter.Page.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Reservation
	for cursor.Next(ctx) {
		var mr mongoReservation
		if err := cursor.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode reservation: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations: %w", err)
	}
	return out, total, nil
}

func toMongoReservation(res *domain.Reservation) mongoReservation {
	return mongoReservation{
		ReferenceCode:    res.ReferenceCode,
		CustomerID:       res.CustomerID,
		FarmerID:         res.FarmerID,
		ProductID:        res.ProductID,
		ProductName:      res.ProductName,
		Quantity:         res.Quantity,
		UnitPrice:        res.UnitPrice,
		TotalAmount:      res.TotalAmount,
		DepositDue:       res.DepositDue,
		DepositPaid:      res.DepositPaid,
		RemainingBalance: res.RemainingBalance,
		Status:           string(res.Status),
		PaymentStatus:    string(res.PaymentStatus),
		Notes:            res.Notes,
	}
}

func (mr *mongoReservation) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:               mr.ID.Hex(),
		ReferenceCode:    mr.ReferenceCode,
		CustomerID:       mr.CustomerID,
		FarmerID:         mr.FarmerID,
		ProductID:        mr.ProductID,
		ProductName:      mr.ProductName,
		Quantity:         mr.Quantity,
		UnitPrice:        mr.UnitPrice,
		TotalAmount:      mr.TotalAmount,
		DepositDue:       mr.DepositDue,
		DepositPaid:      mr.DepositPaid,
		RemainingBalance: mr.RemainingBalance,
		Status:           domain.ReservationStatus(mr.Status),
		PaymentStatus:    domain.PaymentStatus(mr.PaymentStatus),
		Notes:            mr.Notes,
		CreatedAt:        unixToTime(mr.CreatedAt),
		UpdatedAt:        unixToTime(mr.UpdatedAt),
	}
}
