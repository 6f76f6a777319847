package storage

import (
	"context"
	"time"

	"github.com/Govind-619/storefront/cart"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// AuditEntry is one checkout outcome as stored in Mongo.
type AuditEntry struct {
	ID             string    `bson:"_id,omitempty"`
	Action         string    `bson:"action"`
	OrderNumber    string    `bson:"order_number"`
	SessionID      string    `bson:"session_id"`
	UserID         string    `bson:"user_id,omitempty"`
	Total          int64     `bson:"total"`
	CouponCode     string    `bson:"coupon_code,omitempty"`
	Persisted      bool      `bson:"persisted"`
	PersistError   string    `bson:"persist_error,omitempty"`
	DispatchError  string    `bson:"dispatch_error,omitempty"`
	ClearError     string    `bson:"clear_error,omitempty"`
	CouponConsumed bool      `bson:"coupon_consumed"`
	States         []string  `bson:"states"`
	Data           bson.M    `bson:"data,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
}

// MongoAuditLog records every checkout attempt, persisted or not.
type MongoAuditLog struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewMongoAuditLog(ctx context.Context, cfg MongoConfig, logger *zap.Logger) (*MongoAuditLog, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoAuditLog{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger,
	}, nil
}

func (m *MongoAuditLog) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoAuditLog) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// AuditFromReceipt flattens a receipt into an audit entry.
func AuditFromReceipt(r cart.Receipt) *AuditEntry {
	entry := &AuditEntry{
		Action:         "checkout",
		OrderNumber:    r.OrderNumber,
		SessionID:      r.SessionID,
		UserID:         r.UserID,
		Total:          r.Totals.Total,
		CouponCode:     r.CouponCode,
		Persisted:      r.Persisted,
		CouponConsumed: r.CouponConsumed,
		CreatedAt:      r.CreatedAt,
		Data: bson.M{
			"items":    len(r.Items),
			"subtotal": r.Totals.RawSubtotal,
			"shipping": r.Totals.Shipping,
		},
	}
	if r.PersistError != nil {
		entry.PersistError = r.PersistError.Error()
	}
	if r.DispatchError != nil {
		entry.DispatchError = r.DispatchError.Error()
	}
	if r.ClearError != nil {
		entry.ClearError = r.ClearError.Error()
	}
	for _, st := range r.States {
		entry.States = append(entry.States, string(st))
	}
	return entry
}

func (m *MongoAuditLog) CreateAuditEntry(ctx context.Context, entry *AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := m.collection.InsertOne(ctx, entry)
	return err
}

// Hook adapts the audit log to a checkout hook. Write failures are logged.
func (m *MongoAuditLog) Hook() cart.CheckoutHook {
	return func(ctx context.Context, r cart.Receipt) {
		if err := m.CreateAuditEntry(ctx, AuditFromReceipt(r)); err != nil {
			m.logger.Warn("Failed to write checkout audit entry",
				zap.String("order", r.OrderNumber), zap.Error(err))
		}
	}
}
