package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"nativedelight/internal/database"
	"nativedelight/internal/models"
)

// documentID accepts the _id shapes found in hand-edited catalogs: ObjectID,
// string and integer.
type documentID string

func (d *documentID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*d = documentID(raw.ObjectID().Hex())
	case bsontype.String:
		*d = documentID(strings.TrimSpace(raw.StringValue()))
	case bsontype.Int32:
		*d = documentID(strconv.FormatInt(int64(raw.Int32()), 10))
	case bsontype.Int64:
		*d = documentID(strconv.FormatInt(raw.Int64(), 10))
	case bsontype.Null, bsontype.Undefined:
		*d = ""
	default:
		return fmt.Errorf("unsupported _id type %s", t)
	}
	return nil
}

type subcategoryDocument struct {
	ID   documentID `bson:"_id,omitempty"`
	Name string     `bson:"name"`
}

type categoryDocument struct {
	ID            documentID            `bson:"_id,omitempty"`
	Name          string                `bson:"name"`
	Description   string                `bson:"description"`
	Status        string                `bson:"status"`
	Image         models.ImageRef       `bson:"image"`
	Subcategories []subcategoryDocument `bson:"subcategories"`
}

type MongoProvider struct {
	db *mongo.Database
}

func NewMongoProvider(db *mongo.Database) *MongoProvider {
	return &MongoProvider{db: db}
}

func (p *MongoProvider) FetchCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := p.db.Collection(database.CategoriesCollection).Find(
		ctx,
		bson.M{"status": bson.M{"$ne": "inactive"}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, doc.toCategory())
	}
	return categories, nil
}

func (doc categoryDocument) toCategory() models.Category {
	subs := make([]models.Subcategory, 0, len(doc.Subcategories))
	for _, sub := range doc.Subcategories {
		subs = append(subs, models.Subcategory{ID: string(sub.ID), Name: strings.TrimSpace(sub.Name)})
	}
	return models.Category{
		ID:            string(doc.ID),
		Name:          strings.TrimSpace(doc.Name),
		Description:   doc.Description,
		Status:        doc.Status,
		Image:         doc.Image.Image(),
		Subcategories: subs,
	}
}

func (p *MongoProvider) FetchMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := p.db.Collection(database.MenuItemsCollection).Find(
		ctx,
		bson.M{"status": bson.M{"$ne": "inactive"}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeMenuItems(ctx, cursor)
}

func decodeMenuItems(ctx context.Context, cursor *mongo.Cursor) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		item, err := normalizeMenuItemDocument(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// normalizeMenuItemDocument tolerates legacy documents: numeric prices of any
// BSON width and a category stored as a bare name.
func normalizeMenuItemDocument(raw bson.M) (models.MenuItem, error) {
	item := models.MenuItem{
		Name:        stringField(raw, "name"),
		Description: stringField(raw, "description"),
		Status:      stringField(raw, "status"),
		Image:       stringField(raw, "image"),
	}

	switch id := raw["_id"].(type) {
	case primitive.ObjectID:
		item.ID = id.Hex()
	case string:
		item.ID = strings.TrimSpace(id)
	}

	price, err := decimalField(raw["price"])
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("menu item %s: %w", item.ID, err)
	}
	item.Price = price

	switch category := raw["category"].(type) {
	case string:
		item.Category.Name = strings.TrimSpace(category)
	case bson.M:
		item.Category.Name = stringField(category, "name")
		item.Category.Subcategory = stringField(category, "subcategory")
	case bson.D:
		m := category.Map()
		item.Category.Name = stringField(m, "name")
		item.Category.Subcategory = stringField(m, "subcategory")
	}

	return item, nil
}

func stringField(raw bson.M, key string) string {
	if value, ok := raw[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func decimalField(value any) (decimal.Decimal, error) {
	switch typed := value.(type) {
	case nil:
		return decimal.Zero, nil
	case int32:
		return decimal.NewFromInt32(typed), nil
	case int64:
		return decimal.NewFromInt(typed), nil
	case int:
		return decimal.NewFromInt(int64(typed)), nil
	case float64:
		return decimal.NewFromFloat(typed).Round(2), nil
	case primitive.Decimal128:
		return decimal.NewFromString(typed.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(typed))
	default:
		return decimal.Zero, fmt.Errorf("unsupported price type %T", value)
	}
}

// Ping reports whether the primary is reachable.
func (p *MongoProvider) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return p.db.Client().Ping(checkCtx, readpref.Primary())
}
