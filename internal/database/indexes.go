package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nativedelight/internal/logger"
)

func EnsureCategoryIndexes(ctx context.Context, db *mongo.Database, logg *logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	indexes := db.Collection(CategoriesCollection).Indexes()

	nameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetName("name_unique").
			SetUnique(true),
	}

	ctx = logg.WithField(ctx, "index", "name_unique")
	logg.Debug(ctx, "ensure category index")
	if _, err := indexes.CreateOne(ctx, nameIndex); err != nil {
		logg.Error(ctx, "category index error", err)
		return err
	}
	return nil
}

func EnsureMenuItemIndexes(ctx context.Context, db *mongo.Database, logg *logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	indexes := db.Collection(MenuItemsCollection).Indexes()

	categoryIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "category.name", Value: 1},
			{Key: "category.subcategory", Value: 1},
		},
		Options: options.Index().SetName("category_subcategory_index"),
	}
	statusIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("status_index"),
	}

	ctx = logg.WithField(ctx, "collection", MenuItemsCollection)
	logg.Debug(ctx, "ensure menu item indexes")
	if _, err := indexes.CreateMany(ctx, []mongo.IndexModel{categoryIndex, statusIndex}); err != nil {
		logg.Error(ctx, "menu item index error", err)
		return err
	}
	return nil
}
