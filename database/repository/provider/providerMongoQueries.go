package providerRepo

import (
	"fmt"
	"time"

	"citylinker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// categoryLookupStages resolves the referenced category's name into the
// provider documents, mirroring the denormalized join the API returns.
func categoryLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "categories"},
			{Key: "localField", Value: "category"},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: "categoryDoc"},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"categoryName": bson.M{"$arrayElemAt": bson.A{"$categoryDoc.name", 0}},
		}}},
		{{Key: "$project", Value: bson.M{"categoryDoc": 0}}},
	}
}

// GetFeatured retrieves featured providers sorted by average rating descending.
func (r *MongoProviderRepo) GetFeatured(limit int) ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"featured": true}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "averageRating", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	pipeline = append(pipeline, categoryLookupStages()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve featured providers: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeProviders(ctx, cursor)
}

// Search matches term case-insensitively against name, description, city and
// service names (logical OR), intersected with an exact category when given.
// Results are sorted by average rating descending.
func (r *MongoProviderRepo) Search(term, category string) ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.M{}
	if term != "" {
		match["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": term, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": term, "$options": "i"}},
			bson.M{"location.city": bson.M{"$regex": term, "$options": "i"}},
			bson.M{"services.name": bson.M{"$regex": term, "$options": "i"}},
		}
	}
	if category != "" {
		match["category"] = category
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "averageRating", Value: -1}}}},
	}
	pipeline = append(pipeline, categoryLookupStages()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeProviders(ctx, cursor)
}

// GetByCategory retrieves providers in a category with the given sort order.
func (r *MongoProviderRepo) GetByCategory(categoryID string, sort SortOrder) ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	var sortDoc bson.D
	switch sort {
	case SortByReviews:
		sortDoc = bson.D{{Key: "reviewCount", Value: -1}}
	case SortByName:
		sortDoc = bson.D{{Key: "name", Value: 1}}
	default:
		sortDoc = bson.D{{Key: "averageRating", Value: -1}}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"category": categoryID}}},
		bson.D{{Key: "$sort", Value: sortDoc}},
	}
	pipeline = append(pipeline, categoryLookupStages()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers for category %s: %w", categoryID, err)
	}
	defer cursor.Close(ctx)

	return decodeProviders(ctx, cursor)
}
