package dashboard

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const topProductsLimit = 5

// buildMatch returns the order predicate shared by every pipeline. A nil
// qualifying set means "no product filter".
func buildMatch(start, end *time.Time, qualifying []primitive.ObjectID) bson.D {
	match := bson.D{}

	if start != nil || end != nil {
		dateRange := bson.D{}
		if start != nil {
			dateRange = append(dateRange, bson.E{Key: "$gte", Value: *start})
		}
		if end != nil {
			dateRange = append(dateRange, bson.E{Key: "$lte", Value: *end})
		}
		match = append(match, bson.E{Key: "date", Value: dateRange})
	}

	if qualifying != nil {
		match = append(match, bson.E{Key: "product_ids", Value: bson.D{{Key: "$in", Value: qualifying}}})
	}

	return match
}

func summaryPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_orders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
			{Key: "avg_order_value", Value: bson.D{{Key: "$avg", Value: "$total"}}},
			{Key: "min_order_value", Value: bson.D{{Key: "$min", Value: "$total"}}},
			{Key: "max_order_value", Value: bson.D{{Key: "$max", Value: "$total"}}},
		}}},
	}
}

// timeSeriesPipeline buckets orders by UTC calendar day.
func timeSeriesPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "year", Value: bson.D{{Key: "$year", Value: "$date"}}},
				{Key: "month", Value: bson.D{{Key: "$month", Value: "$date"}}},
				{Key: "day", Value: bson.D{{Key: "$dayOfMonth", Value: "$date"}}},
			}},
			{Key: "daily_revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
			{Key: "order_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "date", Value: bson.D{{Key: "$dateFromParts", Value: bson.D{
				{Key: "year", Value: "$_id.year"},
				{Key: "month", Value: "$_id.month"},
				{Key: "day", Value: "$_id.day"},
			}}}},
			{Key: "revenue", Value: "$daily_revenue"},
			{Key: "orders", Value: "$order_count"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}
}

// topProductsPipeline ranks products by how many matching orders contain
// them. Each product is credited with the full total of those orders.
// Products that no longer exist are dropped by the lookup/unwind pair.
func topProductsPipeline(match bson.D, qualifying []primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$product_ids"}},
	}

	if qualifying != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "product_ids", Value: bson.D{{Key: "$in", Value: qualifying}}},
		}}})
	}

	return append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_ids"},
			{Key: "order_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "order_count", Value: -1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$limit", Value: topProductsLimit}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product_info"},
		}}},
		bson.D{{Key: "$unwind", Value: "$product_info"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "product_id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "name", Value: "$product_info.name"},
			{Key: "order_count", Value: 1},
			{Key: "total_revenue", Value: 1},
		}}},
	)
}
