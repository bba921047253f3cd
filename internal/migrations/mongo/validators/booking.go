package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id",
			"title",
			"requested_by",
			"start_time",
			"end_time",
			"attendees",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"requested_by": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"attendees": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  500,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"pending", "confirmed", "cancelled"},
			},

			"capacity_snapshot": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"location_snapshot": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"cancelled_at": bson.M{
				"bsonType": []string{"date", "null"},
			},
		},
	},
}
