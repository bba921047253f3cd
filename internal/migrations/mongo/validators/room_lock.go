package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id",
			"expires_at",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			// Lock IDs are deterministic strings ("room_lock_<roomID>") so
			// the unique _id index doubles as the mutual exclusion guard.
			"_id": bson.M{
				"bsonType": "string",
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
