package validators

import "go.mongodb.org/mongo-driver/bson"

var SubmissionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"payload",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 256,
			},

			"draft_id": bson.M{
				"bsonType": "string",
			},

			"appointment_id": bson.M{
				"bsonType": "string",
			},

			"payload": bson.M{
				"bsonType": "object",
				"required": []string{"name", "email", "phone", "service_name", "date", "time"},
				"properties": bson.M{
					"name":         bson.M{"bsonType": "string", "minLength": 1},
					"email":        bson.M{"bsonType": "string", "minLength": 3},
					"phone":        bson.M{"bsonType": "string", "minLength": 10},
					"service_name": bson.M{"bsonType": "string", "minLength": 1},
					"date": bson.M{
						"bsonType": "string",
						"pattern":  `^\d{4}-\d{2}-\d{2}$`,
					},
					"time": bson.M{
						"bsonType": "string",
						"pattern":  `^\d{2}:\d{2}$`,
					},
					"message": bson.M{
						"bsonType": []string{"string", "null"},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
