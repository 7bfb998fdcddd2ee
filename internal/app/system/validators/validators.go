// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
//
// The schemas are a backstop: request validation happens in the inputval
// layer, so these only guard against writes that bypass the application.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("organizations", orgsSchema())
	ensure("vehicles", vehiclesSchema())
	ensure("requests", requestsSchema())
	ensure("tasks", tasksSchema())
	ensure("notifications", notificationsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func enumOf(values []string) bson.A {
	out := bson.A{}
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "surname", "email", "phone", "role", "is_deleted"},
			"properties": bson.M{
				"name":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"surname":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email":      bson.M{"bsonType": "string", "minLength": 3},
				"email_ci":   bson.M{"bsonType": "string", "minLength": 3},
				"phone":      bson.M{"bsonType": "string", "minLength": 1},
				"password":   bson.M{"bsonType": "string"},
				"role":       bson.M{"enum": enumOf(models.RoleList())},
				"organization_id": bson.M{"bsonType": bson.A{"objectId", "null"}},
				"is_deleted": bson.M{"bsonType": "bool"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func orgsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci", "is_deleted"},
			"properties": bson.M{
				"name":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"name_ci":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"type":       bson.M{"enum": enumOf(models.OrgTypeList())},
				"is_deleted": bson.M{"bsonType": "bool"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func vehiclesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"plate", "plate_ci", "vehicle_type", "usage_purpose", "capacity", "is_deleted"},
			"properties": bson.M{
				"plate":              bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"plate_ci":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"vehicle_type":       bson.M{"enum": enumOf(models.VehicleTypeList())},
				"usage_purpose":      bson.M{"enum": enumOf(models.UsagePurposeList())},
				"capacity":           bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0},
				"availability":       bson.M{"bsonType": "bool"},
				"operational_status": bson.M{"enum": enumOf(models.VehicleStatusList())},
				"organization_id":    bson.M{"bsonType": bson.A{"objectId", "null"}},
				"owner_id":           bson.M{"bsonType": bson.A{"objectId", "null"}},
				"is_deleted":         bson.M{"bsonType": "bool"},
				"created_at":         bson.M{"bsonType": "date"},
				"updated_at":         bson.M{"bsonType": "date"},
			},
		},
	}
}

func requestsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "requester_id", "organization_id", "vehicle_requirements", "status", "is_deleted"},
			"properties": bson.M{
				"title":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"description":     bson.M{"bsonType": "string"},
				"requester_id":    bson.M{"bsonType": "objectId"},
				"organization_id": bson.M{"bsonType": "objectId"},
				"vehicle_requirements": bson.M{
					"bsonType": "array",
					"minItems": 1,
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"vehicle_type", "count"},
						"properties": bson.M{
							"vehicle_type": bson.M{"enum": enumOf(models.VehicleTypeList())},
							"count":        bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
						},
					},
				},
				"status":     bson.M{"enum": enumOf(models.RequestStatusList())},
				"is_deleted": bson.M{"bsonType": "bool"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func tasksSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"request_id", "vehicle_id", "coordinator_id", "status", "is_deleted"},
			"properties": bson.M{
				"request_id":     bson.M{"bsonType": "objectId"},
				"vehicle_id":     bson.M{"bsonType": "objectId"},
				"coordinator_id": bson.M{"bsonType": "objectId"},
				"status":         bson.M{"enum": enumOf(models.TaskStatusList())},
				"note":           bson.M{"bsonType": "string"},
				"driver_info": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"name":    bson.M{"bsonType": "string"},
						"surname": bson.M{"bsonType": "string"},
						"phone":   bson.M{"bsonType": "string"},
					},
				},
				"is_deleted": bson.M{"bsonType": "bool"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func notificationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "content", "type", "visibility", "is_deleted"},
			"properties": bson.M{
				"user_id":         bson.M{"bsonType": bson.A{"objectId", "null"}},
				"organization_id": bson.M{"bsonType": bson.A{"objectId", "null"}},
				"title":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"content":         bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"target_url":      bson.M{"bsonType": "string"},
				"read":            bson.M{"bsonType": "bool"},
				"type":            bson.M{"enum": enumOf(models.NotificationTypeList())},
				"visibility":      bson.M{"enum": enumOf(models.NotificationVisibilityList())},
				"is_deleted":      bson.M{"bsonType": "bool"},
				"created_at":      bson.M{"bsonType": "date"},
				"updated_at":      bson.M{"bsonType": "date"},
			},
		},
	}
}
