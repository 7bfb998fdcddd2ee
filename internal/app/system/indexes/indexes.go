// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

Uniqueness rules live here as partial unique indexes filtered to
is_deleted: false, so soft-deleted records release their email, phone,
plate, and name for reuse while live records stay unique.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureVehicles(ctx, db); err != nil {
		problems = append(problems, "vehicles: "+err.Error())
	}
	if err := ensureRequests(ctx, db); err != nil {
		problems = append(problems, "requests: "+err.Error())
	}
	if err := ensureTasks(ctx, db); err != nil {
		problems = append(problems, "tasks: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name    string `bson:"name"`
	Key     bson.D `bson:"key"`
	Unique  *bool  `bson:"unique,omitempty"`
	Partial bson.M `bson:"partialFilterExpression,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// samePartial compares the partial-filter shape only by presence. The filters
// we use are all {is_deleted: false}, so presence is enough to tell an old
// full unique index from the partial one we want.
func samePartial(desired interface{}, existing bson.M) bool {
	return (desired == nil) == (len(existing) == 0)
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		var desiredPartial interface{}
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
			desiredPartial = m.Options.PartialFilterExpression
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// 1) Load existing indexes
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
			cur.Close(ctx)
		}

		if ex, ok := existing[desiredSig]; ok {
			// Same key pattern exists already.
			if sameBoolPtr(desiredUnique, ex.Unique) && samePartial(desiredPartial, ex.Partial) {
				// Name alignment: if the name differs, drop & recreate with the desired name.
				if desiredName != "" && ex.Name != desiredName {
					zap.L().Info("renaming index to align with desired name",
						zap.String("collection", coll.Name()),
						zap.String("from", ex.Name),
						zap.String("to", desiredName),
						zap.String("keys", desiredSig))

					if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
						errs = append(errs, fmt.Sprintf("%s(%s): rename drop failed: %v", coll.Name(), desiredName, err))
						continue
					}
					if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
						errs = append(errs, fmt.Sprintf("%s(%s): rename create failed: %v", coll.Name(), desiredName, err))
						continue
					}
					zap.L().Info("index renamed",
						zap.String("collection", coll.Name()),
						zap.String("name", desiredName),
						zap.String("keys", desiredSig),
						zap.String("took", time.Since(start).String()))
					continue
				}

				// Names aligned (or we don't care): reuse.
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Bool("unique", ex.Unique != nil && *ex.Unique),
					zap.String("took", time.Since(start).String()))
				continue
			}

			// Options mismatch (e.g., upgrading a full unique index to a
			// partial one). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
					errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
				} else {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				}
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		// 2) No existing index with the same keys: create it.
		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil {
			if isOptionsConflictErr(err) {
				// A same-keys index appeared between List and CreateOne, or
				// the driver saw an option delta we didn't. Drop by name and
				// retry once.
				if desiredName != "" {
					if _, dropErr := coll.Indexes().DropOne(ctx, desiredName); dropErr != nil {
						zap.L().Warn("failed to drop conflicting index",
							zap.String("collection", coll.Name()),
							zap.String("name", desiredName),
							zap.Error(dropErr))
					}
					if _, retryErr := coll.Indexes().CreateOne(ctx, m); retryErr == nil {
						zap.L().Info("index dropped and recreated (post-conflict)",
							zap.String("collection", coll.Name()),
							zap.String("name", desiredName),
							zap.String("keys", desiredSig),
							zap.String("took", time.Since(start).String()))
						continue
					}
				}
			}
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
				continue
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("created_name", created),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// notDeleted scopes a unique index to live records only.
func notDeleted() bson.D {
	return bson.D{{Key: "is_deleted", Value: false}}
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// 1) Email unique among live users (case/diacritics folded via email_ci).
		//    A soft-deleted user's email becomes reusable immediately.
		{
			Keys: bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(notDeleted()).
				SetName("uniq_users_emailci_live"),
		},

		// 2) Phone unique among live users.
		{
			Keys: bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(notDeleted()).
				SetName("uniq_users_phone_live"),
		},

		// 3) Coordinator user lists: filter by role, stable tiebreak by _id.
		{
			Keys: bson.D{
				{Key: "is_deleted", Value: 1},
				{Key: "role", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_users_deleted_role_id"),
		},

		// 4) Per-org member lookups and counts.
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("idx_users_org"),
		},
	})
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("organizations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Organization names unique among live records (folded via name_ci).
		{
			Keys: bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(notDeleted()).
				SetName("uniq_orgs_nameci_live"),
		},

		// Name prefix search + stable sort for list pages.
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_orgs_nameci__id"),
		},
		// Filter by type (public/private), then name sort.
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_orgs_type_nameci__id"),
		},
	})
}

func ensureVehicles(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("vehicles")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Plate unique among live vehicles (normalized via plate_ci).
		{
			Keys: bson.D{{Key: "plate_ci", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(notDeleted()).
				SetName("uniq_vehicles_plateci_live"),
		},

		// Owner's fleet listing.
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_vehicles_owner__id"),
		},

		// Per-org fleet listing.
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_vehicles_org__id"),
		},

		// Coordinator matching: find available vehicles by type.
		{
			Keys: bson.D{
				{Key: "is_deleted", Value: 1},
				{Key: "vehicle_type", Value: 1},
				{Key: "availability", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_vehicles_deleted_type_avail_id"),
		},
	})
}

func ensureRequests(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("requests")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// A requester's own requests, latest-first.
		{
			Keys:    bson.D{{Key: "requester_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_requests_requester_created"),
		},
		// Per-org request listing.
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_requests_org_created"),
		},
		// Coordinator work queue: pending first, latest-first within status.
		{
			Keys: bson.D{
				{Key: "is_deleted", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_requests_deleted_status_created"),
		},
	})
}

func ensureTasks(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("tasks")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Tasks for a request.
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_tasks_request_created"),
		},
		// Tasks assigned to a vehicle (drives the owner's task list).
		{
			Keys:    bson.D{{Key: "vehicle_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_tasks_vehicle_created"),
		},
		// Tasks a coordinator created.
		{
			Keys:    bson.D{{Key: "coordinator_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_tasks_coordinator_created"),
		},
		// Open-task dashboards.
		{
			Keys: bson.D{
				{Key: "is_deleted", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_tasks_deleted_status_created"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("notifications")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// A user's notification feed, latest-first.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notifs_user_created"),
		},
		// Organizational notifications, latest-first.
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notifs_org_created"),
		},
		// Unread badge counts.
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "read", Value: 1},
				{Key: "is_deleted", Value: 1},
			},
			Options: options.Index().SetName("idx_notifs_user_read_deleted"),
		},
		// Cleanup worker scans old read notifications by age.
		{
			Keys:    bson.D{{Key: "read", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_notifs_read_created"),
		},
	})
}
