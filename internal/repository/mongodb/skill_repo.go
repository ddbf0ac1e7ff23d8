package mongodb

import (
	"context"
	"time"

	"go-skillmarket-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type skillRepo struct {
	coll *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) domain.SkillRepository {
	return &skillRepo{coll: db.Collection("skills")}
}

func (r *skillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	skill.ID = primitive.NewObjectID()
	_, err := r.coll.InsertOne(ctx, skill)
	return err
}

func (r *skillRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Skill, error) {
	var skill domain.Skill
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&skill)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, filter domain.SkillFilter) ([]domain.Skill, error) {
	f := NewFilter(bson.M{"user": userID}).
		RegexAny([]string{"name", "description"}, filter.Search).
		Eq("category", filter.Category)

	if filter.Type == domain.SkillTypeSkill || filter.Type == domain.SkillTypeCertification {
		f.Eq("type", filter.Type)
	}

	return r.find(ctx, f.Build())
}

func (r *skillRepo) ListPublicByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Skill, error) {
	return r.find(ctx, bson.M{"user": userID, "is_public": true})
}

func (r *skillRepo) find(ctx context.Context, filter bson.M) ([]domain.Skill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	skills := []domain.Skill{}
	if err := cursor.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepo) Update(ctx context.Context, skill *domain.Skill) error {
	skill.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": skill.ID}, skill)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *skillRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *skillRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	return err
}

// AddEndorsement appends behind a guard excluding skills the user
// already endorsed; the counter rides in the same update.
func (r *skillRepo) AddEndorsement(ctx context.Context, skillID primitive.ObjectID, e domain.Endorsement) (int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": skillID, "endorsements.user": bson.M{"$ne": e.User}},
		bson.M{
			"$push": bson.M{"endorsements": e},
			"$inc":  bson.M{"endorsement_count": 1},
		},
	)
	if err != nil {
		return 0, err
	}
	if res.MatchedCount == 0 {
		if count, err := r.coll.CountDocuments(ctx, bson.M{"_id": skillID}); err == nil && count == 0 {
			return 0, domain.ErrNotFound
		}
		return 0, domain.ErrDuplicate
	}
	return r.endorsementCount(ctx, skillID)
}

// RemoveEndorsement filters the caller out of the list and recomputes
// the counter in the same pipeline update, so the two cannot drift.
func (r *skillRepo) RemoveEndorsement(ctx context.Context, skillID, userID primitive.ObjectID) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": skillID}, mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"endorsements": bson.M{"$filter": bson.M{
			"input": bson.M{"$ifNull": bson.A{"$endorsements", bson.A{}}},
			"as":    "e",
			"cond":  bson.M{"$ne": bson.A{"$$e.user", userID}},
		}}}}},
		{{Key: "$set", Value: bson.M{"endorsement_count": bson.M{"$size": "$endorsements"}}}},
	})
	if err != nil {
		return 0, err
	}
	if res.MatchedCount == 0 {
		return 0, domain.ErrNotFound
	}
	return r.endorsementCount(ctx, skillID)
}

func (r *skillRepo) endorsementCount(ctx context.Context, skillID primitive.ObjectID) (int64, error) {
	skill, err := r.GetByID(ctx, skillID)
	if err != nil {
		return 0, err
	}
	return skill.EndorsementCount, nil
}

func (r *skillRepo) CountByUser(ctx context.Context, userID primitive.ObjectID, skillType string) (int64, error) {
	filter := bson.M{"user": userID}
	if skillType != "" {
		filter["type"] = skillType
	}
	return r.coll.CountDocuments(ctx, filter)
}

func (r *skillRepo) Stats(ctx context.Context, userID primitive.ObjectID) (*domain.SkillStats, error) {
	match := bson.M{"user": userID}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":                 nil,
			"totalSkills":         bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$type", domain.SkillTypeSkill}}, 1, 0}}},
			"totalCertifications": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$type", domain.SkillTypeCertification}}, 1, 0}}},
			"categories":          bson.M{"$addToSet": "$category"},
			"avgEndorsements":     bson.M{"$avg": "$endorsement_count"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []domain.SkillOverview
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.SkillStats{Overview: domain.SkillOverview{Categories: []string{}}}
	if len(rows) > 0 {
		stats.Overview = rows[0]
	}

	if stats.CategoryBreakdown, err = groupCount(ctx, r.coll, match, "$category"); err != nil {
		return nil, err
	}
	return stats, nil
}
