package mongodb

import (
	"context"
	"strings"
	"time"

	"go-skillmarket-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type examRepo struct {
	coll *mongo.Collection
}

func NewExamRepository(db *mongo.Database) domain.ExamRepository {
	return &examRepo{coll: db.Collection("exams")}
}

func (r *examRepo) Create(ctx context.Context, exam *domain.Exam) error {
	exam.ID = primitive.NewObjectID()
	_, err := r.coll.InsertOne(ctx, exam)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *examRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exam, error) {
	var exam domain.Exam
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&exam)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) GetByCode(ctx context.Context, code string) (*domain.Exam, error) {
	var exam domain.Exam
	err := r.coll.FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&exam)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) List(ctx context.Context, filter domain.ExamFilter, page domain.PageQuery) ([]domain.Exam, int64, error) {
	f := NewFilter(bson.M{"status": domain.ExamStatusActive}).
		Text(filter.Search).
		Eq("category", filter.Category).
		Eq("subcategory", filter.Subcategory).
		Eq("level", filter.Level).
		Regex("provider.name", filter.Provider).
		Eq("difficulty", filter.Difficulty).
		EqBool("is_featured", filter.Featured)

	exams := []domain.Exam{}
	total, err := findPage(ctx, r.coll, f.Build(), page, &exams)
	if err != nil {
		return nil, 0, err
	}
	return exams, total, nil
}

func (r *examRepo) Update(ctx context.Context, exam *domain.Exam) error {
	exam.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": exam.ID}, exam)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *examRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddReview appends the entry behind a guard excluding exams the user
// already reviewed, then recomputes the derived rating fields.
func (r *examRepo) AddReview(ctx context.Context, examID primitive.ObjectID, review domain.Review) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": examID, "reviews.user": bson.M{"$ne": review.User}},
		bson.M{"$push": bson.M{"reviews": review}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if count, err := r.coll.CountDocuments(ctx, bson.M{"_id": examID}); err == nil && count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrDuplicate
	}
	return r.recomputeRating(ctx, examID)
}

func (r *examRepo) UpdateReview(ctx context.Context, examID primitive.ObjectID, review domain.Review) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": examID, "reviews._id": review.ID},
		bson.M{"$set": bson.M{
			"reviews.$.rating":  review.Rating,
			"reviews.$.comment": review.Comment,
			"reviews.$.date":    review.Date,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return r.recomputeRating(ctx, examID)
}

func (r *examRepo) RemoveReview(ctx context.Context, examID, reviewID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": examID},
		bson.M{"$pull": bson.M{"reviews": bson.M{"_id": reviewID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return r.recomputeRating(ctx, examID)
}

// recomputeRating derives average_rating and review_count from the
// reviews array in a single pipeline update, so the stored aggregates
// can never drift from the list.
func (r *examRepo) recomputeRating(ctx context.Context, examID primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, examID, mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"review_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}}},
			"average_rating": bson.M{"$ifNull": bson.A{
				bson.M{"$round": bson.A{bson.M{"$avg": "$reviews.rating"}, 1}},
				0,
			}},
		}}},
	})
	return err
}

func (r *examRepo) Catalog(ctx context.Context) (*domain.ExamCatalog, error) {
	catalog := &domain.ExamCatalog{}
	for field, dst := range map[string]*[]string{
		"category":      &catalog.Categories,
		"subcategory":   &catalog.Subcategories,
		"provider.name": &catalog.Providers,
	} {
		values, err := r.coll.Distinct(ctx, field, bson.M{})
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			if s, ok := v.(string); ok && s != "" {
				*dst = append(*dst, s)
			}
		}
	}
	return catalog, nil
}

func (r *examRepo) Stats(ctx context.Context) (*domain.ExamStats, error) {
	match := bson.M{"status": domain.ExamStatusActive}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalExams":   bson.M{"$sum": 1},
			"avgRating":    bson.M{"$avg": "$average_rating"},
			"totalReviews": bson.M{"$sum": "$review_count"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []domain.ExamOverview
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.ExamStats{}
	if len(rows) > 0 {
		stats.Overview = rows[0]
	}

	// Category breakdown also carries the average rating per group.
	categoryPipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$category",
			"count":     bson.M{"$sum": 1},
			"avgRating": bson.M{"$avg": "$average_rating"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cursor, err = r.coll.Aggregate(ctx, categoryPipeline)
	if err != nil {
		return nil, err
	}
	stats.CategoryBreakdown = []domain.Bucket{}
	if err := cursor.All(ctx, &stats.CategoryBreakdown); err != nil {
		return nil, err
	}

	if stats.LevelBreakdown, err = groupCount(ctx, r.coll, match, "$level"); err != nil {
		return nil, err
	}
	return stats, nil
}
