package mongodb

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go-skillmarket-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type jobRepo struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) domain.JobRepository {
	return &jobRepo{coll: db.Collection("jobs")}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	job.ID = primitive.NewObjectID()
	_, err := r.coll.InsertOne(ctx, job)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	var job domain.Job
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter, page domain.PageQuery) ([]domain.Job, int64, error) {
	f := NewFilter(bson.M{"status": domain.JobStatusActive}).
		Text(filter.Search).
		Eq("job_type", filter.JobType).
		Eq("company.industry", filter.Category).
		Eq("platform", filter.Platform).
		EqBool("is_featured", filter.Featured).
		EqBool("is_urgent", filter.Urgent)

	// A location parameter naming a work arrangement matches the enum;
	// anything else is a substring search over city/state/country.
	switch filter.Location {
	case "":
	case "Remote", "On-site", "Hybrid":
		f.Eq("location.type", filter.Location)
	default:
		f.RegexAny([]string{"location.city", "location.state", "location.country"}, filter.Location)
	}

	// "2" or "2-5"; jobs qualify when their minimum requirement does not
	// exceed the requested years.
	if filter.Experience != "" {
		if minExp, err := strconv.ParseFloat(strings.SplitN(filter.Experience, "-", 2)[0], 64); err == nil {
			f.LTE("experience.min", minExp)
		}
	}

	jobs := []domain.Job{}
	total, err := findPage(ctx, r.coll, f.Build(), page, &jobs)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": job.ID}, job)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) IncrementViews(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	return err
}

// AddApplication appends the entry and bumps applications_count in one
// guarded update: the filter excludes jobs that already hold an entry
// for this applicant, so two racing submissions cannot both land.
func (r *jobRepo) AddApplication(ctx context.Context, jobID primitive.ObjectID, app domain.Application) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": jobID, "applications.applicant": bson.M{"$ne": app.Applicant}},
		bson.M{
			"$push": bson.M{"applications": app},
			"$inc":  bson.M{"applications_count": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing job from a duplicate application.
		if count, err := r.coll.CountDocuments(ctx, bson.M{"_id": jobID}); err == nil && count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrDuplicate
	}
	return nil
}

func (r *jobRepo) UpdateApplication(ctx context.Context, jobID, appID primitive.ObjectID, status, notes string, setNotes bool) (*domain.Application, error) {
	set := bson.M{"applications.$.status": status}
	if setNotes {
		set["applications.$.notes"] = notes
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": jobID, "applications._id": appID},
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}

	job, err := r.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	for i := range job.Applications {
		if job.Applications[i].ID == appID {
			return &job.Applications[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *jobRepo) CountByApplicant(ctx context.Context, applicant primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"applications.applicant": applicant})
}

func (r *jobRepo) Stats(ctx context.Context, owner *primitive.ObjectID) (*domain.JobStats, error) {
	match := bson.M{}
	if owner != nil {
		match["posted_by.user"] = *owner
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalJobs":  bson.M{"$sum": 1},
			"activeJobs": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", domain.JobStatusActive}}, 1, 0}}},
			"totalApplications": bson.M{"$sum": "$applications_count"},
			"totalViews":        bson.M{"$sum": "$views"},
			"avgApplications":   bson.M{"$avg": "$applications_count"},
			"avgViews":          bson.M{"$avg": "$views"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []domain.JobOverview
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.JobStats{}
	if len(rows) > 0 {
		stats.Overview = rows[0]
	}

	if stats.StatusBreakdown, err = groupCount(ctx, r.coll, match, "$status"); err != nil {
		return nil, err
	}
	if stats.CategoryBreakdown, err = groupCount(ctx, r.coll, match, "$company.industry"); err != nil {
		return nil, err
	}
	return stats, nil
}
