package usecase

import (
	"context"
	"errors"
	"time"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) List(ctx context.Context, filter domain.JobFilter, page domain.PageQuery, viewer *domain.User) ([]domain.Job, domain.Pagination, error) {
	page.Normalize("created_at")
	jobs, total, err := u.jobRepo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal("Could not list jobs", err)
	}

	// Authenticated browsing counts as a view on every listed job. A
	// failed bump never fails the read.
	if viewer != nil && len(jobs) > 0 {
		ids := make([]primitive.ObjectID, len(jobs))
		for i := range jobs {
			ids[i] = jobs[i].ID
			jobs[i].Views++
		}
		if err := u.jobRepo.IncrementViews(ctx, ids); err != nil {
			logger.Log.Warn("failed to bump job views", "error", err)
		}
	}

	// Application lists stay private to the job owner.
	for i := range jobs {
		jobs[i].Applications = nil
	}
	return jobs, domain.NewPagination(page, len(jobs), total), nil
}

// GetDetails serves the public job page: only Active jobs are visible,
// and every read counts as a view.
func (u *jobUsecase) GetDetails(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	job, err := u.getJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.NotFound("Job not found")
	}
	if err := u.jobRepo.IncrementViews(ctx, []primitive.ObjectID{job.ID}); err != nil {
		logger.Log.Warn("failed to bump job views", "error", err)
	} else {
		job.Views++
	}
	job.Applications = nil
	return job, nil
}

func (u *jobUsecase) getJob(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal("Could not load job", err)
	}
	return job, nil
}

func (u *jobUsecase) Create(ctx context.Context, actor *domain.User, job *domain.Job) error {
	if err := requireRole(actor, domain.RoleEmployer); err != nil {
		return err
	}
	if job.Experience.Max != nil && *job.Experience.Max < job.Experience.Min {
		return apperror.BadRequest("Experience max cannot be below min")
	}
	if job.Salary.Min != nil && job.Salary.Max != nil && *job.Salary.Min > *job.Salary.Max {
		return apperror.BadRequest("Salary min cannot exceed max")
	}

	job.PostedBy = domain.PostedBy{User: actor.ID, Role: actor.Role}
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	job.Applications = nil
	job.ApplicationsCount = 0
	job.Views = 0
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal("Could not create job", err)
	}
	return nil
}

func (u *jobUsecase) Update(ctx context.Context, actor *domain.User, id primitive.ObjectID, update domain.JobUpdate) (*domain.Job, error) {
	job, err := u.getJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canModify(actor, job.PostedBy.User); err != nil {
		return nil, err
	}

	applyJobUpdate(job, update)

	if job.Experience.Max != nil && *job.Experience.Max < job.Experience.Min {
		return nil, apperror.BadRequest("Experience max cannot be below min")
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, apperror.Internal("Could not save job", err)
	}
	job.Applications = nil
	return job, nil
}

func applyJobUpdate(job *domain.Job, update domain.JobUpdate) {
	if update.Title != nil {
		job.Title = *update.Title
	}
	if update.Company != nil {
		job.Company = *update.Company
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.JobType != nil {
		job.JobType = *update.JobType
	}
	if update.Experience != nil {
		job.Experience = *update.Experience
	}
	if update.Salary != nil {
		job.Salary = *update.Salary
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.Requirements != nil {
		job.Requirements = *update.Requirements
	}
	if update.Deadline != nil {
		job.Process.Deadline = update.Deadline
	}
	if update.Tags != nil {
		job.Tags = *update.Tags
	}
	if update.IsFeatured != nil {
		job.IsFeatured = *update.IsFeatured
	}
	if update.IsUrgent != nil {
		job.IsUrgent = *update.IsUrgent
	}
	if update.Platform != nil {
		job.Platform = *update.Platform
	}
	if update.ExternalURL != nil {
		job.ExternalURL = *update.ExternalURL
	}
	if update.Status != nil {
		job.Status = *update.Status
	}
}

func (u *jobUsecase) Delete(ctx context.Context, actor *domain.User, id primitive.ObjectID) error {
	job, err := u.getJob(ctx, id)
	if err != nil {
		return err
	}
	if err := canModify(actor, job.PostedBy.User); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return apperror.Internal("Could not delete job", err)
	}
	return nil
}

func (u *jobUsecase) Apply(ctx context.Context, actor *domain.User, jobID primitive.ObjectID, app domain.Application) error {
	if actor == nil {
		return apperror.Unauthorized("Authentication required")
	}
	job, err := u.getJob(ctx, jobID)
	if err != nil {
		return err
	}
	if !job.IsAcceptingApplications() {
		return apperror.BadRequest("This job is no longer accepting applications")
	}

	app.ID = primitive.NewObjectID()
	app.Applicant = actor.ID
	app.AppliedAt = time.Now()
	app.Status = domain.ApplicationApplied
	app.Notes = ""

	if err := u.jobRepo.AddApplication(ctx, jobID, app); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return apperror.Conflict("You have already applied to this job")
		case errors.Is(err, domain.ErrNotFound):
			return apperror.NotFound("Job not found")
		default:
			return apperror.Internal("Could not submit application", err)
		}
	}
	return nil
}

func (u *jobUsecase) ListApplications(ctx context.Context, actor *domain.User, jobID primitive.ObjectID) ([]domain.Application, error) {
	job, err := u.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := canModify(actor, job.PostedBy.User); err != nil {
		return nil, err
	}
	if job.Applications == nil {
		return []domain.Application{}, nil
	}
	return job.Applications, nil
}

func (u *jobUsecase) UpdateApplication(ctx context.Context, actor *domain.User, jobID, appID primitive.ObjectID, status, notes string, setNotes bool) (*domain.Application, error) {
	if !validApplicationStatus(status) {
		return nil, apperror.BadRequest("Invalid application status")
	}
	job, err := u.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := canModify(actor, job.PostedBy.User); err != nil {
		return nil, err
	}

	app, err := u.jobRepo.UpdateApplication(ctx, jobID, appID, status, notes, setNotes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal("Could not update application", err)
	}
	return app, nil
}

func validApplicationStatus(status string) bool {
	switch status {
	case domain.ApplicationApplied, domain.ApplicationUnderReview,
		domain.ApplicationShortlisted, domain.ApplicationInterview,
		domain.ApplicationRejected, domain.ApplicationHired:
		return true
	}
	return false
}

// Stats scopes to the actor's own postings unless the actor is an admin,
// who sees the whole board.
func (u *jobUsecase) Stats(ctx context.Context, actor *domain.User) (*domain.JobStats, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	var owner *primitive.ObjectID
	if actor.Role != domain.RoleAdmin {
		owner = &actor.ID
	}
	stats, err := u.jobRepo.Stats(ctx, owner)
	if err != nil {
		return nil, apperror.Internal("Could not compute job stats", err)
	}
	return stats, nil
}
