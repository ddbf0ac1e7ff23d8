package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type examUsecase struct {
	examRepo domain.ExamRepository
}

func NewExamUsecase(examRepo domain.ExamRepository) domain.ExamUsecase {
	return &examUsecase{examRepo: examRepo}
}

func (u *examUsecase) List(ctx context.Context, filter domain.ExamFilter, page domain.PageQuery) ([]domain.Exam, domain.Pagination, error) {
	page.Normalize("popularity")
	exams, total, err := u.examRepo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal("Could not list exams", err)
	}
	return exams, domain.NewPagination(page, len(exams), total), nil
}

// GetDetails serves the public exam page; discontinued or lapsed exams
// read as absent.
func (u *examUsecase) GetDetails(ctx context.Context, id primitive.ObjectID) (*domain.Exam, error) {
	exam, err := u.getExam(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exam.IsAvailable() {
		return nil, apperror.NotFound("Exam not found")
	}
	return exam, nil
}

// GetByCode serves lookups by the vendor's exam code, with the same
// availability gate as GetDetails.
func (u *examUsecase) GetByCode(ctx context.Context, code string) (*domain.Exam, error) {
	exam, err := u.examRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Exam not found")
		}
		return nil, apperror.Internal("Could not load exam", err)
	}
	if !exam.IsAvailable() {
		return nil, apperror.NotFound("Exam not found")
	}
	return exam, nil
}

func (u *examUsecase) getExam(ctx context.Context, id primitive.ObjectID) (*domain.Exam, error) {
	exam, err := u.examRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Exam not found")
		}
		return nil, apperror.Internal("Could not load exam", err)
	}
	return exam, nil
}

func (u *examUsecase) Create(ctx context.Context, actor *domain.User, exam *domain.Exam) error {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}

	exam.Code = strings.ToUpper(strings.TrimSpace(exam.Code))
	if exam.Status == "" {
		exam.Status = domain.ExamStatusActive
	}
	exam.Reviews = nil
	exam.AverageRating = 0
	exam.ReviewCount = 0
	now := time.Now()
	exam.CreatedAt = now
	exam.UpdatedAt = now

	if err := u.examRepo.Create(ctx, exam); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("An exam with this code already exists")
		}
		return apperror.Internal("Could not create exam", err)
	}
	return nil
}

func (u *examUsecase) Update(ctx context.Context, actor *domain.User, id primitive.ObjectID, update domain.ExamUpdate) (*domain.Exam, error) {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	exam, err := u.getExam(ctx, id)
	if err != nil {
		return nil, err
	}

	applyExamUpdate(exam, update)

	if err := u.examRepo.Update(ctx, exam); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("An exam with this code already exists")
		}
		return nil, apperror.Internal("Could not save exam", err)
	}
	return exam, nil
}

func applyExamUpdate(exam *domain.Exam, update domain.ExamUpdate) {
	if update.Name != nil {
		exam.Name = *update.Name
	}
	if update.Category != nil {
		exam.Category = *update.Category
	}
	if update.Subcategory != nil {
		exam.Subcategory = *update.Subcategory
	}
	if update.Description != nil {
		exam.Description = *update.Description
	}
	if update.Level != nil {
		exam.Level = *update.Level
	}
	if update.Duration != nil {
		exam.Duration = *update.Duration
	}
	if update.Format != nil {
		exam.Format = *update.Format
	}
	if update.PassingScore != nil {
		exam.PassingScore = *update.PassingScore
	}
	if update.TotalQuestions != nil {
		exam.TotalQuestions = *update.TotalQuestions
	}
	if update.Cost != nil {
		exam.Cost = *update.Cost
	}
	if update.Schedule != nil {
		exam.Schedule = *update.Schedule
	}
	if update.Difficulty != nil {
		exam.Difficulty = *update.Difficulty
	}
	if update.Tags != nil {
		exam.Tags = *update.Tags
	}
	if update.IsFeatured != nil {
		exam.IsFeatured = *update.IsFeatured
	}
	if update.Status != nil {
		exam.Status = *update.Status
	}
}

func (u *examUsecase) Delete(ctx context.Context, actor *domain.User, id primitive.ObjectID) error {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}
	if err := u.examRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Exam not found")
		}
		return apperror.Internal("Could not delete exam", err)
	}
	return nil
}

func (u *examUsecase) AddReview(ctx context.Context, actor *domain.User, examID primitive.ObjectID, rating int, comment string) (*domain.Exam, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	if rating < 1 || rating > 5 {
		return nil, apperror.BadRequest("Rating must be between 1 and 5")
	}
	exam, err := u.getExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if !exam.IsAvailable() {
		return nil, apperror.BadRequest("This exam is not available for review")
	}

	review := domain.Review{
		ID:      primitive.NewObjectID(),
		User:    actor.ID,
		Rating:  rating,
		Comment: comment,
		Date:    time.Now(),
	}
	if err := u.examRepo.AddReview(ctx, examID, review); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, apperror.Conflict("You have already reviewed this exam")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Exam not found")
		default:
			return nil, apperror.Internal("Could not add review", err)
		}
	}
	return u.getExam(ctx, examID)
}

func (u *examUsecase) UpdateReview(ctx context.Context, actor *domain.User, examID, reviewID primitive.ObjectID, rating int, comment string, setComment bool) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.BadRequest("Rating must be between 1 and 5")
	}
	exam, err := u.getExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	current := findReview(exam, reviewID)
	if current == nil {
		return nil, apperror.NotFound("Review not found")
	}
	if err := canModify(actor, current.User); err != nil {
		return nil, err
	}

	review := *current
	review.Rating = rating
	if setComment {
		review.Comment = comment
	}
	review.Date = time.Now()

	if err := u.examRepo.UpdateReview(ctx, examID, review); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Review not found")
		}
		return nil, apperror.Internal("Could not update review", err)
	}
	return &review, nil
}

func (u *examUsecase) DeleteReview(ctx context.Context, actor *domain.User, examID, reviewID primitive.ObjectID) error {
	exam, err := u.getExam(ctx, examID)
	if err != nil {
		return err
	}
	current := findReview(exam, reviewID)
	if current == nil {
		return apperror.NotFound("Review not found")
	}
	if err := canModify(actor, current.User); err != nil {
		return err
	}

	if err := u.examRepo.RemoveReview(ctx, examID, reviewID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Review not found")
		}
		return apperror.Internal("Could not delete review", err)
	}
	return nil
}

func findReview(exam *domain.Exam, reviewID primitive.ObjectID) *domain.Review {
	for i := range exam.Reviews {
		if exam.Reviews[i].ID == reviewID {
			return &exam.Reviews[i]
		}
	}
	return nil
}

func (u *examUsecase) Catalog(ctx context.Context) (*domain.ExamCatalog, error) {
	catalog, err := u.examRepo.Catalog(ctx)
	if err != nil {
		return nil, apperror.Internal("Could not load exam catalog", err)
	}
	return catalog, nil
}

func (u *examUsecase) Stats(ctx context.Context) (*domain.ExamStats, error) {
	stats, err := u.examRepo.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal("Could not compute exam stats", err)
	}
	return stats, nil
}
