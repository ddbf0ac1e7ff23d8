package usecase_test

import (
	"context"
	"time"

	"go-skillmarket-backend/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock repositories shared by the usecase tests.

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) Search(ctx context.Context, filter domain.UserFilter, page domain.PageQuery) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) List(ctx context.Context, filter domain.JobFilter, page domain.PageQuery) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) IncrementViews(ctx context.Context, ids []primitive.ObjectID) error {
	return m.Called(ctx, ids).Error(0)
}
func (m *MockJobRepo) AddApplication(ctx context.Context, jobID primitive.ObjectID, app domain.Application) error {
	return m.Called(ctx, jobID, app).Error(0)
}
func (m *MockJobRepo) UpdateApplication(ctx context.Context, jobID, appID primitive.ObjectID, status, notes string, setNotes bool) (*domain.Application, error) {
	args := m.Called(ctx, jobID, appID, status, notes, setNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockJobRepo) CountByApplicant(ctx context.Context, applicant primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, applicant)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockJobRepo) Stats(ctx context.Context, owner *primitive.ObjectID) (*domain.JobStats, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobStats), args.Error(1)
}

type MockExamRepo struct {
	mock.Mock
}

func (m *MockExamRepo) Create(ctx context.Context, exam *domain.Exam) error {
	return m.Called(ctx, exam).Error(0)
}
func (m *MockExamRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exam), args.Error(1)
}
func (m *MockExamRepo) GetByCode(ctx context.Context, code string) (*domain.Exam, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exam), args.Error(1)
}
func (m *MockExamRepo) List(ctx context.Context, filter domain.ExamFilter, page domain.PageQuery) ([]domain.Exam, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Exam), args.Get(1).(int64), args.Error(2)
}
func (m *MockExamRepo) Update(ctx context.Context, exam *domain.Exam) error {
	return m.Called(ctx, exam).Error(0)
}
func (m *MockExamRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockExamRepo) AddReview(ctx context.Context, examID primitive.ObjectID, review domain.Review) error {
	return m.Called(ctx, examID, review).Error(0)
}
func (m *MockExamRepo) UpdateReview(ctx context.Context, examID primitive.ObjectID, review domain.Review) error {
	return m.Called(ctx, examID, review).Error(0)
}
func (m *MockExamRepo) RemoveReview(ctx context.Context, examID, reviewID primitive.ObjectID) error {
	return m.Called(ctx, examID, reviewID).Error(0)
}
func (m *MockExamRepo) Catalog(ctx context.Context) (*domain.ExamCatalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamCatalog), args.Error(1)
}
func (m *MockExamRepo) Stats(ctx context.Context) (*domain.ExamStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamStats), args.Error(1)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	return m.Called(ctx, skill).Error(0)
}
func (m *MockSkillRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, filter domain.SkillFilter) ([]domain.Skill, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) ListPublicByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Skill, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) Update(ctx context.Context, skill *domain.Skill) error {
	return m.Called(ctx, skill).Error(0)
}
func (m *MockSkillRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockSkillRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockSkillRepo) AddEndorsement(ctx context.Context, skillID primitive.ObjectID, e domain.Endorsement) (int64, error) {
	args := m.Called(ctx, skillID, e)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSkillRepo) RemoveEndorsement(ctx context.Context, skillID, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, skillID, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSkillRepo) CountByUser(ctx context.Context, userID primitive.ObjectID, skillType string) (int64, error) {
	args := m.Called(ctx, userID, skillType)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSkillRepo) Stats(ctx context.Context, userID primitive.ObjectID) (*domain.SkillStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkillStats), args.Error(1)
}
