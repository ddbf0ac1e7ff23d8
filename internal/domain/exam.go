package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exam statuses.
const (
	ExamStatusActive       = "Active"
	ExamStatusDiscontinued = "Discontinued"
	ExamStatusComingSoon   = "Coming Soon"
	ExamStatusBeta         = "Beta"
)

type Exam struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Code           string             `bson:"code" json:"code"`
	Category       string             `bson:"category" json:"category"`
	Subcategory    string             `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Provider       Provider           `bson:"provider" json:"provider"`
	Description    string             `bson:"description" json:"description"`
	Level          string             `bson:"level" json:"level"`
	Duration       int                `bson:"duration" json:"duration"`
	Format         string             `bson:"format,omitempty" json:"format,omitempty"`
	PassingScore   int                `bson:"passing_score" json:"passingScore"`
	TotalQuestions int                `bson:"total_questions,omitempty" json:"totalQuestions,omitempty"`
	Cost           ExamCost           `bson:"cost,omitempty" json:"cost"`
	Schedule       ExamSchedule       `bson:"schedule" json:"schedule"`
	Difficulty     string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Popularity     int64              `bson:"popularity" json:"popularity"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Status         string             `bson:"status" json:"status"`
	IsFeatured     bool               `bson:"is_featured" json:"isFeatured"`
	Reviews        []Review           `bson:"reviews,omitempty" json:"reviews,omitempty"`
	// AverageRating and ReviewCount are derived from Reviews; the
	// repository recomputes them whenever the list changes.
	AverageRating float64   `bson:"average_rating" json:"averageRating"`
	ReviewCount   int64     `bson:"review_count" json:"reviewCount"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

type Provider struct {
	Name        string `bson:"name" json:"name"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	Logo        string `bson:"logo,omitempty" json:"logo,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type ExamCost struct {
	Amount   *float64 `bson:"amount,omitempty" json:"amount,omitempty"`
	Currency string   `bson:"currency,omitempty" json:"currency,omitempty"`
}

type ExamSchedule struct {
	Availability         string     `bson:"availability" json:"availability"`
	NextDate             *time.Time `bson:"next_date,omitempty" json:"nextDate,omitempty"`
	RegistrationDeadline *time.Time `bson:"registration_deadline,omitempty" json:"registrationDeadline,omitempty"`
}

// Review is an embedded subdocument sharing the exam's lifecycle.
type Review struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	User    primitive.ObjectID `bson:"user" json:"user"`
	Rating  int                `bson:"rating" json:"rating"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date    time.Time          `bson:"date" json:"date"`
	Helpful int64              `bson:"helpful" json:"helpful"`
}

// IsAvailable reports whether the exam can be taken or reviewed: Active
// status, and for scheduled exams the next sitting must not have passed.
// On-demand exams are always available while Active.
func (e *Exam) IsAvailable() bool {
	if e.Status != ExamStatusActive {
		return false
	}
	if e.Schedule.Availability == "On-demand" {
		return true
	}
	if e.Schedule.NextDate != nil && time.Now().After(*e.Schedule.NextDate) {
		return false
	}
	return true
}

// ExamFilter holds the recognized query parameters for GET /exams.
type ExamFilter struct {
	Search      string
	Category    string
	Subcategory string
	Level       string
	Provider    string
	Difficulty  string
	Featured    string
}

// ExamUpdate is the allow-listed partial update for PUT /exams/:id.
type ExamUpdate struct {
	Name           *string
	Category       *string
	Subcategory    *string
	Description    *string
	Level          *string
	Duration       *int
	Format         *string
	PassingScore   *int
	TotalQuestions *int
	Cost           *ExamCost
	Schedule       *ExamSchedule
	Difficulty     *string
	Tags           *[]string
	IsFeatured     *bool
	Status         *string
}

// ExamCatalog lists the distinct values used to populate filter dropdowns.
type ExamCatalog struct {
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
	Providers     []string `json:"providers"`
}

// ExamStats is the response of GET /exams/stats/overview.
type ExamStats struct {
	Overview          ExamOverview `json:"overview"`
	CategoryBreakdown []Bucket     `json:"categoryBreakdown"`
	LevelBreakdown    []Bucket     `json:"levelBreakdown"`
}

type ExamOverview struct {
	TotalExams   int64   `bson:"totalExams" json:"totalExams"`
	AvgRating    float64 `bson:"avgRating" json:"avgRating"`
	TotalReviews int64   `bson:"totalReviews" json:"totalReviews"`
}

type ExamRepository interface {
	Create(ctx context.Context, exam *Exam) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Exam, error)
	GetByCode(ctx context.Context, code string) (*Exam, error)
	List(ctx context.Context, filter ExamFilter, page PageQuery) ([]Exam, int64, error)
	Update(ctx context.Context, exam *Exam) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddReview appends atomically; ErrDuplicate when the user already
	// reviewed the exam. Derived rating fields are recomputed.
	AddReview(ctx context.Context, examID primitive.ObjectID, review Review) error
	UpdateReview(ctx context.Context, examID primitive.ObjectID, review Review) error
	RemoveReview(ctx context.Context, examID, reviewID primitive.ObjectID) error
	Catalog(ctx context.Context) (*ExamCatalog, error)
	Stats(ctx context.Context) (*ExamStats, error)
}

type ExamUsecase interface {
	List(ctx context.Context, filter ExamFilter, page PageQuery) ([]Exam, Pagination, error)
	GetDetails(ctx context.Context, id primitive.ObjectID) (*Exam, error)
	GetByCode(ctx context.Context, code string) (*Exam, error)
	Create(ctx context.Context, actor *User, exam *Exam) error
	Update(ctx context.Context, actor *User, id primitive.ObjectID, update ExamUpdate) (*Exam, error)
	Delete(ctx context.Context, actor *User, id primitive.ObjectID) error
	AddReview(ctx context.Context, actor *User, examID primitive.ObjectID, rating int, comment string) (*Exam, error)
	UpdateReview(ctx context.Context, actor *User, examID, reviewID primitive.ObjectID, rating int, comment string, setComment bool) (*Review, error)
	DeleteReview(ctx context.Context, actor *User, examID, reviewID primitive.ObjectID) error
	Catalog(ctx context.Context) (*ExamCatalog, error)
	Stats(ctx context.Context) (*ExamStats, error)
}
