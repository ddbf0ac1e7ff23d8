package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job statuses.
const (
	JobStatusActive   = "Active"
	JobStatusClosed   = "Closed"
	JobStatusDraft    = "Draft"
	JobStatusArchived = "Archived"
)

// Application statuses, in rough pipeline order.
const (
	ApplicationApplied     = "Applied"
	ApplicationUnderReview = "Under Review"
	ApplicationShortlisted = "Shortlisted"
	ApplicationInterview   = "Interview"
	ApplicationRejected    = "Rejected"
	ApplicationHired       = "Hired"
)

type Job struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Company      Company            `bson:"company" json:"company"`
	Location     JobLocation        `bson:"location" json:"location"`
	JobType      string             `bson:"job_type" json:"jobType"`
	Experience   ExperienceRange    `bson:"experience" json:"experience"`
	Salary       SalaryRange        `bson:"salary,omitempty" json:"salary"`
	Description  string             `bson:"description" json:"description"`
	Requirements Requirements       `bson:"requirements,omitempty" json:"requirements"`
	Process      ApplicationProcess `bson:"application_process,omitempty" json:"applicationProcess"`
	Status       string             `bson:"status" json:"status"`
	PostedBy     PostedBy           `bson:"posted_by" json:"postedBy"`
	Applications []Application      `bson:"applications,omitempty" json:"applications,omitempty"`
	Views        int64              `bson:"views" json:"views"`
	// ApplicationsCount mirrors len(Applications); the repository keeps
	// it in the same update that mutates the list.
	ApplicationsCount int64     `bson:"applications_count" json:"applicationsCount"`
	Tags              []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	IsFeatured        bool      `bson:"is_featured" json:"isFeatured"`
	IsUrgent          bool      `bson:"is_urgent" json:"isUrgent"`
	Platform          string    `bson:"platform,omitempty" json:"platform,omitempty"`
	ExternalURL       string    `bson:"external_url,omitempty" json:"externalUrl,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updatedAt"`
}

type Company struct {
	Name        string `bson:"name" json:"name"`
	Logo        string `bson:"logo,omitempty" json:"logo,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Size        string `bson:"size,omitempty" json:"size,omitempty"`
	Industry    string `bson:"industry,omitempty" json:"industry,omitempty"`
}

type JobLocation struct {
	Type    string `bson:"type" json:"type"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

type ExperienceRange struct {
	Min float64  `bson:"min" json:"min"`
	Max *float64 `bson:"max,omitempty" json:"max,omitempty"`
}

type SalaryRange struct {
	Min          *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max          *float64 `bson:"max,omitempty" json:"max,omitempty"`
	Currency     string   `bson:"currency,omitempty" json:"currency,omitempty"`
	Period       string   `bson:"period,omitempty" json:"period,omitempty"`
	IsNegotiable bool     `bson:"is_negotiable" json:"isNegotiable"`
}

type Requirements struct {
	Skills         []SkillRequirement `bson:"skills,omitempty" json:"skills,omitempty"`
	Certifications []string           `bson:"certifications,omitempty" json:"certifications,omitempty"`
}

type SkillRequirement struct {
	Name  string `bson:"name" json:"name"`
	Level string `bson:"level,omitempty" json:"level,omitempty"`
}

type ApplicationProcess struct {
	Deadline     *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Requirements []string   `bson:"requirements,omitempty" json:"requirements,omitempty"`
}

type PostedBy struct {
	User primitive.ObjectID `bson:"user" json:"user"`
	Role string             `bson:"role,omitempty" json:"role,omitempty"`
}

// Application is an embedded subdocument; it shares the job's lifecycle
// and never exists outside its parent.
type Application struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Applicant   primitive.ObjectID `bson:"applicant" json:"applicant"`
	AppliedAt   time.Time          `bson:"applied_at" json:"appliedAt"`
	Status      string             `bson:"status" json:"status"`
	Resume      string             `bson:"resume,omitempty" json:"resume,omitempty"`
	CoverLetter string             `bson:"cover_letter,omitempty" json:"coverLetter,omitempty"`
	Portfolio   string             `bson:"portfolio,omitempty" json:"portfolio,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// IsAcceptingApplications reports whether new applications may be
// submitted: the job must be Active and the deadline, if set, not passed.
func (j *Job) IsAcceptingApplications() bool {
	if j.Status != JobStatusActive {
		return false
	}
	if j.Process.Deadline != nil && time.Now().After(*j.Process.Deadline) {
		return false
	}
	return true
}

// JobFilter holds the recognized query parameters for GET /jobs.
type JobFilter struct {
	Search     string
	Location   string
	JobType    string
	Experience string
	Category   string
	Platform   string
	Featured   string
	Urgent     string
}

// JobUpdate is the allow-listed partial update for PUT /jobs/:id.
type JobUpdate struct {
	Title        *string
	Company      *Company
	Location     *JobLocation
	JobType      *string
	Experience   *ExperienceRange
	Salary       *SalaryRange
	Description  *string
	Requirements *Requirements
	Deadline     *time.Time
	Tags         *[]string
	IsFeatured   *bool
	IsUrgent     *bool
	Platform     *string
	ExternalURL  *string
	Status       *string
}

// JobStats is the response of GET /jobs/stats/overview.
type JobStats struct {
	Overview          JobOverview `json:"overview"`
	StatusBreakdown   []Bucket    `json:"statusBreakdown"`
	CategoryBreakdown []Bucket    `json:"categoryBreakdown"`
}

type JobOverview struct {
	TotalJobs         int64   `bson:"totalJobs" json:"totalJobs"`
	ActiveJobs        int64   `bson:"activeJobs" json:"activeJobs"`
	TotalApplications int64   `bson:"totalApplications" json:"totalApplications"`
	TotalViews        int64   `bson:"totalViews" json:"totalViews"`
	AvgApplications   float64 `bson:"avgApplications" json:"avgApplications"`
	AvgViews          float64 `bson:"avgViews" json:"avgViews"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Job, error)
	List(ctx context.Context, filter JobFilter, page PageQuery) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, ids []primitive.ObjectID) error
	// AddApplication appends atomically; ErrDuplicate when the applicant
	// already has an entry on the job.
	AddApplication(ctx context.Context, jobID primitive.ObjectID, app Application) error
	UpdateApplication(ctx context.Context, jobID, appID primitive.ObjectID, status, notes string, setNotes bool) (*Application, error)
	CountByApplicant(ctx context.Context, applicant primitive.ObjectID) (int64, error)
	Stats(ctx context.Context, owner *primitive.ObjectID) (*JobStats, error)
}

type JobUsecase interface {
	List(ctx context.Context, filter JobFilter, page PageQuery, viewer *User) ([]Job, Pagination, error)
	GetDetails(ctx context.Context, id primitive.ObjectID) (*Job, error)
	Create(ctx context.Context, actor *User, job *Job) error
	Update(ctx context.Context, actor *User, id primitive.ObjectID, update JobUpdate) (*Job, error)
	Delete(ctx context.Context, actor *User, id primitive.ObjectID) error
	Apply(ctx context.Context, actor *User, jobID primitive.ObjectID, app Application) error
	ListApplications(ctx context.Context, actor *User, jobID primitive.ObjectID) ([]Application, error)
	UpdateApplication(ctx context.Context, actor *User, jobID, appID primitive.ObjectID, status, notes string, setNotes bool) (*Application, error)
	Stats(ctx context.Context, actor *User) (*JobStats, error)
}
