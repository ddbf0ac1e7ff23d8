package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill entry kinds. The Skill document is a tagged union discriminated
// by Type: a plain skill carries ProficiencyLevel and optional Detail, a
// certification carries the Certification sub-object.
const (
	SkillTypeSkill         = "skill"
	SkillTypeCertification = "certification"
)

type Skill struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User             primitive.ObjectID `bson:"user" json:"user"`
	Type             string             `bson:"type" json:"type"`
	Name             string             `bson:"name" json:"name"`
	Category         string             `bson:"category" json:"category"`
	ProficiencyLevel string             `bson:"proficiency_level,omitempty" json:"proficiencyLevel,omitempty"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon             string             `bson:"icon,omitempty" json:"icon,omitempty"`
	URL              string             `bson:"url,omitempty" json:"url,omitempty"`
	Certification    *Certification     `bson:"certification,omitempty" json:"certification,omitempty"`
	Detail           *SkillDetail       `bson:"skill,omitempty" json:"skill,omitempty"`
	IsPublic         bool               `bson:"is_public" json:"isPublic"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Endorsements     []Endorsement      `bson:"endorsements,omitempty" json:"endorsements,omitempty"`
	// EndorsementCount mirrors len(Endorsements); kept in the same
	// update that mutates the list.
	EndorsementCount int64     `bson:"endorsement_count" json:"endorsementCount"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}

type Certification struct {
	Issuer          string     `bson:"issuer" json:"issuer"`
	Level           string     `bson:"level" json:"level"`
	DateObtained    time.Time  `bson:"date_obtained" json:"dateObtained"`
	ExpiryDate      *time.Time `bson:"expiry_date,omitempty" json:"expiryDate,omitempty"`
	CertificationID string     `bson:"certification_id,omitempty" json:"certificationId,omitempty"`
	PDFFile         *PDFFile   `bson:"pdf_file,omitempty" json:"pdfFile,omitempty"`
}

type PDFFile struct {
	Filename     string    `bson:"filename" json:"filename"`
	OriginalName string    `bson:"original_name" json:"originalName"`
	Path         string    `bson:"path" json:"path"`
	Size         int64     `bson:"size" json:"size"`
	UploadedAt   time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

type SkillDetail struct {
	YearsOfExperience float64        `bson:"years_of_experience,omitempty" json:"yearsOfExperience,omitempty"`
	Projects          []SkillProject `bson:"projects,omitempty" json:"projects,omitempty"`
}

type SkillProject struct {
	Name         string   `bson:"name" json:"name"`
	Description  string   `bson:"description,omitempty" json:"description,omitempty"`
	Technologies []string `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Year         int      `bson:"year,omitempty" json:"year,omitempty"`
	URL          string   `bson:"url,omitempty" json:"url,omitempty"`
}

// Endorsement is an embedded subdocument sharing the skill's lifecycle.
type Endorsement struct {
	User primitive.ObjectID `bson:"user" json:"user"`
	Date time.Time          `bson:"date" json:"date"`
}

// IsExpired reports whether a certification's expiry date has passed.
// Plain skills and certifications without expiry never expire.
func (s *Skill) IsExpired() bool {
	if s.Type != SkillTypeCertification || s.Certification == nil || s.Certification.ExpiryDate == nil {
		return false
	}
	return time.Now().After(*s.Certification.ExpiryDate)
}

// SkillFilter holds the recognized query parameters for GET /skills.
type SkillFilter struct {
	Type     string
	Category string
	Search   string
}

// SkillUpdate is the allow-listed partial update for PUT /skills/:id.
// Variant-specific fields are only applied when they match the stored
// document's type.
type SkillUpdate struct {
	Name             *string
	Category         *string
	Description      *string
	Icon             *string
	URL              *string
	Tags             *[]string
	IsPublic         *bool
	ProficiencyLevel *string
	Certification    *CertificationUpdate
	Detail           *SkillDetail
}

type CertificationUpdate struct {
	Issuer          *string
	Level           *string
	DateObtained    *time.Time
	ExpiryDate      *time.Time
	CertificationID *string
}

// SkillStats is the response of GET /skills/stats/overview.
type SkillStats struct {
	Overview          SkillOverview `json:"overview"`
	CategoryBreakdown []Bucket      `json:"categoryBreakdown"`
}

type SkillOverview struct {
	TotalSkills         int64    `bson:"totalSkills" json:"totalSkills"`
	TotalCertifications int64    `bson:"totalCertifications" json:"totalCertifications"`
	Categories          []string `bson:"categories" json:"categories"`
	AvgEndorsements     float64  `bson:"avgEndorsements" json:"avgEndorsements"`
}

type SkillRepository interface {
	Create(ctx context.Context, skill *Skill) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Skill, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, filter SkillFilter) ([]Skill, error)
	ListPublicByUser(ctx context.Context, userID primitive.ObjectID) ([]Skill, error)
	Update(ctx context.Context, skill *Skill) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	// AddEndorsement appends atomically; ErrDuplicate when the user
	// already endorsed the skill.
	AddEndorsement(ctx context.Context, skillID primitive.ObjectID, e Endorsement) (int64, error)
	RemoveEndorsement(ctx context.Context, skillID, userID primitive.ObjectID) (int64, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID, skillType string) (int64, error)
	Stats(ctx context.Context, userID primitive.ObjectID) (*SkillStats, error)
}

type SkillUsecase interface {
	List(ctx context.Context, actor *User, filter SkillFilter) ([]Skill, error)
	GetDetails(ctx context.Context, actor *User, id primitive.ObjectID) (*Skill, error)
	Create(ctx context.Context, actor *User, skill *Skill) error
	Update(ctx context.Context, actor *User, id primitive.ObjectID, update SkillUpdate, pdf *PDFFile) (*Skill, error)
	Delete(ctx context.Context, actor *User, id primitive.ObjectID) error
	ListPublic(ctx context.Context, userID primitive.ObjectID) ([]Skill, error)
	Endorse(ctx context.Context, actor *User, skillID primitive.ObjectID) (int64, error)
	RemoveEndorsement(ctx context.Context, actor *User, skillID primitive.ObjectID) (int64, error)
	Stats(ctx context.Context, actor *User) (*SkillStats, error)
}
