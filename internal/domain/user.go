package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Job creation requires RoleEmployer or RoleAdmin; everything
// else is plain ownership-gated.
const (
	RoleUser     = "user"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// Privacy levels for public profile visibility.
const (
	PrivacyPublic      = "public"
	PrivacyPrivate     = "private"
	PrivacyConnections = "connections"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"first_name" json:"firstName"`
	LastName       string             `bson:"last_name" json:"lastName"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfilePicture string             `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Location       UserLocation       `bson:"location,omitempty" json:"location"`
	Professional   ProfessionalInfo   `bson:"professional_info,omitempty" json:"professionalInfo"`
	Education      []Education        `bson:"education,omitempty" json:"education,omitempty"`
	SocialLinks    SocialLinks        `bson:"social_links,omitempty" json:"socialLinks"`
	Preferences    Preferences        `bson:"preferences" json:"preferences"`
	Role           string             `bson:"role" json:"role"`
	IsVerified     bool               `bson:"is_verified" json:"isVerified"`
	IsActive       bool               `bson:"is_active" json:"isActive"`
	LastLogin      time.Time          `bson:"last_login" json:"lastLogin"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

type UserLocation struct {
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

type ProfessionalInfo struct {
	Title      string  `bson:"title,omitempty" json:"title,omitempty"`
	Company    string  `bson:"company,omitempty" json:"company,omitempty"`
	Experience float64 `bson:"experience,omitempty" json:"experience,omitempty"`
	Industry   string  `bson:"industry,omitempty" json:"industry,omitempty"`
}

type Education struct {
	Degree         string  `bson:"degree,omitempty" json:"degree,omitempty"`
	Field          string  `bson:"field,omitempty" json:"field,omitempty"`
	Institution    string  `bson:"institution,omitempty" json:"institution,omitempty"`
	GraduationYear int     `bson:"graduation_year,omitempty" json:"graduationYear,omitempty"`
	GPA            float64 `bson:"gpa,omitempty" json:"gpa,omitempty"`
}

type SocialLinks struct {
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub    string `bson:"github,omitempty" json:"github,omitempty"`
	Portfolio string `bson:"portfolio,omitempty" json:"portfolio,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
}

type Preferences struct {
	JobAlerts          bool   `bson:"job_alerts" json:"jobAlerts"`
	EmailNotifications bool   `bson:"email_notifications" json:"emailNotifications"`
	Privacy            string `bson:"privacy" json:"privacy"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ProfileCompletion reports how much of the profile is filled in, as a
// rounded percentage over the fields shown on the profile page.
func (u *User) ProfileCompletion() int {
	completed, total := 0, 0
	check := func(filled bool) {
		total++
		if filled {
			completed++
		}
	}
	check(u.FirstName != "")
	check(u.LastName != "")
	check(u.Email != "")
	check(u.Phone != "")
	check(u.ProfilePicture != "")
	check(u.Bio != "")
	check(u.Professional.Title != "")
	check(u.Professional.Company != "")
	check(u.Professional.Experience > 0)
	check(u.Professional.Industry != "")
	check(len(u.Education) > 0)
	check(u.SocialLinks.LinkedIn != "" || u.SocialLinks.GitHub != "" || u.SocialLinks.Portfolio != "")
	return int(float64(completed)/float64(total)*100 + 0.5)
}

// PublicView strips fields that must never leave the server on public
// profile reads.
func (u *User) PublicView() *User {
	view := *u
	view.Password = ""
	view.Phone = ""
	view.Email = ""
	return &view
}

// UserFilter holds the recognized search parameters for GET /users/search.
// Unrecognized query keys never reach this struct.
type UserFilter struct {
	Query      string
	Location   string
	Industry   string
	Experience string
}

// UserUpdate is the allow-listed partial update for the profile endpoint.
// Nil pointers mean "leave unchanged".
type UserUpdate struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	Bio            *string
	ProfilePicture *string
	Location       *UserLocation
	Professional   *ProfessionalInfo
	Education      *[]Education
	SocialLinks    *SocialLinks
	Preferences    *PreferencesUpdate
}

type PreferencesUpdate struct {
	JobAlerts          *bool
	EmailNotifications *bool
	Privacy            *string
}

// UserStats is the overview block for GET /users/stats/overview.
type UserStats struct {
	ProfileCompletion   int       `json:"profileCompletion"`
	SkillsCount         int64     `json:"skillsCount"`
	CertificationsCount int64     `json:"certificationsCount"`
	ApplicationsCount   int64     `json:"applicationsCount"`
	MemberSince         time.Time `json:"memberSince"`
	LastActive          time.Time `json:"lastActive"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, filter UserFilter, page PageQuery) ([]User, int64, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, user *User, plainPassword string) (string, error)
	Login(ctx context.Context, email, plainPassword string) (string, *User, error)
	ResolveUser(ctx context.Context, id string) (*User, error)
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update UserUpdate) (*User, error)
	GetPublicProfile(ctx context.Context, id primitive.ObjectID) (*User, error)
	Search(ctx context.Context, filter UserFilter, page PageQuery) ([]User, Pagination, error)
	SetProfilePicture(ctx context.Context, userID primitive.ObjectID, url string) error
	RemoveProfilePicture(ctx context.Context, userID primitive.ObjectID) error
	GetStats(ctx context.Context, userID primitive.ObjectID) (*UserStats, error)
	DeleteAccount(ctx context.Context, actor *User, targetID primitive.ObjectID) error
}
