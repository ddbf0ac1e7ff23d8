package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobIsAcceptingApplications(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	cases := []struct {
		name     string
		job      Job
		expected bool
	}{
		{"active without deadline", Job{Status: JobStatusActive}, true},
		{"active with future deadline", Job{Status: JobStatusActive, Process: ApplicationProcess{Deadline: &future}}, true},
		{"active with passed deadline", Job{Status: JobStatusActive, Process: ApplicationProcess{Deadline: &past}}, false},
		{"closed", Job{Status: JobStatusClosed}, false},
		{"draft", Job{Status: JobStatusDraft}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.job.IsAcceptingApplications())
		})
	}
}

func TestExamIsAvailable(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	cases := []struct {
		name     string
		exam     Exam
		expected bool
	}{
		{"on-demand active", Exam{Status: ExamStatusActive, Schedule: ExamSchedule{Availability: "On-demand"}}, true},
		{"on-demand past next date still available", Exam{Status: ExamStatusActive, Schedule: ExamSchedule{Availability: "On-demand", NextDate: &past}}, true},
		{"scheduled with future sitting", Exam{Status: ExamStatusActive, Schedule: ExamSchedule{Availability: "Scheduled", NextDate: &future}}, true},
		{"scheduled past sitting", Exam{Status: ExamStatusActive, Schedule: ExamSchedule{Availability: "Scheduled", NextDate: &past}}, false},
		{"discontinued", Exam{Status: ExamStatusDiscontinued, Schedule: ExamSchedule{Availability: "On-demand"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.exam.IsAvailable())
		})
	}
}

func TestSkillIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.False(t, (&Skill{Type: SkillTypeSkill}).IsExpired())
	assert.False(t, (&Skill{Type: SkillTypeCertification, Certification: &Certification{}}).IsExpired())
	assert.False(t, (&Skill{Type: SkillTypeCertification, Certification: &Certification{ExpiryDate: &future}}).IsExpired())
	assert.True(t, (&Skill{Type: SkillTypeCertification, Certification: &Certification{ExpiryDate: &past}}).IsExpired())
}

func TestProfileCompletion(t *testing.T) {
	empty := &User{}
	assert.Equal(t, 0, empty.ProfileCompletion())

	full := &User{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Phone:          "+1-555-0100",
		ProfilePicture: "https://cdn.example.com/ada.png",
		Bio:            "Analyst",
		Professional: ProfessionalInfo{
			Title:      "Engineer",
			Company:    "Analytical Engines Ltd",
			Experience: 10,
			Industry:   "Computing",
		},
		Education:   []Education{{Degree: "BSc"}},
		SocialLinks: SocialLinks{GitHub: "https://github.com/ada"},
	}
	assert.Equal(t, 100, full.ProfileCompletion())

	half := &User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	completion := half.ProfileCompletion()
	assert.Greater(t, completion, 0)
	assert.Less(t, completion, 100)
}

func TestPublicViewStripsSensitiveFields(t *testing.T) {
	u := &User{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Phone:     "+1-555-0100",
		Password:  "hash",
	}
	view := u.PublicView()

	assert.Empty(t, view.Email)
	assert.Empty(t, view.Phone)
	assert.Empty(t, view.Password)
	assert.Equal(t, "Ada", view.FirstName)
	// The original is untouched.
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", u.FullName())
}
