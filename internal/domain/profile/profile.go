package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience entry not found")
	ErrEducationNotFound  = errors.New("education entry not found")
)

// Experience is an embedded, ordered list element. ID is assigned by the
// service on insert and is unique within the owning profile.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// SocialLinks holds optional URLs; empty entries are dropped before persist.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the aggregate of a user's public details, owned one-to-one by a
// user. UserName and UserAvatar are denormalized from the users table on read.
type Profile struct {
	UserID         uuid.UUID    `json:"user_id"`
	UserName       string       `json:"-"`
	UserAvatar     string       `json:"-"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"github_username,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Patch carries the field subset of an upsert request. A nil field leaves the
// stored value untouched; a non-nil field overwrites it, empty string included.
type Patch struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

// Apply merges the patch into p.
func (p *Profile) Apply(patch Patch) {
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.GithubUsername != nil {
		p.GithubUsername = *patch.GithubUsername
	}
	if patch.Skills != nil {
		p.Skills = SplitSkills(*patch.Skills)
	}
	if patch.Youtube != nil {
		p.Social.Youtube = *patch.Youtube
	}
	if patch.Twitter != nil {
		p.Social.Twitter = *patch.Twitter
	}
	if patch.Facebook != nil {
		p.Social.Facebook = *patch.Facebook
	}
	if patch.Linkedin != nil {
		p.Social.Linkedin = *patch.Linkedin
	}
	if patch.Instagram != nil {
		p.Social.Instagram = *patch.Instagram
	}
}

// SplitSkills turns a comma-separated string into a trimmed, ordered list.
// "html, css, js" becomes ["html" "css" "js"]; empty segments are dropped.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// AddExperience prepends e, most-recent-first.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience deletes the entry with the given id, preserving the order
// of the rest. Returns ErrExperienceNotFound without touching the list when
// the id is absent.
func (p *Profile) RemoveExperience(id uuid.UUID) error {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return ErrExperienceNotFound
}

func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

func (p *Profile) RemoveEducation(id uuid.UUID) error {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return ErrEducationNotFound
}

type Repository interface {
	// FindByUserID returns ErrProfileNotFound when no profile exists for the
	// user. UserName/UserAvatar come back denormalized.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	FindAll(ctx context.Context) ([]*Profile, error)
	// Upsert inserts or replaces the profile keyed on the unique user id, as
	// a single atomic statement.
	Upsert(ctx context.Context, p *Profile) error
	// Replace overwrites an existing profile document in place; used by
	// sub-document edits after the read-modify cycle.
	Replace(ctx context.Context, p *Profile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
