package profile

import "context"

// SocialLink is one outbound link on the profile. Platform is the identity
// key: a profile never holds two links for the same platform.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
}

// Profile is the singleton owner record. Every deployment has exactly one;
// it is mutated in place and never deleted. Image fields hold either a
// public URL or an inline data URI.
type Profile struct {
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Tagline      string       `json:"tagline"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Location     string       `json:"location"`
	Bio          string       `json:"bio"`
	ProfileImage string       `json:"profile_image"`
	LogoImage    string       `json:"logo_image"`
	SocialLinks  []SocialLink `json:"social_links"`
}

// Update carries a partial profile edit. Nil fields are left untouched.
type Update struct {
	Name         *string
	Title        *string
	Tagline      *string
	Email        *string
	Phone        *string
	Location     *string
	Bio          *string
	ProfileImage *string
	LogoImage    *string
	SocialLinks  []SocialLink
}

func (p *Profile) Apply(u Update) {
	setIf(&p.Name, u.Name)
	setIf(&p.Title, u.Title)
	setIf(&p.Tagline, u.Tagline)
	setIf(&p.Email, u.Email)
	setIf(&p.Phone, u.Phone)
	setIf(&p.Location, u.Location)
	setIf(&p.Bio, u.Bio)
	setIf(&p.ProfileImage, u.ProfileImage)
	setIf(&p.LogoImage, u.LogoImage)
	if u.SocialLinks != nil {
		p.SocialLinks = u.SocialLinks
	}
}

// LinkUpdate is a partial edit of a single social link.
type LinkUpdate struct {
	URL  *string
	Icon *string
}

// UpsertSocialLink updates the link for platform in place, or appends a new
// one when the platform is not present yet.
func (p *Profile) UpsertSocialLink(platform string, u LinkUpdate) {
	for i := range p.SocialLinks {
		if p.SocialLinks[i].Platform == platform {
			setIf(&p.SocialLinks[i].URL, u.URL)
			setIf(&p.SocialLinks[i].Icon, u.Icon)
			return
		}
	}
	link := SocialLink{Platform: platform, Icon: "link"}
	setIf(&link.URL, u.URL)
	setIf(&link.Icon, u.Icon)
	p.SocialLinks = append(p.SocialLinks, link)
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Repository is the remote backend contract for the profile singleton.
type Repository interface {
	Fetch(ctx context.Context) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}
