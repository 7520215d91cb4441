package client

import (
	"context"
	"errors"
	"time"

	"contour/pkg/model"
	"contour/pkg/sanitizer"
)

const (
	PathAppointments = "/api/appointments"
	PathBlogs        = "/api/blogs"
	PathSubscribers  = "/api/subscribers"
	PathContact      = "/api/contact"
	PathLogin        = "/api/auth/login"
	PathHealth       = "/api/health"
)

// ClinicAPI groups the typed resources of the clinic's REST API.
type ClinicAPI struct {
	http *HttpClient

	Bookings    *Resource[model.Appointment]
	Blogs       *Resource[model.BlogPost]
	Subscribers *Resource[model.Subscriber]
	Contact     *Resource[model.ContactMessage]
}

func NewClinicAPI(baseURL string, timeout time.Duration) *ClinicAPI {
	return newClinicAPI(NewHttpClient(baseURL, timeout))
}

func newClinicAPI(c *HttpClient) *ClinicAPI {
	return &ClinicAPI{
		http:        c,
		Bookings:    NewResource[model.Appointment](c, PathAppointments),
		Blogs:       NewResource[model.BlogPost](c, PathBlogs),
		Subscribers: NewResource[model.Subscriber](c, PathSubscribers),
		Contact:     NewResource[model.ContactMessage](c, PathContact),
	}
}

// WithToken returns a ClinicAPI whose requests carry token, for the admin
// endpoints.
func (a *ClinicAPI) WithToken(token string) *ClinicAPI {
	return newClinicAPI(a.http.WithToken(token))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

var ErrNoToken = errors.New("clinic api: login response carried no token")

// Login exchanges admin credentials for a bearer token.
func (a *ClinicAPI) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := a.http.POST(ctx, PathLogin, loginRequest{
		Email:    sanitizer.NormalizeEmail(email),
		Password: password,
	})
	if err != nil {
		return "", err
	}
	var out loginResponse
	if err := decodeEnvelope(resp, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", ErrNoToken
	}
	return out.Token, nil
}

// CreateBlog fills a missing slug from the title and tidies tags and image URL
// before posting.
func (a *ClinicAPI) CreateBlog(ctx context.Context, post model.BlogPost) (*model.BlogPost, error) {
	post.Title = sanitizer.TrimAndNormalize(post.Title)
	if post.Slug == "" {
		post.Slug = sanitizer.Slugify(post.Title)
	} else {
		post.Slug = sanitizer.Slugify(post.Slug)
	}
	post.Tags = sanitizer.NormalizeTags(post.Tags)
	post.Image = sanitizer.NormalizeImageURL(post.Image)
	return a.Blogs.Create(ctx, post)
}

func (a *ClinicAPI) Ping(ctx context.Context) error {
	return a.http.Ping(ctx, PathHealth)
}
