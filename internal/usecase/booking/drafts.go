package booking

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/timezone"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

// LoginRequiredError is returned when an anonymous draft is submitted.
// The draft stays stored so the flow resumes after login.
type LoginRequiredError struct {
	DraftID  string
	LoginURL string
}

func (e *LoginRequiredError) Error() string {
	return "login_required"
}

func (e *LoginRequiredError) Unwrap() error {
	return httperr.ErrBusiness("login_required")
}

// LoginURL points the client at the auth page carrying the draft id.
func LoginURL(siteURL, draftID string) string {
	return strings.TrimRight(siteURL, "/") + "/auth?draft=" + url.QueryEscape(draftID)
}

type Submitted struct {
	Draft   *domain.Draft `json:"draft"`
	Booking *domain.View  `json:"booking"`
}

type Drafts struct {
	store    domain.DraftStore
	repo     domain.Repository
	catalog  Catalog
	profiles Profiles
	policy   domain.Policy
	clock    timezone.Clock
	create   *CreateBooking
	siteURL  string
}

func NewDrafts(
	store domain.DraftStore,
	repo domain.Repository,
	catalog Catalog,
	profiles Profiles,
	policy domain.Policy,
	clock timezone.Clock,
	create *CreateBooking,
	siteURL string,
) *Drafts {
	return &Drafts{
		store:    store,
		repo:     repo,
		catalog:  catalog,
		profiles: profiles,
		policy:   policy,
		clock:    clock,
		create:   create,
		siteURL:  siteURL,
	}
}

// ======================================================
// START / GET
// ======================================================

func (uc *Drafts) Start(ctx context.Context, actor roles.Actor) (*domain.Draft, error) {
	d := domain.NewDraft(uc.clock())
	uc.claim(ctx, actor, d)

	if err := uc.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (uc *Drafts) Get(ctx context.Context, actor roles.Actor, id string) (*domain.Draft, error) {
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if uc.claim(ctx, actor, d) {
		if err := uc.store.Save(ctx, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ======================================================
// STEPS
// ======================================================

func (uc *Drafts) ChooseService(
	ctx context.Context,
	actor roles.Actor,
	id string,
	serviceID uuid.UUID,
) (*domain.Draft, error) {

	return uc.step(ctx, actor, id, func(d *domain.Draft) error {
		if _, err := activeService(ctx, uc.catalog, serviceID); err != nil {
			return err
		}
		return d.ChooseService(serviceID, uc.clock())
	})
}

func (uc *Drafts) ChooseDate(
	ctx context.Context,
	actor roles.Actor,
	id string,
	date string,
) (*domain.Draft, error) {

	return uc.step(ctx, actor, id, func(d *domain.Draft) error {
		now := uc.clock()
		if err := uc.policy.CheckDate(date, now); err != nil {
			return err
		}
		return d.ChooseDate(date, now)
	})
}

func (uc *Drafts) ChooseTime(
	ctx context.Context,
	actor roles.Actor,
	id string,
	hhmm string,
) (*domain.Draft, error) {

	return uc.step(ctx, actor, id, func(d *domain.Draft) error {
		now := uc.clock()
		if err := d.ChooseTime(hhmm, now); err != nil {
			return err
		}
		return checkSlot(ctx, uc.repo, uc.catalog, uc.policy, d.Date, hhmm, now)
	})
}

// SetContact falls back to the pre-filled profile values for empty fields.
func (uc *Drafts) SetContact(
	ctx context.Context,
	actor roles.Actor,
	id string,
	name string,
	phone string,
) (*domain.Draft, error) {

	return uc.step(ctx, actor, id, func(d *domain.Draft) error {
		name = strings.TrimSpace(name)
		if name == "" {
			name = d.Name
		}
		if phone == "" {
			phone = d.Phone
		}

		if !validators.IsPersonName(name) {
			return httperr.ErrBusiness("invalid_name")
		}
		if !validators.IsBRPhone(phone) {
			return httperr.ErrBusiness("invalid_phone")
		}
		return d.SetContact(name, validators.NormalizePhone(phone), uc.clock())
	})
}

// ======================================================
// SUBMIT
// ======================================================

// Submit books the draft. origin is used for the login link when no site URL is configured.
func (uc *Drafts) Submit(
	ctx context.Context,
	actor roles.Actor,
	id string,
	origin string,
) (*Submitted, error) {

	// An expired session still gets the login link for its own draft.
	if !actor.Authenticated() {
		d, err := uc.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if d.UserID == nil {
			if err := d.CanSubmit(); err != nil {
				return nil, err
			}
		}
		return nil, uc.loginRequired(d.ID, origin)
	}

	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := d.CanSubmit(); err != nil {
		return nil, err
	}
	uc.claim(ctx, actor, d)

	view, err := uc.create.Execute(ctx, actor, CreateBookingInput{
		Name:      d.Name,
		Phone:     d.Phone,
		Date:      d.Date,
		Time:      d.Time,
		ServiceID: d.ServiceID,
	})
	if err != nil {
		return nil, err
	}

	if err := d.MarkSubmitted(view.ID, uc.clock()); err != nil {
		return nil, err
	}

	if err := uc.store.Delete(ctx, d.ID); err != nil {
		log.Printf("[drafts] delete %s after submit: %v", d.ID, err)
	}

	return &Submitted{Draft: d, Booking: view}, nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *Drafts) loginRequired(draftID, origin string) error {
	base := uc.siteURL
	if base == "" {
		base = origin
	}
	return &LoginRequiredError{DraftID: draftID, LoginURL: LoginURL(base, draftID)}
}

// load hides drafts owned by someone else.
func (uc *Drafts) load(ctx context.Context, actor roles.Actor, id string) (*domain.Draft, error) {
	d, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.UserID != nil && *d.UserID != actor.UserID {
		return nil, httperr.ErrBusiness("draft_not_found")
	}
	return d, nil
}

// claim binds an anonymous draft to the actor and pre-fills contact data.
// It reports whether the draft changed.
func (uc *Drafts) claim(ctx context.Context, actor roles.Actor, d *domain.Draft) bool {
	if !actor.Authenticated() || d.UserID != nil {
		return false
	}

	uid := actor.UserID
	d.UserID = &uid

	if uc.profiles == nil {
		return true
	}

	p, err := uc.profiles.GetProfile(ctx, uid)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		log.Printf("[drafts] profile prefill for %s: %v", uid, err)
	default:
		d.Prefill(p.FullName, p.Phone)
	}
	return true
}

func (uc *Drafts) step(
	ctx context.Context,
	actor roles.Actor,
	id string,
	apply func(d *domain.Draft) error,
) (*domain.Draft, error) {

	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	uc.claim(ctx, actor, d)

	if err := apply(d); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
