// Package access decides whether a user may perform an action on a
// family or event. Every check resolves the target resource before any
// permission is evaluated, so a missing resource is always reported as
// not found and never as forbidden.
package access

import (
	"errors"

	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/store"
)

var (
	// ErrNotFound means the target resource does not exist, or is
	// hidden from the acting user by a privacy override.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the resource exists but the acting user may
	// not perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrCreatorRemoval is returned for any attempt to remove the event
	// creator from the contributor list, regardless of the caller.
	ErrCreatorRemoval = errors.New("cannot remove event creator")
)

// Resolver answers permission questions using the family membership,
// event, contributor, and privacy registries. It holds no state of
// its own.
type Resolver struct {
	families     *store.FamilyStore
	events       *store.EventStore
	contributors *store.ContributorStore
	privacy      *store.PrivacyStore
}

func NewResolver(fs *store.FamilyStore, es *store.EventStore, cs *store.ContributorStore, ps *store.PrivacyStore) *Resolver {
	return &Resolver{families: fs, events: es, contributors: cs, privacy: ps}
}

// ManageFamily authorizes family update/delete: the acting user must be
// an admin member. The family is returned so callers skip a second
// lookup.
func (r *Resolver) ManageFamily(userID, familyID int64) (*model.Family, error) {
	fam, err := r.families.GetByID(familyID)
	if err != nil {
		return nil, err
	}
	if fam == nil {
		return nil, ErrNotFound
	}
	m, err := r.families.GetMember(familyID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return fam, nil
}

// RequireFamilyMember gates all family-scoped reads: the family must
// exist and the user must hold a membership row.
func (r *Resolver) RequireFamilyMember(userID, familyID int64) (*model.FamilyMember, error) {
	fam, err := r.families.GetByID(familyID)
	if err != nil {
		return nil, err
	}
	if fam == nil {
		return nil, ErrNotFound
	}
	m, err := r.families.GetMember(familyID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrForbidden
	}
	return m, nil
}

// ViewEvent loads an event and gates it: the event must exist, the
// user must be a member of its family, and no privacy override may
// hide it. A hidden event reads as not found so its existence is not
// leaked.
func (r *Resolver) ViewEvent(userID, eventID int64) (*model.Event, error) {
	ev, err := r.events.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNotFound
	}
	m, err := r.families.GetMember(ev.FamilyID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrForbidden
	}
	if ev.CreatedBy == userID {
		return ev, nil
	}
	p, err := r.privacy.Get(eventID, userID)
	if err != nil {
		return nil, err
	}
	if p != nil && !p.CanView {
		return nil, ErrNotFound
	}
	return ev, nil
}

// VisibleEvents filters a family's events down to those the user may
// see, applying the same rules as ViewEvent.
func (r *Resolver) VisibleEvents(userID int64, events []model.Event) ([]model.Event, error) {
	visible := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.CreatedBy != userID {
			p, err := r.privacy.Get(ev.ID, userID)
			if err != nil {
				return nil, err
			}
			if p != nil && !p.CanView {
				continue
			}
		}
		visible = append(visible, ev)
	}
	return visible, nil
}

// CanComment authorizes posting a comment on an event the user can
// already view. Precedence: event creator, then an explicit privacy
// override when one exists, then any contributor row.
func (r *Resolver) CanComment(userID int64, ev *model.Event) error {
	if ev.CreatedBy == userID {
		return nil
	}
	p, err := r.privacy.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if p != nil {
		if p.CanComment {
			return nil
		}
		return ErrForbidden
	}
	c, err := r.contributors.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrForbidden
	}
	return nil
}

// CanUploadMedia authorizes attaching media. Same precedence as
// CanComment, with the upload-specific privacy flag.
func (r *Resolver) CanUploadMedia(userID int64, ev *model.Event) error {
	if ev.CreatedBy == userID {
		return nil
	}
	p, err := r.privacy.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if p != nil {
		if p.CanUploadMedia {
			return nil
		}
		return ErrForbidden
	}
	c, err := r.contributors.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrForbidden
	}
	return nil
}

// CanEditEvent authorizes updating event fields: the creator, a
// privacy override granting edit, or a contributor with the edit
// capability.
func (r *Resolver) CanEditEvent(userID int64, ev *model.Event) error {
	if ev.CreatedBy == userID {
		return nil
	}
	p, err := r.privacy.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if p != nil {
		if p.CanEdit {
			return nil
		}
		return ErrForbidden
	}
	c, err := r.contributors.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if c == nil || !c.CanEdit {
		return ErrForbidden
	}
	return nil
}

// CanDeleteEvent authorizes deleting an event: its creator or a family
// admin.
func (r *Resolver) CanDeleteEvent(userID int64, ev *model.Event) error {
	if ev.CreatedBy == userID {
		return nil
	}
	m, err := r.families.GetMember(ev.FamilyID, userID)
	if err != nil {
		return err
	}
	if m == nil || m.Role != model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// ViewContributors authorizes reading the contributor list: the
// creator or anyone who holds a contributor row.
func (r *Resolver) ViewContributors(userID int64, ev *model.Event) error {
	if ev.CreatedBy == userID {
		return nil
	}
	c, err := r.contributors.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrForbidden
	}
	return nil
}

// ManageContributors authorizes adding or updating contributor grants:
// the creator or a contributor with the invite capability.
func (r *Resolver) ManageContributors(userID int64, ev *model.Event) error {
	if ev.CreatedBy == userID {
		return nil
	}
	c, err := r.contributors.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if c == nil || !c.CanInvite {
		return ErrForbidden
	}
	return nil
}

// RemoveContributor authorizes removing a contributor. The event
// creator can never be removed, no matter who asks.
func (r *Resolver) RemoveContributor(userID int64, ev *model.Event, targetUserID int64) error {
	if targetUserID == ev.CreatedBy {
		return ErrCreatorRemoval
	}
	return r.ManageContributors(userID, ev)
}

// CanDeleteMedia authorizes deleting an attachment: the uploader, the
// event creator, or a contributor with the delete capability.
func (r *Resolver) CanDeleteMedia(userID int64, ev *model.Event, m *model.Media) error {
	if userID == m.UploadedBy || userID == ev.CreatedBy {
		return nil
	}
	c, err := r.contributors.Get(ev.ID, userID)
	if err != nil {
		return err
	}
	if c == nil || !c.CanDelete {
		return ErrForbidden
	}
	return nil
}

// CanEditComment authorizes editing a comment: the author only.
// Contributor edit grants apply to event content, never to someone
// else's comment.
func (r *Resolver) CanEditComment(userID int64, c *model.Comment) error {
	if c.AuthorID != userID {
		return ErrForbidden
	}
	return nil
}

// CanDeleteComment authorizes deleting a comment: its author or the
// event creator.
func (r *Resolver) CanDeleteComment(userID int64, ev *model.Event, c *model.Comment) error {
	if c.AuthorID == userID || ev.CreatedBy == userID {
		return nil
	}
	return ErrForbidden
}

// ManagePrivacy authorizes creating, updating, or deleting privacy
// overrides: the event creator only.
func (r *Resolver) ManagePrivacy(userID int64, ev *model.Event) error {
	if ev.CreatedBy != userID {
		return ErrForbidden
	}
	return nil
}
