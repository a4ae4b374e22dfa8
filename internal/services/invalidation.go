package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/cache"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

// Invalidator is the one place that knows which derived cache keys depend on
// which entity. It runs synchronously after every mutating admin operation,
// never inside the entity's own save path.
//
// Invalidation is conservative and best-effort: deleting too much is fine,
// leaving a stale derived value reachable is not, and a cache failure must
// never fail the mutation that triggered it. Entity lookups needed to compute
// the affected set are themselves best-effort for the same reason.
type Invalidator struct {
	log               *logger.Logger
	store             cache.Store
	userRepo          repos.UserRepo
	personRepo        repos.PersonRepo
	participationRepo repos.ParticipationRepo
}

func NewInvalidator(
	baseLog *logger.Logger,
	store cache.Store,
	userRepo repos.UserRepo,
	personRepo repos.PersonRepo,
	participationRepo repos.ParticipationRepo,
) *Invalidator {
	return &Invalidator{
		log:               baseLog.With("service", "Invalidator"),
		store:             store,
		userRepo:          userRepo,
		personRepo:        personRepo,
		participationRepo: participationRepo,
	}
}

// RoleChanged handles a role title change: the facilitator id set, every
// person holding the role, and every group any such person belongs to.
func (inv *Invalidator) RoleChanged(ctx context.Context, roleID uuid.UUID) {
	inv.store.Delete(ctx, cache.FacilitatorRoleIDsKey())

	people, err := inv.personRepo.ListByRoleID(ctx, nil, roleID)
	if err != nil {
		inv.log.Warn("Invalidation lookup failed, dropping role-id cache only", "role_id", roleID, "error", err)
		return
	}
	for _, person := range people {
		inv.dropPerson(ctx, person.ID)
		groupIDs, gErr := inv.participationRepo.ListGroupIDsForPerson(ctx, nil, person.ID)
		if gErr != nil {
			inv.log.Warn("Group lookup failed during role invalidation", "person_id", person.ID, "error", gErr)
			continue
		}
		for _, groupID := range groupIDs {
			inv.dropGroup(ctx, groupID)
		}
	}
}

// RoleCreated only needs to drop the facilitator id set: no person or group
// can reference a role that did not exist yet, so the cached set is the only
// derived value that can be stale.
func (inv *Invalidator) RoleCreated(ctx context.Context) {
	inv.store.Delete(ctx, cache.FacilitatorRoleIDsKey())
}

// RoleDeleting must run before the role row disappears, while the set of
// affected people is still queryable.
func (inv *Invalidator) RoleDeleting(ctx context.Context, roleID uuid.UUID) {
	inv.RoleChanged(ctx, roleID)
}

// RoleDeleted runs after the delete commits. A read between RoleDeleting and
// the commit can repopulate the facilitator id set with the dying role, so
// the key is dropped once more.
func (inv *Invalidator) RoleDeleted(ctx context.Context) {
	inv.store.Delete(ctx, cache.FacilitatorRoleIDsKey())
}

func (inv *Invalidator) PersonSaved(ctx context.Context, personID uuid.UUID) {
	inv.dropPerson(ctx, personID)

	groupIDs, err := inv.participationRepo.ListGroupIDsForPerson(ctx, nil, personID)
	if err != nil {
		inv.log.Warn("Group lookup failed during person invalidation", "person_id", personID, "error", err)
		return
	}
	for _, groupID := range groupIDs {
		inv.dropGroup(ctx, groupID)
	}
	inv.dropStaffAdminLists(ctx, "person")
}

// PersonDeleting mirrors PersonSaved but is computed before the cascade
// removes the participation rows it needs.
func (inv *Invalidator) PersonDeleting(ctx context.Context, personID uuid.UUID) {
	inv.PersonSaved(ctx, personID)
}

// GroupChanged covers save, delete and membership edits alike.
func (inv *Invalidator) GroupChanged(ctx context.Context, groupID uuid.UUID) {
	inv.dropGroup(ctx, groupID)
	inv.dropStaffAdminLists(ctx, "group")
}

func (inv *Invalidator) ParticipationChanged(ctx context.Context, row *types.Participation) {
	if row == nil {
		return
	}
	inv.dropGroup(ctx, row.GroupID)
	inv.dropPerson(ctx, row.PersonID)

	owner := cache.ParticipationOwner(row.ID)
	keys := append(inv.store.Tracked(ctx, owner), cache.ParticipationYearsKey(row.ID))
	inv.store.Delete(ctx, keys...)
	inv.store.DropTracked(ctx, owner)

	inv.dropStaffAdminLists(ctx, "participation")
}

// dropGroup removes every derived key built from a group: all tracked listing
// pages plus the facilitator-name list.
func (inv *Invalidator) dropGroup(ctx context.Context, groupID uuid.UUID) {
	owner := cache.GroupOwner(groupID)
	keys := append(inv.store.Tracked(ctx, owner), cache.GroupFacilitatorsKey(groupID))
	inv.store.Delete(ctx, keys...)
	inv.store.DropTracked(ctx, owner)
}

func (inv *Invalidator) dropPerson(ctx context.Context, personID uuid.UUID) {
	owner := cache.PersonOwner(personID)
	keys := append(inv.store.Tracked(ctx, owner),
		cache.PersonListingKey(personID),
		cache.PersonParticipationSummaryKey(personID),
	)
	inv.store.Delete(ctx, keys...)
	inv.store.DropTracked(ctx, owner)
}

// dropStaffAdminLists clears the per-user admin list cache for every staff
// user; non-staff lists expire on their own TTL.
func (inv *Invalidator) dropStaffAdminLists(ctx context.Context, model string) {
	staffIDs, err := inv.userRepo.ListStaffIDs(ctx, nil)
	if err != nil {
		inv.log.Warn("Staff lookup failed during admin-list invalidation", "model", model, "error", err)
		return
	}
	keys := make([]string, 0, len(staffIDs))
	for _, id := range staffIDs {
		keys = append(keys, cache.AdminListKey(model, id))
	}
	inv.store.Delete(ctx, keys...)
}
