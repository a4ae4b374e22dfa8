package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/cache"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/requestdata"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

const listingPageSize = 50

// ParticipationListing is the flattened row cached for group/person
// participation views.
type ParticipationListing struct {
	ID                 uuid.UUID `json:"id"`
	PersonID           uuid.UUID `json:"person_id"`
	PersonName         string    `json:"person_name"`
	RoleTitle          string    `json:"role_title"`
	IsFacilitator      bool      `json:"is_facilitator"`
	GroupID            uuid.UUID `json:"group_id"`
	GroupName          string    `json:"group_name"`
	Hours              *int      `json:"hours,omitempty"`
	SpecialRecognition string    `json:"special_recognition"`
	SchoolYears        string    `json:"school_years"`
	Elementary         bool      `json:"elementary"`
	Senior             bool      `json:"senior"`
	IsPublic           bool      `json:"is_public"`
}

// DirectoryService serves the cache-backed derived views: participation
// listings with the facilitator-first ordering, per-group facilitator names,
// and the per-user admin lists.
type DirectoryService interface {
	FacilitatorRoleIDs(ctx context.Context) ([]uuid.UUID, error)
	GroupParticipations(ctx context.Context, groupID uuid.UUID, page int) ([]ParticipationListing, error)
	PersonParticipations(ctx context.Context, personID uuid.UUID) ([]ParticipationListing, error)
	GroupFacilitatorNames(ctx context.Context, groupID uuid.UUID) ([]string, error)
	PeopleAdminList(ctx context.Context, viewer *requestdata.RequestData) ([]*types.Person, error)
	GroupsAdminList(ctx context.Context, viewer *requestdata.RequestData) ([]*types.Group, error)
	ParticipationsAdminList(ctx context.Context, viewer *requestdata.RequestData) ([]ParticipationListing, error)
}

type directoryService struct {
	log               *logger.Logger
	store             cache.Store
	roleRepo          repos.RoleRepo
	personRepo        repos.PersonRepo
	groupRepo         repos.GroupRepo
	participationRepo repos.ParticipationRepo
}

func NewDirectoryService(
	baseLog *logger.Logger,
	store cache.Store,
	roleRepo repos.RoleRepo,
	personRepo repos.PersonRepo,
	groupRepo repos.GroupRepo,
	participationRepo repos.ParticipationRepo,
) DirectoryService {
	return &directoryService{
		log:               baseLog.With("service", "DirectoryService"),
		store:             store,
		roleRepo:          roleRepo,
		personRepo:        personRepo,
		groupRepo:         groupRepo,
		participationRepo: participationRepo,
	}
}

func (s *directoryService) FacilitatorRoleIDs(ctx context.Context) ([]uuid.UUID, error) {
	key := cache.FacilitatorRoleIDsKey()
	var ids []uuid.UUID
	if cache.GetJSON(ctx, s.store, key, &ids) {
		return ids, nil
	}
	ids, err := s.roleRepo.ListFacilitatorIDs(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list facilitator role ids: %w", err)
	}
	cache.SetJSON(ctx, s.store, key, ids, cache.RoleIDsTTL)
	return ids, nil
}

func (s *directoryService) GroupParticipations(ctx context.Context, groupID uuid.UUID, page int) ([]ParticipationListing, error) {
	if page < 1 {
		page = 1
	}
	key := cache.GroupListingKey(groupID, page)
	var cached []ParticipationListing
	if cache.GetJSON(ctx, s.store, key, &cached) {
		return cached, nil
	}

	rows, err := s.participationRepo.ListByGroupID(ctx, nil, groupID)
	if err != nil {
		return nil, fmt.Errorf("list participations for group: %w", err)
	}
	listings, err := s.sortedListings(ctx, rows)
	if err != nil {
		return nil, err
	}
	pageRows := paginate(listings, page, listingPageSize)

	cache.SetJSON(ctx, s.store, key, pageRows, cache.ListingTTL)
	s.store.Track(ctx, cache.GroupOwner(groupID), key)
	return pageRows, nil
}

func (s *directoryService) PersonParticipations(ctx context.Context, personID uuid.UUID) ([]ParticipationListing, error) {
	key := cache.PersonListingKey(personID)
	var cached []ParticipationListing
	if cache.GetJSON(ctx, s.store, key, &cached) {
		return cached, nil
	}

	rows, err := s.participationRepo.ListByPersonID(ctx, nil, personID)
	if err != nil {
		return nil, fmt.Errorf("list participations for person: %w", err)
	}
	listings, err := s.sortedListings(ctx, rows)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, s.store, key, listings, cache.ListingTTL)
	s.store.Track(ctx, cache.PersonOwner(personID), key)
	return listings, nil
}

func (s *directoryService) GroupFacilitatorNames(ctx context.Context, groupID uuid.UUID) ([]string, error) {
	key := cache.GroupFacilitatorsKey(groupID)
	var cached []string
	if cache.GetJSON(ctx, s.store, key, &cached) {
		return cached, nil
	}

	facilitatorIDs, err := s.FacilitatorRoleIDs(ctx)
	if err != nil {
		return nil, err
	}
	facilitatorSet := idSet(facilitatorIDs)

	rows, err := s.participationRepo.ListByGroupID(ctx, nil, groupID)
	if err != nil {
		return nil, fmt.Errorf("list participations for group: %w", err)
	}

	seen := make(map[uuid.UUID]struct{})
	names := make([]string, 0)
	for _, row := range rows {
		p := row.Person
		if p == nil || p.RoleID == nil {
			continue
		}
		if _, ok := facilitatorSet[*p.RoleID]; !ok {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if p.User != nil {
			names = append(names, p.User.FullName())
		}
	}
	sort.Strings(names)

	cache.SetJSON(ctx, s.store, key, names, cache.FacilitatorNamesTTL)
	s.store.Track(ctx, cache.GroupOwner(groupID), key)
	return names, nil
}

// PeopleAdminList is cached per acting user because permission filtering
// differs by user: staff see everyone, others only themselves.
func (s *directoryService) PeopleAdminList(ctx context.Context, viewer *requestdata.RequestData) ([]*types.Person, error) {
	if viewer == nil {
		return nil, fmt.Errorf("missing viewer identity")
	}
	key := cache.AdminListKey("person", viewer.UserID)
	var cached []*types.Person
	if cache.GetJSON(ctx, s.store, key, &cached) {
		return cached, nil
	}

	var rows []*types.Person
	var err error
	if viewer.IsStaff || viewer.IsAdmin {
		rows, err = s.personRepo.List(ctx, nil)
	} else {
		var own *types.Person
		own, err = s.personRepo.GetByUserID(ctx, nil, viewer.UserID)
		if own != nil {
			rows = []*types.Person{own}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}

	cache.SetJSON(ctx, s.store, key, rows, cache.AdminListTTL)
	return rows, nil
}

func (s *directoryService) GroupsAdminList(ctx context.Context, viewer *requestdata.RequestData) ([]*types.Group, error) {
	if viewer == nil {
		return nil, fmt.Errorf("missing viewer identity")
	}
	key := cache.AdminListKey("group", viewer.UserID)
	var cached []*types.Group
	if cache.GetJSON(ctx, s.store, key, &cached) {
		return cached, nil
	}

	rows, err := s.groupRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	cache.SetJSON(ctx, s.store, key, rows, cache.AdminListTTL)
	return rows, nil
}

func (s *directoryService) ParticipationsAdminList(ctx context.Context, viewer *requestdata.RequestData) ([]ParticipationListing, error) {
	if viewer == nil {
		return nil, fmt.Errorf("missing viewer identity")
	}
	key := cache.AdminListKey("participation", viewer.UserID)
	var cached []ParticipationListing
	if cache.GetJSON(ctx, s.store, key, &cached) {
		return cached, nil
	}

	var rows []*types.Participation
	var err error
	if viewer.IsStaff || viewer.IsAdmin {
		rows, err = s.participationRepo.List(ctx, nil)
	} else {
		own, gErr := s.personRepo.GetByUserID(ctx, nil, viewer.UserID)
		if gErr != nil {
			return nil, fmt.Errorf("resolve viewer person: %w", gErr)
		}
		if own != nil {
			rows, err = s.participationRepo.ListByPersonID(ctx, nil, own.ID)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	listings, err := s.sortedListings(ctx, rows)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, s.store, key, listings, cache.AdminListTTL)
	return listings, nil
}

// sortedListings flattens rows and applies the two-bucket facilitator-first
// ordering: facilitators, then everyone else, alphabetical by first then last
// name within each bucket.
func (s *directoryService) sortedListings(ctx context.Context, rows []*types.Participation) ([]ParticipationListing, error) {
	facilitatorIDs, err := s.FacilitatorRoleIDs(ctx)
	if err != nil {
		return nil, err
	}
	facilitatorSet := idSet(facilitatorIDs)

	listings := make([]ParticipationListing, 0, len(rows))
	type sortKey struct {
		bucket    int
		firstName string
		lastName  string
	}
	keys := make([]sortKey, 0, len(rows))

	for _, row := range rows {
		l := ParticipationListing{
			ID:                 row.ID,
			PersonID:           row.PersonID,
			GroupID:            row.GroupID,
			Hours:              row.Hours,
			SpecialRecognition: row.SpecialRecognition,
			SchoolYears:        row.FormatSchoolYears(),
			Elementary:         row.Elementary,
			Senior:             row.Senior,
			IsPublic:           row.IsPublic,
		}
		k := sortKey{bucket: 2}
		if row.Group != nil {
			l.GroupName = row.Group.Name
		}
		if p := row.Person; p != nil {
			if p.User != nil {
				l.PersonName = p.User.FullName()
				k.firstName = strings.ToLower(p.User.FirstName)
				k.lastName = strings.ToLower(p.User.LastName)
			}
			if p.Role != nil {
				l.RoleTitle = p.Role.Title
			}
			if p.RoleID != nil {
				if _, ok := facilitatorSet[*p.RoleID]; ok {
					l.IsFacilitator = true
					k.bucket = 1
				}
			}
		}
		listings = append(listings, l)
		keys = append(keys, k)
	}

	order := make([]int, len(listings))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := keys[order[i]], keys[order[j]]
		if a.bucket != b.bucket {
			return a.bucket < b.bucket
		}
		if a.firstName != b.firstName {
			return a.firstName < b.firstName
		}
		return a.lastName < b.lastName
	})
	sorted := make([]ParticipationListing, len(listings))
	for i, from := range order {
		sorted[i] = listings[from]
	}
	return sorted, nil
}

func paginate(rows []ParticipationListing, page, size int) []ParticipationListing {
	start := (page - 1) * size
	if start >= len(rows) {
		return []ParticipationListing{}
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
