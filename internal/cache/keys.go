package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TTL tiers. Listings churn, facilitator names and displays drift slowly, the
// candidate year set changes once a year.
const (
	ListingTTL          = 5 * time.Minute
	AdminListTTL        = 15 * time.Minute
	RoleIDsTTL          = time.Hour
	DisplayTTL          = time.Hour
	FacilitatorNamesTTL = 24 * time.Hour
	YearChoicesTTL      = 30 * 24 * time.Hour
)

// Keys are derived from entity kind + id + optional sub-scope so invalidation
// can rebuild them without seeing the cached value.

func GroupListingKey(groupID uuid.UUID, page int) string {
	return fmt.Sprintf("participation_listing:group:%s:page%d", groupID, page)
}

func PersonListingKey(personID uuid.UUID) string {
	return fmt.Sprintf("participation_listing:person:%s", personID)
}

func FacilitatorRoleIDsKey() string {
	return "facilitator_role_ids"
}

func GroupFacilitatorsKey(groupID uuid.UUID) string {
	return fmt.Sprintf("group_facilitators:%s", groupID)
}

func PersonParticipationSummaryKey(personID uuid.UUID) string {
	return fmt.Sprintf("person_participation_summary:%s", personID)
}

func ParticipationYearsKey(participationID uuid.UUID) string {
	return fmt.Sprintf("participation_years_display:%s", participationID)
}

func YearChoicesKey() string {
	return "year_selector_choices"
}

func YearWidgetKey(participationID uuid.UUID, serializedYears string) string {
	return fmt.Sprintf("year_widget_html:%s:%s", participationID, serializedYears)
}

func AdminListKey(model string, userID uuid.UUID) string {
	return fmt.Sprintf("admin_list:%s:%s", model, userID)
}

// Owners for the dependent-key index.

func GroupOwner(groupID uuid.UUID) string {
	return fmt.Sprintf("owner:group:%s", groupID)
}

func PersonOwner(personID uuid.UUID) string {
	return fmt.Sprintf("owner:person:%s", personID)
}

func ParticipationOwner(participationID uuid.UUID) string {
	return fmt.Sprintf("owner:participation:%s", participationID)
}
