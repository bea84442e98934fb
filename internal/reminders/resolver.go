package reminders

import (
	"carecircle/internal/models"

	"gorm.io/gorm"
)

// Resolver expands one due entity into the full ordered list of people
// to notify: the caregiver first, then the care subject if they have an
// email, then every accepted team member scoped to that subject.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Targets resolves recipients for an entity belonging to the given
// caregiver and care subject. Repeated emails across tiers are kept
// as-is; sending twice to the same address is tolerated.
func (r *Resolver) Targets(caregiver models.CaregiverProfile, subject models.CareSubject) ([]NotificationTarget, error) {
	targets := []NotificationTarget{
		{Email: caregiver.Email, Name: caregiver.FullName, Role: RoleCaregiver},
	}

	if subject.HasEmail() {
		targets = append(targets, NotificationTarget{
			Email: *subject.Email,
			Name:  subject.FullName(),
			Role:  RoleSubject,
		})
	}

	var memberships []models.TeamMembership
	err := r.db.
		Where("caregiver_id = ?", caregiver.ID).
		Where("status = ?", models.MembershipAccepted).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	for _, m := range memberships {
		if m.CoversSubject(subject.ID) {
			targets = append(targets, NotificationTarget{
				Email: m.Email,
				Name:  m.Name,
				Role:  RoleMember,
			})
		}
	}

	return targets, nil
}
