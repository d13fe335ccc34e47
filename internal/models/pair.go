package models

// Pair statuses.
const (
	PairStatusActive    = "active"
	PairStatusDissolved = "dissolved"
)

// Pair links exactly two users. Membership is immutable once created; unpairing
// marks the pair dissolved instead of removing a participant.
type Pair struct {
	BaseModel

	ParticipantA string `gorm:"type:uuid;not null;index" json:"participant_a"`
	ParticipantB string `gorm:"type:uuid;not null;index" json:"participant_b"`
	Status       string `gorm:"type:varchar(16);default:'active'" json:"status"`
}

// Participants returns both member ids.
func (p *Pair) Participants() []string {
	return []string{p.ParticipantA, p.ParticipantB}
}

// OtherParticipant returns the member that is not uid, or "" when uid is not a member.
func (p *Pair) OtherParticipant(uid string) string {
	switch uid {
	case p.ParticipantA:
		return p.ParticipantB
	case p.ParticipantB:
		return p.ParticipantA
	default:
		return ""
	}
}
