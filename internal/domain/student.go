package domain

import (
	"strconv"
	"strings"
	"time"
)

// AccessLevel is an ordinal tier like "Level01" < "Level02" < "Level03"
type AccessLevel string

// Rank returns the numeric tier of the level (trailing digits), or -1 if the
// level has no numeric suffix
func (a AccessLevel) Rank() int {
	s := strings.TrimSpace(string(a))
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return -1
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return -1
	}
	return n
}

// Covers reports whether a holder of level a may use something requiring level required
func (a AccessLevel) Covers(required AccessLevel) bool {
	have, need := a.Rank(), required.Rank()
	if have < 0 || need < 0 {
		return false
	}
	return have >= need
}

// QuotaStatus represents the status of a quota plan
type QuotaStatus string

const (
	QuotaActive    QuotaStatus = "Active"
	QuotaPenalized QuotaStatus = "Penalized"
	QuotaExpired   QuotaStatus = "Expired"
)

// QuotaPlan is a student's access-level grant with a penalty point balance
type QuotaPlan struct {
	ID             int64
	StudentID      int64
	AccessLevel    AccessLevel // stored encrypted at rest
	PenaltyPoints  int
	Status         QuotaStatus
	ExpirationDate time.Time
}

// IsPenalized returns true if the plan has been flipped to Penalized
func (q *QuotaPlan) IsPenalized() bool {
	return q.Status == QuotaPenalized
}

// ApplyPenalty adds points and flips an Active plan to Penalized once the
// balance reaches threshold. Points never decrease.
func (q *QuotaPlan) ApplyPenalty(points, threshold int) {
	if points > 0 {
		q.PenaltyPoints += points
	}
	if q.Status == QuotaActive && threshold > 0 && q.PenaltyPoints >= threshold {
		q.Status = QuotaPenalized
	}
}

// StudentSummary one row of the student roster
type StudentSummary struct {
	StudentID     int64
	StudentName   string
	Email         string
	Major         string
	AccessLevel   *AccessLevel
	PenaltyPoints *int
	QuotaStatus   *QuotaStatus
}
