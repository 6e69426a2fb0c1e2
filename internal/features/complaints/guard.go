package complaints

import (
	"sync"
	"time"
)

// VoteCooldown is the minimum interval between votes on the same complaint
// from the same client session.
const VoteCooldown = 60 * time.Second

// VoteGuard is an advisory, in-memory throttle. It stops rapid double votes
// from one client but gives no server-side guarantee: a new session gets a
// fresh map. Acceptable because the vote counter has no strong consistency
// requirement.
type VoteGuard struct {
	mu       sync.Mutex
	last     map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func NewVoteGuard() *VoteGuard {
	return &VoteGuard{
		last:     make(map[string]time.Time),
		cooldown: VoteCooldown,
		now:      time.Now,
	}
}

func voteKey(clientKey, complaintID string) string {
	return clientKey + "/" + complaintID
}

// CanVote reports whether the client may vote on the complaint: true if no
// prior vote is recorded or the cooldown has fully elapsed.
func (g *VoteGuard) CanVote(clientKey, complaintID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.last[voteKey(clientKey, complaintID)]
	if !ok {
		return true
	}
	return g.now().Sub(last) >= g.cooldown
}

// RecordVote stores the current time for the client/complaint pair.
func (g *VoteGuard) RecordVote(clientKey, complaintID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last[voteKey(clientKey, complaintID)] = g.now()
}

// Remaining returns how long the client must still wait, zero if allowed.
func (g *VoteGuard) Remaining(clientKey, complaintID string) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.last[voteKey(clientKey, complaintID)]
	if !ok {
		return 0
	}

	remaining := g.cooldown - g.now().Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}
