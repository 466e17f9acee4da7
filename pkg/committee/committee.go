// Package committee implements the epoch-scoped set of authorities with
// stake weights and quorum thresholds.
//
// Grounded on the teacher's pkg/attestation/strategy.ThresholdConfig
// (CalculateThresholdWeight / IsThresholdMet) for the quorum-math idiom,
// and pkg/consensus.ValidatorInfo for the authority/weight shape.
package committee

import (
	"sort"

	"github.com/certen-labs/objectchain/pkg/crypto/authsig"
)

// AuthorityName identifies a validator by its authority public key.
type AuthorityName [authsig.PublicKeySize]byte

// StakeUnit is a unit of voting power.
type StakeUnit uint64

// Committee is the immutable set of authorities active during one epoch,
// with their stake weights. Epoch transitions produce a new instance;
// nothing about a Committee changes after construction.
type Committee struct {
	epoch        uint64
	votingRights map[AuthorityName]StakeUnit
	// order fixes a deterministic authority index for every member,
	// independent of map iteration order, so that signer bitmaps are
	// stable and comparable across implementations.
	order      []AuthorityName
	indexOf    map[AuthorityName]int
	totalStake StakeUnit
}

// New constructs a Committee for epoch from a set of voting rights.
// Authorities are indexed in ascending order of their name bytes, giving a
// canonical, implementation-independent bitmap ordering.
func New(epoch uint64, votingRights map[AuthorityName]StakeUnit) *Committee {
	order := make([]AuthorityName, 0, len(votingRights))
	var total StakeUnit
	for name, stake := range votingRights {
		order = append(order, name)
		total += stake
	}
	sort.Slice(order, func(i, j int) bool {
		return string(order[i][:]) < string(order[j][:])
	})
	indexOf := make(map[AuthorityName]int, len(order))
	for i, name := range order {
		indexOf[name] = i
	}
	rights := make(map[AuthorityName]StakeUnit, len(votingRights))
	for k, v := range votingRights {
		rights[k] = v
	}
	return &Committee{
		epoch:        epoch,
		votingRights: rights,
		order:        order,
		indexOf:      indexOf,
		totalStake:   total,
	}
}

// Epoch returns the epoch this committee is scoped to.
func (c *Committee) Epoch() uint64 { return c.epoch }

// Weight returns the stake of authority, or 0 if it is not a member.
func (c *Committee) Weight(authority AuthorityName) StakeUnit {
	return c.votingRights[authority]
}

// TotalStake returns the sum of every member's stake.
func (c *Committee) TotalStake() StakeUnit { return c.totalStake }

// QuorumThreshold is the minimum stake required to form a certificate:
// floor(2*total_stake/3) + 1.
func (c *Committee) QuorumThreshold() StakeUnit {
	return StakeUnit((2*uint64(c.totalStake))/3) + 1
}

// ValidityThreshold is the minimum stake that cannot be excluded from an
// honest majority: floor(total_stake/3) + 1.
func (c *Committee) ValidityThreshold() StakeUnit {
	return StakeUnit(uint64(c.totalStake)/3) + 1
}

// Size returns the number of authorities in the committee.
func (c *Committee) Size() int { return len(c.order) }

// AuthorityIndex returns authority's canonical bitmap index, or false if it
// is not a member.
func (c *Committee) AuthorityIndex(authority AuthorityName) (int, bool) {
	idx, ok := c.indexOf[authority]
	return idx, ok
}

// AuthorityAt returns the authority at bitmap index idx, or false if idx is
// out of range.
func (c *Committee) AuthorityAt(idx int) (AuthorityName, bool) {
	if idx < 0 || idx >= len(c.order) {
		return AuthorityName{}, false
	}
	return c.order[idx], true
}

// Contains reports whether authority is a member of this committee.
func (c *Committee) Contains(authority AuthorityName) bool {
	_, ok := c.indexOf[authority]
	return ok
}
