package services

// Action is a reward action kind.
type Action string

const (
	ActionView          Action = "view"
	ActionSave          Action = "save"
	ActionShare         Action = "share"
	ActionFetchFeed     Action = "fetch_feed"
	ActionProfileUpdate Action = "profile_update"
	ActionDailyLogin    Action = "daily_login"
	ActionReferral      Action = "referral"
)

// RewardPolicy maps action kinds to credit amounts. It is built once and
// never mutated, so it is safe to share between goroutines.
type RewardPolicy struct {
	amounts      map[Action]int
	interactions map[Action]bool
}

// DefaultRewardPolicy returns the canonical reward table.
func DefaultRewardPolicy() *RewardPolicy {
	return NewRewardPolicy(map[Action]int{
		ActionView:          1,
		ActionSave:          3,
		ActionShare:         5,
		ActionFetchFeed:     2,
		ActionProfileUpdate: 10,
		ActionDailyLogin:    5,
		ActionReferral:      20,
	}, ActionView, ActionSave, ActionShare, ActionFetchFeed)
}

// NewRewardPolicy copies amounts. Actions listed in interactions also bump
// the user's interaction counter.
func NewRewardPolicy(amounts map[Action]int, interactions ...Action) *RewardPolicy {
	p := &RewardPolicy{
		amounts:      make(map[Action]int, len(amounts)),
		interactions: make(map[Action]bool, len(interactions)),
	}
	for action, amount := range amounts {
		p.amounts[action] = amount
	}
	for _, action := range interactions {
		p.interactions[action] = true
	}
	return p
}

// Amount returns the reward for action. Unknown actions earn nothing.
func (p *RewardPolicy) Amount(action Action) int {
	return p.amounts[action]
}

func (p *RewardPolicy) IsInteraction(action Action) bool {
	return p.interactions[action]
}

// Known reports whether action appears in the table.
func (p *RewardPolicy) Known(action Action) bool {
	_, ok := p.amounts[action]
	return ok
}

// Table returns a copy of the reward table.
func (p *RewardPolicy) Table() map[Action]int {
	out := make(map[Action]int, len(p.amounts))
	for action, amount := range p.amounts {
		out[action] = amount
	}
	return out
}
