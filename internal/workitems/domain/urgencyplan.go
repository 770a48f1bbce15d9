package domain

// UrgencyPlan is a tagged sum type describing how an item's urgency
// either stays fixed or escalates once a trigger fires.
type UrgencyPlan interface {
	isUrgencyPlan()
}

// StaysTheSame never escalates.
type StaysTheSame struct {
	Value Urgency
}

func (StaysTheSame) isUrgencyPlan() {}

// WillEscalate moves from Initial to Later once any Trigger fires. An
// empty Triggers list is treated as already-triggered (§4.2).
type WillEscalate struct {
	Initial  Urgency
	Triggers []Trigger
	Later    Urgency
}

func (WillEscalate) isUrgencyPlan() {}

// ResolvedUrgencyPlan mirrors a stored UrgencyPlan with each Trigger
// enriched by its is_triggered evaluation, per §4.2.
type ResolvedUrgencyPlan struct {
	Plan     UrgencyPlan
	Triggers []ResolvedTrigger
}

// Current collapses the resolved plan to a single current Urgency,
// per §4.2 and §4.4: an escalating plan's current value is Later iff
// any resolved trigger is triggered, otherwise Initial. An empty
// trigger list on WillEscalate counts as already-triggered.
func (r ResolvedUrgencyPlan) Current() Urgency {
	switch p := r.Plan.(type) {
	case StaysTheSame:
		return p.Value
	case WillEscalate:
		if len(r.Triggers) == 0 {
			return p.Later
		}
		for _, t := range r.Triggers {
			if t.IsTriggered {
				return p.Later
			}
		}
		return p.Initial
	default:
		return nil
	}
}

// WillEscalateNow reports whether any trigger in the plan has fired.
// Per §8: an escalating plan with all triggers triggered is equivalent
// to StaysTheSame(later) for ranking purposes, which Current already
// implements by always returning Later once triggered.
func (r ResolvedUrgencyPlan) WillEscalateNow() bool {
	if _, ok := r.Plan.(WillEscalate); !ok {
		return false
	}
	if len(r.Triggers) == 0 {
		return true
	}
	for _, t := range r.Triggers {
		if t.IsTriggered {
			return true
		}
	}
	return false
}
