package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvedUrgencyPlan_StaysTheSame(t *testing.T) {
	plan := ResolvedUrgencyPlan{Plan: StaysTheSame{Value: InTheModeDefinitelyUrgent{}}}

	assert.Equal(t, InTheModeDefinitelyUrgent{}, plan.Current())
	assert.False(t, plan.WillEscalateNow())
}

func TestResolvedUrgencyPlan_EscalatesWhenAnyTriggerFires(t *testing.T) {
	plan := ResolvedUrgencyPlan{
		Plan: WillEscalate{
			Initial: InTheModeByImportance{},
			Later:   MoreUrgentThanMode{},
		},
		Triggers: []ResolvedTrigger{
			{Trigger: WallClockDateTime{At: time.Now()}, IsTriggered: false},
			{Trigger: WallClockDateTime{At: time.Now()}, IsTriggered: true},
		},
	}

	assert.Equal(t, MoreUrgentThanMode{}, plan.Current())
	assert.True(t, plan.WillEscalateNow())
}

func TestResolvedUrgencyPlan_NoTriggerFired_StaysInitial(t *testing.T) {
	plan := ResolvedUrgencyPlan{
		Plan: WillEscalate{
			Initial: InTheModeByImportance{},
			Later:   MoreUrgentThanMode{},
		},
		Triggers: []ResolvedTrigger{
			{Trigger: WallClockDateTime{At: time.Now()}, IsTriggered: false},
		},
	}

	assert.Equal(t, InTheModeByImportance{}, plan.Current())
	assert.False(t, plan.WillEscalateNow())
}

func TestResolvedUrgencyPlan_EmptyTriggerList_AlreadyTriggered(t *testing.T) {
	plan := ResolvedUrgencyPlan{
		Plan: WillEscalate{
			Initial: InTheModeByImportance{},
			Later:   MoreUrgentThanMode{},
		},
	}

	assert.Equal(t, MoreUrgentThanMode{}, plan.Current())
	assert.True(t, plan.WillEscalateNow())
}
