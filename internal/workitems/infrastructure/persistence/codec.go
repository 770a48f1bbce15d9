// Package persistence stores work items in a relational database.
//
// The domain's sum types (Urgency, Scheduled, Scope, Trigger,
// UrgencyPlan, Frequency, Dependency, Action, Facing, Permanence) have
// no single tabular shape, so each is encoded as a small JSON envelope
// ({"kind": "...", "data": {...}}) and stored in a text column, the
// same approach the teacher uses for the outbox's payload/metadata
// columns.
package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

type envelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

func packEnvelope(kind string, data any) (json.RawMessage, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: kind, Data: raw})
}

func unpackEnvelope(raw json.RawMessage) (envelope, error) {
	var env envelope
	if len(raw) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, err
	}
	return env, nil
}

// --- Scope ---

func encodeScope(s domain.Scope) (json.RawMessage, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case domain.ScopeAll:
		return packEnvelope("ScopeAll", v)
	case domain.ScopeInclude:
		return packEnvelope("ScopeInclude", v)
	case domain.ScopeExclude:
		return packEnvelope("ScopeExclude", v)
	default:
		return nil, fmt.Errorf("unknown Scope variant %T", s)
	}
}

func decodeScope(raw json.RawMessage) (domain.Scope, error) {
	env, err := unpackEnvelope(raw)
	if err != nil || env.Kind == "" {
		return nil, err
	}
	switch env.Kind {
	case "ScopeAll":
		return domain.ScopeAll{}, nil
	case "ScopeInclude":
		var v domain.ScopeInclude
		return v, json.Unmarshal(env.Data, &v)
	case "ScopeExclude":
		var v domain.ScopeExclude
		return v, json.Unmarshal(env.Data, &v)
	default:
		return nil, fmt.Errorf("unknown Scope kind %q", env.Kind)
	}
}

// --- Scheduled ---

func encodeScheduled(s domain.Scheduled) (json.RawMessage, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case domain.ScheduledExact:
		return packEnvelope("ScheduledExact", v)
	case domain.ScheduledRange:
		return packEnvelope("ScheduledRange", v)
	default:
		return nil, fmt.Errorf("unknown Scheduled variant %T", s)
	}
}

func decodeScheduled(raw json.RawMessage) (domain.Scheduled, error) {
	env, err := unpackEnvelope(raw)
	if err != nil || env.Kind == "" {
		return nil, err
	}
	switch env.Kind {
	case "ScheduledExact":
		var v domain.ScheduledExact
		return v, json.Unmarshal(env.Data, &v)
	case "ScheduledRange":
		var v domain.ScheduledRange
		return v, json.Unmarshal(env.Data, &v)
	default:
		return nil, fmt.Errorf("unknown Scheduled kind %q", env.Kind)
	}
}

// --- Urgency ---

type urgencyScheduledDTO struct {
	Schedule json.RawMessage `json:"schedule"`
}

func encodeUrgency(u domain.Urgency) (json.RawMessage, error) {
	switch v := u.(type) {
	case nil:
		return nil, nil
	case domain.InTheModeByImportance:
		return packEnvelope("InTheModeByImportance", v)
	case domain.InTheModeMaybeUrgent:
		return packEnvelope("InTheModeMaybeUrgent", v)
	case domain.InTheModeDefinitelyUrgent:
		return packEnvelope("InTheModeDefinitelyUrgent", v)
	case domain.InTheModeScheduled:
		sched, err := encodeScheduled(v.Schedule)
		if err != nil {
			return nil, err
		}
		return packEnvelope("InTheModeScheduled", urgencyScheduledDTO{Schedule: sched})
	case domain.MoreUrgentThanMode:
		return packEnvelope("MoreUrgentThanMode", v)
	case domain.ScheduledAnyMode:
		sched, err := encodeScheduled(v.Schedule)
		if err != nil {
			return nil, err
		}
		return packEnvelope("ScheduledAnyMode", urgencyScheduledDTO{Schedule: sched})
	case domain.MoreUrgentThanAnythingIncludingScheduled:
		return packEnvelope("MoreUrgentThanAnythingIncludingScheduled", v)
	default:
		return nil, fmt.Errorf("unknown Urgency variant %T", u)
	}
}

func decodeUrgency(raw json.RawMessage) (domain.Urgency, error) {
	env, err := unpackEnvelope(raw)
	if err != nil || env.Kind == "" {
		return nil, err
	}
	switch env.Kind {
	case "InTheModeByImportance":
		return domain.InTheModeByImportance{}, nil
	case "InTheModeMaybeUrgent":
		return domain.InTheModeMaybeUrgent{}, nil
	case "InTheModeDefinitelyUrgent":
		return domain.InTheModeDefinitelyUrgent{}, nil
	case "InTheModeScheduled":
		var dto urgencyScheduledDTO
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return nil, err
		}
		sched, err := decodeScheduled(dto.Schedule)
		if err != nil {
			return nil, err
		}
		return domain.InTheModeScheduled{Schedule: sched}, nil
	case "MoreUrgentThanMode":
		return domain.MoreUrgentThanMode{}, nil
	case "ScheduledAnyMode":
		var dto urgencyScheduledDTO
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return nil, err
		}
		sched, err := decodeScheduled(dto.Schedule)
		if err != nil {
			return nil, err
		}
		return domain.ScheduledAnyMode{Schedule: sched}, nil
	case "MoreUrgentThanAnythingIncludingScheduled":
		return domain.MoreUrgentThanAnythingIncludingScheduled{}, nil
	default:
		return nil, fmt.Errorf("unknown Urgency kind %q", env.Kind)
	}
}

// --- Trigger ---

type loggedInvocationCountDTO struct {
	Starting time.Time       `json:"starting"`
	Count    int             `json:"count"`
	Scope    json.RawMessage `json:"scope"`
}

type loggedAmountOfTimeDTO struct {
	Starting time.Time       `json:"starting"`
	Duration time.Duration   `json:"duration"`
	Scope    json.RawMessage `json:"scope"`
}

func encodeTrigger(t domain.Trigger) (json.RawMessage, error) {
	switch v := t.(type) {
	case nil:
		return nil, nil
	case domain.WallClockDateTime:
		return packEnvelope("WallClockDateTime", v)
	case domain.LoggedInvocationCount:
		scope, err := encodeScope(v.Scope)
		if err != nil {
			return nil, err
		}
		return packEnvelope("LoggedInvocationCount", loggedInvocationCountDTO{Starting: v.Starting, Count: v.Count, Scope: scope})
	case domain.LoggedAmountOfTime:
		scope, err := encodeScope(v.Scope)
		if err != nil {
			return nil, err
		}
		return packEnvelope("LoggedAmountOfTime", loggedAmountOfTimeDTO{Starting: v.Starting, Duration: v.Duration, Scope: scope})
	default:
		return nil, fmt.Errorf("unknown Trigger variant %T", t)
	}
}

func decodeTrigger(raw json.RawMessage) (domain.Trigger, error) {
	env, err := unpackEnvelope(raw)
	if err != nil || env.Kind == "" {
		return nil, err
	}
	switch env.Kind {
	case "WallClockDateTime":
		var v domain.WallClockDateTime
		return v, json.Unmarshal(env.Data, &v)
	case "LoggedInvocationCount":
		var dto loggedInvocationCountDTO
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return nil, err
		}
		scope, err := decodeScope(dto.Scope)
		if err != nil {
			return nil, err
		}
		return domain.LoggedInvocationCount{Starting: dto.Starting, Count: dto.Count, Scope: scope}, nil
	case "LoggedAmountOfTime":
		var dto loggedAmountOfTimeDTO
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return nil, err
		}
		scope, err := decodeScope(dto.Scope)
		if err != nil {
			return nil, err
		}
		return domain.LoggedAmountOfTime{Starting: dto.Starting, Duration: dto.Duration, Scope: scope}, nil
	default:
		return nil, fmt.Errorf("unknown Trigger kind %q", env.Kind)
	}
}

func encodeTriggers(ts []domain.Trigger) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(ts))
	for i, t := range ts {
		raw, err := encodeTrigger(t)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func decodeTriggers(raws []json.RawMessage) ([]domain.Trigger, error) {
	out := make([]domain.Trigger, len(raws))
	for i, raw := range raws {
		t, err := decodeTrigger(raw)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// --- UrgencyPlan ---

type staysTheSameDTO struct {
	Value json.RawMessage `json:"value"`
}

type willEscalateDTO struct {
	Initial  json.RawMessage   `json:"initial"`
	Triggers []json.RawMessage `json:"triggers"`
	Later    json.RawMessage   `json:"later"`
}

func encodeUrgencyPlan(p domain.UrgencyPlan) (json.RawMessage, error) {
	switch v := p.(type) {
	case nil:
		return nil, nil
	case domain.StaysTheSame:
		value, err := encodeUrgency(v.Value)
		if err != nil {
			return nil, err
		}
		return packEnvelope("StaysTheSame", staysTheSameDTO{Value: value})
	case domain.WillEscalate:
		initial, err := encodeUrgency(v.Initial)
		if err != nil {
			return nil, err
		}
		later, err := encodeUrgency(v.Later)
		if err != nil {
			return nil, err
		}
		triggers, err := encodeTriggers(v.Triggers)
		if err != nil {
			return nil, err
		}
		return packEnvelope("WillEscalate", willEscalateDTO{Initial: initial, Triggers: triggers, Later: later})
	default:
		return nil, fmt.Errorf("unknown UrgencyPlan variant %T", p)
	}
}

func decodeUrgencyPlan(raw json.RawMessage) (domain.UrgencyPlan, error) {
	env, err := unpackEnvelope(raw)
	if err != nil || env.Kind == "" {
		return nil, err
	}
	switch env.Kind {
	case "StaysTheSame":
		var dto staysTheSameDTO
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return nil, err
		}
		value, err := decodeUrgency(dto.Value)
		if err != nil {
			return nil, err
		}
		return domain.StaysTheSame{Value: value}, nil
	case "WillEscalate":
		var dto willEscalateDTO
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return nil, err
		}
		initial, err := decodeUrgency(dto.Initial)
		if err != nil {
			return nil, err
		}
		later, err := decodeUrgency(dto.Later)
		if err != nil {
			return nil, err
		}
		triggers, err := decodeTriggers(dto.Triggers)
		if err != nil {
			return nil, err
		}
		return domain.WillEscalate{Initial: initial, Triggers: triggers, Later: later}, nil
	default:
		return nil, fmt.Errorf("unknown UrgencyPlan kind %q", env.Kind)
	}
}

// --- Frequency ---

func encodeFrequency(f domain.Frequency) (json.RawMessage, error) {
	switch v := f.(type) {
	case nil:
		return nil, nil
	case domain.NoneReviewWithParent:
		return packEnvelope("NoneReviewWithParent", v)
	case domain.FrequencyRange:
		return packEnvelope("FrequencyRange", v)
	case domain.Hourly:
		return packEnvelope("Hourly", v)
	case domain.Daily:
		return packEnvelope("Daily", v)
	case domain.EveryFewDays:
		return packEnvelope("EveryFewDays", v)
	case domain.Weekly:
		return packEnvelope("Weekly", v)
	case domain.BiMonthly:
		return packEnvelope("BiMonthly", v)
	case domain.Monthly:
		return packEnvelope("Monthly", v)
	case domain.Quarterly:
		return packEnvelope("Quarterly", v)
	case domain.SemiAnnually:
		return packEnvelope("SemiAnnually", v)
	case domain.Yearly:
		return packEnvelope("Yearly", v)
	default:
		return nil, fmt.Errorf("unknown Frequency variant %T", f)
	}
}

func decodeFrequency(raw json.RawMessage) (domain.Frequency, error) {
	env, err := unpackEnvelope(raw)
	if err != nil || env.Kind == "" {
		return nil, err
	}
	switch env.Kind {
	case "NoneReviewWithParent":
		return domain.NoneReviewWithParent{}, nil
	case "FrequencyRange":
		var v domain.FrequencyRange
		return v, json.Unmarshal(env.Data, &v)
	case "Hourly":
		return domain.Hourly{}, nil
	case "Daily":
		return domain.Daily{}, nil
	case "EveryFewDays":
		return domain.EveryFewDays{}, nil
	case "Weekly":
		return domain.Weekly{}, nil
	case "BiMonthly":
		return domain.BiMonthly{}, nil
	case "Monthly":
		return domain.Monthly{}, nil
	case "Quarterly":
		return domain.Quarterly{}, nil
	case "SemiAnnually":
		return domain.SemiAnnually{}, nil
	case "Yearly":
		return domain.Yearly{}, nil
	default:
		return nil, fmt.Errorf("unknown Frequency kind %q", env.Kind)
	}
}

// --- Dependency ---

func encodeDependency(d domain.Dependency) (json.RawMessage, error) {
	switch v := d.(type) {
	case domain.AfterDateTime:
		return packEnvelope("AfterDateTime", v)
	case domain.AfterItem:
		return packEnvelope("AfterItem", v)
	case domain.AfterEvent:
		return packEnvelope("AfterEvent", v)
	case domain.DuringItem:
		return packEnvelope("DuringItem", v)
	default:
		return nil, fmt.Errorf("unknown stored Dependency variant %T", d)
	}
}

func decodeDependency(raw json.RawMessage) (domain.Dependency, error) {
	env, err := unpackEnvelope(raw)
	if err != nil {
		return nil, err
	}
	switch env.Kind {
	case "AfterDateTime":
		var v domain.AfterDateTime
		return v, json.Unmarshal(env.Data, &v)
	case "AfterItem":
		var v domain.AfterItem
		return v, json.Unmarshal(env.Data, &v)
	case "AfterEvent":
		var v domain.AfterEvent
		return v, json.Unmarshal(env.Data, &v)
	case "DuringItem":
		var v domain.DuringItem
		return v, json.Unmarshal(env.Data, &v)
	default:
		return nil, fmt.Errorf("unknown Dependency kind %q", env.Kind)
	}
}

func encodeDependencies(ds []domain.Dependency) (string, error) {
	raws := make([]json.RawMessage, len(ds))
	for i, d := range ds {
		raw, err := encodeDependency(d)
		if err != nil {
			return "", err
		}
		raws[i] = raw
	}
	out, err := json.Marshal(raws)
	return string(out), err
}

func decodeDependencies(s string) ([]domain.Dependency, error) {
	if s == "" {
		return []domain.Dependency{}, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raws); err != nil {
		return nil, err
	}
	out := make([]domain.Dependency, len(raws))
	for i, raw := range raws {
		d, err := decodeDependency(raw)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// --- Facing ---

func encodeFacing(f domain.Facing) (string, error) {
	var (
		raw json.RawMessage
		err error
	)
	switch v := f.(type) {
	case nil:
		return "", nil
	case domain.FacingOthers:
		raw, err = packEnvelope("FacingOthers", v)
	case domain.FacingMyself:
		raw, err = packEnvelope("FacingMyself", v)
	case domain.FacingInternalOrSmaller:
		raw, err = packEnvelope("FacingInternalOrSmaller", v)
	default:
		return "", fmt.Errorf("unknown Facing variant %T", f)
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeFacing(s string) (domain.Facing, error) {
	if s == "" {
		return nil, nil
	}
	env, err := unpackEnvelope(json.RawMessage(s))
	if err != nil {
		return nil, err
	}
	switch env.Kind {
	case "FacingOthers":
		var v domain.FacingOthers
		return v, json.Unmarshal(env.Data, &v)
	case "FacingMyself":
		var v domain.FacingMyself
		return v, json.Unmarshal(env.Data, &v)
	case "FacingInternalOrSmaller":
		return domain.FacingInternalOrSmaller{}, nil
	default:
		return nil, fmt.Errorf("unknown Facing kind %q", env.Kind)
	}
}

// --- Permanence ---

func encodePermanence(p domain.Permanence) (string, error) {
	var (
		raw json.RawMessage
		err error
	)
	switch v := p.(type) {
	case nil:
		return "", nil
	case domain.PermanenceMaintenance:
		raw, err = packEnvelope("PermanenceMaintenance", v)
	case domain.PermanenceProject:
		raw, err = packEnvelope("PermanenceProject", v)
	default:
		return "", fmt.Errorf("unknown Permanence variant %T", p)
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodePermanence(s string) (domain.Permanence, error) {
	if s == "" {
		return nil, nil
	}
	env, err := unpackEnvelope(json.RawMessage(s))
	if err != nil {
		return nil, err
	}
	switch env.Kind {
	case "PermanenceMaintenance":
		return domain.PermanenceMaintenance{}, nil
	case "PermanenceProject":
		var v domain.PermanenceProject
		return v, json.Unmarshal(env.Data, &v)
	default:
		return nil, fmt.Errorf("unknown Permanence kind %q", env.Kind)
	}
}

// --- Action (for InTheMomentPriority.Choice/NotChosen) ---

type pickWhatShouldBeDoneFirstDTO struct {
	Choices []json.RawMessage `json:"choices"`
}

func encodeAction(a domain.Action) (json.RawMessage, error) {
	switch v := a.(type) {
	case nil:
		return nil, nil
	case domain.SetReadyAndUrgency:
		return packEnvelope("SetReadyAndUrgency", v)
	case domain.ParentBackToAMotivation:
		return packEnvelope("ParentBackToAMotivation", v)
	case domain.ReviewItem:
		return packEnvelope("ReviewItem", v)
	case domain.PickItemReviewFrequency:
		return packEnvelope("PickItemReviewFrequency", v)
	case domain.MakeProgress:
		return packEnvelope("MakeProgress", v)
	case domain.PickWhatShouldBeDoneFirst:
		choices, err := encodeActions(v.Choices)
		if err != nil {
			return nil, err
		}
		return packEnvelope("PickWhatShouldBeDoneFirst", pickWhatShouldBeDoneFirstDTO{Choices: choices})
	default:
		return nil, fmt.Errorf("unknown Action variant %T", a)
	}
}

func decodeAction(raw json.RawMessage) (domain.Action, error) {
	env, err := unpackEnvelope(raw)
	if err != nil || env.Kind == "" {
		return nil, err
	}
	switch env.Kind {
	case "SetReadyAndUrgency":
		var v domain.SetReadyAndUrgency
		return v, json.Unmarshal(env.Data, &v)
	case "ParentBackToAMotivation":
		var v domain.ParentBackToAMotivation
		return v, json.Unmarshal(env.Data, &v)
	case "ReviewItem":
		var v domain.ReviewItem
		return v, json.Unmarshal(env.Data, &v)
	case "PickItemReviewFrequency":
		var v domain.PickItemReviewFrequency
		return v, json.Unmarshal(env.Data, &v)
	case "MakeProgress":
		var v domain.MakeProgress
		return v, json.Unmarshal(env.Data, &v)
	case "PickWhatShouldBeDoneFirst":
		var dto pickWhatShouldBeDoneFirstDTO
		if err := json.Unmarshal(env.Data, &dto); err != nil {
			return nil, err
		}
		choices, err := decodeActions(dto.Choices)
		if err != nil {
			return nil, err
		}
		return domain.PickWhatShouldBeDoneFirst{Choices: choices}, nil
	default:
		return nil, fmt.Errorf("unknown Action kind %q", env.Kind)
	}
}

func encodeActions(as []domain.Action) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(as))
	for i, a := range as {
		raw, err := encodeAction(a)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func decodeActions(raws []json.RawMessage) ([]domain.Action, error) {
	out := make([]domain.Action, len(raws))
	for i, raw := range raws {
		a, err := decodeAction(raw)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// --- id list helpers for children / worked_on columns ---

func encodeUUIDs(ids []uuid.UUID) (string, error) {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	out, err := json.Marshal(strs)
	return string(out), err
}

func decodeUUIDs(s string) ([]uuid.UUID, error) {
	if s == "" {
		return []uuid.UUID{}, nil
	}
	var strs []string
	if err := json.Unmarshal([]byte(s), &strs); err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, len(strs))
	for i, str := range strs {
		id, err := uuid.Parse(str)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
