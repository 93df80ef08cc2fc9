package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func weekdayRule(id int64, weekday int, created string, start, end string, capacity int) *AvailabilityRule {
	return &AvailabilityRule{
		ID:        id,
		Kind:      RuleKindWeekday,
		Weekday:   ptr.Ptr(weekday),
		Ranges:    []TimeRange{{Start: types.TimeString(start), End: types.TimeString(end), Capacity: capacity}},
		CreatedAt: date(created),
	}
}

func dateRule(id int64, target, created string, start, end string, capacity int) *AvailabilityRule {
	return &AvailabilityRule{
		ID:         id,
		Kind:       RuleKindSpecificDate,
		TargetDate: ptr.Ptr(date(target)),
		Ranges:     []TimeRange{{Start: types.TimeString(start), End: types.TimeString(end), Capacity: capacity}},
		CreatedAt:  date(created),
	}
}

func TestSelectCurrentRule_SpecificDateOverridesWeekday(t *testing.T) {
	monday := weekdayRule(1, 1, "2024-01-01", "10:00", "14:00", 2)
	override := dateRule(2, "2024-03-04", "2024-02-01", "09:00", "13:00", 3)
	rules := []*AvailabilityRule{monday, override}

	got := SelectCurrentRule(rules, date("2024-03-04"))
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, types.TimeString("09:00"), got.Ranges[0].Start)
	assert.Equal(t, 3, got.Ranges[0].Capacity)

	got = SelectCurrentRule(rules, date("2024-03-11"))
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, types.TimeString("10:00"), got.Ranges[0].Start)
}

func TestSelectCurrentRule_LatestVersionWins(t *testing.T) {
	rules := []*AvailabilityRule{
		weekdayRule(3, 1, "2024-02-01", "11:00", "15:00", 1),
		weekdayRule(1, 1, "2024-01-01", "10:00", "14:00", 2),
		dateRule(4, "2024-03-04", "2024-01-10", "08:00", "09:00", 1),
		dateRule(5, "2024-03-04", "2024-01-20", "12:00", "13:00", 1),
	}

	assert.Equal(t, int64(3), SelectCurrentRule(rules, date("2024-03-11")).ID)
	assert.Equal(t, int64(5), SelectCurrentRule(rules, date("2024-03-04")).ID)
}

func TestSelectCurrentRule_NoRules(t *testing.T) {
	rules := []*AvailabilityRule{weekdayRule(1, 2, "2024-01-01", "10:00", "14:00", 2)}
	assert.Nil(t, SelectCurrentRule(rules, date("2024-03-04")))
	assert.Nil(t, SelectCurrentRule(nil, date("2024-03-04")))
}

func TestBuildHistory_Windows(t *testing.T) {
	rules := []*AvailabilityRule{
		dateRule(2, "2024-03-04", "2024-02-01", "09:00", "13:00", 3),
		weekdayRule(1, 1, "2024-01-01", "10:00", "14:00", 2),
		weekdayRule(3, 2, "2024-01-05", "10:00", "14:00", 2), // вторник, не относится
	}

	history := BuildHistory(rules, date("2024-03-04"))
	require.Len(t, history, 2)

	assert.Equal(t, int64(1), history[0].Rule.ID)
	assert.Equal(t, date("2024-01-01"), history[0].EffectiveFrom)
	require.NotNil(t, history[0].EffectiveTo)
	assert.Equal(t, date("2024-01-31"), *history[0].EffectiveTo)
	assert.False(t, history[0].Current)

	assert.Equal(t, int64(2), history[1].Rule.ID)
	assert.Nil(t, history[1].EffectiveTo)
	assert.True(t, history[1].Current)
}

func TestBuildHistory_NonUTCCreatedAt(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	first := weekdayRule(1, 1, "2024-01-01", "10:00", "14:00", 2)
	first.CreatedAt = date("2024-01-01").In(est)
	second := weekdayRule(2, 1, "2024-02-01", "09:00", "13:00", 3)
	second.CreatedAt = date("2024-02-01").In(est)

	history := BuildHistory([]*AvailabilityRule{second, first}, date("2024-03-04"))
	require.Len(t, history, 2)

	assert.Equal(t, date("2024-01-01"), history[0].EffectiveFrom)
	require.NotNil(t, history[0].EffectiveTo)
	assert.Equal(t, date("2024-01-31"), *history[0].EffectiveTo)

	assert.Equal(t, date("2024-02-01"), history[1].EffectiveFrom)
	assert.Nil(t, history[1].EffectiveTo)
	assert.True(t, history[1].Current)
}

func TestAvailabilityRule_Validate(t *testing.T) {
	ok := weekdayRule(0, 1, "2024-01-01", "10:00", "14:00", 2)
	assert.NoError(t, ok.Validate())

	badRange := weekdayRule(0, 1, "2024-01-01", "14:00", "10:00", 2)
	assert.ErrorIs(t, badRange.Validate(), ErrValidation)

	badWeekday := weekdayRule(0, 8, "2024-01-01", "10:00", "14:00", 2)
	assert.ErrorIs(t, badWeekday.Validate(), ErrValidation)

	negative := weekdayRule(0, 1, "2024-01-01", "10:00", "14:00", -1)
	assert.ErrorIs(t, negative.Validate(), ErrValidation)
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(date("2024-03-04")))
	assert.Equal(t, 7, ISOWeekday(date("2024-03-10")))
}

func TestTimeRange_Contains(t *testing.T) {
	r := TimeRange{Start: "10:00", End: "14:00"}
	assert.True(t, r.Contains("10:00"))
	assert.True(t, r.Contains("13:59"))
	assert.False(t, r.Contains("14:00"))
	assert.False(t, r.Contains("09:30"))
}
