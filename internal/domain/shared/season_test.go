package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgard/crownlands/internal/domain/shared"
)

func TestDateNext(t *testing.T) {
	tests := []struct {
		name string
		in   shared.Date
		want shared.Date
	}{
		{
			name: "within a year",
			in:   shared.Date{Year: 1300, Season: shared.SeasonSpring},
			want: shared.Date{Year: 1300, Season: shared.SeasonSummer},
		},
		{
			name: "winter rolls the year",
			in:   shared.Date{Year: 1300, Season: shared.SeasonWinter},
			want: shared.Date{Year: 1301, Season: shared.SeasonSpring},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Next())
		})
	}
}

func TestDateOrdering(t *testing.T) {
	spring := shared.Date{Year: 1300, Season: shared.SeasonSpring}
	autumn := shared.Date{Year: 1300, Season: shared.SeasonAutumn}
	nextYear := shared.Date{Year: 1301, Season: shared.SeasonSpring}

	assert.True(t, spring.Before(autumn))
	assert.True(t, autumn.Before(nextYear))
	assert.False(t, autumn.Before(spring))
	assert.False(t, spring.Before(spring))
	assert.True(t, spring.Equal(shared.Date{Year: 1300, Season: shared.SeasonSpring}))
	assert.False(t, spring.Equal(autumn))
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "Autumn 1321", shared.Date{Year: 1321, Season: shared.SeasonAutumn}.String())
}
