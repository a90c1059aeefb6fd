package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	up := 2.345
	down := -1.5

	assert.Equal(t, "0.00", Percent(nil))
	assert.Equal(t, "2.35", Percent(&up))
	assert.Equal(t, "-1.50", Percent(&down))
	assert.Equal(t, "1.50", AbsPercent(&down))
	assert.Equal(t, "0.00", AbsPercent(nil))

	assert.True(t, Positive(&up))
	assert.False(t, Positive(&down))
	assert.False(t, Positive(nil))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "Mar 14, 2024, 07:10 AM", Date("2024-03-14T07:10:36.635Z"))
	assert.Equal(t, "Jul 6, 2013, 12:00 AM", Date("2013-07-06T00:00:00.000Z"))
	assert.Equal(t, "Nov 10, 2021, 02:05 PM", Date("2021-11-10T16:05:00+02:00"))
	assert.Equal(t, NotAvailable, Date(""))
	assert.Equal(t, NotAvailable, Date("yesterday"))
}
