//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"restaurant-booking/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "正常な日付OK", input: "2026-12-24", want: "2026-12-24"},
		{name: "前後の空白OK", input: " 2026-01-05 ", want: "2026-01-05"},
		{name: "うるう日OK", input: "2028-02-29", want: "2028-02-29"},
		{name: "存在しない日付NG", input: "2026-02-30", errIs: reservation.ErrInvalidDate},
		{name: "時刻付きNG", input: "2026-12-24T10:00:00Z", errIs: reservation.ErrInvalidDate},
		{name: "区切り違いNG", input: "24/12/2026", errIs: reservation.ErrInvalidDate},
		{name: "空文字NG", input: "", errIs: reservation.ErrInvalidDate},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := reservation.ParseDate(c.input)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				assert.True(t, d.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, d.String())
		})
	}
}

func TestDateOf(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	// 03:00 UTC is still the previous evening in Bogotá (UTC-5)
	instant := time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-10-14", reservation.DateOf(instant, bogota).String())
	assert.Equal(t, "2026-10-15", reservation.DateOf(instant, time.UTC).String())
}

func TestDateHelpers(t *testing.T) {
	d := reservation.NewDate(2026, 12, 31)

	assert.True(t, d.Equal(reservation.DateFromTime(time.Date(2026, 12, 31, 23, 59, 0, 0, time.FixedZone("x", 3600)))))
	assert.Equal(t, "reservations:2026-12-31", d.LockKey())
	assert.True(t, reservation.Date{}.IsZero())
}

func TestNewCustomer(t *testing.T) {
	cases := []struct {
		name  string
		cname string
		email string
		dni   string
		errIs error
	}{
		{name: "正常OK", cname: "Ana Gómez", email: "ana@example.com", dni: "1020304050"},
		{name: "ハイフン付きDNI OK", cname: "Ana", email: "ana@example.co", dni: "CC-123"},
		{name: "空の名前NG", cname: "  ", email: "ana@example.com", dni: "1", errIs: reservation.ErrInvalidCustomerName},
		{name: "名前101文字NG", cname: strings.Repeat("a", 101), email: "ana@example.com", dni: "1", errIs: reservation.ErrInvalidCustomerName},
		{name: "不正なメールNG", cname: "Ana", email: "ana-at-example", dni: "1", errIs: reservation.ErrInvalidCustomerEmail},
		{name: "空のDNI NG", cname: "Ana", email: "ana@example.com", dni: "", errIs: reservation.ErrInvalidDNI},
		{name: "DNI21文字NG", cname: "Ana", email: "ana@example.com", dni: strings.Repeat("9", 21), errIs: reservation.ErrInvalidDNI},
		{name: "DNIに空白NG", cname: "Ana", email: "ana@example.com", dni: "10 20", errIs: reservation.ErrInvalidDNI},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			customer, err := reservation.NewCustomer(c.cname, c.email, c.dni)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(c.cname), customer.Name().String())
			assert.Equal(t, c.email, customer.Email().String())
			assert.Equal(t, c.dni, customer.DNI().String())
		})
	}
}

func TestNewCode(t *testing.T) {
	t.Run("小文字は大文字に正規化", func(t *testing.T) {
		code, err := reservation.NewCode(" abc234 ")
		require.NoError(t, err)
		assert.Equal(t, "ABC234", code.String())
	})

	for _, in := range []string{"", "AB1", "ABC-234", strings.Repeat("A", 21)} {
		t.Run("不正なコードNG:"+in, func(t *testing.T) {
			_, err := reservation.NewCode(in)
			require.ErrorIs(t, err, reservation.ErrInvalidCode)
		})
	}
}

func TestNewCredential(t *testing.T) {
	cred, err := reservation.NewCredential("1020304050", "abc234")
	require.NoError(t, err)
	assert.Equal(t, "1020304050", cred.DNI().String())
	assert.Equal(t, "ABC234", cred.Code().String())

	_, err = reservation.NewCredential("", "ABC234")
	require.ErrorIs(t, err, reservation.ErrInvalidDNI)

	_, err = reservation.NewCredential("1020304050", "!!")
	require.ErrorIs(t, err, reservation.ErrInvalidCode)
}

func TestStatusFilter(t *testing.T) {
	cases := []struct {
		input string
		want  []reservation.Status
		err   bool
	}{
		{input: "active", want: []reservation.Status{reservation.StatusActive}},
		{input: "deleted", want: []reservation.Status{reservation.StatusDeleted}},
		{input: "all", want: []reservation.Status{reservation.StatusActive, reservation.StatusDeleted}},
		{input: "cancelled", err: true},
		{input: "", err: true},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			f, err := reservation.NewStatusFilter(c.input)
			if c.err {
				require.ErrorIs(t, err, reservation.ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, f.Statuses())
		})
	}
}
