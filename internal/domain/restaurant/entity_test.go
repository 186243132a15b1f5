//go:build unit

package restaurant_test

import (
	"strings"
	"testing"
	"time"

	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.RestaurantBuilder)
	errIs  error
}

func TestRestaurant(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		b := builder.NewRestaurantBuilder()

		actual, err := b.BuildDomain()

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Costillas Grills", actual.Name().String())
		assert.Equal(t, "Bogotá", actual.City().String())
		assert.True(t, actual.IsActive())
		assert.False(t, actual.IsDeleted())
		assert.True(t, actual.AcceptsReservations())
	})

	t.Run("名前検証", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "50文字OK", mutate: func(b *builder.RestaurantBuilder) { b.WithName(strings.Repeat("a", 50)) }},
			{name: "51文字NG", mutate: func(b *builder.RestaurantBuilder) { b.WithName(strings.Repeat("a", 51)) }, errIs: restaurant.ErrInvalidName},
			{name: "空白のみNG", mutate: func(b *builder.RestaurantBuilder) { b.WithName("   ") }, errIs: restaurant.ErrInvalidName},
		})
	})

	t.Run("住所・都市検証", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "空の住所NG", mutate: func(b *builder.RestaurantBuilder) { b.Address = "" }, errIs: restaurant.ErrInvalidAddress},
			{name: "空の都市NG", mutate: func(b *builder.RestaurantBuilder) { b.WithCity("") }, errIs: restaurant.ErrInvalidCity},
		})
	})

	t.Run("写真URL検証", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "https OK", mutate: func(b *builder.RestaurantBuilder) { b.WithPhotoURL("https://cdn.example.com/a.jpg") }},
			{name: "空文字は未設定扱いOK", mutate: func(b *builder.RestaurantBuilder) { b.WithPhotoURL("  ") }},
			{name: "相対パスNG", mutate: func(b *builder.RestaurantBuilder) { b.WithPhotoURL("/a.jpg") }, errIs: restaurant.ErrInvalidPhotoURL},
			{name: "ftp NG", mutate: func(b *builder.RestaurantBuilder) { b.WithPhotoURL("ftp://example.com/a.jpg") }, errIs: restaurant.ErrInvalidPhotoURL},
		})
	})
}

func TestRestaurantLifecycle(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	r, err := builder.NewRestaurantBuilder().BuildDomain()
	require.NoError(t, err)

	t.Run("部分更新", func(t *testing.T) {
		p := r.Snapshot()
		p.City = "Medellín"
		p.IsActive = false

		require.NoError(t, r.Update(p, now))
		assert.Equal(t, "Medellín", r.City().String())
		assert.Equal(t, "Costillas Grills", r.Name().String())
		assert.False(t, r.AcceptsReservations())
		assert.Equal(t, now, r.UpdatedAt())
	})

	t.Run("論理削除で非アクティブ化", func(t *testing.T) {
		p := r.Snapshot()
		p.IsActive = true
		require.NoError(t, r.Update(p, now))

		require.NoError(t, r.SoftDelete(now))
		assert.True(t, r.IsDeleted())
		assert.False(t, r.IsActive())
		assert.False(t, r.AcceptsReservations())
	})

	t.Run("削除済みは更新・再削除不可", func(t *testing.T) {
		assert.ErrorIs(t, r.SoftDelete(now), restaurant.ErrAlreadyDeleted)
		assert.ErrorIs(t, r.Update(r.Snapshot(), now), restaurant.ErrAlreadyDeleted)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {

			actual, err := builder.NewRestaurantBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
