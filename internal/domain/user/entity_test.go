//go:build unit

package user_test

import (
	"strings"
	"testing"
	"time"

	"restaurant-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
		username, err := user.NewUsername("admin")
		require.NoError(t, err)

		actual := user.NewUser(username, "hashed_password", user.RoleAdmin, now)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "admin", actual.Username().Value())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
		assert.True(t, actual.CanAdminister())
	})

	t.Run("非アクティブな管理者は管理不可", func(t *testing.T) {
		username, _ := user.NewUsername("admin")
		u := user.ReconstructUser(uuid.New(), username, "x", user.RoleAdmin, nil, false, time.Now(), time.Now())

		assert.False(t, u.CanAdminister())
	})

	t.Run("スタッフは管理不可", func(t *testing.T) {
		username, _ := user.NewUsername("staff.1")
		u := user.NewUser(username, "x", user.RoleStaff, time.Now())

		assert.False(t, u.CanAdminister())
	})
}

func TestUsername(t *testing.T) {
	cases := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "英数字OK", input: "admin01"},
		{name: "記号OK", input: "front.desk-1"},
		{name: "2文字NG", input: "ab", errIs: user.ErrInvalidUsername},
		{name: "51文字NG", input: strings.Repeat("a", 51), errIs: user.ErrInvalidUsername},
		{name: "空白入りNG", input: "front desk", errIs: user.ErrInvalidUsername},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := user.NewUsername(c.input)
			if c.errIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, c.errIs)
		})
	}
}

func TestRole(t *testing.T) {
	cases := []struct {
		input string
		level int
		errIs error
	}{
		{input: "viewer", level: 1},
		{input: "staff", level: 2},
		{input: "admin", level: 3},
		{input: "operator", errIs: user.ErrInvalidRole},
		{input: "", errIs: user.ErrInvalidRole},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			role, err := user.NewRole(c.input)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				assert.Zero(t, role.Level())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.level, role.Level())
		})
	}
}

func TestCredentials(t *testing.T) {
	_, err := user.NewCredentials("admin", "")
	require.ErrorIs(t, err, user.ErrEmptyPassword)

	_, err = user.NewCredentials("a", "secret")
	require.ErrorIs(t, err, user.ErrInvalidUsername)

	c, err := user.NewCredentials(" admin ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Username().Value())
	assert.Equal(t, "secret", c.Password().Value())
}
