package logic

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureStateIsIdempotent(t *testing.T) {
	env, _, _ := newTestEnv(t)
	adminLogic := NewAdminLogic(env)

	// 重复初始化不覆盖已有管理员
	require.NoError(t, adminLogic.EnsureState(outsider))
	state, err := adminLogic.GetState()
	require.NoError(t, err)
	assert.Equal(t, adminAddr, state.Admin)
	assert.False(t, state.Paused)
}

func TestChangeAdmin(t *testing.T) {
	env, _, _ := newTestEnv(t)
	adminLogic := NewAdminLogic(env)

	assert.ErrorIs(t, adminLogic.ChangeAdmin(outsider, investorOne), ErrNotAdmin)
	assert.ErrorIs(t, adminLogic.ChangeAdmin(adminAddr, adminAddr), ErrSameAsCurrentAdmin)
	assert.ErrorIs(t, adminLogic.ChangeAdmin(adminAddr,
		"0x0000000000000000000000000000000000000000"), ErrAddressZero)
	assert.ErrorIs(t, adminLogic.ChangeAdmin(adminAddr, ""), ErrEmptyAddress)

	require.NoError(t, adminLogic.ChangeAdmin(adminAddr, investorOne))
	state, err := adminLogic.GetState()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(investorOne).Hex(), state.Admin)

	// 旧管理员随即失权
	assert.ErrorIs(t, adminLogic.ChangeAdmin(adminAddr, investorTwo), ErrNotAdmin)
	require.NoError(t, adminLogic.ChangeAdmin(investorOne, adminAddr))
}

func TestPauseUnpause(t *testing.T) {
	env, _, _ := newTestEnv(t)
	adminLogic := NewAdminLogic(env)

	assert.ErrorIs(t, adminLogic.Pause(outsider), ErrNotAdmin)

	require.NoError(t, adminLogic.Pause(adminAddr))
	state, err := adminLogic.GetState()
	require.NoError(t, err)
	assert.True(t, state.Paused)

	// 重复暂停是无操作
	require.NoError(t, adminLogic.Pause(adminAddr))

	require.NoError(t, adminLogic.Unpause(adminAddr))
	state, err = adminLogic.GetState()
	require.NoError(t, err)
	assert.False(t, state.Paused)
}

func TestWhitelistAddRejectedWhilePaused(t *testing.T) {
	env, book, clock := newTestEnv(t)
	id := listDefault(t, env, book, clock)

	require.NoError(t, NewAdminLogic(env).Pause(adminAddr))
	assert.ErrorIs(t, NewProjectLogic(env).AddUserForProject(id, ownerAddr, outsider), ErrPaused)
}
