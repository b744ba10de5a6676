package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nutritrack-backend/models"
)

// acceptPair runs the full consultant-initiated invite flow for a pair.
func acceptPair(t *testing.T, svc *ConsultantService, consultantUID, userUID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.InviteUser(ctx, consultantUID, userUID))
	require.NoError(t, svc.RespondToInvite(ctx, models.InitiatorUser, consultantUID, userUID, true))
}

func TestDuplicatePendingInviteRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedConsultant(t, db, "coach", 5)
	ctx := context.Background()

	require.NoError(t, svc.InviteUser(ctx, "coach", "alice"))
	require.ErrorIs(t, svc.InviteUser(ctx, "coach", "alice"), models.ErrConflict)

	// The other direction for the same pair is also just a pending invite.
	require.ErrorIs(t, svc.InviteConsultant(ctx, "alice", "coach"), models.ErrConflict)
}

func TestConcurrentInvitesCreateOnePending(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedConsultant(t, db, "coach", 5)
	ctx := context.Background()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.InviteUser(ctx, "coach", "alice")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, models.ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "only one invite may open the pair")

	var pending int64
	require.NoError(t, db.Model(&models.ConsultantRequest{}).
		Where("consultant_uid = ? AND user_uid = ? AND status = ?", "coach", "alice", models.InvitePending).
		Count(&pending).Error)
	assert.EqualValues(t, 1, pending)
}

func TestPendingInviteUniquenessIsSchemaBacked(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice")
	seedConsultant(t, db, "coach", 5)

	invite := func(status models.InviteStatus) *models.ConsultantRequest {
		return &models.ConsultantRequest{
			ConsultantUID: "coach",
			UserUID:       "alice",
			Status:        status,
			Initiator:     models.InitiatorConsultant,
			CreatedAt:     time.Now().UTC(),
		}
	}

	require.NoError(t, db.Create(invite(models.InvitePending)).Error)

	// A second pending row for the pair is rejected below the service layer,
	// so the check-then-insert cannot be raced past.
	err := db.Create(invite(models.InvitePending)).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Settled rows for the same pair are free to accumulate.
	require.NoError(t, db.Create(invite(models.InviteRejected)).Error)
	require.NoError(t, db.Create(invite(models.InviteRejected)).Error)
}

func TestReinviteAllowedAfterRejection(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedConsultant(t, db, "coach", 5)
	ctx := context.Background()

	require.NoError(t, svc.InviteUser(ctx, "coach", "alice"))
	require.NoError(t, svc.RespondToInvite(ctx, models.InitiatorUser, "coach", "alice", false))

	require.NoError(t, svc.InviteUser(ctx, "coach", "alice"))
	assert.Zero(t, currentClients(t, db, "coach"))
}

func TestInitiatorCannotRespondToOwnInvite(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedConsultant(t, db, "coach", 5)
	ctx := context.Background()

	require.NoError(t, svc.InviteUser(ctx, "coach", "alice"))
	err := svc.RespondToInvite(ctx, models.InitiatorConsultant, "coach", "alice", true)
	require.ErrorIs(t, err, models.ErrUnauthorized)

	// The user-initiated direction mirrors it.
	require.NoError(t, svc.RespondToInvite(ctx, models.InitiatorUser, "coach", "alice", false))
	require.NoError(t, svc.InviteConsultant(ctx, "alice", "coach"))
	err = svc.RespondToInvite(ctx, models.InitiatorUser, "coach", "alice", true)
	require.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAcceptCreatesRelationshipAndCountsIt(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedConsultant(t, db, "coach", 5)

	acceptPair(t, svc, "coach", "alice")

	assert.Equal(t, 1, currentClients(t, db, "coach"))

	var link models.UserConsultant
	require.NoError(t, db.First(&link, "user_uid = ? AND consultant_uid = ?", "alice", "coach").Error)
	assert.True(t, link.IsActive)

	var invite models.ConsultantRequest
	require.NoError(t, db.First(&invite, "consultant_uid = ? AND user_uid = ?", "coach", "alice").Error)
	assert.Equal(t, models.InviteAccepted, invite.Status)
	assert.NotNil(t, invite.RespondedAt)
}

func TestAcceptAtCapacityFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedConsultant(t, db, "coach", 1)
	ctx := context.Background()

	acceptPair(t, svc, "coach", "alice")

	// The full consultant cannot even extend a courtesy invite.
	require.ErrorIs(t, svc.InviteUser(ctx, "coach", "bob"), models.ErrConflict)

	// A user-initiated invite still goes through, but the accept hits the gate.
	require.NoError(t, svc.InviteConsultant(ctx, "bob", "coach"))
	err := svc.RespondToInvite(ctx, models.InitiatorConsultant, "coach", "bob", true)
	require.ErrorIs(t, err, models.ErrConflict)

	assert.Equal(t, 1, currentClients(t, db, "coach"))

	// The failed accept rolled back, the invite is still answerable.
	var invite models.ConsultantRequest
	require.NoError(t, db.First(&invite, "consultant_uid = ? AND user_uid = ?", "coach", "bob").Error)
	assert.Equal(t, models.InvitePending, invite.Status)
}

func TestConcurrentAcceptsOnlyOneWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedConsultant(t, db, "coach", 1)
	ctx := context.Background()

	require.NoError(t, svc.InviteConsultant(ctx, "alice", "coach"))
	require.NoError(t, svc.InviteConsultant(ctx, "bob", "coach"))

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, userUID := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(i int, userUID string) {
			defer wg.Done()
			errs[i] = svc.RespondToInvite(ctx, models.InitiatorConsultant, "coach", userUID, true)
		}(i, userUID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, models.ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one accept may claim the last slot")
	assert.Equal(t, 1, currentClients(t, db, "coach"))

	var links int64
	require.NoError(t, db.Model(&models.UserConsultant{}).
		Where("consultant_uid = ?", "coach").Count(&links).Error)
	assert.EqualValues(t, 1, links)
}

func TestDissolveMissingRelationship(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedConsultant(t, db, "coach", 5)

	err := svc.Dissolve(context.Background(), "alice", "coach")
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Zero(t, currentClients(t, db, "coach"))
}

func TestDissolveOnlyAffectsThePair(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedConsultant(t, db, "coach", 5)
	ctx := context.Background()

	acceptPair(t, svc, "coach", "alice")
	acceptPair(t, svc, "coach", "bob")
	require.Equal(t, 2, currentClients(t, db, "coach"))

	require.NoError(t, svc.Dissolve(ctx, "alice", "coach"))

	assert.Equal(t, 1, currentClients(t, db, "coach"))

	err := db.First(&models.UserConsultant{}, "user_uid = ? AND consultant_uid = ?", "alice", "coach").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, db.First(&models.UserConsultant{}, "user_uid = ? AND consultant_uid = ?", "bob", "coach").Error)

	// The accepted invite that carried the dissolved link is gone, bob's stays.
	err = db.First(&models.ConsultantRequest{}, "user_uid = ? AND consultant_uid = ?", "alice", "coach").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, db.First(&models.ConsultantRequest{}, "user_uid = ? AND consultant_uid = ?", "bob", "coach").Error)
}

func TestReinviteAfterDissolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedConsultant(t, db, "coach", 5)
	ctx := context.Background()

	acceptPair(t, svc, "coach", "alice")
	require.NoError(t, svc.Dissolve(ctx, "alice", "coach"))

	acceptPair(t, svc, "coach", "alice")
	assert.Equal(t, 1, currentClients(t, db, "coach"))
}

func TestListInvitesScopedToParty(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedConsultant(t, db, "coach", 5)
	seedConsultant(t, db, "trainer", 5)
	ctx := context.Background()

	require.NoError(t, svc.InviteUser(ctx, "coach", "alice"))
	require.NoError(t, svc.InviteUser(ctx, "trainer", "bob"))

	invites, err := svc.ListInvites(ctx, RoleConsultant, "coach")
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "alice", invites[0].UserUID)

	invites, err = svc.ListInvites(ctx, RoleUser, "bob")
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "trainer", invites[0].ConsultantUID)

	invites, err = svc.ListInvites(ctx, RoleAdmin, "root")
	require.NoError(t, err)
	assert.Len(t, invites, 2)
}

func TestConsultantDirectoryUpdates(t *testing.T) {
	db := newTestDB(t)
	svc := NewConsultantService(db, nil, nil)
	seedConsultant(t, db, "coach", 5)
	ctx := context.Background()

	require.NoError(t, svc.UpdateMaxClients(ctx, "coach", 8))
	require.NoError(t, svc.UpdateExperienceYears(ctx, "coach", 12))
	require.ErrorIs(t, svc.UpdateMaxClients(ctx, "ghost", 8), models.ErrNotFound)
	require.ErrorIs(t, svc.UpdateNickname(ctx, "coach", ""), models.ErrValidation)

	consultant, err := svc.GetConsultant(ctx, "coach")
	require.NoError(t, err)
	assert.Equal(t, 8, consultant.MaxClients)
	assert.Equal(t, 12, consultant.ExperienceYears)
}
