package access_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hexa_access/internal/access"
	"hexa_access/internal/events"
	"hexa_access/internal/models"
	"hexa_access/internal/store/memory"
)

func hash(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// newTestEngine builds an engine backed by in-memory stores, returning the
// stores so tests can inspect recorded events and registration state.
func newTestEngine(chars ...models.Character) (*access.Engine, *memory.CharacterStore, *memory.LogStore) {
	characterStore := memory.NewCharacterStore(chars...)
	logStore := memory.NewLogStore()
	logger := log.New(os.Stderr, "", 0)
	recorder := events.NewRecorder(logStore, nil, logger)
	return access.NewEngine(characterStore, recorder, logger), characterStore, logStore
}

func TestDecide_MissingInput(t *testing.T) {
	engine, _, logs := newTestEngine()

	_, err := engine.Decide(context.Background(), access.Request{DoorID: 1})
	assert.ErrorIs(t, err, access.ErrMissingInput)

	_, err = engine.Decide(context.Background(), access.Request{RFIDCode: "AA11"})
	assert.ErrorIs(t, err, access.ErrMissingInput)

	assert.Empty(t, logs.All(), "client errors must not emit events")
}

func TestDecide_UnknownRFID(t *testing.T) {
	engine, _, logs := newTestEngine()

	d, err := engine.Decide(context.Background(), access.Request{RFIDCode: "AA11", DoorID: 1})
	require.NoError(t, err)

	assert.False(t, d.Success)
	assert.True(t, d.Unknown)
	assert.Equal(t, access.DenialUnknownCard, d.Reason)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, models.LogAccessDenied, entries[0].Type)
	assert.Contains(t, entries[0].Text, "AA11")
	assert.Nil(t, entries[0].UserID)
}

func TestDecide_UnknownDoor(t *testing.T) {
	engine, _, logs := newTestEngine(models.Character{
		ID: 7, Name: "Jia Li", Role: models.RoleEngineer, RFIDCode: "E6 FF",
	})

	_, err := engine.Decide(context.Background(), access.Request{RFIDCode: "E6 FF", DoorID: 42})
	assert.ErrorIs(t, err, access.ErrUnknownDoor)
	assert.Empty(t, logs.All(), "configuration errors are not security events")
}

func TestDecide_InsufficientClearance(t *testing.T) {
	engine, _, logs := newTestEngine(models.Character{
		ID: 5, Name: "Guest User", Role: models.RoleVisitor, RFIDCode: "BB22",
	})

	// Door 3 (Security Office) does not admit visitors.
	d, err := engine.Decide(context.Background(), access.Request{RFIDCode: "BB22", DoorID: 3})
	require.NoError(t, err)

	assert.False(t, d.Success)
	assert.Equal(t, access.DenialInsufficientClearance, d.Reason)
	assert.Contains(t, d.Message, "Insufficient Clearance")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, models.LogAccessDenied, entries[0].Type)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, int64(5), *entries[0].UserID)
}

func TestDecide_PasswordChallenge_NoEvent(t *testing.T) {
	engine, _, logs := newTestEngine(models.Character{
		ID: 1, Name: "Salman Miya", Role: models.RoleAdmin, RFIDCode: "D4 C6",
		PasswordHash: hash(t, "hunter22"),
	})

	d, err := engine.Decide(context.Background(), access.Request{RFIDCode: "D4 C6", DoorID: 1})
	require.NoError(t, err)

	assert.False(t, d.Success)
	assert.True(t, d.RequirePassword)
	require.NotNil(t, d.Character)
	assert.Equal(t, "Salman Miya", d.Character.Name)
	assert.Empty(t, logs.All(), "challenge responses are non-terminal")
}

func TestDecide_PasswordRoundTrip(t *testing.T) {
	engine, _, logs := newTestEngine(models.Character{
		ID: 1, Name: "Salman Miya", Role: models.RoleAdmin, RFIDCode: "D4 C6",
		PasswordHash: hash(t, "hunter22"),
	})

	// Wrong plaintext denies with an event.
	d, err := engine.Decide(context.Background(), access.Request{RFIDCode: "D4 C6", DoorID: 1, Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, d.Success)
	assert.Equal(t, access.DenialInvalidPassword, d.Reason)
	require.Len(t, logs.All(), 1)
	assert.Equal(t, models.LogAccessDenied, logs.All()[0].Type)

	// Original plaintext verifies and grants.
	d, err = engine.Decide(context.Background(), access.Request{RFIDCode: "D4 C6", DoorID: 1, Password: "hunter22"})
	require.NoError(t, err)
	assert.True(t, d.Success)
	require.NotNil(t, d.User)
	assert.Equal(t, models.RoleAdmin, d.User.Role)
}

func TestDecide_PasswordNotConfigured(t *testing.T) {
	engine, _, logs := newTestEngine(models.Character{
		ID: 3, Name: "Ben Carter", Role: models.RoleStaff, RFIDCode: "54 08",
	})

	d, err := engine.Decide(context.Background(), access.Request{RFIDCode: "54 08", DoorID: 1, Password: "anything"})
	require.NoError(t, err)

	assert.False(t, d.Success)
	assert.Equal(t, access.DenialSetupRequired, d.Reason)
	require.Len(t, logs.All(), 1)
	assert.Equal(t, models.LogError, logs.All()[0].Type, "missing setup is a configuration error, not a denial")
}

func TestDecide_PinFlow(t *testing.T) {
	engine, _, logs := newTestEngine(models.Character{
		ID: 4, Name: "Elena Petrova", Role: models.RoleSecurity, RFIDCode: "BA D5",
		PinHash: hash(t, "123456"),
	})

	// Door 3 (Security Office) requires a PIN.
	d, err := engine.Decide(context.Background(), access.Request{RFIDCode: "BA D5", DoorID: 3})
	require.NoError(t, err)
	assert.True(t, d.RequirePin)
	assert.Empty(t, logs.All())

	d, err = engine.Decide(context.Background(), access.Request{RFIDCode: "BA D5", DoorID: 3, Pin: "000000"})
	require.NoError(t, err)
	assert.Equal(t, access.DenialInvalidPin, d.Reason)
	assert.Equal(t, "Invalid PIN", d.Message)

	d, err = engine.Decide(context.Background(), access.Request{RFIDCode: "BA D5", DoorID: 3, Pin: "123456"})
	require.NoError(t, err)
	assert.True(t, d.Success)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, models.LogAccessDenied, entries[0].Type)
	assert.Equal(t, models.LogAccessGranted, entries[1].Type)
}

func TestDecide_NoAuthDoorGrants(t *testing.T) {
	engine, _, logs := newTestEngine(models.Character{
		ID: 3, Name: "Ben Carter", Role: models.RoleStaff, RFIDCode: "54 08",
	})

	// Door 2 (Staff Lounge) has no second factor.
	d, err := engine.Decide(context.Background(), access.Request{RFIDCode: "54 08", DoorID: 2})
	require.NoError(t, err)

	assert.True(t, d.Success)
	require.Len(t, logs.All(), 1)
	assert.Equal(t, models.LogAccessGranted, logs.All()[0].Type)
}

func TestDecide_RegistrationIdempotent(t *testing.T) {
	engine, chars, logs := newTestEngine(models.Character{
		ID: 2, Name: "Jia Li", Role: models.RoleEngineer, RFIDCode: "E6 FF",
		PasswordHash: hash(t, "secret99"),
	})

	req := access.Request{RFIDCode: "E6 FF", DoorID: 1, Password: "secret99"}

	d, err := engine.Decide(context.Background(), req)
	require.NoError(t, err)
	require.True(t, d.Success)
	assert.True(t, d.User.IsRegistered)
	assert.Contains(t, d.Message, "Registration Confirmed")

	stored, err := chars.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, stored.IsRegistered)

	// Second pass grants again but does not re-register.
	d, err = engine.Decide(context.Background(), req)
	require.NoError(t, err)
	require.True(t, d.Success)
	assert.Equal(t, "Access Granted", d.Message)

	var registrationEvents int
	for _, e := range logs.All() {
		if e.Type == models.LogSuccess {
			registrationEvents++
		}
	}
	assert.Equal(t, 1, registrationEvents, "no duplicate registration event")
}

func TestDecide_HashesNeverReturned(t *testing.T) {
	engine, _, _ := newTestEngine(models.Character{
		ID: 1, Name: "Salman Miya", Role: models.RoleAdmin, RFIDCode: "D4 C6",
		PasswordHash: hash(t, "hunter22"), PinHash: hash(t, "123456"),
	})

	d, err := engine.Decide(context.Background(), access.Request{RFIDCode: "D4 C6", DoorID: 1})
	require.NoError(t, err)
	require.NotNil(t, d.Character)
	// CharacterSummary carries no secret fields at all; the grant
	// projection likewise.
	d, err = engine.Decide(context.Background(), access.Request{RFIDCode: "D4 C6", DoorID: 1, Password: "hunter22"})
	require.NoError(t, err)
	require.NotNil(t, d.User)
	assert.Equal(t, int64(1), d.User.ID)
}
