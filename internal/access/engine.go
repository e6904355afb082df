// Package access implements the door access decision engine: identity
// lookup, role policy, and the optional PIN/password second factor.
package access

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"hexa_access/internal/doors"
	"hexa_access/internal/events"
	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

var (
	ErrMissingInput = errors.New("rfid code and door id are required")
	ErrUnknownDoor  = errors.New("unknown door id")
)

// DenialReason classifies why a request did not succeed, so the transport
// layer can map it to a status without parsing messages.
type DenialReason string

const (
	DenialNone                  DenialReason = ""
	DenialUnknownCard           DenialReason = "unknown_card"
	DenialInsufficientClearance DenialReason = "insufficient_clearance"
	DenialSetupRequired         DenialReason = "setup_required"
	DenialInvalidPassword       DenialReason = "invalid_password"
	DenialInvalidPin            DenialReason = "invalid_pin"
)

type Request struct {
	RFIDCode string `json:"rfidCode" binding:"required"`
	DoorID   int64  `json:"doorId" binding:"required"`
	Pin      string `json:"pin"`
	Password string `json:"password"`
}

type GrantedUser struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Role         models.Role `json:"role"`
	IsRegistered bool        `json:"isRegistered"`
}

// Decision is the outcome of one access request. Challenge responses
// (RequirePin/RequirePassword) are non-terminal: the caller resubmits the
// RFID code together with the collected factor, and no event is emitted.
type Decision struct {
	Success         bool                     `json:"success"`
	Message         string                   `json:"message"`
	Unknown         bool                     `json:"unknown,omitempty"`
	RequirePin      bool                     `json:"requirePin,omitempty"`
	RequirePassword bool                     `json:"requirePassword,omitempty"`
	Character       *models.CharacterSummary `json:"character,omitempty"`
	User            *GrantedUser             `json:"user,omitempty"`
	Reason          DenialReason             `json:"-"`
}

type Engine struct {
	characters store.CharacterStore
	recorder   *events.Recorder
	logger     *log.Logger
}

func NewEngine(characters store.CharacterStore, recorder *events.Recorder, logger *log.Logger) *Engine {
	return &Engine{characters: characters, recorder: recorder, logger: logger}
}

// Decide evaluates one access request. The engine is stateless between
// calls: a challenge and its resolution are two independent invocations.
// Security outcomes never surface as errors; the error return is reserved
// for bad input, unknown doors and store failures.
func (e *Engine) Decide(ctx context.Context, req Request) (Decision, error) {
	req.RFIDCode = strings.TrimSpace(req.RFIDCode)
	if req.RFIDCode == "" || req.DoorID == 0 {
		return Decision{}, ErrMissingInput
	}

	char, err := e.characters.FindByRFID(ctx, req.RFIDCode)
	if errors.Is(err, store.ErrNotFound) {
		e.record(ctx, fmt.Sprintf("Access Denied: Unknown RFID %s", req.RFIDCode), models.LogAccessDenied,
			map[string]any{"doorId": req.DoorID, "rfid": req.RFIDCode}, nil)
		return Decision{Message: "Invalid Card", Unknown: true, Reason: DenialUnknownCard}, nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("find character by rfid: %w", err)
	}

	door, ok := doors.Find(req.DoorID)
	if !ok {
		return Decision{}, ErrUnknownDoor
	}

	if !door.Allows(char.Role) {
		e.record(ctx, fmt.Sprintf("Access Denied: %s at %s", char.Name, door.Name), models.LogAccessDenied,
			map[string]any{"doorId": door.ID, "userId": char.ID, "role": char.Role}, &char.ID)
		return Decision{Message: "Access Denied: Insufficient Clearance", Reason: DenialInsufficientClearance}, nil
	}

	switch door.AuthType {
	case doors.AuthPassword:
		if d, done, err := e.checkPassword(ctx, char, door, req.Password); done {
			return d, err
		}
	case doors.AuthPin:
		if d, done, err := e.checkPin(ctx, char, door, req.Pin); done {
			return d, err
		}
	}

	return e.grant(ctx, char, door)
}

// checkPassword handles the password second factor. done=false means the
// factor verified and the decision flow proceeds to grant.
func (e *Engine) checkPassword(ctx context.Context, char *models.Character, door doors.Door, password string) (Decision, bool, error) {
	if password == "" {
		summary := char.Summary()
		return Decision{RequirePassword: true, Message: "Password Required", Character: &summary}, true, nil
	}

	if char.PasswordHash == "" {
		e.record(ctx, fmt.Sprintf("Auth Failed: No Password setup for %s", char.Name), models.LogError,
			map[string]any{"doorId": door.ID, "userId": char.ID}, &char.ID)
		return Decision{Message: "Account Setup Required (No Password)", Reason: DenialSetupRequired}, true, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(char.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return Decision{}, true, fmt.Errorf("compare password hash: %w", err)
		}
		e.record(ctx, fmt.Sprintf("Auth Failed: Invalid Password for %s", char.Name), models.LogAccessDenied,
			map[string]any{"doorId": door.ID, "userId": char.ID}, &char.ID)
		return Decision{Message: "Invalid Password", Reason: DenialInvalidPassword}, true, nil
	}

	return Decision{}, false, nil
}

func (e *Engine) checkPin(ctx context.Context, char *models.Character, door doors.Door, pin string) (Decision, bool, error) {
	if pin == "" {
		summary := char.Summary()
		return Decision{RequirePin: true, Message: "PIN Required", Character: &summary}, true, nil
	}

	if char.PinHash == "" {
		e.record(ctx, fmt.Sprintf("MFA Failed: No PIN setup for %s", char.Name), models.LogError,
			map[string]any{"doorId": door.ID, "userId": char.ID}, &char.ID)
		return Decision{Message: "Account Setup Required (No PIN)", Reason: DenialSetupRequired}, true, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(char.PinHash), []byte(pin)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return Decision{}, true, fmt.Errorf("compare pin hash: %w", err)
		}
		e.record(ctx, fmt.Sprintf("MFA Failed: Invalid PIN for %s", char.Name), models.LogAccessDenied,
			map[string]any{"doorId": door.ID, "userId": char.ID}, &char.ID)
		return Decision{Message: "Invalid PIN", Reason: DenialInvalidPin}, true, nil
	}

	return Decision{}, false, nil
}

func (e *Engine) grant(ctx context.Context, char *models.Character, door doors.Door) (Decision, error) {
	e.record(ctx, fmt.Sprintf("Access Granted: %s at %s", char.Name, door.Name), models.LogAccessGranted,
		map[string]any{"doorId": door.ID, "userId": char.ID}, &char.ID)

	message := "Access Granted"
	registered := char.IsRegistered

	// First successful pass through a registration point completes the
	// holder's registration. Subsequent grants are a no-op here, so no
	// duplicate registration event is emitted.
	if door.IsRegistrationPoint && !char.IsRegistered {
		if err := e.characters.SetRegistered(ctx, char.ID, true); err != nil {
			return Decision{}, fmt.Errorf("complete registration: %w", err)
		}
		registered = true
		message += " (Registration Confirmed)"
		e.record(ctx, fmt.Sprintf("Registration Complete: %s is now active.", char.Name), models.LogSuccess,
			map[string]any{"action": "register", "userId": char.ID}, &char.ID)
	}

	return Decision{
		Success: true,
		Message: message,
		User: &GrantedUser{
			ID:           char.ID,
			Name:         char.Name,
			Role:         char.Role,
			IsRegistered: registered,
		},
	}, nil
}

// record appends an audit entry for a terminal outcome. A failed audit
// write is logged but does not change the decision already made.
func (e *Engine) record(ctx context.Context, text string, typ models.LogType, metadata map[string]any, userID *int64) {
	if _, err := e.recorder.Append(ctx, text, typ, metadata, userID); err != nil {
		e.logger.Printf("access: record %s event: %v", typ, err)
	}
}
