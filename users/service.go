package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/internal/sqlutil"
	"github.com/sirupsen/logrus"
)

// ParseUserEvent maps a raw Clerk webhook payload onto a tagged UserEvent.
// Unknown event types come back as UserEventIgnored rather than an error so
// new Clerk event types never break deliveries.
func ParseUserEvent(payload []byte) (UserEvent, error) {
	envelope := struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{}

	if unmarshalError := json.Unmarshal(payload, &envelope); unmarshalError != nil {
		return UserEvent{}, fmt.Errorf("parsing clerk webhook payload: %w", unmarshalError)
	}

	kind := UserEventIgnored

	switch envelope.Type {
	case "user.created":
		kind = UserEventCreated

	case "user.updated":
		kind = UserEventUpdated

	case "user.deleted":
		kind = UserEventDeleted
	}

	userEvent := UserEvent{Kind: kind}

	if kind != UserEventIgnored {
		if unmarshalError := json.Unmarshal(envelope.Data, &userEvent.User); unmarshalError != nil {
			return UserEvent{}, fmt.Errorf("parsing clerk %s data: %w", envelope.Type, unmarshalError)
		}
	}

	return userEvent, nil
}

func primaryEmail(userData ClerkUserData) string {
	if len(userData.EmailAddresses) == 0 {
		return ""
	}

	return userData.EmailAddresses[0].EmailAddress
}

func primaryPhone(userData ClerkUserData) string {
	if len(userData.PhoneNumbers) == 0 {
		return ""
	}

	return userData.PhoneNumbers[0].PhoneNumber
}

// HandleClerkWebhook verifies the svix signature and mirrors the user change
// into the local users table.
func (service *Service) HandleClerkWebhook(ctx context.Context, payload []byte, headers http.Header) error {
	if verifyError := service.Verifier.Verify(payload, headers); verifyError != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, verifyError)
	}

	userEvent, parseError := ParseUserEvent(payload)

	if parseError != nil {
		return parseError
	}

	switch userEvent.Kind {
	case UserEventCreated:
		return service.mirrorCreatedUser(ctx, userEvent.User)

	case UserEventUpdated:
		return service.mirrorUpdatedUser(ctx, userEvent.User)

	case UserEventDeleted:
		if deleteError := service.DBQueries.DeleteUserByClerkId(ctx, userEvent.User.ID); deleteError != nil {
			return fmt.Errorf("deleting user %s: %w", userEvent.User.ID, deleteError)
		}

		return nil

	default:
		logrus.Info("ignoring clerk webhook event")

		return nil
	}
}

func (service *Service) mirrorCreatedUser(ctx context.Context, userData ClerkUserData) error {
	createUserParams := database.CreateUserParams{
		ClerkUserID: userData.ID,
		Email:       primaryEmail(userData),
		FirstName:   userData.FirstName,
		LastName:    userData.LastName,
		Phone:       sqlutil.StringToNullString(primaryPhone(userData)),
		Role:        "parent",
	}

	if _, createError := service.DBQueries.CreateUser(ctx, createUserParams); createError != nil {
		if sqlutil.IsUniqueViolation(createError) {
			logrus.Infof("user %s already mirrored", userData.ID)

			return nil
		}

		return fmt.Errorf("creating user %s: %w", userData.ID, createError)
	}

	return nil
}

func (service *Service) mirrorUpdatedUser(ctx context.Context, userData ClerkUserData) error {
	updateUserParams := database.UpdateUserByClerkIdParams{
		ClerkUserID: userData.ID,
		Email:       primaryEmail(userData),
		FirstName:   userData.FirstName,
		LastName:    userData.LastName,
		Phone:       sqlutil.StringToNullString(primaryPhone(userData)),
	}

	_, updateError := service.DBQueries.UpdateUserByClerkId(ctx, updateUserParams)

	if updateError == nil {
		return nil
	}

	// An update for a user we never saw created; mirror it now.
	if errors.Is(updateError, sql.ErrNoRows) {
		return service.mirrorCreatedUser(ctx, userData)
	}

	return fmt.Errorf("updating user %s: %w", userData.ID, updateError)
}

// SyncUser lazily mirrors the authenticated caller into the users table.
// Idempotent on clerk user id: an existing row is returned untouched.
func (service *Service) SyncUser(ctx context.Context, clerkUserID string) (*UserResponse, bool, error) {
	existingUser, getUserError := service.DBQueries.GetUserByClerkId(ctx, clerkUserID)

	if getUserError == nil {
		return userResponse(existingUser), false, nil
	}

	if !errors.Is(getUserError, sql.ErrNoRows) {
		logrus.Errorf("error looking up user %s: %s", clerkUserID, getUserError)

		return nil, false, ErrInternalError
	}

	profile, getProfileError := service.Clerk.GetProfile(ctx, clerkUserID)

	if getProfileError != nil {
		logrus.Errorf("error fetching clerk profile for %s: %s", clerkUserID, getProfileError)

		return nil, false, ErrInternalError
	}

	createUserParams := database.CreateUserParams{
		ClerkUserID: profile.ClerkUserID,
		Email:       profile.Email,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Phone:       sqlutil.StringToNullString(profile.Phone),
		Role:        "parent",
	}

	createdUser, createError := service.DBQueries.CreateUser(ctx, createUserParams)

	if createError != nil {
		// A concurrent sync or webhook won the insert.
		if sqlutil.IsUniqueViolation(createError) {
			concurrentUser, refetchError := service.DBQueries.GetUserByClerkId(ctx, clerkUserID)

			if refetchError != nil {
				logrus.Errorf("error refetching user %s: %s", clerkUserID, refetchError)

				return nil, false, ErrInternalError
			}

			return userResponse(concurrentUser), false, nil
		}

		logrus.Errorf("error creating user %s: %s", clerkUserID, createError)

		return nil, false, ErrInternalError
	}

	return userResponse(createdUser), true, nil
}

// GetUserForms lists every waiver the caller's parent email has submitted
// across the three waiver tables, newest first, for the parent dashboard.
func (service *Service) GetUserForms(ctx context.Context, clerkUserID string) ([]UserForm, error) {
	parentEmail, emailError := service.resolveParentEmail(ctx, clerkUserID)

	if emailError != nil {
		return nil, emailError
	}

	esportsWaivers, esportsError := service.DBQueries.GetEsportsWaiversByParentEmail(ctx, parentEmail)

	if esportsError != nil {
		logrus.Errorf("error fetching esports waivers for %s: %s", clerkUserID, esportsError)

		return nil, ErrInternalError
	}

	mediaReleases, mediaError := service.DBQueries.GetMediaReleasesByParentEmail(ctx, parentEmail)

	if mediaError != nil {
		logrus.Errorf("error fetching media releases for %s: %s", clerkUserID, mediaError)

		return nil, ErrInternalError
	}

	generalWaivers, generalError := service.DBQueries.GetGeneralWaiversByParentEmail(ctx, parentEmail)

	if generalError != nil {
		logrus.Errorf("error fetching general waivers for %s: %s", clerkUserID, generalError)

		return nil, ErrInternalError
	}

	userForms := make([]UserForm, 0, len(esportsWaivers)+len(mediaReleases)+len(generalWaivers))

	for _, waiver := range esportsWaivers {
		userForms = append(userForms, UserForm{
			ID:          waiver.ID,
			Type:        "esports-waiver",
			Title:       "Esports Waiver",
			StudentName: waiver.StudentName,
			SubmittedAt: waiver.SubmittedAt,
			Status:      "completed",
			Details: map[string]any{
				"age":              waiver.StudentAge,
				"eRated":           waiver.ERatedGamesAuthorized,
				"tRated":           waiver.TRatedGamesAuthorized,
				"mRated":           waiver.MRatedGamesAuthorized,
				"emergencyContact": waiver.EmergencyContactName,
				"emergencyPhone":   waiver.EmergencyContactPhone,
			},
		})
	}

	for _, release := range mediaReleases {
		userForms = append(userForms, UserForm{
			ID:          release.ID,
			Type:        "media-release",
			Title:       "Media Release",
			StudentName: release.StudentName,
			SubmittedAt: release.SubmittedAt,
			Status:      "completed",
			Details: map[string]any{
				"permissionGranted": release.PermissionGranted,
			},
		})
	}

	for _, waiver := range generalWaivers {
		userForms = append(userForms, UserForm{
			ID:          waiver.ID,
			Type:        "general-waiver",
			Title:       "General Camp Waiver",
			StudentName: waiver.StudentName,
			SubmittedAt: waiver.SubmittedAt,
			Status:      "completed",
			Details: map[string]any{
				"emergencyContact":  waiver.EmergencyContactName,
				"emergencyPhone":    waiver.EmergencyContactPhone,
				"medicalConditions": sqlutil.NullStringToString(waiver.MedicalConditions),
				"allergies":         sqlutil.NullStringToString(waiver.Allergies),
				"medications":       sqlutil.NullStringToString(waiver.Medications),
			},
		})
	}

	sort.Slice(userForms, func(i, j int) bool {
		return userForms[i].SubmittedAt.After(userForms[j].SubmittedAt)
	})

	return userForms, nil
}

// resolveParentEmail prefers the mirrored user row; a caller who never synced
// falls back to their Clerk profile.
func (service *Service) resolveParentEmail(ctx context.Context, clerkUserID string) (string, error) {
	existingUser, getUserError := service.DBQueries.GetUserByClerkId(ctx, clerkUserID)

	if getUserError == nil {
		if existingUser.Email == "" {
			return "", ErrEmailNotFound
		}

		return existingUser.Email, nil
	}

	if !errors.Is(getUserError, sql.ErrNoRows) {
		logrus.Errorf("error looking up user %s: %s", clerkUserID, getUserError)

		return "", ErrInternalError
	}

	profile, getProfileError := service.Clerk.GetProfile(ctx, clerkUserID)

	if getProfileError != nil {
		logrus.Errorf("error fetching clerk profile for %s: %s", clerkUserID, getProfileError)

		return "", ErrInternalError
	}

	if profile.Email == "" {
		return "", ErrEmailNotFound
	}

	return profile.Email, nil
}

func userResponse(user database.User) *UserResponse {
	return &UserResponse{
		ClerkUserID: user.ClerkUserID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       sqlutil.NullStringToString(user.Phone),
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}
