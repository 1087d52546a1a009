package users_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/BenjaminBruton/skillwrap/internal/clerkapi"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/users"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MockDBQueries struct {
	*config.BaseMock
	tTesting                           *testing.T
	GetUserByClerkIdFunc               func(ctx context.Context, clerkUserID string) (database.User, error)
	CreateUserFunc                     func(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	UpdateUserByClerkIdFunc            func(ctx context.Context, arg database.UpdateUserByClerkIdParams) (database.User, error)
	DeleteUserByClerkIdFunc            func(ctx context.Context, clerkUserID string) error
	GetEsportsWaiversByParentEmailFunc func(ctx context.Context, parentEmail string) ([]database.EsportsWaiver, error)
	GetMediaReleasesByParentEmailFunc  func(ctx context.Context, parentEmail string) ([]database.MediaRelease, error)
	GetGeneralWaiversByParentEmailFunc func(ctx context.Context, parentEmail string) ([]database.GetGeneralWaiversByParentEmailRow, error)
}

func (mockDBQueries *MockDBQueries) GetUserByClerkId(ctx context.Context, clerkUserID string) (database.User, error) {
	if mockDBQueries.GetUserByClerkIdFunc == nil {
		return mockDBQueries.BaseMock.GetUserByClerkId(ctx, clerkUserID)
	}

	return mockDBQueries.GetUserByClerkIdFunc(ctx, clerkUserID)
}

func (mockDBQueries *MockDBQueries) CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
	if mockDBQueries.CreateUserFunc == nil {
		mockDBQueries.tTesting.Fatalf("CreateUser was called, but no expectation (CreateUserFunc) was set.")
	}

	return mockDBQueries.CreateUserFunc(ctx, arg)
}

func (mockDBQueries *MockDBQueries) UpdateUserByClerkId(ctx context.Context, arg database.UpdateUserByClerkIdParams) (database.User, error) {
	if mockDBQueries.UpdateUserByClerkIdFunc == nil {
		mockDBQueries.tTesting.Fatalf("UpdateUserByClerkId was called, but no expectation (UpdateUserByClerkIdFunc) was set.")
	}

	return mockDBQueries.UpdateUserByClerkIdFunc(ctx, arg)
}

func (mockDBQueries *MockDBQueries) DeleteUserByClerkId(ctx context.Context, clerkUserID string) error {
	if mockDBQueries.DeleteUserByClerkIdFunc == nil {
		mockDBQueries.tTesting.Fatalf("DeleteUserByClerkId was called, but no expectation (DeleteUserByClerkIdFunc) was set.")
	}

	return mockDBQueries.DeleteUserByClerkIdFunc(ctx, clerkUserID)
}

func (mockDBQueries *MockDBQueries) GetEsportsWaiversByParentEmail(ctx context.Context, parentEmail string) ([]database.EsportsWaiver, error) {
	if mockDBQueries.GetEsportsWaiversByParentEmailFunc == nil {
		return mockDBQueries.BaseMock.GetEsportsWaiversByParentEmail(ctx, parentEmail)
	}

	return mockDBQueries.GetEsportsWaiversByParentEmailFunc(ctx, parentEmail)
}

func (mockDBQueries *MockDBQueries) GetMediaReleasesByParentEmail(ctx context.Context, parentEmail string) ([]database.MediaRelease, error) {
	if mockDBQueries.GetMediaReleasesByParentEmailFunc == nil {
		return mockDBQueries.BaseMock.GetMediaReleasesByParentEmail(ctx, parentEmail)
	}

	return mockDBQueries.GetMediaReleasesByParentEmailFunc(ctx, parentEmail)
}

func (mockDBQueries *MockDBQueries) GetGeneralWaiversByParentEmail(ctx context.Context, parentEmail string) ([]database.GetGeneralWaiversByParentEmailRow, error) {
	if mockDBQueries.GetGeneralWaiversByParentEmailFunc == nil {
		return mockDBQueries.BaseMock.GetGeneralWaiversByParentEmail(ctx, parentEmail)
	}

	return mockDBQueries.GetGeneralWaiversByParentEmailFunc(ctx, parentEmail)
}

type MockWebhookVerifier struct {
	VerifyFunc func(payload []byte, headers http.Header) error
}

func (mockWebhookVerifier *MockWebhookVerifier) Verify(payload []byte, headers http.Header) error {
	if mockWebhookVerifier.VerifyFunc == nil {
		return nil
	}

	return mockWebhookVerifier.VerifyFunc(payload, headers)
}

type MockClerkClient struct {
	GetProfileFunc func(ctx context.Context, clerkUserID string) (clerkapi.Profile, error)
}

func (mockClerkClient *MockClerkClient) GetProfile(ctx context.Context, clerkUserID string) (clerkapi.Profile, error) {
	if mockClerkClient.GetProfileFunc == nil {
		return clerkapi.Profile{}, errors.New("clerk unavailable")
	}

	return mockClerkClient.GetProfileFunc(ctx, clerkUserID)
}

// assertNoError asserts that the error is nil.
func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", msg, err)
	}
}

const createdPayload = `{
	"type": "user.created",
	"data": {
		"id": "user_2abc",
		"first_name": "Abigail",
		"last_name": "Roberts",
		"email_addresses": [{"email_address": "abigail@test.com"}],
		"phone_numbers": [{"phone_number": "555-0100"}]
	}
}`

func TestParseUserEvent(tTesting *testing.T) {
	tests := []struct {
		name         string
		payload      string
		expectedKind users.UserEventKind
	}{
		{name: "Created", payload: createdPayload, expectedKind: users.UserEventCreated},
		{name: "Updated", payload: `{"type": "user.updated", "data": {"id": "user_2abc"}}`, expectedKind: users.UserEventUpdated},
		{name: "Deleted", payload: `{"type": "user.deleted", "data": {"id": "user_2abc"}}`, expectedKind: users.UserEventDeleted},
		{name: "UnknownType", payload: `{"type": "session.created", "data": {}}`, expectedKind: users.UserEventIgnored},
	}

	for _, testCase := range tests {
		tTesting.Run(testCase.name, func(t *testing.T) {
			userEvent, parseError := users.ParseUserEvent([]byte(testCase.payload))

			assertNoError(t, parseError, "ParseUserEvent")

			if userEvent.Kind != testCase.expectedKind {
				t.Errorf("expected kind %q, got %q", testCase.expectedKind, userEvent.Kind)
			}

			if testCase.name == "Created" && userEvent.User.EmailAddresses[0].EmailAddress != "abigail@test.com" {
				t.Errorf("unexpected user data: %+v", userEvent.User)
			}
		})
	}
}

func TestParseUserEventMalformed(tTesting *testing.T) {
	_, parseError := users.ParseUserEvent([]byte("not json"))

	if parseError == nil {
		tTesting.Fatal("expected an error for a malformed payload")
	}
}

func TestHandleClerkWebhookRejectsBadSignature(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}
	mockVerifier := &MockWebhookVerifier{
		VerifyFunc: func(payload []byte, headers http.Header) error {
			return errors.New("no matching signature")
		},
	}

	service := users.NewService(mockDB, mockVerifier, &MockClerkClient{})

	webhookError := service.HandleClerkWebhook(context.Background(), []byte(createdPayload), http.Header{})

	if !errors.Is(webhookError, users.ErrInvalidSignature) {
		tTesting.Fatalf("expected ErrInvalidSignature, got: %v", webhookError)
	}
}

func TestHandleClerkWebhookCreated(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	var createdUser database.CreateUserParams

	mockDB.CreateUserFunc = func(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
		createdUser = arg

		return database.User{ClerkUserID: arg.ClerkUserID}, nil
	}

	service := users.NewService(mockDB, &MockWebhookVerifier{}, &MockClerkClient{})

	webhookError := service.HandleClerkWebhook(context.Background(), []byte(createdPayload), http.Header{})

	assertNoError(tTesting, webhookError, "HandleClerkWebhook")

	if createdUser.ClerkUserID != "user_2abc" || createdUser.Email != "abigail@test.com" {
		tTesting.Errorf("unexpected created user: %+v", createdUser)
	}

	if createdUser.Role != "parent" {
		tTesting.Errorf("expected role parent, got %q", createdUser.Role)
	}
}

func TestHandleClerkWebhookCreatedConflict(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}
	mockDB.CreateUserFunc = func(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
		return database.User{}, &pq.Error{Code: "23505"}
	}

	service := users.NewService(mockDB, &MockWebhookVerifier{}, &MockClerkClient{})

	// An already-mirrored user is not an error; Clerk retries on failure.
	webhookError := service.HandleClerkWebhook(context.Background(), []byte(createdPayload), http.Header{})

	assertNoError(tTesting, webhookError, "HandleClerkWebhook")
}

func TestHandleClerkWebhookDeleted(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	deletedID := ""

	mockDB.DeleteUserByClerkIdFunc = func(ctx context.Context, clerkUserID string) error {
		deletedID = clerkUserID

		return nil
	}

	service := users.NewService(mockDB, &MockWebhookVerifier{}, &MockClerkClient{})

	webhookError := service.HandleClerkWebhook(context.Background(), []byte(`{"type": "user.deleted", "data": {"id": "user_2abc"}}`), http.Header{})

	assertNoError(tTesting, webhookError, "HandleClerkWebhook")

	if deletedID != "user_2abc" {
		tTesting.Errorf("expected deletion of user_2abc, got %q", deletedID)
	}
}

func TestSyncUserAlreadyMirrored(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}
	mockDB.GetUserByClerkIdFunc = func(ctx context.Context, clerkUserID string) (database.User, error) {
		return database.User{ClerkUserID: clerkUserID, Email: "abigail@test.com", Role: "parent"}, nil
	}

	// CreateUserFunc unset: an existing row must be returned untouched.
	service := users.NewService(mockDB, &MockWebhookVerifier{}, &MockClerkClient{})

	user, created, syncError := service.SyncUser(context.Background(), "user_2abc")

	assertNoError(tTesting, syncError, "SyncUser")

	if created {
		tTesting.Error("expected created=false for an existing user")
	}

	if user.Email != "abigail@test.com" {
		tTesting.Errorf("unexpected user: %+v", user)
	}
}

func TestSyncUserCreatesFromClerkProfile(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	mockDB.CreateUserFunc = func(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
		return database.User{
			ClerkUserID: arg.ClerkUserID,
			Email:       arg.Email,
			FirstName:   arg.FirstName,
			LastName:    arg.LastName,
			Role:        arg.Role,
		}, nil
	}

	mockClerk := &MockClerkClient{
		GetProfileFunc: func(ctx context.Context, clerkUserID string) (clerkapi.Profile, error) {
			return clerkapi.Profile{
				ClerkUserID: clerkUserID,
				Email:       "abigail@test.com",
				FirstName:   "Abigail",
				LastName:    "Roberts",
			}, nil
		},
	}

	service := users.NewService(mockDB, &MockWebhookVerifier{}, mockClerk)

	// BaseMock's GetUserByClerkId returns sql.ErrNoRows.
	user, created, syncError := service.SyncUser(context.Background(), "user_2abc")

	assertNoError(tTesting, syncError, "SyncUser")

	if !created {
		tTesting.Error("expected created=true for a new user")
	}

	if user.ClerkUserID != "user_2abc" || user.FirstName != "Abigail" {
		tTesting.Errorf("unexpected user: %+v", user)
	}
}

func TestSyncUserConcurrentInsert(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	lookups := 0

	mockDB.GetUserByClerkIdFunc = func(ctx context.Context, clerkUserID string) (database.User, error) {
		lookups++

		// Missing on the first lookup, present after the conflicting insert.
		if lookups == 1 {
			return database.User{}, sql.ErrNoRows
		}

		return database.User{ClerkUserID: clerkUserID, Email: "abigail@test.com"}, nil
	}

	mockDB.CreateUserFunc = func(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
		return database.User{}, &pq.Error{Code: "23505"}
	}

	mockClerk := &MockClerkClient{
		GetProfileFunc: func(ctx context.Context, clerkUserID string) (clerkapi.Profile, error) {
			return clerkapi.Profile{ClerkUserID: clerkUserID, Email: "abigail@test.com"}, nil
		},
	}

	service := users.NewService(mockDB, &MockWebhookVerifier{}, mockClerk)

	user, created, syncError := service.SyncUser(context.Background(), "user_2abc")

	assertNoError(tTesting, syncError, "SyncUser")

	if created {
		tTesting.Error("expected created=false when a concurrent insert won")
	}

	if user.Email != "abigail@test.com" {
		tTesting.Errorf("unexpected user: %+v", user)
	}
}

func TestGetUserFormsMergesAndSortsByDate(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}
	mockDB.GetUserByClerkIdFunc = func(ctx context.Context, clerkUserID string) (database.User, error) {
		return database.User{ClerkUserID: clerkUserID, Email: "abigail@test.com"}, nil
	}

	now := time.Now()

	mockDB.GetEsportsWaiversByParentEmailFunc = func(ctx context.Context, parentEmail string) ([]database.EsportsWaiver, error) {
		return []database.EsportsWaiver{{
			ID:                    uuid.New(),
			StudentName:           "Jack Marston",
			StudentAge:            11,
			ParentEmail:           parentEmail,
			ERatedGamesAuthorized: true,
			SubmittedAt:           now.Add(-48 * time.Hour),
		}}, nil
	}

	mockDB.GetMediaReleasesByParentEmailFunc = func(ctx context.Context, parentEmail string) ([]database.MediaRelease, error) {
		return []database.MediaRelease{{
			ID:                uuid.New(),
			StudentName:       "Jack Marston",
			ParentEmail:       parentEmail,
			PermissionGranted: true,
			SubmittedAt:       now,
		}}, nil
	}

	mockDB.GetGeneralWaiversByParentEmailFunc = func(ctx context.Context, parentEmail string) ([]database.GetGeneralWaiversByParentEmailRow, error) {
		return []database.GetGeneralWaiversByParentEmailRow{{
			ID:                   uuid.New(),
			StudentName:          "Jack Marston",
			ParentEmail:          parentEmail,
			EmergencyContactName: "John Marston",
			SubmittedAt:          now.Add(-24 * time.Hour),
		}}, nil
	}

	service := users.NewService(mockDB, &MockWebhookVerifier{}, &MockClerkClient{})

	userForms, getFormsError := service.GetUserForms(context.Background(), "user_2abc")

	assertNoError(tTesting, getFormsError, "GetUserForms")

	if len(userForms) != 3 {
		tTesting.Fatalf("expected 3 forms, got %d", len(userForms))
	}

	// Newest first across all three tables.
	if userForms[0].Type != "media-release" || userForms[1].Type != "general-waiver" || userForms[2].Type != "esports-waiver" {
		tTesting.Errorf("forms out of order: %s, %s, %s", userForms[0].Type, userForms[1].Type, userForms[2].Type)
	}

	if userForms[2].Title != "Esports Waiver" || userForms[2].Status != "completed" {
		tTesting.Errorf("unexpected esports form: %+v", userForms[2])
	}

	if age, found := userForms[2].Details["age"]; !found || age != int32(11) {
		tTesting.Errorf("expected esports details to carry the student age, got: %+v", userForms[2].Details)
	}

	if granted, found := userForms[0].Details["permissionGranted"]; !found || granted != true {
		tTesting.Errorf("expected media release details to carry the permission, got: %+v", userForms[0].Details)
	}
}

func TestGetUserFormsFallsBackToClerkProfile(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	queriedEmail := ""

	mockDB.GetEsportsWaiversByParentEmailFunc = func(ctx context.Context, parentEmail string) ([]database.EsportsWaiver, error) {
		queriedEmail = parentEmail

		return []database.EsportsWaiver{}, nil
	}

	mockClerk := &MockClerkClient{
		GetProfileFunc: func(ctx context.Context, clerkUserID string) (clerkapi.Profile, error) {
			return clerkapi.Profile{ClerkUserID: clerkUserID, Email: "abigail@test.com"}, nil
		},
	}

	service := users.NewService(mockDB, &MockWebhookVerifier{}, mockClerk)

	// BaseMock's GetUserByClerkId returns sql.ErrNoRows.
	userForms, getFormsError := service.GetUserForms(context.Background(), "user_2abc")

	assertNoError(tTesting, getFormsError, "GetUserForms")

	if len(userForms) != 0 {
		tTesting.Errorf("expected no forms, got %d", len(userForms))
	}

	if queriedEmail != "abigail@test.com" {
		tTesting.Errorf("expected the clerk profile email to drive the lookup, got %q", queriedEmail)
	}
}

func TestGetUserFormsWithoutEmail(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	mockClerk := &MockClerkClient{
		GetProfileFunc: func(ctx context.Context, clerkUserID string) (clerkapi.Profile, error) {
			return clerkapi.Profile{ClerkUserID: clerkUserID}, nil
		},
	}

	service := users.NewService(mockDB, &MockWebhookVerifier{}, mockClerk)

	_, getFormsError := service.GetUserForms(context.Background(), "user_2abc")

	if !errors.Is(getFormsError, users.ErrEmailNotFound) {
		tTesting.Fatalf("expected ErrEmailNotFound, got: %v", getFormsError)
	}
}
