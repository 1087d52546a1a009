package forms_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/BenjaminBruton/skillwrap/forms"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/lib/pq"
)

type MockDBQueries struct {
	*config.BaseMock
	tTesting                *testing.T
	CreateEsportsWaiverFunc func(ctx context.Context, arg database.CreateEsportsWaiverParams) (database.EsportsWaiver, error)
	CreateMediaReleaseFunc  func(ctx context.Context, arg database.CreateMediaReleaseParams) (database.MediaRelease, error)
	CreateGeneralWaiverFunc func(ctx context.Context, arg database.CreateGeneralWaiverParams) (database.CreateGeneralWaiverRow, error)
}

func (mockDBQueries *MockDBQueries) CreateEsportsWaiver(ctx context.Context, arg database.CreateEsportsWaiverParams) (database.EsportsWaiver, error) {
	if mockDBQueries.CreateEsportsWaiverFunc == nil {
		mockDBQueries.tTesting.Fatalf("CreateEsportsWaiver was called, but no expectation (CreateEsportsWaiverFunc) was set.")
	}

	return mockDBQueries.CreateEsportsWaiverFunc(ctx, arg)
}

func (mockDBQueries *MockDBQueries) CreateMediaRelease(ctx context.Context, arg database.CreateMediaReleaseParams) (database.MediaRelease, error) {
	if mockDBQueries.CreateMediaReleaseFunc == nil {
		mockDBQueries.tTesting.Fatalf("CreateMediaRelease was called, but no expectation (CreateMediaReleaseFunc) was set.")
	}

	return mockDBQueries.CreateMediaReleaseFunc(ctx, arg)
}

func (mockDBQueries *MockDBQueries) CreateGeneralWaiver(ctx context.Context, arg database.CreateGeneralWaiverParams) (database.CreateGeneralWaiverRow, error) {
	if mockDBQueries.CreateGeneralWaiverFunc == nil {
		mockDBQueries.tTesting.Fatalf("CreateGeneralWaiver was called, but no expectation (CreateGeneralWaiverFunc) was set.")
	}

	return mockDBQueries.CreateGeneralWaiverFunc(ctx, arg)
}

type MockWaiverMailer struct {
	ConfirmationsSent int
	LastFormLabel     string
}

func (mockWaiverMailer *MockWaiverMailer) SendWaiverConfirmation(formLabel string, parentName string, parentEmail string, studentName string) error {
	mockWaiverMailer.ConfirmationsSent++
	mockWaiverMailer.LastFormLabel = formLabel

	return nil
}

// assertNoError asserts that the error is nil.
func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", msg, err)
	}
}

func esportsRequest() forms.EsportsWaiverRequest {
	return forms.EsportsWaiverRequest{
		CamperFirstName:              "Jack",
		CamperLastName:               "Marston",
		CamperDateOfBirth:            time.Now().AddDate(-11, 0, -30).Format("2006-01-02"),
		ParentFirstName:              "Abigail",
		ParentLastName:               "Roberts",
		ParentEmail:                  "abigail@test.com",
		ParentPhone:                  "555-0100",
		EmergencyContactName:         "John Marston",
		EmergencyContactPhone:        "555-0101",
		EmergencyContactRelationship: "Father",
		ERatedGames:                  true,
		TRatedGames:                  true,
		ParentSignature:              "Abigail Roberts",
	}
}

func generalRequest() forms.GeneralWaiverRequest {
	return forms.GeneralWaiverRequest{
		CamperFirstName:              "Jack",
		CamperLastName:               "Marston",
		ParentFirstName:              "Abigail",
		ParentLastName:               "Roberts",
		ParentEmail:                  "abigail@test.com",
		ParentPhone:                  "555-0100",
		EmergencyContactName:         "John Marston",
		EmergencyContactPhone:        "555-0101",
		EmergencyContactRelationship: "Father",
		AssumptionOfRisk:             true,
		LiabilityRelease:             true,
		Indemnification:              true,
		CodeOfConduct:                true,
		ElectronicSignatureConsent:   true,
		ParentSignature:              "Abigail Roberts",
	}
}

func TestSubmitEsportsWaiver(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	var createdWaiver database.CreateEsportsWaiverParams

	mockDB.CreateEsportsWaiverFunc = func(ctx context.Context, arg database.CreateEsportsWaiverParams) (database.EsportsWaiver, error) {
		createdWaiver = arg

		return database.EsportsWaiver{ID: arg.ID}, nil
	}

	mockMailer := &MockWaiverMailer{}
	service := forms.NewService(mockDB, mockMailer)

	response, submitError := service.SubmitEsportsWaiver(context.Background(), esportsRequest())

	assertNoError(tTesting, submitError, "SubmitEsportsWaiver")

	if createdWaiver.StudentName != "Jack Marston" {
		tTesting.Errorf("expected student name \"Jack Marston\", got %q", createdWaiver.StudentName)
	}

	if createdWaiver.StudentAge != 11 {
		tTesting.Errorf("expected computed age 11, got %d", createdWaiver.StudentAge)
	}

	if createdWaiver.ParentName != "Abigail Roberts" {
		tTesting.Errorf("expected parent name \"Abigail Roberts\", got %q", createdWaiver.ParentName)
	}

	if !response.Success || response.RedirectURL != "/forms/success?type=esports-waiver&student=Jack+Marston" {
		tTesting.Errorf("unexpected response: %+v", response)
	}

	if mockMailer.ConfirmationsSent != 1 || mockMailer.LastFormLabel != "Esports Waiver" {
		tTesting.Errorf("unexpected mailer state: %+v", mockMailer)
	}
}

func TestSubmitEsportsWaiverInvalidBirthDate(tTesting *testing.T) {
	tests := []struct {
		name      string
		birthDate string
	}{
		{name: "Malformed", birthDate: "11 years old"},
		{name: "Future", birthDate: time.Now().AddDate(1, 0, 0).Format("2006-01-02")},
	}

	for _, testCase := range tests {
		tTesting.Run(testCase.name, func(t *testing.T) {
			mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: t}

			service := forms.NewService(mockDB, &MockWaiverMailer{})

			request := esportsRequest()
			request.CamperDateOfBirth = testCase.birthDate

			_, submitError := service.SubmitEsportsWaiver(context.Background(), request)

			if !errors.Is(submitError, forms.ErrInvalidBirthDate) {
				t.Fatalf("expected ErrInvalidBirthDate, got: %v", submitError)
			}
		})
	}
}

func TestSubmitEsportsWaiverDuplicate(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}
	mockDB.CreateEsportsWaiverFunc = func(ctx context.Context, arg database.CreateEsportsWaiverParams) (database.EsportsWaiver, error) {
		return database.EsportsWaiver{}, &pq.Error{Code: "23505"}
	}

	mockMailer := &MockWaiverMailer{}
	service := forms.NewService(mockDB, mockMailer)

	_, submitError := service.SubmitEsportsWaiver(context.Background(), esportsRequest())

	if !errors.Is(submitError, forms.ErrDuplicateSubmission) {
		tTesting.Fatalf("expected ErrDuplicateSubmission, got: %v", submitError)
	}

	if mockMailer.ConfirmationsSent != 0 {
		tTesting.Error("expected no confirmation email for a duplicate submission")
	}
}

func TestSubmitMediaRelease(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	var createdRelease database.CreateMediaReleaseParams

	mockDB.CreateMediaReleaseFunc = func(ctx context.Context, arg database.CreateMediaReleaseParams) (database.MediaRelease, error) {
		createdRelease = arg

		return database.MediaRelease{ID: arg.ID}, nil
	}

	service := forms.NewService(mockDB, &MockWaiverMailer{})

	tests := []struct {
		permission        string
		expectedGranted   bool
	}{
		{permission: "granted", expectedGranted: true},
		{permission: "denied", expectedGranted: false},
	}

	for _, testCase := range tests {
		tTesting.Run(fmt.Sprintf("Permission_%s", testCase.permission), func(t *testing.T) {
			request := forms.MediaReleaseRequest{
				CamperFirstName: "Jack",
				CamperLastName:  "Marston",
				ParentFirstName: "Abigail",
				ParentLastName:  "Roberts",
				ParentEmail:     "abigail@test.com",
				ParentPhone:     "555-0100",
				MediaPermission: testCase.permission,
				ParentSignature: "Abigail Roberts",
			}

			_, submitError := service.SubmitMediaRelease(context.Background(), request)

			assertNoError(t, submitError, "SubmitMediaRelease")

			if createdRelease.PermissionGranted != testCase.expectedGranted {
				t.Errorf("expected permission_granted %t for %q", testCase.expectedGranted, testCase.permission)
			}
		})
	}
}

func TestSubmitGeneralWaiverRequiresAllAcknowledgments(tTesting *testing.T) {
	mutations := []struct {
		name   string
		mutate func(request *forms.GeneralWaiverRequest)
	}{
		{name: "MissingRisk", mutate: func(request *forms.GeneralWaiverRequest) { request.AssumptionOfRisk = false }},
		{name: "MissingLiability", mutate: func(request *forms.GeneralWaiverRequest) { request.LiabilityRelease = false }},
		{name: "MissingIndemnification", mutate: func(request *forms.GeneralWaiverRequest) { request.Indemnification = false }},
		{name: "MissingConduct", mutate: func(request *forms.GeneralWaiverRequest) { request.CodeOfConduct = false }},
		{name: "MissingConsent", mutate: func(request *forms.GeneralWaiverRequest) { request.ElectronicSignatureConsent = false }},
	}

	for _, testCase := range mutations {
		tTesting.Run(testCase.name, func(t *testing.T) {
			// CreateGeneralWaiverFunc unset: nothing may reach the database.
			mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: t}

			service := forms.NewService(mockDB, &MockWaiverMailer{})

			request := generalRequest()
			testCase.mutate(&request)

			_, submitError := service.SubmitGeneralWaiver(context.Background(), request)

			if !errors.Is(submitError, forms.ErrTermsNotAccepted) {
				t.Fatalf("expected ErrTermsNotAccepted, got: %v", submitError)
			}
		})
	}
}

func TestSubmitGeneralWaiver(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	var createdWaiver database.CreateGeneralWaiverParams

	mockDB.CreateGeneralWaiverFunc = func(ctx context.Context, arg database.CreateGeneralWaiverParams) (database.CreateGeneralWaiverRow, error) {
		createdWaiver = arg

		return database.CreateGeneralWaiverRow{ID: arg.ID, StudentName: arg.StudentName}, nil
	}

	service := forms.NewService(mockDB, &MockWaiverMailer{})

	response, submitError := service.SubmitGeneralWaiver(context.Background(), generalRequest())

	assertNoError(tTesting, submitError, "SubmitGeneralWaiver")

	if !createdWaiver.AssumptionOfRiskAcknowledged || !createdWaiver.ElectronicSignatureConsent {
		tTesting.Errorf("expected acknowledgments persisted: %+v", createdWaiver)
	}

	if response.RedirectURL != "/forms/success?type=general-waiver&student=Jack+Marston" {
		tTesting.Errorf("unexpected redirect: %q", response.RedirectURL)
	}
}
