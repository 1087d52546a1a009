package forms

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/internal/sqlutil"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const birthDateLayout = "2006-01-02"

func fullName(firstName string, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}

// ageFromBirthDate computes the camper's age in whole years as of today.
func ageFromBirthDate(birthDate string) (int32, error) {
	dateOfBirth, parseError := time.Parse(birthDateLayout, birthDate)

	if parseError != nil {
		return 0, ErrInvalidBirthDate
	}

	now := time.Now()

	if dateOfBirth.After(now) {
		return 0, ErrInvalidBirthDate
	}

	age := now.Year() - dateOfBirth.Year()

	if now.YearDay() < dateOfBirth.YearDay() {
		age--
	}

	return int32(age), nil
}

func redirectURL(formType string, studentName string) string {
	return fmt.Sprintf("/forms/success?type=%s&student=%s", formType, url.QueryEscape(studentName))
}

func (service *Service) SubmitEsportsWaiver(ctx context.Context, request EsportsWaiverRequest) (*FormResponse, error) {
	studentAge, ageError := ageFromBirthDate(request.CamperDateOfBirth)

	if ageError != nil {
		return nil, ageError
	}

	studentName := fullName(request.CamperFirstName, request.CamperLastName)
	parentName := fullName(request.ParentFirstName, request.ParentLastName)

	createEsportsWaiverParams := database.CreateEsportsWaiverParams{
		ID:                           uuid.New(),
		StudentName:                  studentName,
		StudentAge:                   studentAge,
		ParentName:                   parentName,
		ParentEmail:                  request.ParentEmail,
		ParentPhone:                  request.ParentPhone,
		EmergencyContactName:         request.EmergencyContactName,
		EmergencyContactPhone:        request.EmergencyContactPhone,
		EmergencyContactRelationship: request.EmergencyContactRelationship,
		MedicalConditions:            sqlutil.StringToNullString(request.MedicalConditions),
		Medications:                  sqlutil.StringToNullString(request.Medications),
		Allergies:                    sqlutil.StringToNullString(request.Allergies),
		ERatedGamesAuthorized:        request.ERatedGames,
		TRatedGamesAuthorized:        request.TRatedGames,
		MRatedGamesAuthorized:        request.MRatedGames,
		ParentSignature:              request.ParentSignature,
		SignatureDate:                time.Now(),
	}

	if _, createError := service.DBQueries.CreateEsportsWaiver(ctx, createEsportsWaiverParams); createError != nil {
		if sqlutil.IsUniqueViolation(createError) {
			return nil, ErrDuplicateSubmission
		}

		logrus.Errorf("error creating esports waiver for %s: %s", studentName, createError)

		return nil, ErrInternalError
	}

	service.sendConfirmation("Esports Waiver", parentName, request.ParentEmail, studentName)

	return &FormResponse{
		Success:     true,
		Message:     "Esports waiver submitted successfully",
		RedirectURL: redirectURL("esports-waiver", studentName),
	}, nil
}

func (service *Service) SubmitMediaRelease(ctx context.Context, request MediaReleaseRequest) (*FormResponse, error) {
	studentName := fullName(request.CamperFirstName, request.CamperLastName)
	parentName := fullName(request.ParentFirstName, request.ParentLastName)

	createMediaReleaseParams := database.CreateMediaReleaseParams{
		ID:                uuid.New(),
		StudentName:       studentName,
		ParentName:        parentName,
		ParentEmail:       request.ParentEmail,
		ParentPhone:       request.ParentPhone,
		PermissionGranted: request.MediaPermission == "granted",
		ParentSignature:   request.ParentSignature,
		SignatureDate:     time.Now(),
	}

	if _, createError := service.DBQueries.CreateMediaRelease(ctx, createMediaReleaseParams); createError != nil {
		if sqlutil.IsUniqueViolation(createError) {
			return nil, ErrDuplicateSubmission
		}

		logrus.Errorf("error creating media release for %s: %s", studentName, createError)

		return nil, ErrInternalError
	}

	service.sendConfirmation("Media Release", parentName, request.ParentEmail, studentName)

	return &FormResponse{
		Success:     true,
		Message:     "Media release submitted successfully",
		RedirectURL: redirectURL("media-release", studentName),
	}, nil
}

func (service *Service) SubmitGeneralWaiver(ctx context.Context, request GeneralWaiverRequest) (*FormResponse, error) {
	if !request.AssumptionOfRisk || !request.LiabilityRelease || !request.Indemnification ||
		!request.CodeOfConduct || !request.ElectronicSignatureConsent {
		return nil, ErrTermsNotAccepted
	}

	studentName := fullName(request.CamperFirstName, request.CamperLastName)
	parentName := fullName(request.ParentFirstName, request.ParentLastName)

	createGeneralWaiverParams := database.CreateGeneralWaiverParams{
		ID:                           uuid.New(),
		StudentName:                  studentName,
		StudentAddress:               sqlutil.StringToNullString(request.CamperAddress),
		StudentCity:                  sqlutil.StringToNullString(request.CamperCity),
		StudentState:                 sqlutil.StringToNullString(request.CamperState),
		StudentZip:                   sqlutil.StringToNullString(request.CamperZip),
		ParentName:                   parentName,
		ParentEmail:                  request.ParentEmail,
		ParentPhone:                  request.ParentPhone,
		ParentAddress:                sqlutil.StringToNullString(request.ParentAddress),
		ParentCity:                   sqlutil.StringToNullString(request.ParentCity),
		ParentState:                  sqlutil.StringToNullString(request.ParentState),
		ParentZip:                    sqlutil.StringToNullString(request.ParentZip),
		EmergencyContactName:         request.EmergencyContactName,
		EmergencyContactPhone:        request.EmergencyContactPhone,
		EmergencyContactRelationship: request.EmergencyContactRelationship,
		MedicalConditions:            sqlutil.StringToNullString(request.MedicalConditions),
		Medications:                  sqlutil.StringToNullString(request.Medications),
		Allergies:                    sqlutil.StringToNullString(request.Allergies),
		DietaryRestrictions:          sqlutil.StringToNullString(request.DietaryRestrictions),
		PhysicianName:                sqlutil.StringToNullString(request.PhysicianName),
		PhysicianPhone:               sqlutil.StringToNullString(request.PhysicianPhone),
		InsuranceCompany:             sqlutil.StringToNullString(request.InsuranceCompany),
		InsurancePolicyNumber:        sqlutil.StringToNullString(request.InsurancePolicyNumber),
		AssumptionOfRiskAcknowledged: request.AssumptionOfRisk,
		LiabilityReleaseAcknowledged: request.LiabilityRelease,
		IndemnificationAcknowledged:  request.Indemnification,
		CodeOfConductAcknowledged:    request.CodeOfConduct,
		ElectronicSignatureConsent:   request.ElectronicSignatureConsent,
		ParentSignature:              request.ParentSignature,
		SignatureDate:                time.Now(),
	}

	if _, createError := service.DBQueries.CreateGeneralWaiver(ctx, createGeneralWaiverParams); createError != nil {
		if sqlutil.IsUniqueViolation(createError) {
			return nil, ErrDuplicateSubmission
		}

		logrus.Errorf("error creating general waiver for %s: %s", studentName, createError)

		return nil, ErrInternalError
	}

	service.sendConfirmation("General Waiver", parentName, request.ParentEmail, studentName)

	return &FormResponse{
		Success:     true,
		Message:     "General waiver submitted successfully",
		RedirectURL: redirectURL("general-waiver", studentName),
	}, nil
}

func (service *Service) sendConfirmation(formLabel string, parentName string, parentEmail string, studentName string) {
	if mailError := service.Mailer.SendWaiverConfirmation(formLabel, parentName, parentEmail, studentName); mailError != nil {
		logrus.Errorf("error sending %s confirmation to %s: %s", formLabel, parentEmail, mailError)
	}
}
