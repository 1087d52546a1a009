package forms

import (
	"context"
	"errors"

	"github.com/BenjaminBruton/skillwrap/config"
)

var (
	ErrDuplicateSubmission = errors.New("a form for this student and parent has already been submitted")
	ErrTermsNotAccepted    = errors.New("all acknowledgments must be accepted")
	ErrInvalidBirthDate    = errors.New("invalid date of birth")
	ErrInternalError       = errors.New("an internal error occurred")
)

type FormAPIConfig struct {
	Service FormService
}

type EsportsWaiverRequest struct {
	CamperFirstName              string `json:"camperFirstName" binding:"required"`
	CamperLastName               string `json:"camperLastName" binding:"required"`
	CamperDateOfBirth            string `json:"camperDateOfBirth" binding:"required"`
	ParentFirstName              string `json:"parentFirstName" binding:"required"`
	ParentLastName               string `json:"parentLastName" binding:"required"`
	ParentEmail                  string `json:"parentEmail" binding:"required,email"`
	ParentPhone                  string `json:"parentPhone" binding:"required"`
	EmergencyContactName         string `json:"emergencyContactName" binding:"required"`
	EmergencyContactPhone        string `json:"emergencyContactPhone" binding:"required"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship" binding:"required"`
	MedicalConditions            string `json:"medicalConditions"`
	Medications                  string `json:"medications"`
	Allergies                    string `json:"allergies"`
	ERatedGames                  bool   `json:"eRatedGames"`
	TRatedGames                  bool   `json:"tRatedGames"`
	MRatedGames                  bool   `json:"mRatedGames"`
	ParentSignature              string `json:"parentSignature" binding:"required"`
}

type MediaReleaseRequest struct {
	CamperFirstName string `json:"camperFirstName" binding:"required"`
	CamperLastName  string `json:"camperLastName" binding:"required"`
	ParentFirstName string `json:"parentFirstName" binding:"required"`
	ParentLastName  string `json:"parentLastName" binding:"required"`
	ParentEmail     string `json:"parentEmail" binding:"required,email"`
	ParentPhone     string `json:"parentPhone" binding:"required"`
	MediaPermission string `json:"mediaPermission" binding:"required"`
	ParentSignature string `json:"parentSignature" binding:"required"`
}

type GeneralWaiverRequest struct {
	CamperFirstName              string `json:"camperFirstName" binding:"required"`
	CamperLastName               string `json:"camperLastName" binding:"required"`
	CamperAddress                string `json:"camperAddress"`
	CamperCity                   string `json:"camperCity"`
	CamperState                  string `json:"camperState"`
	CamperZip                    string `json:"camperZip"`
	ParentFirstName              string `json:"parentFirstName" binding:"required"`
	ParentLastName               string `json:"parentLastName" binding:"required"`
	ParentEmail                  string `json:"parentEmail" binding:"required,email"`
	ParentPhone                  string `json:"parentPhone" binding:"required"`
	ParentAddress                string `json:"parentAddress"`
	ParentCity                   string `json:"parentCity"`
	ParentState                  string `json:"parentState"`
	ParentZip                    string `json:"parentZip"`
	EmergencyContactName         string `json:"emergencyContactName" binding:"required"`
	EmergencyContactPhone        string `json:"emergencyContactPhone" binding:"required"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship" binding:"required"`
	MedicalConditions            string `json:"medicalConditions"`
	Medications                  string `json:"medications"`
	Allergies                    string `json:"allergies"`
	DietaryRestrictions          string `json:"dietaryRestrictions"`
	PhysicianName                string `json:"physicianName"`
	PhysicianPhone               string `json:"physicianPhone"`
	InsuranceCompany             string `json:"insuranceCompany"`
	InsurancePolicyNumber        string `json:"insurancePolicyNumber"`
	AssumptionOfRisk             bool   `json:"assumptionOfRisk"`
	LiabilityRelease             bool   `json:"liabilityRelease"`
	Indemnification              bool   `json:"indemnification"`
	CodeOfConduct                bool   `json:"codeOfConduct"`
	ElectronicSignatureConsent   bool   `json:"electronicSignatureConsent"`
	ParentSignature              string `json:"parentSignature" binding:"required"`
}

type FormResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirectUrl"`
}

type FormService interface {
	SubmitEsportsWaiver(ctx context.Context, request EsportsWaiverRequest) (*FormResponse, error)
	SubmitMediaRelease(ctx context.Context, request MediaReleaseRequest) (*FormResponse, error)
	SubmitGeneralWaiver(ctx context.Context, request GeneralWaiverRequest) (*FormResponse, error)
}

type WaiverMailer interface {
	SendWaiverConfirmation(formLabel string, parentName string, parentEmail string, studentName string) error
}

type Service struct {
	DBQueries config.DBQueries
	Mailer    WaiverMailer
}

func NewService(dbQueries config.DBQueries, waiverMailer WaiverMailer) FormService {
	return &Service{
		DBQueries: dbQueries,
		Mailer:    waiverMailer,
	}
}
