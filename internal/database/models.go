package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Camp struct {
	ID               uuid.UUID
	Name             string
	Slug             string
	Description      string
	ShortDescription string
	AgeRange         string
	MaxCapacity      int32
	Price            string
	ImageURL         sql.NullString
	CreatedAt        time.Time
	UpdatedAt        sql.NullTime
}

type Session struct {
	ID              uuid.UUID
	CampID          uuid.UUID
	WeekNumber      int32
	TimeSlot        string
	StartDate       time.Time
	EndDate         time.Time
	StartTime       string
	EndTime         string
	CurrentBookings int32
	MaxCapacity     int32
	Status          string
	CreatedAt       time.Time
	UpdatedAt       sql.NullTime
}

type User struct {
	ClerkUserID string
	Email       string
	FirstName   string
	LastName    string
	Phone       sql.NullString
	Role        string
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

type Booking struct {
	ID                    uuid.UUID
	ClerkUserID           string
	SessionID             uuid.UUID
	StudentName           string
	StudentAge            int32
	ParentEmail           string
	ParentPhone           sql.NullString
	EmergencyContact      string
	EmergencyPhone        string
	DietaryRestrictions   sql.NullString
	SpecialNeeds          sql.NullString
	StripePaymentIntentID string
	PaymentStatus         string
	BookingStatus         string
	TotalAmount           string
	CreatedAt             time.Time
	UpdatedAt             sql.NullTime
}

type PaymentLog struct {
	ID              uuid.UUID
	PaymentIntentID string
	Status          string
	Metadata        json.RawMessage
	Amount          string
	CreatedAt       time.Time
}

type EsportsWaiver struct {
	ID                           uuid.UUID
	StudentName                  string
	StudentAge                   int32
	ParentName                   string
	ParentEmail                  string
	ParentPhone                  string
	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string
	MedicalConditions            sql.NullString
	Medications                  sql.NullString
	Allergies                    sql.NullString
	ERatedGamesAuthorized        bool
	TRatedGamesAuthorized        bool
	MRatedGamesAuthorized        bool
	ParentSignature              string
	SignatureDate                time.Time
	SubmittedAt                  time.Time
}

type MediaRelease struct {
	ID                uuid.UUID
	StudentName       string
	ParentName        string
	ParentEmail       string
	ParentPhone       string
	PermissionGranted bool
	ParentSignature   string
	SignatureDate     time.Time
	SubmittedAt       time.Time
}

type GeneralWaiver struct {
	ID                           uuid.UUID
	StudentName                  string
	StudentAddress               sql.NullString
	StudentCity                  sql.NullString
	StudentState                 sql.NullString
	StudentZip                   sql.NullString
	ParentName                   string
	ParentEmail                  string
	ParentPhone                  string
	ParentAddress                sql.NullString
	ParentCity                   sql.NullString
	ParentState                  sql.NullString
	ParentZip                    sql.NullString
	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string
	MedicalConditions            sql.NullString
	Medications                  sql.NullString
	Allergies                    sql.NullString
	DietaryRestrictions          sql.NullString
	PhysicianName                sql.NullString
	PhysicianPhone               sql.NullString
	InsuranceCompany             sql.NullString
	InsurancePolicyNumber        sql.NullString
	AssumptionOfRiskAcknowledged bool
	LiabilityReleaseAcknowledged bool
	IndemnificationAcknowledged  bool
	CodeOfConductAcknowledged    bool
	ElectronicSignatureConsent   bool
	ParentSignature              string
	SignatureDate                time.Time
	SubmittedAt                  time.Time
}
